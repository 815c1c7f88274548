package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/community-service-hub/internal/dto"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/middleware"
	"github.com/yukikurage/community-service-hub/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	otpService  *services.OTPService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, otpService *services.OTPService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		otpService:  otpService,
	}
}

// SignupVolunteer registers a new volunteer.
func (h *AuthHandler) SignupVolunteer(c *gin.Context) {
	type SignupRequest struct {
		Name     string `json:"name" binding:"required,max=255"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone" binding:"max=50"`
		Password string `json:"password" binding:"required"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.authService.SignupVolunteer(c.Request.Context(), services.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountDTO(*account))
}

// SignupNGO registers a new organization awaiting approval.
func (h *AuthHandler) SignupNGO(c *gin.Context) {
	type SignupNGORequest struct {
		OrganizationName string   `json:"organization_name" binding:"required,max=255"`
		Email            string   `json:"email" binding:"required,email"`
		Phone            string   `json:"phone" binding:"max=50"`
		Password         string   `json:"password" binding:"required"`
		Address          string   `json:"address"`
		City             string   `json:"city"`
		State            string   `json:"state"`
		Country          string   `json:"country"`
		Website          string   `json:"website"`
		SocialLinks      string   `json:"social_links"`
		Description      string   `json:"description" binding:"max=1000"`
		Latitude         *float64 `json:"latitude"`
		Longitude        *float64 `json:"longitude"`
	}

	var req SignupNGORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.authService.SignupNGO(c.Request.Context(), services.SignupNGOInput{
		OrganizationName: req.OrganizationName,
		Email:            req.Email,
		Phone:            req.Phone,
		Password:         req.Password,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		Country:          req.Country,
		Website:          req.Website,
		SocialLinks:      req.SocialLinks,
		Description:      req.Description,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountDTO(*account))
}

// Login authenticates an account, initializes the session and returns an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if err := middleware.SaveSession(c, result.Account); err != nil {
		respondError(c, apierrors.Internal("failed to save session", err))
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Account:     dto.ToAccountDTO(result.Account),
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
	})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.ClearSession(c); err != nil {
		respondError(c, apierrors.Internal("failed to logout", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentAccount returns the authenticated account.
func (h *AuthHandler) GetCurrentAccount(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	account, err := h.authService.GetAccount(c.Request.Context(), caller.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountDTO(*account))
}

// ResendOTP issues a fresh verification code to an email address.
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	type ResendRequest struct {
		Email string `json:"email" binding:"required"`
	}

	var req ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.otpService.IssueByEmail(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Verification code sent",
	})
}

// VerifyOTP checks a verification code and activates the account.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	type VerifyRequest struct {
		Email string `json:"email" binding:"required"`
		Code  int    `json:"code" binding:"required"`
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.otpService.VerifyByEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account verified",
	})
}
