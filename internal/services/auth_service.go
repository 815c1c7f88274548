package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/community-service-hub/internal/constants"
	apierrors "github.com/yukikurage/community-service-hub/internal/errors"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/notification"
	"github.com/yukikurage/community-service-hub/internal/repository"
	"github.com/yukikurage/community-service-hub/internal/security"
	"github.com/yukikurage/community-service-hub/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles accounts, login and NGO approval.
type AuthService struct {
	accounts repository.AccountRepository
	otps     *OTPService
	guard    *Guard
	tokens   security.TokenManager
	notifier notification.Notifier
	log      *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	accounts repository.AccountRepository,
	otps *OTPService,
	guard *Guard,
	tokens security.TokenManager,
	notifier notification.Notifier,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		accounts: accounts,
		otps:     otps,
		guard:    guard,
		tokens:   tokens,
		notifier: notifier,
		log:      log,
	}
}

// SignupInput represents the information needed to register a volunteer.
type SignupInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// SignupNGOInput represents the information needed to register an NGO.
type SignupNGOInput struct {
	OrganizationName string
	Email            string
	Phone            string
	Password         string
	Address          string
	City             string
	State            string
	Country          string
	Website          string
	SocialLinks      string
	Description      string
	Latitude         *float64
	Longitude        *float64
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is the authenticated account with its access token.
type LoginResult struct {
	Account     models.Account
	AccessToken string
}

// SignupVolunteer registers a volunteer and sends the verification code.
func (s *AuthService) SignupVolunteer(ctx context.Context, input SignupInput) (*models.Account, error) {
	name := utils.SanitizeText(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email, hash, err := s.prepareCredentials(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		Role:         models.RoleVolunteer,
	}
	if err := s.accounts.CreateUser(ctx, user); err != nil {
		return nil, apierrors.Internal("failed to create user", err)
	}

	account := user.Account()
	if err := s.otps.Issue(ctx, account.ID); err != nil {
		return nil, err
	}

	s.log.Info("volunteer signed up", zap.String("account_id", account.ID.String()))
	return &account, nil
}

// SignupNGO registers an unapproved NGO and sends the verification code.
func (s *AuthService) SignupNGO(ctx context.Context, input SignupNGOInput) (*models.Account, error) {
	name := utils.SanitizeText(input.OrganizationName)
	if name == "" {
		return nil, ErrNameRequired
	}
	email, hash, err := s.prepareCredentials(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	ngo := &models.NGO{
		OrganizationName: name,
		Email:            email,
		Phone:            strings.TrimSpace(input.Phone),
		PasswordHash:     hash,
		Address:          utils.SanitizeText(input.Address),
		City:             utils.SanitizeText(input.City),
		State:            utils.SanitizeText(input.State),
		Country:          utils.SanitizeText(input.Country),
		Website:          strings.TrimSpace(input.Website),
		SocialLinks:      strings.TrimSpace(input.SocialLinks),
		Description:      utils.SanitizeText(input.Description),
		Latitude:         input.Latitude,
		Longitude:        input.Longitude,
	}
	if err := s.accounts.CreateNGO(ctx, ngo); err != nil {
		return nil, apierrors.Internal("failed to create NGO", err)
	}

	account := ngo.Account()
	if err := s.otps.Issue(ctx, account.ID); err != nil {
		return nil, err
	}

	s.log.Info("NGO signed up", zap.String("account_id", account.ID.String()))
	return &account, nil
}

// EnsureAdmin creates a verified ADMIN user unless the email is already taken.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	taken, err := s.accounts.EmailTaken(ctx, email)
	if err != nil {
		return apierrors.Internal("failed to check email", err)
	}
	if taken {
		return nil
	}

	_, hash, err := s.prepareCredentials(ctx, email, password)
	if err != nil {
		return err
	}
	admin := &models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := s.accounts.CreateUser(ctx, admin); err != nil {
		return apierrors.Internal("failed to create admin", err)
	}

	s.log.Info("admin account created", zap.String("email", email))
	return nil
}

// Login verifies credentials and issues an access token. Accounts with an
// outstanding verification code are refused.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	account, hash, err := s.accounts.PasswordHash(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, apierrors.Internal("failed to find account", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	verified, err := s.otps.IsVerified(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	if !verified {
		return nil, ErrAccountNotVerified
	}

	token, err := s.tokens.GenerateAccessToken(*account)
	if err != nil {
		return nil, apierrors.Internal("failed to issue access token", err)
	}

	return &LoginResult{Account: *account, AccessToken: token}, nil
}

// GetAccount retrieves an account by ID.
func (s *AuthService) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, apierrors.Internal("failed to find account", err)
	}
	return account, nil
}

// ListNGOs returns NGOs, optionally filtered by approval, admins only.
func (s *AuthService) ListNGOs(ctx context.Context, caller Caller, approved *bool) ([]models.NGO, error) {
	if err := s.guard.Authorize(ctx, caller, OpNGOList, nil, nil); err != nil {
		return nil, err
	}
	ngos, err := s.accounts.ListNGOs(ctx, approved)
	if err != nil {
		return nil, apierrors.Internal("failed to list NGOs", err)
	}
	return ngos, nil
}

// ReviewNGO approves or revokes an NGO, admins only.
func (s *AuthService) ReviewNGO(ctx context.Context, caller Caller, ngoID uuid.UUID, approved bool) (*models.NGO, error) {
	if err := s.guard.Authorize(ctx, caller, OpNGOApprove, nil, nil); err != nil {
		return nil, err
	}

	ngo, err := s.accounts.FindNGOByID(ctx, ngoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNGONotFound
		}
		return nil, apierrors.Internal("failed to find NGO", err)
	}

	reviewer := caller.ID
	ngo.IsApproved = approved
	ngo.UpdatedBy = &reviewer
	if err := s.accounts.UpdateNGO(ctx, ngo); err != nil {
		return nil, apierrors.Internal("failed to update NGO", err)
	}

	s.log.Info("NGO reviewed", zap.String("ngo_id", ngo.ID.String()), zap.Bool("approved", approved))
	notify(ctx, s.notifier, s.log, notification.NGOApprovalMessage(ngo.Email, ngo.OrganizationName, approved))
	return ngo, nil
}

func (s *AuthService) prepareCredentials(ctx context.Context, rawEmail, password string) (string, string, error) {
	email := strings.ToLower(strings.TrimSpace(rawEmail))
	if email == "" {
		return "", "", ErrEmailRequired
	}
	if len(password) < constants.MinPasswordLength {
		return "", "", ErrPasswordTooShort
	}

	taken, err := s.accounts.EmailTaken(ctx, email)
	if err != nil {
		return "", "", apierrors.Internal("failed to check email", err)
	}
	if taken {
		return "", "", ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", apierrors.Internal("failed to hash password", err)
	}
	return email, string(hashedPassword), nil
}
