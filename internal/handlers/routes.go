package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/community-service-hub/internal/middleware"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/security"
)

// Handlers groups every HTTP handler served under /api.
type Handlers struct {
	Auth        *AuthHandler
	NGO         *NGOHandler
	Task        *TaskHandler
	Application *ApplicationHandler
	SubTask     *SubTaskHandler
	Activity    *ActivityHandler
}

// RegisterRoutes mounts the health check and the API routes on r.
func RegisterRoutes(r *gin.Engine, h Handlers, tokens security.TokenManager) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Community Service Hub API is running",
		})
	})

	requireAuth := middleware.RequireAuth(tokens)
	withID := middleware.RequireUUIDParams("id")

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Auth.SignupVolunteer)
			auth.POST("/signup/ngo", h.Auth.SignupNGO)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.POST("/otp/resend", h.Auth.ResendOTP)
			auth.POST("/otp/verify", h.Auth.VerifyOTP)
			auth.GET("/me", requireAuth, h.Auth.GetCurrentAccount)
		}

		// NGO routes (protected)
		ngos := api.Group("/ngos")
		ngos.Use(requireAuth)
		{
			ngos.GET("", middleware.RequireRole(models.RoleAdmin), h.NGO.ListNGOs)
			ngos.GET("/me/stats", middleware.RequireRole(models.RoleNGO), h.NGO.GetMyStats)
			ngos.GET("/:id/stats", withID, h.NGO.GetStats)
			ngos.PUT("/:id/approval", withID, middleware.RequireRole(models.RoleAdmin), h.NGO.ReviewNGO)
		}

		// Task listing is public; writes require a session or token
		tasks := api.Group("/tasks")
		{
			tasks.GET("", h.Task.ListTasks)
			tasks.GET("/mine", requireAuth, middleware.RequireRole(models.RoleNGO), h.Task.ListMyTasks)
			tasks.GET("/:id", withID, h.Task.GetTask)
			tasks.POST("", requireAuth, h.Task.CreateTask)
			tasks.PATCH("/:id", requireAuth, withID, h.Task.UpdateTask)
			tasks.DELETE("/:id", requireAuth, withID, h.Task.DeleteTask)

			tasks.POST("/:id/applications", requireAuth, withID, h.Application.Apply)
			tasks.GET("/:id/applications", requireAuth, withID, h.Application.ListForTask)

			tasks.POST("/:id/subtasks", requireAuth, withID, h.SubTask.Create)
			tasks.GET("/:id/subtasks", requireAuth, withID, h.SubTask.ListByTask)
			tasks.POST("/:id/subtasks/suggest", requireAuth, withID, h.SubTask.Suggest)
		}

		applications := api.Group("/applications")
		applications.Use(requireAuth)
		{
			applications.GET("", h.Application.ListAll)
			applications.GET("/mine", h.Application.ListMine)
			applications.GET("/:id", withID, h.Application.Get)
			applications.PATCH("/:id", withID, h.Application.Update)
			applications.DELETE("/:id", withID, h.Application.Withdraw)
			applications.POST("/:id/decision", withID, h.Application.Decide)
		}

		subTasks := api.Group("/subtasks")
		subTasks.Use(requireAuth)
		{
			subTasks.GET("", h.SubTask.ListAll)
			subTasks.GET("/mine", h.SubTask.ListMine)
			subTasks.GET("/:id", withID, h.SubTask.Get)
			subTasks.PATCH("/:id", withID, h.SubTask.Update)
			subTasks.DELETE("/:id", withID, h.SubTask.Delete)
			subTasks.PUT("/:id/assignee", withID, h.SubTask.Assign)
			subTasks.PUT("/:id/status", withID, h.SubTask.SetStatus)
		}

		api.GET("/activities", requireAuth, h.Activity.ListRecent)
	}
}
