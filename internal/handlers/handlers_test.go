package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/community-service-hub/internal/constants"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/notification"
	"github.com/yukikurage/community-service-hub/internal/repository"
	"github.com/yukikurage/community-service-hub/internal/security"
	"github.com/yukikurage/community-service-hub/internal/services"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type handlerTestEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	tokens   security.TokenManager
	accounts repository.AccountRepository
	auth     *services.AuthService
}

func setupHandlerTestEnv(t *testing.T) *handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.NGO{},
		&models.Task{},
		&models.Application{},
		&models.SubTask{},
		&models.OTP{},
		&models.Activity{},
	))

	log := zap.NewNop()
	notifier := notification.NewLogNotifier(log)
	tokens := security.NewTokenManager("handler-test-secret", time.Hour)

	accounts := repository.NewAccountRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	subTaskRepo := repository.NewSubTaskRepository(db)

	guard := services.NewGuard(taskRepo)
	activityService := services.NewActivityService(repository.NewActivityRepository(db), guard, log)
	otpService := services.NewOTPService(repository.NewOTPRepository(db), accounts, notifier, 2*time.Minute, log)
	authService := services.NewAuthService(accounts, otpService, guard, tokens, notifier, log)
	taskService := services.NewTaskService(taskRepo, accounts, guard, log)
	applicationService := services.NewApplicationService(applicationRepo, taskRepo, accounts, guard, activityService, notifier, log)
	subTaskService := services.NewSubTaskService(subTaskRepo, taskRepo, accounts, guard, nil, log)
	reportService := services.NewReportService(taskRepo, applicationRepo, subTaskRepo, guard)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	RegisterRoutes(r, Handlers{
		Auth:        NewAuthHandler(authService, otpService),
		NGO:         NewNGOHandler(authService, reportService),
		Task:        NewTaskHandler(taskService),
		Application: NewApplicationHandler(applicationService),
		SubTask:     NewSubTaskHandler(subTaskService),
		Activity:    NewActivityHandler(activityService),
	}, tokens)

	return &handlerTestEnv{
		db:       db,
		router:   r,
		tokens:   tokens,
		accounts: accounts,
		auth:     authService,
	}
}

// do sends a JSON request. token may be empty for anonymous calls.
func (env *handlerTestEnv) do(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *handlerTestEnv) volunteer(t *testing.T, name string) (uuid.UUID, string) {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		Role:         models.RoleVolunteer,
	}
	require.NoError(t, env.accounts.CreateUser(context.Background(), user))
	return user.ID, env.token(t, user.ID)
}

func (env *handlerTestEnv) ngo(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	ngo := &models.NGO{
		OrganizationName: "Helpers",
		Email:            uuid.NewString() + "@example.org",
		PasswordHash:     "hash",
		IsApproved:       true,
	}
	require.NoError(t, env.accounts.CreateNGO(context.Background(), ngo))
	return ngo.ID, env.token(t, ngo.ID)
}

func (env *handlerTestEnv) admin(t *testing.T) string {
	t.Helper()
	require.NoError(t, env.auth.EnsureAdmin(context.Background(), "root@example.com", "admin-password"))
	account, err := env.accounts.FindByEmail(context.Background(), "root@example.com")
	require.NoError(t, err)
	return env.token(t, account.ID)
}

func (env *handlerTestEnv) token(t *testing.T, id uuid.UUID) string {
	t.Helper()
	account, err := env.accounts.FindByID(context.Background(), id)
	require.NoError(t, err)
	token, err := env.tokens.GenerateAccessToken(*account)
	require.NoError(t, err)
	return token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
