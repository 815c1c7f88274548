package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/community-service-hub/internal/models"
	"github.com/yukikurage/community-service-hub/internal/notification"
	"github.com/yukikurage/community-service-hub/internal/repository"
	"github.com/yukikurage/community-service-hub/internal/security"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testOTPCode = 345678

type recordingNotifier struct {
	mu       sync.Mutex
	messages []notification.Message
	err      error
}

func (n *recordingNotifier) Send(ctx context.Context, msg notification.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.messages = append(n.messages, msg)
	return nil
}

func (n *recordingNotifier) sent() []notification.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Message(nil), n.messages...)
}

type testEnv struct {
	db       *gorm.DB
	ctx      context.Context
	now      time.Time
	notifier *recordingNotifier

	accounts     repository.AccountRepository
	taskRepo     repository.TaskRepository
	guard        *Guard
	activities   *ActivityService
	tasks        *TaskService
	applications *ApplicationService
	subTasks     *SubTaskService
	otps         *OTPService
	auth         *AuthService
	reports      *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithLogger(t, zap.NewNop())
}

func newTestEnvWithLogger(t *testing.T, log *zap.Logger) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every goroutine shares the single in-memory connection
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.NGO{},
		&models.Task{},
		&models.Application{},
		&models.SubTask{},
		&models.OTP{},
		&models.Activity{},
	))

	env := &testEnv{
		db:       db,
		ctx:      context.Background(),
		now:      time.Date(2025, 8, 4, 10, 0, 0, 0, time.UTC),
		notifier: &recordingNotifier{},
	}

	env.accounts = repository.NewAccountRepository(db)
	env.taskRepo = repository.NewTaskRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	subTaskRepo := repository.NewSubTaskRepository(db)

	env.guard = NewGuard(env.taskRepo)
	env.activities = NewActivityService(repository.NewActivityRepository(db), env.guard, log)
	env.tasks = NewTaskService(env.taskRepo, env.accounts, env.guard, log)
	env.applications = NewApplicationService(applicationRepo, env.taskRepo, env.accounts, env.guard, env.activities, env.notifier, log)
	env.subTasks = NewSubTaskService(subTaskRepo, env.taskRepo, env.accounts, env.guard, nil, log)
	env.otps = NewOTPService(repository.NewOTPRepository(db), env.accounts, env.notifier, 2*time.Minute, log)
	env.otps.now = func() time.Time { return env.now }
	env.otps.generate = func() (int, error) { return testOTPCode, nil }
	env.auth = NewAuthService(env.accounts, env.otps, env.guard, security.NewTokenManager("test-secret", time.Hour), env.notifier, log)
	env.reports = NewReportService(env.taskRepo, applicationRepo, subTaskRepo, env.guard)

	return env
}

func (env *testEnv) createUser(t *testing.T, name string, role models.Role) Caller {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        uuid.NewString() + "@example.com",
		Phone:        "0200000000",
		PasswordHash: "hash",
		Role:         role,
	}
	require.NoError(t, env.accounts.CreateUser(env.ctx, user))
	return Caller{ID: user.ID, Role: role}
}

func (env *testEnv) createNGO(t *testing.T, approved bool) Caller {
	t.Helper()
	ngo := &models.NGO{
		OrganizationName: "Helpers",
		Email:            uuid.NewString() + "@example.org",
		PasswordHash:     "hash",
		IsApproved:       approved,
	}
	require.NoError(t, env.accounts.CreateNGO(env.ctx, ngo))
	return Caller{ID: ngo.ID, Role: models.RoleNGO}
}

func (env *testEnv) createTask(t *testing.T, owner Caller, capacity int) *models.Task {
	t.Helper()
	task, err := env.tasks.CreateTask(env.ctx, owner, CreateTaskInput{
		Name:                 "Beach cleanup",
		Category:             "environment",
		NumberOfPeopleNeeded: capacity,
	})
	require.NoError(t, err)
	return task
}

func (env *testEnv) reloadTask(t *testing.T, id uuid.UUID) *models.Task {
	t.Helper()
	task, err := env.taskRepo.FindByID(env.ctx, id)
	require.NoError(t, err)
	return task
}

var errNotifierDown = errors.New("smtp unavailable")
