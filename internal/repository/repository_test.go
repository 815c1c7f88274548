package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/community-service-hub/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type RepositoryTestSuite struct {
	suite.Suite
	db           *gorm.DB
	ctx          context.Context
	accounts     AccountRepository
	tasks        TaskRepository
	applications ApplicationRepository
	subTasks     SubTaskRepository
	otps         OTPRepository
	activities   ActivityRepository
}

func (suite *RepositoryTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(suite.db.AutoMigrate(
		&models.User{},
		&models.NGO{},
		&models.Task{},
		&models.Application{},
		&models.SubTask{},
		&models.OTP{},
		&models.Activity{},
	))

	suite.ctx = context.Background()
	suite.accounts = NewAccountRepository(suite.db)
	suite.tasks = NewTaskRepository(suite.db)
	suite.applications = NewApplicationRepository(suite.db)
	suite.subTasks = NewSubTaskRepository(suite.db)
	suite.otps = NewOTPRepository(suite.db)
	suite.activities = NewActivityRepository(suite.db)
}

func (suite *RepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RepositoryTestSuite) createTask(postedBy uuid.UUID, capacity int) *models.Task {
	task := &models.Task{
		PostedBy:              postedBy,
		Name:                  "Beach cleanup",
		NumberOfPeopleNeeded:  capacity,
		RemainingPeopleNeeded: capacity,
		Status:                models.TaskStatusOpen,
	}
	suite.Require().NoError(suite.tasks.Create(suite.ctx, task))
	return task
}

func (suite *RepositoryTestSuite) TestAccountLookupSpansUsersAndNGOs() {
	user := &models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Role: models.RoleVolunteer}
	ngo := &models.NGO{OrganizationName: "Helpers", Email: "ngo@example.com", PasswordHash: "y"}
	suite.Require().NoError(suite.accounts.CreateUser(suite.ctx, user))
	suite.Require().NoError(suite.accounts.CreateNGO(suite.ctx, ngo))

	account, err := suite.accounts.FindByID(suite.ctx, ngo.ID)
	suite.Require().NoError(err)
	suite.Equal(models.RoleNGO, account.Role)
	suite.False(account.Approved)

	account, hash, err := suite.accounts.PasswordHash(suite.ctx, "ana@example.com")
	suite.Require().NoError(err)
	suite.Equal(user.ID, account.ID)
	suite.Equal("x", hash)

	taken, err := suite.accounts.EmailTaken(suite.ctx, "ngo@example.com")
	suite.Require().NoError(err)
	suite.True(taken)

	_, err = suite.accounts.FindByID(suite.ctx, uuid.New())
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *RepositoryTestSuite) TestConsumeSlotClosesOnLastSlot() {
	task := suite.createTask(uuid.New(), 2)

	suite.Require().NoError(suite.tasks.ConsumeSlot(suite.ctx, task.ID))
	got, err := suite.tasks.FindByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Equal(1, got.RemainingPeopleNeeded)
	suite.Equal(models.TaskStatusOpen, got.Status)

	suite.Require().NoError(suite.tasks.ConsumeSlot(suite.ctx, task.ID))
	got, err = suite.tasks.FindByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Equal(0, got.RemainingPeopleNeeded)
	suite.Equal(models.TaskStatusClosed, got.Status)

	suite.ErrorIs(suite.tasks.ConsumeSlot(suite.ctx, task.ID), ErrNoSlotAvailable)
	suite.ErrorIs(suite.tasks.ConsumeSlot(suite.ctx, uuid.New()), gorm.ErrRecordNotFound)
}

func (suite *RepositoryTestSuite) TestResize() {
	task := suite.createTask(uuid.New(), 3)
	suite.Require().NoError(suite.tasks.ConsumeSlot(suite.ctx, task.ID))
	suite.Require().NoError(suite.tasks.ConsumeSlot(suite.ctx, task.ID))

	suite.Require().NoError(suite.tasks.Resize(suite.ctx, task.ID, 2))
	got, err := suite.tasks.FindByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Equal(2, got.NumberOfPeopleNeeded)
	suite.Equal(0, got.RemainingPeopleNeeded)
	suite.Equal(models.TaskStatusClosed, got.Status)

	suite.ErrorIs(suite.tasks.Resize(suite.ctx, task.ID, 1), ErrCapacityBelowTaken)

	suite.Require().NoError(suite.tasks.Resize(suite.ctx, task.ID, 5))
	got, err = suite.tasks.FindByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Equal(3, got.RemainingPeopleNeeded)
	suite.Equal(models.TaskStatusOpen, got.Status)
}

func (suite *RepositoryTestSuite) TestUpdateResizing() {
	task := suite.createTask(uuid.New(), 3)
	suite.Require().NoError(suite.tasks.ConsumeSlot(suite.ctx, task.ID))
	suite.Require().NoError(suite.tasks.ConsumeSlot(suite.ctx, task.ID))
	originalName := task.Name

	task.Name = "Renamed"
	suite.ErrorIs(suite.tasks.UpdateResizing(suite.ctx, task, 1), ErrCapacityBelowTaken)

	got, err := suite.tasks.FindByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Equal(originalName, got.Name)
	suite.Equal(3, got.NumberOfPeopleNeeded)
	suite.Equal(1, got.RemainingPeopleNeeded)

	suite.Require().NoError(suite.tasks.UpdateResizing(suite.ctx, task, 4))
	got, err = suite.tasks.FindByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Equal("Renamed", got.Name)
	suite.Equal(4, got.NumberOfPeopleNeeded)
	suite.Equal(2, got.RemainingPeopleNeeded)
}

func (suite *RepositoryTestSuite) TestDeleteTask() {
	task := suite.createTask(uuid.New(), 1)

	suite.Require().NoError(suite.tasks.Delete(suite.ctx, task.ID))
	suite.ErrorIs(suite.tasks.Delete(suite.ctx, task.ID), gorm.ErrRecordNotFound)
}

func (suite *RepositoryTestSuite) TestUpdateLeavesCapacityAlone() {
	task := suite.createTask(uuid.New(), 2)
	suite.Require().NoError(suite.tasks.ConsumeSlot(suite.ctx, task.ID))

	// task still holds the stale remaining count of 2
	task.Name = "River cleanup"
	suite.Require().NoError(suite.tasks.Update(suite.ctx, task))

	got, err := suite.tasks.FindByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Equal("River cleanup", got.Name)
	suite.Equal(1, got.RemainingPeopleNeeded)
}

func (suite *RepositoryTestSuite) TestCreateConsumingSlotRollsBackOnClosedTask() {
	task := suite.createTask(uuid.New(), 1)
	first := &models.Application{ApplicantID: uuid.New(), TaskID: task.ID, Status: models.ApplicationStatusPending}
	second := &models.Application{ApplicantID: uuid.New(), TaskID: task.ID, Status: models.ApplicationStatusPending}

	suite.Require().NoError(suite.applications.CreateConsumingSlot(suite.ctx, first))
	suite.ErrorIs(suite.applications.CreateConsumingSlot(suite.ctx, second), ErrNoSlotAvailable)

	apps, err := suite.applications.List(suite.ctx, ApplicationFilter{TaskID: &task.ID})
	suite.Require().NoError(err)
	suite.Len(apps, 1)
	suite.Equal(first.ID, apps[0].ID)
}

func (suite *RepositoryTestSuite) TestApplicationFiltersAndCounts() {
	ngoID := uuid.New()
	mine := suite.createTask(ngoID, 5)
	other := suite.createTask(uuid.New(), 5)

	for _, taskID := range []uuid.UUID{mine.ID, mine.ID, other.ID} {
		app := &models.Application{ApplicantID: uuid.New(), TaskID: taskID, Status: models.ApplicationStatusPending}
		suite.Require().NoError(suite.applications.CreateConsumingSlot(suite.ctx, app))
	}

	apps, err := suite.applications.List(suite.ctx, ApplicationFilter{TaskPostedBy: &ngoID})
	suite.Require().NoError(err)
	suite.Len(apps, 2)

	apps[0].Status = models.ApplicationStatusApproved
	suite.Require().NoError(suite.applications.Update(suite.ctx, &apps[0]))

	counts, err := suite.applications.CountByStatus(suite.ctx, ApplicationFilter{TaskPostedBy: &ngoID})
	suite.Require().NoError(err)
	suite.Equal(int64(1), counts[models.ApplicationStatusApproved])
	suite.Equal(int64(1), counts[models.ApplicationStatusPending])
}

func (suite *RepositoryTestSuite) TestSubTaskFilters() {
	ngoID := uuid.New()
	task := suite.createTask(ngoID, 1)
	assignee := uuid.New()

	suite.Require().NoError(suite.subTasks.Create(suite.ctx, &models.SubTask{
		ParentTaskID: task.ID, Name: "Bring bags", AssigneeID: &assignee, Status: models.SubTaskStatusAssigned,
	}))
	suite.Require().NoError(suite.subTasks.Create(suite.ctx, &models.SubTask{
		ParentTaskID: task.ID, Name: "Book van", Status: models.SubTaskStatusNotAssigned,
	}))

	assigned, err := suite.subTasks.List(suite.ctx, SubTaskFilter{AssigneeID: &assignee})
	suite.Require().NoError(err)
	suite.Len(assigned, 1)

	counts, err := suite.subTasks.CountByStatus(suite.ctx, SubTaskFilter{TaskPostedBy: &ngoID})
	suite.Require().NoError(err)
	suite.Equal(int64(1), counts[models.SubTaskStatusAssigned])
	suite.Equal(int64(1), counts[models.SubTaskStatusNotAssigned])
}

func (suite *RepositoryTestSuite) TestOTPReplaceKeepsOneRecord() {
	userID := uuid.New()
	expireAt := time.Now().Add(2 * time.Minute)

	suite.Require().NoError(suite.otps.Replace(suite.ctx, &models.OTP{UserID: userID, OTPCode: 300000, ExpireAt: expireAt}))
	suite.Require().NoError(suite.otps.Replace(suite.ctx, &models.OTP{UserID: userID, OTPCode: 400000, ExpireAt: expireAt}))

	var count int64
	suite.Require().NoError(suite.db.Model(&models.OTP{}).Where("user_id = ?", userID).Count(&count).Error)
	suite.Equal(int64(1), count)

	otp, err := suite.otps.FindByUserID(suite.ctx, userID)
	suite.Require().NoError(err)
	suite.Equal(400000, otp.OTPCode)

	suite.Require().NoError(suite.otps.Consume(suite.ctx, otp.ID))
	_, err = suite.otps.FindByUserID(suite.ctx, userID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	suite.ErrorIs(suite.otps.Consume(suite.ctx, otp.ID), gorm.ErrRecordNotFound)
}

func (suite *RepositoryTestSuite) TestActivitiesNewestFirst() {
	taskID := uuid.New()
	for _, text := range []string{"applied", "approved"} {
		suite.Require().NoError(suite.activities.Create(suite.ctx, &models.Activity{EntityID: taskID, Activity: text}))
		time.Sleep(5 * time.Millisecond)
	}

	recent, err := suite.activities.ListRecent(suite.ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(recent, 1)
	suite.Equal("approved", recent[0].Activity)
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func TestTaskFilterPagination(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.Task{}))

	repo := NewTaskRepository(db)
	ngoID := uuid.New()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(context.Background(), &models.Task{
			PostedBy: ngoID, Name: "t", Category: "environment",
			NumberOfPeopleNeeded: 1, RemainingPeopleNeeded: 1, Status: models.TaskStatusOpen,
		}))
	}

	open := models.TaskStatusOpen
	tasks, total, err := repo.List(context.Background(), TaskFilter{Status: &open, Category: "environment", Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, tasks, 1)
}
