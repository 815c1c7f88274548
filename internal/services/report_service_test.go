package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/community-service-hub/internal/models"
)

func TestNGOStats(t *testing.T) {
	env := newTestEnv(t)
	ngo := env.createNGO(t, true)
	other := env.createNGO(t, true)
	admin := env.createUser(t, "Root", models.RoleAdmin)
	a := env.createUser(t, "Ana", models.RoleVolunteer)
	b := env.createUser(t, "Ben", models.RoleVolunteer)
	task := env.createTask(t, ngo, 3)
	env.createTask(t, ngo, 1)

	app, err := env.applications.Apply(env.ctx, a, ApplyInput{TaskID: task.ID})
	require.NoError(t, err)
	_, err = env.applications.Apply(env.ctx, b, ApplyInput{TaskID: task.ID})
	require.NoError(t, err)
	_, err = env.applications.Decide(env.ctx, ngo, app.ID, "APPROVED")
	require.NoError(t, err)
	_, err = env.subTasks.Create(env.ctx, ngo, CreateSubTaskInput{ParentTaskID: task.ID, Name: "Bring bags", AssigneeID: &a.ID})
	require.NoError(t, err)

	stats, err := env.reports.NGOStats(env.ctx, ngo, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TasksPosted)
	assert.Equal(t, int64(1), stats.Applications[models.ApplicationStatusApproved])
	assert.Equal(t, int64(1), stats.Applications[models.ApplicationStatusPending])
	assert.Equal(t, int64(1), stats.SubTasks[models.SubTaskStatusAssigned])

	_, err = env.reports.NGOStats(env.ctx, other, ngo.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	byAdmin, err := env.reports.NGOStats(env.ctx, admin, ngo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), byAdmin.TasksPosted)
}
