package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/community-service-hub/internal/models"
)

func TestSubTaskHandler_Lifecycle(t *testing.T) {
	env := setupHandlerTestEnv(t)
	_, ngoToken := env.ngo(t)
	anaID, anaToken := env.volunteer(t, "Ana")

	task := createTaskViaAPI(t, env, ngoToken, 2)

	w := env.do(t, http.MethodPost, "/api/tasks/"+task.ID.String()+"/subtasks", ngoToken, map[string]string{
		"name":        "Bring gloves",
		"description": "Forty pairs",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var subTask models.SubTask
	decode(t, w, &subTask)
	assert.Equal(t, models.SubTaskStatusNotAssigned, subTask.Status)
	path := "/api/subtasks/" + subTask.ID.String()

	w = env.do(t, http.MethodPut, path+"/assignee", anaToken, map[string]string{"assignee_id": anaID.String()})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPut, path+"/assignee", ngoToken, map[string]string{"assignee_id": anaID.String()})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &subTask)
	assert.Equal(t, models.SubTaskStatusAssigned, subTask.Status)

	w = env.do(t, http.MethodPut, path+"/status", anaToken, map[string]string{"status": "done"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPut, path+"/status", anaToken, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &subTask)
	assert.Equal(t, models.SubTaskStatusCompleted, subTask.Status)

	var listed struct {
		SubTasks []models.SubTask `json:"subtasks"`
	}
	w = env.do(t, http.MethodGet, "/api/subtasks/mine", anaToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listed)
	assert.Len(t, listed.SubTasks, 1)

	w = env.do(t, http.MethodGet, "/api/tasks/"+task.ID.String()+"/subtasks", ngoToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listed)
	assert.Len(t, listed.SubTasks, 1)

	w = env.do(t, http.MethodDelete, path, ngoToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, path, ngoToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubTaskHandler_SuggestWithoutGenerator(t *testing.T) {
	env := setupHandlerTestEnv(t)
	_, ngoToken := env.ngo(t)
	task := createTaskViaAPI(t, env, ngoToken, 2)

	w := env.do(t, http.MethodPost, "/api/tasks/"+task.ID.String()+"/subtasks/suggest", ngoToken, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSubTaskHandler_DescriptionTooLong(t *testing.T) {
	env := setupHandlerTestEnv(t)
	_, ngoToken := env.ngo(t)
	task := createTaskViaAPI(t, env, ngoToken, 2)

	long := make([]rune, models.MaxSubTaskDescriptionLength+1)
	for i := range long {
		long[i] = 'a'
	}

	w := env.do(t, http.MethodPost, "/api/tasks/"+task.ID.String()+"/subtasks", ngoToken, map[string]string{
		"name":        "Bring gloves",
		"description": string(long),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
