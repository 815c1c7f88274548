package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/community-service-hub/internal/dto"
	"github.com/yukikurage/community-service-hub/internal/models"
)

func createTaskViaAPI(t *testing.T, env *handlerTestEnv, token string, capacity int) models.Task {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/tasks", token, map[string]interface{}{
		"name":                    "Beach cleanup",
		"category":                "environment",
		"number_of_people_needed": capacity,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var task models.Task
	decode(t, w, &task)
	return task
}

func TestTaskHandler_CreateAndGet(t *testing.T) {
	env := setupHandlerTestEnv(t)
	ngoID, token := env.ngo(t)

	task := createTaskViaAPI(t, env, token, 3)
	assert.Equal(t, ngoID, task.PostedBy)
	assert.Equal(t, models.TaskStatusOpen, task.Status)
	assert.Equal(t, 3, task.RemainingPeopleNeeded)

	// reading a task needs no authentication
	w := env.do(t, http.MethodGet, "/api/tasks/"+task.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/tasks/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_CreateRejections(t *testing.T) {
	env := setupHandlerTestEnv(t)
	_, volunteerToken := env.volunteer(t, "Ana")
	_, ngoToken := env.ngo(t)

	w := env.do(t, http.MethodPost, "/api/tasks", "", map[string]interface{}{"name": "x", "number_of_people_needed": 1})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/tasks", volunteerToken, map[string]interface{}{"name": "x", "number_of_people_needed": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPost, "/api/tasks", ngoToken, map[string]interface{}{"name": "x", "number_of_people_needed": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_ListWithFilters(t *testing.T) {
	env := setupHandlerTestEnv(t)
	ngoID, token := env.ngo(t)
	_, otherToken := env.ngo(t)

	for i := 0; i < 3; i++ {
		createTaskViaAPI(t, env, token, 2)
	}
	createTaskViaAPI(t, env, otherToken, 1)

	w := env.do(t, http.MethodGet, "/api/tasks?limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page dto.TaskListResponse
	decode(t, w, &page)
	assert.Len(t, page.Tasks, 2)
	assert.Equal(t, int64(4), page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/tasks?posted_by=%s", ngoID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &page)
	assert.Equal(t, int64(3), page.TotalCount)

	w = env.do(t, http.MethodGet, "/api/tasks/mine", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &page)
	assert.Equal(t, int64(3), page.TotalCount)

	w = env.do(t, http.MethodGet, "/api/tasks?status=pending", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_UpdateAndDelete(t *testing.T) {
	env := setupHandlerTestEnv(t)
	_, token := env.ngo(t)
	_, otherToken := env.ngo(t)
	task := createTaskViaAPI(t, env, token, 2)
	path := "/api/tasks/" + task.ID.String()

	w := env.do(t, http.MethodPatch, path, otherToken, map[string]interface{}{"name": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPatch, path, token, map[string]interface{}{
		"name":                    "River cleanup",
		"number_of_people_needed": 5,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Task
	decode(t, w, &updated)
	assert.Equal(t, "River cleanup", updated.Name)
	assert.Equal(t, 5, updated.NumberOfPeopleNeeded)
	assert.Equal(t, 5, updated.RemainingPeopleNeeded)

	w = env.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
