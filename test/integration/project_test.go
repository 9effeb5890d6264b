package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"gigcampus_backend/internal/models"
	"gigcampus_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_CreateAndGet(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "projowner")

	createBody := map[string]interface{}{
		"title":       "Build a course planner app",
		"description": "We need a small web app that lets students plan their semester schedule.",
		"category":    "tech-services",
		"budget":      350.0,
		"deadline":    time.Now().AddDate(0, 2, 0).Format(time.RFC3339),
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects", token, createBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, "project create failed: %s", bodyStr)

	var created struct {
		ID         string `json:"id"`
		Status     string `json:"status"`
		BudgetType string `json:"budgetType"`
		Priority   string `json:"priority"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	assert.Equal(t, "open", created.Status)
	assert.Equal(t, "fixed", created.BudgetType)
	assert.Equal(t, "medium", created.Priority)

	// Anonymous detail read works and counts a view.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "course planner")

	var project models.Project
	require.NoError(t, tx.First(&project, "id = ?", created.ID).Error)
	assert.Equal(t, 1, project.Views, "anonymous view must increment the counter")

	// The owner's own reads do not count.
	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, tx.First(&project, "id = ?", created.ID).Error)
	assert.Equal(t, 1, project.Views)
}

func TestProject_CreateValidation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginUser(t, ts, tx, "projvalid")

	// Past deadline is rejected.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects", token, map[string]interface{}{
		"title":       "Old deadline project",
		"description": "This description is long enough to pass the length validation.",
		"category":    "tech-services",
		"budget":      100.0,
		"deadline":    time.Now().AddDate(0, 0, -1).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "past deadline must be rejected: %s", bodyStr)

	// Unknown category is rejected.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects", token, map[string]interface{}{
		"title":       "Strange category project",
		"description": "This description is long enough to pass the length validation.",
		"category":    "underwater-basket-weaving",
		"budget":      100.0,
		"deadline":    time.Now().AddDate(0, 1, 0).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "unknown category must be rejected: %s", bodyStr)
}

func TestProject_ListFilters(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, owner := helpers.CreateAndLoginUser(t, ts, tx, "listowner")

	marker := fmt.Sprintf("marker%d", time.Now().UnixNano())
	p1 := helpers.CreateTestProject(t, tx, owner.ID, "Design a poster "+marker)
	helpers.CreateTestProject(t, tx, owner.ID, "Unrelated work item")
	closed := helpers.CreateTestProject(t, tx, owner.ID, "Closed piece "+marker)
	require.NoError(t, tx.Model(&models.Project{}).Where("id = ?", closed.ID).
		Update("status", models.ProjectStatusCompleted).Error)

	// Search filter finds the marked open project; the default listing
	// hides the completed one.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects?search="+marker, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, p1.ID)
	assert.NotContains(t, bodyStr, closed.ID)

	// Explicit status filter surfaces the completed project.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects?search="+marker+"&status=completed", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, closed.ID)
	assert.NotContains(t, bodyStr, p1.ID)

	// userId=me needs a token.
	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects?userId=me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects?userId=me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var listing struct {
		Projects []struct {
			PostedBy string `json:"postedBy"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &listing))
	require.NotEmpty(t, listing.Projects)
	for _, p := range listing.Projects {
		assert.Equal(t, owner.ID, p.PostedBy)
	}

	// Budget range filter.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects?search="+marker+"&budgetMin=500", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, p1.ID)
}

func TestProject_UpdateAndDelete_OwnerOnly(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "updowner")
	strangerToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "updstranger")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Updatable project")

	updateBody := map[string]interface{}{"budget": 500.0}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/projects/"+project.ID, strangerToken, updateBody)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, "non-owner update must be forbidden: %s", bodyStr)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/projects/"+project.ID, ownerToken, updateBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "owner update failed: %s", bodyStr)
	assert.Contains(t, bodyStr, `"budget":500`)

	// Once the project leaves open, edits are rejected.
	helpers.AssignProject(t, tx, project.ID, owner.ID, models.ProjectStatusInProgress)
	res, _ = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/projects/"+project.ID, ownerToken, updateBody)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/projects/"+project.ID, ownerToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode, "delete of non-open project must conflict")

	open := helpers.CreateTestProject(t, tx, owner.ID, "Deletable project")
	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/projects/"+open.ID, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/projects/"+open.ID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects/"+open.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestProject_AcceptBidWorkflow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "acceptowner")
	_, freelancer := helpers.CreateAndLoginUser(t, ts, tx, "acceptfree")
	_, rival := helpers.CreateAndLoginUser(t, ts, tx, "acceptrival")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Accept workflow project")
	winning := helpers.CreateTestBid(t, tx, project.ID, freelancer.ID, 180)
	losing := helpers.CreateTestBid(t, tx, project.ID, rival.ID, 160)

	acceptPath := fmt.Sprintf("/api/v1/projects/%s/accept-bid/%s", project.ID, winning.ID)
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, acceptPath, ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "accept bid failed: %s", bodyStr)
	assert.Contains(t, bodyStr, `"status":"in-progress"`)

	var reloaded models.Project
	require.NoError(t, tx.First(&reloaded, "id = ?", project.ID).Error)
	require.NotNil(t, reloaded.AssignedTo)
	assert.Equal(t, freelancer.ID, *reloaded.AssignedTo)
	assert.NotNil(t, reloaded.AcceptedAt)

	var acceptedBid, rejectedBid models.Bid
	require.NoError(t, tx.First(&acceptedBid, "id = ?", winning.ID).Error)
	assert.Equal(t, models.BidStatusAccepted, acceptedBid.Status)
	assert.True(t, acceptedBid.IsSelected)

	require.NoError(t, tx.First(&rejectedBid, "id = ?", losing.ID).Error)
	assert.Equal(t, models.BidStatusRejected, rejectedBid.Status)

	// A second accept on the no-longer-open project fails.
	res, _ = ts.SendRequest(t, tx, http.MethodPost,
		fmt.Sprintf("/api/v1/projects/%s/accept-bid/%s", project.ID, losing.ID), ownerToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestProject_Complete(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "complowner")
	freelancerToken, freelancer := helpers.CreateAndLoginUser(t, ts, tx, "complfree")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Completable project")

	// Completing an open project is rejected.
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects/"+project.ID+"/complete", ownerToken, nil)
	assert.Equal(t, http.StatusConflict, res.StatusCode)

	helpers.AssignProject(t, tx, project.ID, freelancer.ID, models.ProjectStatusInProgress)

	// Only the owner can complete.
	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects/"+project.ID+"/complete", freelancerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/projects/"+project.ID+"/complete", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "complete failed: %s", bodyStr)
	assert.Contains(t, bodyStr, `"status":"completed"`)

	var reloaded models.Project
	require.NoError(t, tx.First(&reloaded, "id = ?", project.ID).Error)
	assert.NotNil(t, reloaded.CompletedAt)
}
