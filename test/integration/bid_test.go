package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"gigcampus_backend/internal/models"
	"gigcampus_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBid_CreateRules(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "bidowner")
	freelancerToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "bidfree")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Biddable project")

	bidBody := map[string]interface{}{
		"projectId":    project.ID,
		"amount":       150.0,
		"message":      "Happy to take this on, I have done similar work before.",
		"deliveryTime": 5,
	}

	// The owner cannot bid on their own project.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/bids", ownerToken, bidBody)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "self-bid must be rejected: %s", bodyStr)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/bids", freelancerToken, bidBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, "bid create failed: %s", bodyStr)
	assert.Contains(t, bodyStr, `"status":"pending"`)

	// One bid per user per project.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/bids", freelancerToken, bidBody)
	assert.Equal(t, http.StatusConflict, res.StatusCode, "duplicate bid must conflict: %s", bodyStr)

	// Bidding on a non-open project is rejected.
	closed := helpers.CreateTestProject(t, tx, owner.ID, "Closed for bidding")
	require.NoError(t, tx.Model(&models.Project{}).Where("id = ?", closed.ID).
		Update("status", models.ProjectStatusCancelled).Error)
	bidBody["projectId"] = closed.ID
	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/bids", freelancerToken, bidBody)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestBid_Visibility(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "visowner")
	aliceToken, alice := helpers.CreateAndLoginUser(t, ts, tx, "visalice")
	bobToken, bob := helpers.CreateAndLoginUser(t, ts, tx, "visbob")
	outsiderToken, _ := helpers.CreateAndLoginUser(t, ts, tx, "visoutsider")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Visibility project")
	aliceBid := helpers.CreateTestBid(t, tx, project.ID, alice.ID, 120)
	bobBid := helpers.CreateTestBid(t, tx, project.ID, bob.ID, 140)

	// The owner sees every bid.
	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/bids/project/"+project.ID, ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, aliceBid.ID)
	assert.Contains(t, bodyStr, bobBid.ID)

	// A bidder sees only their own bid.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/bids/project/"+project.ID, aliceToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, aliceBid.ID)
	assert.NotContains(t, bodyStr, bobBid.ID)

	// Uninvolved users get nothing.
	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/bids/project/"+project.ID, outsiderToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Single-bid read follows the same rule.
	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/bids/"+aliceBid.ID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/bids/"+aliceBid.ID, ownerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestBid_GetMineWithStatusFilter(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, owner := helpers.CreateAndLoginUser(t, ts, tx, "mineowner")
	freelancerToken, freelancer := helpers.CreateAndLoginUser(t, ts, tx, "minefree")

	p1 := helpers.CreateTestProject(t, tx, owner.ID, "Mine project one")
	p2 := helpers.CreateTestProject(t, tx, owner.ID, "Mine project two")

	pending := helpers.CreateTestBid(t, tx, p1.ID, freelancer.ID, 100)
	rejected := helpers.CreateTestBid(t, tx, p2.ID, freelancer.ID, 110)
	require.NoError(t, tx.Model(&models.Bid{}).Where("id = ?", rejected.ID).
		Update("status", models.BidStatusRejected).Error)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/bids/my", freelancerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, pending.ID)
	assert.Contains(t, bodyStr, rejected.ID)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/bids/my?status=pending", freelancerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, pending.ID)
	assert.NotContains(t, bodyStr, rejected.ID)
}

func TestBid_UpdateOnlyWhilePending(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, owner := helpers.CreateAndLoginUser(t, ts, tx, "bupowner")
	freelancerToken, freelancer := helpers.CreateAndLoginUser(t, ts, tx, "bupfree")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Bid update project")
	bid := helpers.CreateTestBid(t, tx, project.ID, freelancer.ID, 100)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/bids/"+bid.ID, freelancerToken, map[string]interface{}{
		"amount": 130.0,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "bid update failed: %s", bodyStr)
	assert.Contains(t, bodyStr, `"amount":130`)

	require.NoError(t, tx.Model(&models.Bid{}).Where("id = ?", bid.ID).
		Update("status", models.BidStatusRejected).Error)

	res, _ = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/bids/"+bid.ID, freelancerToken, map[string]interface{}{
		"amount": 140.0,
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, "non-pending bid must not be editable")
}

func TestBid_Withdraw(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "wdowner")
	freelancerToken, freelancer := helpers.CreateAndLoginUser(t, ts, tx, "wdfree")

	// Pending bid: withdraw removes the row entirely.
	project := helpers.CreateTestProject(t, tx, owner.ID, "Withdraw pending project")
	pending := helpers.CreateTestBid(t, tx, project.ID, freelancer.ID, 90)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/bids/"+pending.ID, freelancerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "withdraw failed: %s", bodyStr)

	var count int64
	require.NoError(t, tx.Model(&models.Bid{}).Where("id = ?", pending.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count, "pending bid must be deleted on withdrawal")

	// Accepted bid: withdraw reopens the project.
	project2 := helpers.CreateTestProject(t, tx, owner.ID, "Withdraw accepted project")
	accepted := helpers.CreateTestBid(t, tx, project2.ID, freelancer.ID, 95)

	res, _ = ts.SendRequest(t, tx, http.MethodPost,
		"/api/v1/projects/"+project2.ID+"/accept-bid/"+accepted.ID, ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/bids/"+accepted.ID, freelancerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var withdrawn models.Bid
	require.NoError(t, tx.First(&withdrawn, "id = ?", accepted.ID).Error)
	assert.Equal(t, models.BidStatusWithdrawn, withdrawn.Status)

	var reopened models.Project
	require.NoError(t, tx.First(&reopened, "id = ?", project2.ID).Error)
	assert.Equal(t, models.ProjectStatusOpen, reopened.Status)
	assert.Nil(t, reopened.AssignedTo)
	assert.Nil(t, reopened.AcceptedAt)

	// Someone else's bid cannot be withdrawn.
	project3 := helpers.CreateTestProject(t, tx, owner.ID, "Withdraw foreign project")
	foreign := helpers.CreateTestBid(t, tx, project3.ID, freelancer.ID, 80)
	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/bids/"+foreign.ID, ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// An accepted bid that is no longer the project's live assignment can
// still be withdrawn, but the project must stay exactly as it is.
func TestBid_WithdrawSupersededAcceptedBid(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "supowner")
	freelancerToken, freelancer := helpers.CreateAndLoginUser(t, ts, tx, "supfree")

	// Accepted bid on a completed project: withdrawing keeps the
	// completed status and the assignment record intact.
	project := helpers.CreateTestProject(t, tx, owner.ID, "Superseded completed project")
	bid := helpers.CreateTestBid(t, tx, project.ID, freelancer.ID, 120)

	res, _ := ts.SendRequest(t, tx, http.MethodPost,
		"/api/v1/projects/"+project.ID+"/accept-bid/"+bid.ID, ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res, _ = ts.SendRequest(t, tx, http.MethodPost,
		"/api/v1/projects/"+project.ID+"/complete", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/bids/"+bid.ID, freelancerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var withdrawn models.Bid
	require.NoError(t, tx.First(&withdrawn, "id = ?", bid.ID).Error)
	assert.Equal(t, models.BidStatusWithdrawn, withdrawn.Status)

	var reloaded models.Project
	require.NoError(t, tx.First(&reloaded, "id = ?", project.ID).Error)
	assert.Equal(t, models.ProjectStatusCompleted, reloaded.Status)
	require.NotNil(t, reloaded.AssignedTo)
	assert.Equal(t, freelancer.ID, *reloaded.AssignedTo)

	// Accepted bid whose holder is not the current assignee: the other
	// assignment must not be disturbed.
	_, other := helpers.CreateAndLoginUser(t, ts, tx, "supother")
	project2 := helpers.CreateTestProject(t, tx, owner.ID, "Superseded reassigned project")
	stale := helpers.CreateTestBid(t, tx, project2.ID, freelancer.ID, 110)
	require.NoError(t, tx.Model(&models.Bid{}).Where("id = ?", stale.ID).
		Update("status", models.BidStatusAccepted).Error)
	helpers.AssignProject(t, tx, project2.ID, other.ID, models.ProjectStatusInProgress)

	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/bids/"+stale.ID, freelancerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	require.NoError(t, tx.First(&withdrawn, "id = ?", stale.ID).Error)
	assert.Equal(t, models.BidStatusWithdrawn, withdrawn.Status)

	require.NoError(t, tx.First(&reloaded, "id = ?", project2.ID).Error)
	assert.Equal(t, models.ProjectStatusInProgress, reloaded.Status)
	require.NotNil(t, reloaded.AssignedTo)
	assert.Equal(t, other.ID, *reloaded.AssignedTo)
}

func TestBid_ProjectDetailIncludesBids(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "detowner")
	_, alice := helpers.CreateAndLoginUser(t, ts, tx, "detalice")
	_, bob := helpers.CreateAndLoginUser(t, ts, tx, "detbob")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Detail bids project")
	helpers.CreateTestBid(t, tx, project.ID, alice.ID, 100)
	helpers.CreateTestBid(t, tx, project.ID, bob.ID, 110)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/projects/"+project.ID, ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var detail struct {
		Bids     []json.RawMessage `json:"bids"`
		BidCount int               `json:"bidCount"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &detail))
	assert.Len(t, detail.Bids, 2)
	assert.Equal(t, 2, detail.BidCount)
}
