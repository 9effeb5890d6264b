package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"gigcampus_backend/internal/models"
	"gigcampus_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_SendWithinProject(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "msgowner")
	bidderToken, bidder := helpers.CreateAndLoginUser(t, ts, tx, "msgbidder")
	outsiderToken, outsider := helpers.CreateAndLoginUser(t, ts, tx, "msgoutsider")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Messaging project")
	helpers.CreateTestBid(t, tx, project.ID, bidder.ID, 100)

	sendBody := map[string]interface{}{
		"projectId":  project.ID,
		"receiverId": bidder.ID,
		"content":    "Thanks for the bid, can you start next week?",
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/messages", ownerToken, sendBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, "message send failed: %s", bodyStr)
	assert.Contains(t, bodyStr, `"type":"text"`)

	// An outsider can neither send nor be a receiver.
	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/messages", outsiderToken, sendBody)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/messages", ownerToken, map[string]interface{}{
		"projectId":  project.ID,
		"receiverId": outsider.ID,
		"content":    "This must not be deliverable.",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// Messaging yourself is rejected.
	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/messages", ownerToken, map[string]interface{}{
		"projectId":  project.ID,
		"receiverId": owner.ID,
		"content":    "Talking to myself here.",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// The bidder replies.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/messages", bidderToken, map[string]interface{}{
		"projectId":  project.ID,
		"receiverId": owner.ID,
		"content":    "Yes, Monday works for me.",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "reply failed: %s", bodyStr)
}

func TestMessage_ReplyThreadValidation(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "replyowner")
	_, bidder := helpers.CreateAndLoginUser(t, ts, tx, "replybidder")

	projectA := helpers.CreateTestProject(t, tx, owner.ID, "Reply project A")
	projectB := helpers.CreateTestProject(t, tx, owner.ID, "Reply project B")
	helpers.CreateTestBid(t, tx, projectA.ID, bidder.ID, 100)
	helpers.CreateTestBid(t, tx, projectB.ID, bidder.ID, 100)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/messages", ownerToken, map[string]interface{}{
		"projectId":  projectA.ID,
		"receiverId": bidder.ID,
		"content":    "Root message of the thread.",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var root struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &root))

	// Replying across projects is rejected.
	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/messages", ownerToken, map[string]interface{}{
		"projectId":  projectB.ID,
		"receiverId": bidder.ID,
		"content":    "Cross-project reply attempt.",
		"replyToId":  root.ID,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// A proper reply works and carries the parent.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/messages", ownerToken, map[string]interface{}{
		"projectId":  projectA.ID,
		"receiverId": bidder.ID,
		"content":    "Replying in the same project.",
		"replyToId":  root.ID,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, "reply failed: %s", bodyStr)
	assert.Contains(t, bodyStr, root.ID)
}

func TestMessage_ReadFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "readowner")
	bidderToken, bidder := helpers.CreateAndLoginUser(t, ts, tx, "readbidder")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Read flow project")
	helpers.CreateTestBid(t, tx, project.ID, bidder.ID, 100)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/messages", ownerToken, map[string]interface{}{
		"projectId":  project.ID,
		"receiverId": bidder.ID,
		"content":    "Unread until you fetch it.",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var sent struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &sent))

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/messages/unread-count", bidderToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"count":1`)

	// The sender cannot mark their own message read.
	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/messages/"+sent.ID+"/read", ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/messages/"+sent.ID+"/read", bidderToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/messages/unread-count", bidderToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"count":0`)

	// mark_read on the project listing clears everything at once.
	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/messages", ownerToken, map[string]interface{}{
		"projectId":  project.ID,
		"receiverId": bidder.ID,
		"content":    "Another unread message.",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodGet,
		"/api/v1/messages/project/"+project.ID+"?mark_read=true", bidderToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/messages/unread-count", bidderToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"count":0`)
}

func TestMessage_EditAndDelete(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "editowner")
	bidderToken, bidder := helpers.CreateAndLoginUser(t, ts, tx, "editbidder")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Edit project")
	helpers.CreateTestBid(t, tx, project.ID, bidder.ID, 100)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/messages", ownerToken, map[string]interface{}{
		"projectId":  project.ID,
		"receiverId": bidder.ID,
		"content":    "Original content with a typo.",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var sent struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &sent))

	// Only the sender can edit.
	res, _ = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/messages/"+sent.ID, bidderToken, map[string]interface{}{
		"content": "Hijacked content.",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/messages/"+sent.ID, ownerToken, map[string]interface{}{
		"content": "Original content without the typo.",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "edit failed: %s", bodyStr)
	assert.Contains(t, bodyStr, "without the typo")
	assert.Contains(t, bodyStr, "editedAt")

	// Soft delete hides the message from listings but keeps the row.
	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/messages/"+sent.ID, ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var row models.Message
	require.NoError(t, tx.First(&row, "id = ?", sent.ID).Error)
	assert.True(t, row.IsDeleted)
	require.NotNil(t, row.DeletedAt)
	assert.WithinDuration(t, time.Now(), *row.DeletedAt, time.Minute)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/messages/project/"+project.ID, ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, sent.ID)

	// Editing a deleted message is rejected.
	res, _ = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/messages/"+sent.ID, ownerToken, map[string]interface{}{
		"content": "Necromancy attempt.",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestMessage_Conversations(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginUser(t, ts, tx, "convowner")
	_, alice := helpers.CreateAndLoginUser(t, ts, tx, "convalice")
	_, bob := helpers.CreateAndLoginUser(t, ts, tx, "convbob")

	project := helpers.CreateTestProject(t, tx, owner.ID, "Conversations project")
	helpers.CreateTestBid(t, tx, project.ID, alice.ID, 100)
	helpers.CreateTestBid(t, tx, project.ID, bob.ID, 110)

	for _, peer := range []string{alice.ID, bob.ID} {
		res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/messages", ownerToken, map[string]interface{}{
			"projectId":  project.ID,
			"receiverId": peer,
			"content":    "Starting a conversation thread here.",
		})
		require.Equal(t, http.StatusCreated, res.StatusCode)
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/messages/conversations", ownerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var convs struct {
		Conversations []json.RawMessage `json:"conversations"`
		Total         int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &convs))
	assert.Equal(t, 2, convs.Total, "one conversation per peer expected: %s", bodyStr)
}
