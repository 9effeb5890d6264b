package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"gigcampus_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_RegisterAndLogin(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	email := fmt.Sprintf("register_%d@test.edu", time.Now().UnixNano())
	registerBody := map[string]interface{}{
		"username":   fmt.Sprintf("newuser_%d", time.Now().UnixNano()),
		"email":      email,
		"password":   "password123",
		"firstName":  "Anna",
		"lastName":   "Keller",
		"university": "TU Berlin",
		"skills":     []string{"golang", "react"},
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/register", "", registerBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, "register failed: %s", bodyStr)

	var authResponse struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &authResponse))
	assert.NotEmpty(t, authResponse.Token)
	assert.Equal(t, email, authResponse.User.Email)

	// Duplicate email must be rejected.
	registerBody["username"] = fmt.Sprintf("otheruser_%d", time.Now().UnixNano())
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/register", "", registerBody)
	assert.Equal(t, http.StatusConflict, res.StatusCode, "duplicate email must conflict: %s", bodyStr)

	// Login with the registered credentials.
	loginBody := map[string]interface{}{"email": email, "password": "password123"}
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, "login failed: %s", bodyStr)

	// Wrong password is a 401 with no hint which part was wrong.
	loginBody["password"] = "wrongpass99"
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/login", "", loginBody)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Contains(t, bodyStr, "Invalid email or password")
}

func TestAuth_RegisterRejectsWeakPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"username": fmt.Sprintf("weakpw_%d", time.Now().UnixNano()),
		"email":    fmt.Sprintf("weakpw_%d@test.edu", time.Now().UnixNano()),
		"password": "onlyletters",
	}

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/register", "", registerBody)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "password without digits must be rejected: %s", bodyStr)
}

func TestAuth_ProtectedEndpointRequiresToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/users/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAuth_ChangePassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginUser(t, ts, tx, "pwchange")

	changeBody := map[string]interface{}{
		"currentPassword": "password123",
		"newPassword":     "newpassword456",
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPut, "/api/v1/users/me/password", token, changeBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "change password failed: %s", bodyStr)

	// Old password no longer works, new one does.
	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/login", "", map[string]interface{}{
		"email": user.Email, "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/login", "", map[string]interface{}{
		"email": user.Email, "password": "newpassword456",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Wrong current password is rejected.
	res, _ = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/users/me/password", token, map[string]interface{}{
		"currentPassword": "definitely-wrong1",
		"newPassword":     "anotherpass789",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestUser_ProfileAndStats(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginUser(t, ts, tx, "profileuser")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/users/me", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, user.Email)

	updateBody := map[string]interface{}{
		"bio":    "Computer science student, available weekends.",
		"skills": []string{"python", "sql"},
	}
	res, bodyStr = ts.SendRequest(t, tx, http.MethodPut, "/api/v1/users/me", token, updateBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "profile update failed: %s", bodyStr)
	assert.Contains(t, bodyStr, "available weekends")

	// Public profile never leaks the email.
	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/users/"+user.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotContains(t, bodyStr, user.Email)
	assert.Contains(t, bodyStr, user.Username)

	res, bodyStr = ts.SendRequest(t, tx, http.MethodGet, "/api/v1/users/me/stats", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, `"projectsPosted":0`)
	assert.Contains(t, bodyStr, `"bidsPlaced":0`)
}
