package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"gigcampus_backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user inside the test transaction, hashing the
// password first when a raw one was given.
func CreateUser(t *testing.T, tx *gorm.DB, user *models.User) {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		require.NoError(t, err, "failed to hash test password")
		user.PasswordHash = string(hashed)
	}

	if user.Status == "" {
		user.Status = models.UserStatusActive
	}

	require.NoError(t, tx.Create(user).Error, "failed to create test user %s", user.Email)
}

// CreateAndLoginUser creates a user and logs in through the API,
// returning the issued token.
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, username string) (string, *models.User) {
	email := fmt.Sprintf("%s_%d@test.edu", username, time.Now().UnixNano())
	password := "password123"

	user := &models.User{
		Username:     fmt.Sprintf("%s_%d", username, time.Now().UnixNano()),
		Email:        email,
		PasswordHash: password,
		FirstName:    "Test",
		LastName:     "User",
		University:   "Test University",
	}
	CreateUser(t, tx, user)

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/users/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "login must succeed, got: %s", bodyStr)

	var loginResponse struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))
	require.NotEmpty(t, loginResponse.Token)

	return loginResponse.Token, user
}

// CreateTestProject inserts an open project owned by posterID.
func CreateTestProject(t *testing.T, tx *gorm.DB, posterID, title string) models.Project {
	project := models.Project{
		Title:       title,
		Description: "A test project description long enough for validation.",
		Category:    models.CategoryTechServices,
		Budget:      200,
		BudgetType:  models.BudgetTypeFixed,
		Deadline:    time.Now().AddDate(0, 1, 0),
		PostedBy:    posterID,
		Status:      models.ProjectStatusOpen,
		Priority:    models.PriorityMedium,
		IsRemote:    true,
	}
	require.NoError(t, tx.Create(&project).Error, "failed to create test project")
	return project
}

// CreateTestBid inserts a pending bid from userID on projectID.
func CreateTestBid(t *testing.T, tx *gorm.DB, projectID, userID string, amount float64) models.Bid {
	bid := models.Bid{
		ProjectID:    projectID,
		UserID:       userID,
		Amount:       amount,
		Message:      "I can deliver this on time and within budget.",
		DeliveryTime: 7,
		Status:       models.BidStatusPending,
	}
	require.NoError(t, tx.Create(&bid).Error, "failed to create test bid")
	return bid
}

// AssignProject moves a project into in-progress with the given assignee,
// bypassing the accept-bid endpoint. Used to set up rating and payment tests.
func AssignProject(t *testing.T, tx *gorm.DB, projectID, assigneeID string, status models.ProjectStatus) {
	now := time.Now()
	updates := map[string]interface{}{
		"assigned_to": assigneeID,
		"status":      status,
		"accepted_at": &now,
	}
	if status == models.ProjectStatusCompleted {
		updates["completed_at"] = &now
	}
	require.NoError(t, tx.Model(&models.Project{}).Where("id = ?", projectID).Updates(updates).Error)
}
