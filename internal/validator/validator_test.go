package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Category string `json:"category" validate:"omitempty,is-category"`
	Score    int    `json:"score" validate:"omitempty,min=1,max=5"`
}

func TestValidator_PassesValidInput(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Email:    "student@uni.edu",
		Category: "tech-services",
		Score:    4,
	})
	assert.NoError(t, err)
}

func TestValidator_ReportsFieldsByJSONName(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{
		Email:    "not-an-email",
		Category: "bad-category",
		Score:    9,
	})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)

	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "category")
	assert.Contains(t, vErr.Errors, "score")
}

func TestValidator_CustomEnumRules(t *testing.T) {
	v := New()

	valid := []string{
		"academic-tutoring", "creative-design", "tech-services", "photography",
		"fitness-training", "language-learning", "event-management",
		"content-writing", "other",
	}
	for _, c := range valid {
		assert.NoError(t, v.Validate(&sampleRequest{Email: "a@b.edu", Category: c}), "category %q must pass", c)
	}

	err := v.Validate(&sampleRequest{Email: "a@b.edu", Category: "underwater"})
	assert.Error(t, err)

	// Empty value passes: required-ness is a separate concern.
	assert.NoError(t, v.Validate(&sampleRequest{Email: "a@b.edu", Category: ""}))
}

func TestValidator_RequiredFields(t *testing.T) {
	v := New()

	err := v.Validate(&sampleRequest{})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "email")
	assert.NotContains(t, vErr.Errors, "category")
}
