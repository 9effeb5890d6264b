package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    ProjectStatus
		to      ProjectStatus
		allowed bool
	}{
		{ProjectStatusOpen, ProjectStatusInProgress, true},
		{ProjectStatusOpen, ProjectStatusCancelled, true},
		{ProjectStatusOpen, ProjectStatusCompleted, false},
		{ProjectStatusInProgress, ProjectStatusCompleted, true},
		{ProjectStatusInProgress, ProjectStatusDisputed, true},
		{ProjectStatusInProgress, ProjectStatusOpen, true},
		{ProjectStatusInProgress, ProjectStatusCancelled, false},
		{ProjectStatusDisputed, ProjectStatusCompleted, true},
		{ProjectStatusDisputed, ProjectStatusCancelled, true},
		{ProjectStatusDisputed, ProjectStatusOpen, false},
		{ProjectStatusCompleted, ProjectStatusOpen, false},
		{ProjectStatusCancelled, ProjectStatusOpen, false},
	}

	for _, tc := range cases {
		p := &Project{Status: tc.from}
		assert.Equal(t, tc.allowed, p.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(CategoryTechServices))
	assert.True(t, ValidCategory(CategoryOther))
	assert.False(t, ValidCategory(ProjectCategory("gardening")))
	assert.False(t, ValidCategory(ProjectCategory("")))
}

func TestValidRatingType(t *testing.T) {
	assert.True(t, ValidRatingType(RatingTypeClientToFreelancer))
	assert.True(t, ValidRatingType(RatingTypeFreelancerToClient))
	assert.False(t, ValidRatingType(RatingType("peer-to-peer")))
}
