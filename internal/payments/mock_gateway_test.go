package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGateway_CreateIntent(t *testing.T) {
	g := NewMockGateway()

	intent, err := g.CreateIntent(context.Background(), "project-1", 150, "EUR")
	require.NoError(t, err)
	assert.Contains(t, intent.ID, "pi_")
	assert.Contains(t, intent.ClientToken, "tok_")
	assert.Equal(t, 150.0, intent.Amount)
	assert.Equal(t, "EUR", intent.Currency)
	assert.Equal(t, IntentStatusSucceeded, intent.Status)

	stored, ok := g.Intent(intent.ID)
	require.True(t, ok)
	assert.Equal(t, intent, stored)

	_, ok = g.Intent("pi_unknown")
	assert.False(t, ok)
}

func TestMockGateway_RetrieveAndResolve(t *testing.T) {
	g := NewMockGateway()

	intent, err := g.CreateIntent(context.Background(), "project-1", 80, "EUR")
	require.NoError(t, err)

	fetched, err := g.RetrieveIntent(context.Background(), intent.ID)
	require.NoError(t, err)
	assert.Equal(t, IntentStatusSucceeded, fetched.Status)

	require.True(t, g.Resolve(intent.ID, IntentStatusFailed, "card_declined"))
	fetched, err = g.RetrieveIntent(context.Background(), intent.ID)
	require.NoError(t, err)
	assert.Equal(t, IntentStatusFailed, fetched.Status)
	assert.Equal(t, "card_declined", fetched.FailureCode)

	// Retrieval hands out a copy, not the stored record.
	fetched.Status = IntentStatusSucceeded
	again, err := g.RetrieveIntent(context.Background(), intent.ID)
	require.NoError(t, err)
	assert.Equal(t, IntentStatusFailed, again.Status)

	_, err = g.RetrieveIntent(context.Background(), "pi_unknown")
	assert.Error(t, err)
	assert.False(t, g.Resolve("pi_unknown", IntentStatusFailed, ""))
}

func TestMockGateway_RejectsNonPositiveAmount(t *testing.T) {
	g := NewMockGateway()

	_, err := g.CreateIntent(context.Background(), "project-1", 0, "EUR")
	assert.Error(t, err)

	_, err = g.CreateIntent(context.Background(), "project-1", -10, "EUR")
	assert.Error(t, err)
}
