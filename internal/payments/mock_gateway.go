package payments

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockGateway issues local intents without talking to a processor.
// Used in development and in the integration tests. Intents resolve to
// succeeded as soon as they are created; Resolve overrides the outcome
// for a single intent.
type MockGateway struct {
	mu      sync.Mutex
	intents map[string]*Intent
}

func NewMockGateway() *MockGateway {
	return &MockGateway{intents: make(map[string]*Intent)}
}

func (g *MockGateway) CreateIntent(_ context.Context, _ string, amount float64, currency string) (*Intent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("invalid intent amount: %f", amount)
	}

	intent := &Intent{
		ID:          "pi_" + uuid.NewString(),
		ClientToken: "tok_" + uuid.NewString(),
		Amount:      amount,
		Currency:    currency,
		Status:      IntentStatusSucceeded,
	}

	g.mu.Lock()
	g.intents[intent.ID] = intent
	g.mu.Unlock()

	return intent, nil
}

func (g *MockGateway) RetrieveIntent(_ context.Context, intentID string) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	intent, ok := g.intents[intentID]
	if !ok {
		return nil, fmt.Errorf("unknown intent: %s", intentID)
	}
	copied := *intent
	return &copied, nil
}

// Resolve sets the outcome the gateway will report for an intent.
func (g *MockGateway) Resolve(intentID, status, failureCode string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	intent, ok := g.intents[intentID]
	if !ok {
		return false
	}
	intent.Status = status
	intent.FailureCode = failureCode
	return true
}

// Intent returns a previously created intent, for test assertions.
func (g *MockGateway) Intent(id string) (*Intent, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	intent, ok := g.intents[id]
	return intent, ok
}
