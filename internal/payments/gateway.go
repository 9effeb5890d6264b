package payments

import "context"

// Intent statuses as the gateway reports them.
const (
	IntentStatusSucceeded = "succeeded"
	IntentStatusFailed    = "failed"
)

// Intent is the gateway-side handle for a started payment.
type Intent struct {
	ID          string
	ClientToken string
	Amount      float64
	Currency    string
	Status      string
	FailureCode string
}

// Gateway is the external payment processor. The application starts an
// intent here and, on confirmation, retrieves it again to learn the
// outcome. The client never gets to assert its own payment status.
type Gateway interface {
	CreateIntent(ctx context.Context, projectID string, amount float64, currency string) (*Intent, error)
	RetrieveIntent(ctx context.Context, intentID string) (*Intent, error)
}
