package dto

import "time"

type CreatePaymentRequest struct {
	ProjectID string `json:"projectId" validate:"required,uuid"`
}

// ConfirmPaymentRequest names the intent to settle. Status and amount
// are fetched from the gateway, never taken from the client.
type ConfirmPaymentRequest struct {
	IntentID string `json:"intentId" validate:"required"`
}

type PaymentResponse struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"projectId"`
	PayerID   string     `json:"payerId"`
	PayeeID   string     `json:"payeeId"`
	Amount    float64    `json:"amount"`
	Currency  string     `json:"currency"`
	Status    string     `json:"status"`
	IntentID  string     `json:"intentId"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type PaymentListResponse struct {
	Payments   []PaymentResponse `json:"payments"`
	Pagination Pagination        `json:"pagination"`
}
