package services

import (
	"context"
	"time"

	"photo-storefront/internal/models"
)

// PaymentGateway charges the buyer for an order. The storefront ships with
// a simulated gateway; a real provider plugs in here without touching the
// cart state machine.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*PaymentResult, error)
}

// Notifier receives one confirmation per completed order
type Notifier interface {
	OrderCompleted(ctx context.Context, receipt models.OrderReceipt) error
}

// AssetResolver chooses which image URL a photo card shows
type AssetResolver interface {
	ImageURL(photo models.Photo, unlocked bool) string
}

// ChargeRequest represents a payment request for the photos in the cart
type ChargeRequest struct {
	OrderNumber string   `json:"order_number"`
	Amount      int64    `json:"amount"` // Amount in cents
	Currency    string   `json:"currency"`
	Email       string   `json:"email"`
	PhotoIDs    []string `json:"photo_ids"`
}

// PaymentResult represents the result of a payment processing attempt
type PaymentResult struct {
	PaymentID     string    `json:"payment_id"`
	Status        string    `json:"status"` // "success", "failed", "pending"
	Amount        int64     `json:"amount"` // Amount in cents
	TransactionID string    `json:"transaction_id"`
	ProcessedAt   time.Time `json:"processed_at"`
	ErrorMessage  string    `json:"error_message,omitempty"`
}

// Succeeded reports whether the payment went through
func (r *PaymentResult) Succeeded() bool {
	return r != nil && r.Status == PaymentStatusSuccess
}

const (
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)
