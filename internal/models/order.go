package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

// ConfirmationMessage is shown to the buyer once per completed order
const ConfirmationMessage = "Pagamento realizado com sucesso! Fotos liberadas."

// OrderReceipt describes a completed (simulated) purchase
type OrderReceipt struct {
	ID            string    `json:"id"`
	OrderNumber   string    `json:"order_number"`
	PhotoIDs      []string  `json:"photo_ids"`
	TotalAmount   int64     `json:"total_amount"` // Amount in cents
	Email         string    `json:"email"`
	PaymentID     string    `json:"payment_id"`
	TransactionID string    `json:"transaction_id"`
	Message       string    `json:"message"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Order number format: ORD-YYYYMMDD-XXXXXX (e.g., ORD-20240101-123456)
var orderNumberRegex = regexp.MustCompile(`^ORD-\d{8}-\d{6}$`)

// Validate validates the receipt data
func (o *OrderReceipt) Validate() error {
	if o.ID == "" {
		return fmt.Errorf("%w: receipt id is required", ErrInvalidInput)
	}
	if !orderNumberRegex.MatchString(o.OrderNumber) {
		return fmt.Errorf("%w: order number format is invalid", ErrInvalidInput)
	}
	if len(o.PhotoIDs) == 0 {
		return fmt.Errorf("%w: receipt must contain at least one photo", ErrInvalidInput)
	}
	if o.TotalAmount < 0 {
		return fmt.Errorf("%w: total amount cannot be negative", ErrInvalidInput)
	}
	return nil
}

// GenerateOrderNumber generates a human readable order number
func GenerateOrderNumber(now time.Time) string {
	dateStr := now.Format("20060102")

	randomNum, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return fmt.Sprintf("ORD-%s-%06d", dateStr, now.UnixNano()%1000000)
	}

	return fmt.Sprintf("ORD-%s-%06d", dateStr, randomNum.Int64())
}
