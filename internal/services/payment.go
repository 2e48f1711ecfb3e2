package services

import (
	"context"
	"fmt"
	"time"

	"photo-storefront/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SimulatedPaymentGateway approves every charge immediately
type SimulatedPaymentGateway struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewSimulatedPaymentGateway creates a new simulated payment gateway
func NewSimulatedPaymentGateway(logger *zap.Logger) *SimulatedPaymentGateway {
	logger.Info("Payment service: using simulated gateway")
	return &SimulatedPaymentGateway{
		logger: logger,
		now:    time.Now,
	}
}

// NewPaymentGateway selects the gateway for the configured provider
func NewPaymentGateway(provider string, logger *zap.Logger) (PaymentGateway, error) {
	switch provider {
	case "", "simulated", "mock":
		return NewSimulatedPaymentGateway(logger), nil
	default:
		return nil, fmt.Errorf("%w: unsupported payment provider %q", models.ErrInvalidInput, provider)
	}
}

// Charge simulates a successful payment
func (s *SimulatedPaymentGateway) Charge(ctx context.Context, req ChargeRequest) (*PaymentResult, error) {
	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", models.ErrInvalidInput)
	}

	now := s.now()
	result := &PaymentResult{
		PaymentID:     "sim_pay_" + uuid.NewString(),
		Status:        PaymentStatusSuccess,
		Amount:        req.Amount,
		TransactionID: fmt.Sprintf("txn_%d", now.UnixNano()),
		ProcessedAt:   now,
	}

	s.logger.Info("Simulated payment processed",
		zap.String("order_number", req.OrderNumber),
		zap.String("amount", models.FormatPrice(req.Currency, req.Amount)),
		zap.String("email", req.Email),
		zap.String("payment_id", result.PaymentID),
	)

	return result, nil
}
