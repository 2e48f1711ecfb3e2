package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"photo-storefront/internal/models"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// LogNotifier records order confirmations in the application log
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a notifier that only logs
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// OrderCompleted logs the confirmation
func (n *LogNotifier) OrderCompleted(ctx context.Context, receipt models.OrderReceipt) error {
	n.logger.Info(receipt.Message,
		zap.String("order_id", receipt.ID),
		zap.String("order_number", receipt.OrderNumber),
		zap.Strings("photo_ids", receipt.PhotoIDs),
		zap.Int64("total_amount", receipt.TotalAmount),
		zap.String("email", receipt.Email),
	)
	return nil
}

// Publisher is the subset of *nats.Conn used to publish confirmations
type Publisher interface {
	Publish(subj string, data []byte) error
}

// NATSNotifier publishes one JSON message per completed order
type NATSNotifier struct {
	publisher Publisher
	subject   string
	conn      *nats.Conn
}

// NewNATSNotifier publishes confirmations through an existing publisher
func NewNATSNotifier(publisher Publisher, subject string) *NATSNotifier {
	return &NATSNotifier{
		publisher: publisher,
		subject:   subject,
	}
}

// ConnectNATSNotifier dials the NATS server and returns a notifier that owns
// the connection
func ConnectNATSNotifier(url, subject string, logger *zap.Logger) (*NATSNotifier, error) {
	conn, err := nats.Connect(url,
		nats.Name("photo-storefront"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	n := NewNATSNotifier(conn, subject)
	n.conn = conn
	return n, nil
}

// OrderCompleted publishes the receipt
func (n *NATSNotifier) OrderCompleted(ctx context.Context, receipt models.OrderReceipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}

	if err := n.publisher.Publish(n.subject, data); err != nil {
		return fmt.Errorf("failed to publish order %s: %w", receipt.OrderNumber, err)
	}
	return nil
}

// Close drains the owned connection, if any
func (n *NATSNotifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Drain()
}
