package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"photo-storefront/internal/metrics"
	"photo-storefront/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContactEmail is the address shown on the contact tab
const ContactEmail = "contato@tssfotografia.com"

// StorefrontService drives the cart/checkout state machine against the
// catalog, the payment gateway and the notification sink
type StorefrontService struct {
	catalog  *Catalog
	assets   AssetResolver
	payments PaymentGateway
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger
	currency string
	now      func() time.Time
}

// NewStorefrontService creates a new storefront service
func NewStorefrontService(
	catalog *Catalog,
	assets AssetResolver,
	payments PaymentGateway,
	notifier Notifier,
	m *metrics.Metrics,
	logger *zap.Logger,
	currency string,
) *StorefrontService {
	return &StorefrontService{
		catalog:  catalog,
		assets:   assets,
		payments: payments,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		currency: currency,
		now:      time.Now,
	}
}

// Catalog returns the catalog the service sells from
func (s *StorefrontService) Catalog() *Catalog {
	return s.catalog
}

// Restore repairs a state loaded from a session: invariants are
// re-established and photos no longer in the catalog leave the cart.
func (s *StorefrontService) Restore(state models.CartState) models.CartState {
	state.CartItems = slices.DeleteFunc(slices.Clone(state.CartItems), func(id string) bool {
		_, err := s.catalog.Get(id)
		return err != nil
	})
	return state.Normalize()
}

// Apply runs one event through the state machine
func (s *StorefrontService) Apply(ctx context.Context, state models.CartState, event models.CartEvent) (models.CartState, error) {
	next, err := models.Reduce(state, event)
	if event != nil {
		s.metrics.ObserveEvent(event.EventName(), err)
	}
	if err != nil {
		s.logger.Debug("Cart event rejected", zap.String("event", eventName(event)), zap.Error(err))
		return state, err
	}
	return next, nil
}

// AddToCart adds the catalog photo with the given id
func (s *StorefrontService) AddToCart(ctx context.Context, state models.CartState, photoID string) (models.CartState, error) {
	photo, err := s.catalog.Get(photoID)
	if err != nil {
		s.metrics.ObserveEvent(models.AddToCart{}.EventName(), err)
		return state, err
	}
	return s.Apply(ctx, state, models.AddToCart{Photo: photo})
}

// RemoveFromCart removes a photo from the cart; unknown ids are a no-op
func (s *StorefrontService) RemoveFromCart(ctx context.Context, state models.CartState, photoID string) (models.CartState, error) {
	return s.Apply(ctx, state, models.RemoveFromCart{PhotoID: photoID})
}

// EnterCheckout opens the checkout view
func (s *StorefrontService) EnterCheckout(ctx context.Context, state models.CartState) (models.CartState, error) {
	return s.Apply(ctx, state, models.EnterCheckout{})
}

// CancelCheckout goes back to browsing with the cart intact
func (s *StorefrontService) CancelCheckout(ctx context.Context, state models.CartState) (models.CartState, error) {
	return s.Apply(ctx, state, models.CancelCheckout{})
}

// UpdateEmail stores the delivery email
func (s *StorefrontService) UpdateEmail(ctx context.Context, state models.CartState, email string) (models.CartState, error) {
	return s.Apply(ctx, state, models.UpdateEmail{Email: email})
}

// SwitchTab parses the tab name and switches to it
func (s *StorefrontService) SwitchTab(ctx context.Context, state models.CartState, name string) (models.CartState, error) {
	tab, err := models.ParseTab(name)
	if err != nil {
		s.metrics.ObserveEvent(models.SwitchTab{}.EventName(), err)
		return state, err
	}
	return s.Apply(ctx, state, models.SwitchTab{Tab: tab})
}

// CompleteOrder charges the payment gateway for the cart, unlocks the
// photos and emits exactly one confirmation. When the charge fails the
// state is returned unchanged.
func (s *StorefrontService) CompleteOrder(ctx context.Context, state models.CartState) (models.CartState, *models.OrderReceipt, error) {
	event := models.CompleteOrder{}
	if !state.CheckoutActive {
		err := fmt.Errorf("%w: order can only be completed during checkout", models.ErrInvalidState)
		s.metrics.ObserveEvent(event.EventName(), err)
		return state, nil, err
	}

	now := s.now()
	photoIDs := slices.Clone(state.CartItems)
	total := s.CartTotal(state)
	orderNumber := models.GenerateOrderNumber(now)

	result, err := s.payments.Charge(ctx, ChargeRequest{
		OrderNumber: orderNumber,
		Amount:      total,
		Currency:    s.currency,
		Email:       state.Email,
		PhotoIDs:    photoIDs,
	})
	if err == nil && !result.Succeeded() {
		err = fmt.Errorf("%w: %s", models.ErrPaymentFailed, paymentFailureReason(result))
	}
	if err != nil {
		s.metrics.ObserveEvent(event.EventName(), err)
		s.logger.Warn("Payment failed", zap.String("order_number", orderNumber), zap.Error(err))
		if !errors.Is(err, models.ErrPaymentFailed) {
			err = fmt.Errorf("%w: %v", models.ErrPaymentFailed, err)
		}
		return state, nil, err
	}

	next, err := s.Apply(ctx, state, event)
	if err != nil {
		return state, nil, err
	}

	receipt := models.OrderReceipt{
		ID:            uuid.NewString(),
		OrderNumber:   orderNumber,
		PhotoIDs:      photoIDs,
		TotalAmount:   total,
		Email:         state.Email,
		PaymentID:     result.PaymentID,
		TransactionID: result.TransactionID,
		Message:       models.ConfirmationMessage,
		CompletedAt:   now,
	}
	s.metrics.ObserveOrder(len(photoIDs), total)

	notifyErr := s.notifier.OrderCompleted(ctx, receipt)
	s.metrics.ObserveNotification(notifyErr)
	if notifyErr != nil {
		s.logger.Error("Failed to send order confirmation",
			zap.String("order_number", orderNumber),
			zap.Error(notifyErr),
		)
	}

	s.logger.Info("Order completed",
		zap.String("order_number", orderNumber),
		zap.Strings("photo_ids", photoIDs),
		zap.String("total", models.FormatPrice(s.currency, total)),
	)

	return next, &receipt, nil
}

// CartItems resolves the cart ids against the catalog, in cart order
func (s *StorefrontService) CartItems(state models.CartState) []models.Photo {
	items := make([]models.Photo, 0, len(state.CartItems))
	for _, id := range state.CartItems {
		photo, err := s.catalog.Get(id)
		if err != nil {
			continue
		}
		items = append(items, photo)
	}
	return items
}

// CartTotal sums the prices of the photos in the cart, in cents
func (s *StorefrontService) CartTotal(state models.CartState) int64 {
	var total int64
	for _, photo := range s.CartItems(state) {
		total += photo.PriceCents
	}
	return total
}

// View builds the render model for a state
func (s *StorefrontService) View(state models.CartState) models.StorefrontView {
	view := models.StorefrontView{
		ActiveTab:    state.ActiveTab,
		Tabs:         models.Tabs,
		Phase:        state.Phase(),
		Photos:       make([]models.PhotoCard, 0, s.catalog.Len()),
		Cart:         []models.CartLine{},
		CartTotal:    models.FormatPrice(s.currency, s.CartTotal(state)),
		ShowCheckout: state.CheckoutActive && state.ActiveTab == models.TabPhotos,
		Email:        state.Email,
		ContactEmail: ContactEmail,
	}

	for _, photo := range s.catalog.All() {
		unlocked := state.IsPurchased(photo.ID)
		view.Photos = append(view.Photos, models.PhotoCard{
			Photo:      photo,
			ImageURL:   s.assets.ImageURL(photo, unlocked),
			Unlocked:   unlocked,
			InCart:     state.InCart(photo.ID),
			PriceLabel: models.FormatPrice(s.currency, photo.PriceCents),
		})
	}

	for _, photo := range s.CartItems(state) {
		view.Cart = append(view.Cart, models.CartLine{
			PhotoID:    photo.ID,
			Name:       photo.Name,
			PriceLabel: models.FormatPrice(s.currency, photo.PriceCents),
		})
	}

	view.ShowCartPanel = len(view.Cart) > 0 && !state.CheckoutActive && state.ActiveTab == models.TabPhotos

	return view
}

func eventName(e models.CartEvent) string {
	if e == nil {
		return "<nil>"
	}
	return e.EventName()
}

func paymentFailureReason(result *PaymentResult) string {
	if result == nil {
		return "no result from gateway"
	}
	if result.ErrorMessage != "" {
		return result.ErrorMessage
	}
	return "status " + result.Status
}
