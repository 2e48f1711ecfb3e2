package models

import (
	"fmt"
	"slices"
	"strings"
)

// CartPhase is the coarse state of the purchase flow
type CartPhase string

const (
	PhaseBrowsing      CartPhase = "browsing"
	PhaseCartPopulated CartPhase = "cart_populated"
	PhaseCheckout      CartPhase = "checkout"
)

// CartState represents the storefront state of one browsing session
type CartState struct {
	CartItems      []string `json:"cart_items"`    // Photo IDs in insertion order
	PurchasedIDs   []string `json:"purchased_ids"` // Sorted
	CheckoutActive bool     `json:"checkout_active"`
	CheckoutParked bool     `json:"checkout_parked"`
	Email          string   `json:"email"`
	ActiveTab      Tab      `json:"active_tab"`
}

// NewCartState returns the state of a fresh session
func NewCartState() CartState {
	return CartState{
		CartItems:    []string{},
		PurchasedIDs: []string{},
		ActiveTab:    TabPhotos,
	}
}

// InCart reports whether the photo is in the cart
func (s CartState) InCart(id string) bool {
	return slices.Contains(s.CartItems, id)
}

// IsPurchased reports whether the photo has been unlocked
func (s CartState) IsPurchased(id string) bool {
	_, found := slices.BinarySearch(s.PurchasedIDs, id)
	return found
}

// Phase returns the current phase of the purchase flow
func (s CartState) Phase() CartPhase {
	switch {
	case s.CheckoutActive:
		return PhaseCheckout
	case len(s.CartItems) > 0:
		return PhaseCartPopulated
	default:
		return PhaseBrowsing
	}
}

// Normalize repairs a state decoded from an untrusted source so that every
// invariant holds again.
func (s CartState) Normalize() CartState {
	out := CartState{
		CartItems:      make([]string, 0, len(s.CartItems)),
		PurchasedIDs:   make([]string, 0, len(s.PurchasedIDs)),
		CheckoutActive: s.CheckoutActive,
		CheckoutParked: s.CheckoutParked,
		Email:          s.Email,
		ActiveTab:      s.ActiveTab,
	}

	for _, id := range s.PurchasedIDs {
		if id != "" {
			out.PurchasedIDs = append(out.PurchasedIDs, id)
		}
	}
	slices.Sort(out.PurchasedIDs)
	out.PurchasedIDs = slices.Compact(out.PurchasedIDs)

	for _, id := range s.CartItems {
		if id == "" || slices.Contains(out.CartItems, id) || out.IsPurchased(id) {
			continue
		}
		out.CartItems = append(out.CartItems, id)
	}

	if !out.ActiveTab.valid() {
		out.ActiveTab = TabPhotos
	}
	if len(out.CartItems) == 0 {
		out.CheckoutActive = false
		out.CheckoutParked = false
	}
	if out.ActiveTab != TabPhotos && out.CheckoutActive {
		out.CheckoutActive = false
		out.CheckoutParked = true
	}
	if out.ActiveTab == TabPhotos && out.CheckoutParked {
		out.CheckoutActive = true
		out.CheckoutParked = false
	}

	return out
}

func (s CartState) clone() CartState {
	s.CartItems = slices.Clone(s.CartItems)
	s.PurchasedIDs = slices.Clone(s.PurchasedIDs)
	if s.CartItems == nil {
		s.CartItems = []string{}
	}
	if s.PurchasedIDs == nil {
		s.PurchasedIDs = []string{}
	}
	return s
}

// CartEvent is an input to the storefront state machine
type CartEvent interface {
	EventName() string
	apply(s CartState) (CartState, error)
}

// AddToCart puts a photo into the cart
type AddToCart struct {
	Photo Photo
}

// RemoveFromCart takes a photo out of the cart
type RemoveFromCart struct {
	PhotoID string
}

// EnterCheckout opens the checkout view
type EnterCheckout struct{}

// CancelCheckout returns from checkout to browsing, keeping the cart
type CancelCheckout struct{}

// UpdateEmail sets the email the photos are delivered to
type UpdateEmail struct {
	Email string
}

// CompleteOrder confirms the simulated payment and unlocks the cart
type CompleteOrder struct{}

// SwitchTab changes the visible panel section
type SwitchTab struct {
	Tab Tab
}

func (AddToCart) EventName() string      { return "add_to_cart" }
func (RemoveFromCart) EventName() string { return "remove_from_cart" }
func (EnterCheckout) EventName() string  { return "enter_checkout" }
func (CancelCheckout) EventName() string { return "cancel_checkout" }
func (UpdateEmail) EventName() string    { return "update_email" }
func (CompleteOrder) EventName() string  { return "complete_order" }
func (SwitchTab) EventName() string      { return "switch_tab" }

// Reduce applies an event to a state and returns the resulting state.
// The input state is never modified; on error the input is returned as is.
func Reduce(s CartState, e CartEvent) (CartState, error) {
	if e == nil {
		return s, fmt.Errorf("%w: nil event", ErrInvalidInput)
	}
	next, err := e.apply(s.clone())
	if err != nil {
		return s, err
	}
	return next, nil
}

func (e AddToCart) apply(s CartState) (CartState, error) {
	id := e.Photo.ID
	if id == "" {
		return s, fmt.Errorf("%w: photo id is required", ErrInvalidInput)
	}
	if s.InCart(id) || s.IsPurchased(id) {
		return s, nil
	}
	s.CartItems = append(s.CartItems, id)
	return s, nil
}

func (e RemoveFromCart) apply(s CartState) (CartState, error) {
	s.CartItems = slices.DeleteFunc(s.CartItems, func(id string) bool {
		return id == e.PhotoID
	})
	if len(s.CartItems) == 0 {
		// nothing left to pay for
		s.CheckoutActive = false
		s.CheckoutParked = false
	}
	return s, nil
}

func (EnterCheckout) apply(s CartState) (CartState, error) {
	if len(s.CartItems) == 0 {
		return s, fmt.Errorf("%w: cannot enter checkout with an empty cart", ErrInvalidState)
	}
	if s.ActiveTab != TabPhotos {
		return s, fmt.Errorf("%w: checkout is only available on the %s tab", ErrInvalidState, TabPhotos)
	}
	s.CheckoutActive = true
	return s, nil
}

func (CancelCheckout) apply(s CartState) (CartState, error) {
	s.CheckoutActive = false
	s.CheckoutParked = false
	return s, nil
}

func (e UpdateEmail) apply(s CartState) (CartState, error) {
	s.Email = strings.TrimSpace(e.Email)
	return s, nil
}

func (CompleteOrder) apply(s CartState) (CartState, error) {
	if !s.CheckoutActive {
		return s, fmt.Errorf("%w: order can only be completed during checkout", ErrInvalidState)
	}
	for _, id := range s.CartItems {
		if i, found := slices.BinarySearch(s.PurchasedIDs, id); !found {
			s.PurchasedIDs = slices.Insert(s.PurchasedIDs, i, id)
		}
	}
	s.CartItems = []string{}
	s.CheckoutActive = false
	s.CheckoutParked = false
	return s, nil
}

func (e SwitchTab) apply(s CartState) (CartState, error) {
	if !e.Tab.valid() {
		return s, fmt.Errorf("%w: %q", ErrInvalidTab, e.Tab)
	}
	s.ActiveTab = e.Tab
	switch {
	case e.Tab != TabPhotos && s.CheckoutActive:
		s.CheckoutActive = false
		s.CheckoutParked = true
	case e.Tab == TabPhotos && s.CheckoutParked:
		s.CheckoutActive = true
		s.CheckoutParked = false
	}
	return s, nil
}
