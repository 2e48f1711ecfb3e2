package models

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	photo1 = Photo{ID: "1", Name: "Foto 1", ThumbnailPath: "/fotos/foto1_marcada.jpg", OriginalPath: "/fotos/foto1_original.jpg", PriceCents: 1500}
	photo2 = Photo{ID: "2", Name: "Foto 2", ThumbnailPath: "/fotos/foto2_marcada.jpg", OriginalPath: "/fotos/foto2_original.jpg", PriceCents: 2000}
)

func mustReduce(t *testing.T, s CartState, events ...CartEvent) CartState {
	t.Helper()
	var err error
	for _, e := range events {
		s, err = Reduce(s, e)
		require.NoError(t, err, "event %s", e.EventName())
	}
	return s
}

func checkInvariants(t *testing.T, s CartState) {
	t.Helper()
	seen := map[string]bool{}
	for _, id := range s.CartItems {
		assert.False(t, seen[id], "photo %s appears twice in the cart", id)
		seen[id] = true
		assert.False(t, s.IsPurchased(id), "purchased photo %s is in the cart", id)
	}
	if s.CheckoutActive {
		assert.Equal(t, TabPhotos, s.ActiveTab, "checkout active outside the photos tab")
	}
}

func TestNewCartState(t *testing.T) {
	s := NewCartState()

	assert.Empty(t, s.CartItems)
	assert.Empty(t, s.PurchasedIDs)
	assert.False(t, s.CheckoutActive)
	assert.Equal(t, TabPhotos, s.ActiveTab)
	assert.Equal(t, PhaseBrowsing, s.Phase())
}

func TestReduce_AddToCartIsIdempotent(t *testing.T) {
	sequences := [][]Photo{
		{photo1, photo1},
		{photo1, photo2, photo1, photo2},
		{photo2, photo2, photo2, photo1},
	}

	for _, seq := range sequences {
		distinct := map[string]bool{}
		s := NewCartState()
		for _, p := range seq {
			distinct[p.ID] = true
			s = mustReduce(t, s, AddToCart{Photo: p})
			checkInvariants(t, s)
		}
		assert.Len(t, s.CartItems, len(distinct))
	}

	s := mustReduce(t, NewCartState(), AddToCart{Photo: photo1}, AddToCart{Photo: photo1})
	assert.Equal(t, []string{"1"}, s.CartItems)
}

func TestReduce_AddToCartKeepsInsertionOrder(t *testing.T) {
	s := mustReduce(t, NewCartState(), AddToCart{Photo: photo2}, AddToCart{Photo: photo1})

	assert.Equal(t, []string{"2", "1"}, s.CartItems)
	assert.Equal(t, PhaseCartPopulated, s.Phase())
}

func TestReduce_AddToCartRequiresID(t *testing.T) {
	s := NewCartState()

	next, err := Reduce(s, AddToCart{Photo: Photo{Name: "no id"}})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, cmp.Diff(s, next))
}

func TestReduce_RemoveFromCart(t *testing.T) {
	s := mustReduce(t, NewCartState(), AddToCart{Photo: photo1}, AddToCart{Photo: photo2})

	once := mustReduce(t, s, RemoveFromCart{PhotoID: "1"})
	assert.Equal(t, []string{"2"}, once.CartItems)

	twice := mustReduce(t, once, RemoveFromCart{PhotoID: "1"})
	assert.Empty(t, cmp.Diff(once, twice), "removing an absent id must not change state")

	unknown := mustReduce(t, twice, RemoveFromCart{PhotoID: "does-not-exist"})
	assert.Empty(t, cmp.Diff(twice, unknown))
}

func TestReduce_RemovingLastItemLeavesCheckout(t *testing.T) {
	s := mustReduce(t, NewCartState(), AddToCart{Photo: photo1}, EnterCheckout{})
	require.True(t, s.CheckoutActive)

	s = mustReduce(t, s, RemoveFromCart{PhotoID: "1"})

	assert.False(t, s.CheckoutActive)
	assert.Equal(t, PhaseBrowsing, s.Phase())
}

func TestReduce_EnterCheckout(t *testing.T) {
	tests := []struct {
		name    string
		state   CartState
		wantErr error
	}{
		{
			name:    "empty cart is rejected",
			state:   NewCartState(),
			wantErr: ErrInvalidState,
		},
		{
			name:  "populated cart on photos tab",
			state: mustReduce(t, NewCartState(), AddToCart{Photo: photo1}),
		},
		{
			name:    "populated cart on another tab is rejected",
			state:   mustReduce(t, NewCartState(), AddToCart{Photo: photo1}, SwitchTab{Tab: TabAbout}),
			wantErr: ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Reduce(tt.state, EnterCheckout{})
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Empty(t, cmp.Diff(tt.state, next), "failed transition must not change state")
				return
			}
			require.NoError(t, err)
			assert.True(t, next.CheckoutActive)
			assert.Equal(t, PhaseCheckout, next.Phase())
			checkInvariants(t, next)
		})
	}
}

func TestReduce_CompleteOrder(t *testing.T) {
	s := mustReduce(t, NewCartState(),
		AddToCart{Photo: photo2},
		AddToCart{Photo: photo1},
		EnterCheckout{},
		CompleteOrder{},
	)

	assert.Empty(t, s.CartItems)
	assert.Equal(t, []string{"1", "2"}, s.PurchasedIDs)
	assert.False(t, s.CheckoutActive)
	assert.Equal(t, PhaseBrowsing, s.Phase())
}

func TestReduce_CompleteOrderRequiresCheckout(t *testing.T) {
	s := mustReduce(t, NewCartState(), AddToCart{Photo: photo1})

	next, err := Reduce(s, CompleteOrder{})

	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Empty(t, cmp.Diff(s, next))
}

func TestReduce_CompleteOrderUnionsPurchases(t *testing.T) {
	s := mustReduce(t, NewCartState(), AddToCart{Photo: photo2}, EnterCheckout{}, CompleteOrder{})
	s = mustReduce(t, s, AddToCart{Photo: photo1}, EnterCheckout{}, CompleteOrder{})

	assert.Equal(t, []string{"1", "2"}, s.PurchasedIDs)
}

func TestReduce_PurchasedPhotoCannotReturnToCart(t *testing.T) {
	s := mustReduce(t, NewCartState(), AddToCart{Photo: photo1}, EnterCheckout{}, CompleteOrder{})

	next := mustReduce(t, s, AddToCart{Photo: photo1})

	assert.Empty(t, cmp.Diff(s, next))
	assert.False(t, next.InCart("1"))
	assert.True(t, next.IsPurchased("1"))
}

func TestReduce_SinglePhotoPurchaseScenario(t *testing.T) {
	s := NewCartState()

	s = mustReduce(t, s, AddToCart{Photo: photo1})
	assert.Equal(t, []string{"1"}, s.CartItems)

	s = mustReduce(t, s, EnterCheckout{}, CompleteOrder{})

	want := CartState{
		CartItems:    []string{},
		PurchasedIDs: []string{"1"},
		ActiveTab:    TabPhotos,
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_SwitchTabKeepsCart(t *testing.T) {
	s := mustReduce(t, NewCartState(), AddToCart{Photo: photo1})

	about := mustReduce(t, s, SwitchTab{Tab: TabAbout})
	assert.Equal(t, TabAbout, about.ActiveTab)
	assert.Equal(t, []string{"1"}, about.CartItems)

	back := mustReduce(t, about, SwitchTab{Tab: TabPhotos})
	assert.Empty(t, cmp.Diff(s, back))
}

func TestReduce_SwitchTabParksCheckout(t *testing.T) {
	s := mustReduce(t, NewCartState(), AddToCart{Photo: photo1}, UpdateEmail{Email: "ana@example.com"}, EnterCheckout{})

	contact := mustReduce(t, s, SwitchTab{Tab: TabContact})
	assert.False(t, contact.CheckoutActive)
	assert.True(t, contact.CheckoutParked)
	checkInvariants(t, contact)

	_, err := Reduce(contact, CompleteOrder{})
	assert.ErrorIs(t, err, ErrInvalidState)

	back := mustReduce(t, contact, SwitchTab{Tab: TabPhotos})
	assert.Empty(t, cmp.Diff(s, back), "returning to photos must restore checkout")
}

func TestReduce_SwitchTabRejectsUnknownTab(t *testing.T) {
	s := NewCartState()

	next, err := Reduce(s, SwitchTab{Tab: Tab("galeria")})

	assert.ErrorIs(t, err, ErrInvalidTab)
	assert.Equal(t, s, next)
}

func TestReduce_CancelCheckout(t *testing.T) {
	s := mustReduce(t, NewCartState(), AddToCart{Photo: photo1}, EnterCheckout{}, CancelCheckout{})

	assert.False(t, s.CheckoutActive)
	assert.Equal(t, []string{"1"}, s.CartItems)
}

func TestReduce_UpdateEmailIsNotValidated(t *testing.T) {
	s := mustReduce(t, NewCartState(), UpdateEmail{Email: "  not an email  "})

	assert.Equal(t, "not an email", s.Email)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := mustReduce(t, NewCartState(), AddToCart{Photo: photo1}, AddToCart{Photo: photo2})
	snapshot := s.clone()

	_ = mustReduce(t, s, RemoveFromCart{PhotoID: "1"}, EnterCheckout{}, CompleteOrder{})

	assert.Empty(t, cmp.Diff(snapshot, s))
}

func TestReduce_NilEvent(t *testing.T) {
	_, err := Reduce(NewCartState(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCartState_Normalize(t *testing.T) {
	tests := []struct {
		name  string
		input CartState
		want  CartState
	}{
		{
			name:  "zero value becomes a fresh session",
			input: CartState{},
			want:  NewCartState(),
		},
		{
			name: "duplicates and purchased ids are dropped from the cart",
			input: CartState{
				CartItems:    []string{"1", "2", "1", ""},
				PurchasedIDs: []string{"2", "2"},
				ActiveTab:    TabPhotos,
			},
			want: CartState{
				CartItems:    []string{"1"},
				PurchasedIDs: []string{"2"},
				ActiveTab:    TabPhotos,
			},
		},
		{
			name: "checkout outside the photos tab is parked",
			input: CartState{
				CartItems:      []string{"1"},
				CheckoutActive: true,
				ActiveTab:      TabAbout,
			},
			want: CartState{
				CartItems:      []string{"1"},
				PurchasedIDs:   []string{},
				CheckoutParked: true,
				ActiveTab:      TabAbout,
			},
		},
		{
			name: "checkout with an empty cart is cleared",
			input: CartState{
				CheckoutActive: true,
				ActiveTab:      TabPhotos,
			},
			want: NewCartState(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.input.Normalize()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
			checkInvariants(t, got)
		})
	}
}
