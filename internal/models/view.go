package models

// PhotoCard is a catalog photo as shown in the grid
type PhotoCard struct {
	Photo
	ImageURL   string `json:"image_url"`
	Unlocked   bool   `json:"unlocked"`
	InCart     bool   `json:"in_cart"`
	PriceLabel string `json:"price_label"`
}

// CartLine is one row of the cart panel or checkout summary
type CartLine struct {
	PhotoID    string `json:"photo_id"`
	Name       string `json:"name"`
	PriceLabel string `json:"price_label"`
}

// StorefrontView is everything the panel needs to render one state
type StorefrontView struct {
	ActiveTab     Tab         `json:"active_tab"`
	Tabs          []Tab       `json:"tabs"`
	Phase         CartPhase   `json:"phase"`
	Photos        []PhotoCard `json:"photos"`
	Cart          []CartLine  `json:"cart"`
	CartTotal     string      `json:"cart_total"`
	ShowCartPanel bool        `json:"show_cart_panel"`
	ShowCheckout  bool        `json:"show_checkout"`
	Email         string      `json:"email"`
	ContactEmail  string      `json:"contact_email"`

	// Set per request by the handlers
	Flash     string `json:"flash,omitempty"`
	Error     string `json:"error,omitempty"`
	CSRFToken string `json:"-"`
}
