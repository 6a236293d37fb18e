package domain

import "time"

type CartStatus string

const (
	CartStatusOpen CartStatus = "open"
	CartStatusPaid CartStatus = "paid"
)

// OfferProduct is one constituent of a bundle offer. Only the first
// constituent's image is shown on the payment page.
type OfferProduct struct {
	ID       int64             `json:"id" bson:"id"`
	Title    map[string]string `json:"title,omitempty" bson:"title,omitempty"`
	ImageURL string            `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
}

// CartItem is a single cart entry. Two variants share the struct: a regular
// product (IsOffer false, Products empty) and a bundle offer (IsOffer true,
// Products holds the constituents). Title maps language code to display name.
type CartItem struct {
	ID       int64             `json:"id" bson:"id"`
	Title    map[string]string `json:"title" bson:"title"`
	ImageURL string            `json:"imageUrl,omitempty" bson:"image_url,omitempty"`
	Price    float64           `json:"price" bson:"price"`
	Quantity int64             `json:"quantity" bson:"quantity"`
	IsOffer  bool              `json:"isOffer,omitempty" bson:"is_offer,omitempty"`
	Products []OfferProduct    `json:"products,omitempty" bson:"products,omitempty"`
}

// CartSnapshot records the items of one checkout attempt at the moment the
// payment session was requested. Products are immutable once written; Status
// moves open -> paid exactly once, and only as part of the order commit.
type CartSnapshot struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"userId" bson:"user_id"`
	Products  []CartItem `json:"products" bson:"products"`
	Status    CartStatus `json:"status" bson:"status"`
	CreatedAt time.Time  `json:"createdAt" bson:"created_at"`
}
