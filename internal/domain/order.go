package domain

import "time"

// Address is the shipping address as the storefront sent it. The shape is
// owned by the frontend; it is serialized into session metadata and decoded
// back verbatim at confirmation time.
type Address map[string]any

// Order is written exactly once per paid cart. Monetary fields are kept as
// the strings round-tripped through session metadata.
type Order struct {
	ID            string     `json:"id,omitempty" bson:"_id,omitempty"`
	CartID        string     `json:"cartId" bson:"cart_id"`
	UserID        string     `json:"userId" bson:"user_id"`
	Address       Address    `json:"address" bson:"address"`
	Products      []CartItem `json:"products" bson:"products"`
	TotalAmount   string     `json:"totalAmount" bson:"total_amount"`
	ShippingFee   string     `json:"shippingFee" bson:"shipping_fee"`
	OrderDate     time.Time  `json:"orderDate" bson:"order_date"`
	DeliveryDate  time.Time  `json:"deliveryDate" bson:"delivery_date"`
	PaymentMethod string     `json:"paymentMethod" bson:"payment_method"`
	Status        string     `json:"status" bson:"status"`
	OrderStatus   string     `json:"orderStatus" bson:"order_status"`
}
