package domain

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// SessionMetadata is attached to the payment session at creation and echoed
// back by the processor at confirmation. It is the only channel through
// which a confirmation call recovers the purchase context, so every field
// is required.
type SessionMetadata struct {
	CartID      string
	Address     string // JSON-serialized Address
	TotalAmount string
	ShippingFee string
	UserID      string
}

// ToMap flattens the metadata for the processor, which stores string pairs.
func (m SessionMetadata) ToMap() map[string]string {
	return map[string]string{
		"cartId":      m.CartID,
		"address":     m.Address,
		"totalAmount": m.TotalAmount,
		"shippingFee": m.ShippingFee,
		"userId":      m.UserID,
	}
}

// MetadataFromMap is the inverse of ToMap. Missing keys come back as empty
// strings; completeness is checked by the fulfillment service.
func MetadataFromMap(m map[string]string) SessionMetadata {
	return SessionMetadata{
		CartID:      m["cartId"],
		Address:     m["address"],
		TotalAmount: m["totalAmount"],
		ShippingFee: m["shippingFee"],
		UserID:      m["userId"],
	}
}

// Complete reports whether every required metadata field is present.
func (m SessionMetadata) Complete() bool {
	return m.CartID != "" && m.Address != "" && m.TotalAmount != "" &&
		m.ShippingFee != "" && m.UserID != ""
}

// PaymentSession is this system's read-only view of the processor-owned
// session object.
type PaymentSession struct {
	ID       string
	Status   PaymentStatus
	Metadata SessionMetadata
}

// LineItem is a priced, named item ready for submission to the payment
// processor. UnitAmount is in currency minor units.
type LineItem struct {
	Name        string
	Description string
	ImageURL    string
	Currency    string
	UnitAmount  int64
	Quantity    int64
}
