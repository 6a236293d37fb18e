package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Shehap111/big-store-server/internal/domain"
)

var ErrInvalidCart = errors.New("invalid cart")

const currency = "usd"

// LineItems translates cart entries into priced line items for the payment
// processor. It is a pure function of (items, language) and performs no I/O.
func LineItems(items []domain.CartItem, language string) ([]domain.LineItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidCart)
	}

	out := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		if item.Price < 0 {
			return nil, fmt.Errorf("%w: negative price for item %d", ErrInvalidCart, item.ID)
		}
		title, ok := item.Title[language]
		if !ok || title == "" {
			return nil, fmt.Errorf("%w: item %d has no title for language %q", ErrInvalidCart, item.ID, language)
		}

		name := title
		image := item.ImageURL
		description := "Regular product"
		if item.IsOffer {
			if len(item.Products) == 0 {
				return nil, fmt.Errorf("%w: offer %d has no constituent products", ErrInvalidCart, item.ID)
			}
			name = fmt.Sprintf("Special Offer: %s (%d Items)", title, len(item.Products))
			image = item.Products[0].ImageURL
			description = fmt.Sprintf("This offer contains %d products.", len(item.Products))
		}

		out = append(out, domain.LineItem{
			Name:        name,
			Description: description,
			ImageURL:    image,
			Currency:    currency,
			UnitAmount:  minorUnits(item.Price),
			Quantity:    item.Quantity,
		})
	}
	return out, nil
}

// minorUnits converts a major-unit price to minor units with a single
// half-up rounding, so float drift like 19.999 settles at 2000, not 1999.
func minorUnits(price float64) int64 {
	return decimal.NewFromFloat(price).Shift(2).Round(0).IntPart()
}
