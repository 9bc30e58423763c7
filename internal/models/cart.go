package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Local storage keys, shared with the browser storefront.
const (
	StorageKeyCartItems = "cartItems"
	StorageKeyToken     = "token"
	StorageKeyUserRole  = "userRole"
)

// LineItem is one product entry in the cart.
type LineItem struct {
	ID       ProductID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    *string         `json:"image"`
	Quantity int             `json:"quantity"`
}

// MarshalJSON keeps the price a JSON number, as the storefront stored it.
func (i LineItem) MarshalJSON() ([]byte, error) {
	type alias LineItem
	return json.Marshal(struct {
		alias
		Price json.Number `json:"price"`
	}{
		alias: alias(i),
		Price: json.Number(i.Price.String()),
	})
}

// Subtotal is price x quantity for the line.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the ordered list of line items, in the order products were first added.
type Cart []LineItem

// Total is recomputed from the line items on every call.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Index returns the position of the item with the given id, or -1.
func (c Cart) Index(id ProductID) int {
	for i, item := range c {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no backing array with c.
func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Without subtracts the quantities in ordered from c. Lines that reach zero
// are dropped; lines ordered does not mention are kept as they are.
func (c Cart) Without(ordered Cart) Cart {
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if i := ordered.Index(item.ID); i >= 0 {
			item.Quantity -= ordered[i].Quantity
		}
		if item.Quantity > 0 {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks the cart invariants: unique ids, quantity >= 1, price >= 0.
func (c Cart) Validate() error {
	seen := make(map[ProductID]struct{}, len(c))
	for _, item := range c {
		if item.ID == "" {
			return errors.New("line item without id")
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("duplicate line item %s", item.ID)
		}
		seen[item.ID] = struct{}{}
		if item.Quantity < 1 {
			return fmt.Errorf("line item %s has quantity %d", item.ID, item.Quantity)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("line item %s has negative price", item.ID)
		}
	}
	return nil
}
