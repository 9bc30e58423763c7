package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is a single-choice enumeration; PaymentNone means nothing is selected.
type PaymentMethod int

const (
	PaymentNone PaymentMethod = iota
	PaymentUPI
	PaymentCard
	PaymentCashOnDelivery
)

// PaymentMethods lists the selectable methods in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentUPI, PaymentCard, PaymentCashOnDelivery}
}

// Label is the name shown to the shopper.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentUPI:
		return "UPI"
	case PaymentCard:
		return "Card"
	case PaymentCashOnDelivery:
		return "Cash on Delivery"
	}
	return ""
}

// WireValue is what the order endpoint expects in the payment field.
func (m PaymentMethod) WireValue() string {
	return strings.ToLower(m.Label())
}

func (m PaymentMethod) String() string {
	if m == PaymentNone {
		return "none"
	}
	return m.Label()
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	if m == PaymentNone {
		return []byte("null"), nil
	}
	return json.Marshal(m.Label())
}

// ParsePaymentMethod accepts a label or wire value, ignoring case, spaces and underscores.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	key := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(s))
	for _, m := range PaymentMethods() {
		if key == strings.ReplaceAll(m.WireValue(), " ", "") {
			return m, nil
		}
	}
	if key == "cod" {
		return PaymentCashOnDelivery, nil
	}
	return PaymentNone, fmt.Errorf("unknown payment method %q", s)
}

// OrderItem is one line of the submitted order.
type OrderItem struct {
	ProductName string      `json:"productname"`
	Quantity    int         `json:"quantity"`
	Price       json.Number `json:"price"`
}

// OrderPayload is composed at submission time and never persisted locally.
type OrderPayload struct {
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	Number       string      `json:"number"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	Landmark     string      `json:"landmark"`
	Pincode      Pincode     `json:"pincode"`
	Total        json.Number `json:"total"`
	Payment      string      `json:"payment"`
	Items        []OrderItem `json:"items"`
	SubmissionID string      `json:"submission_id"`
}

// OrderPlaced describes a successfully submitted order.
type OrderPlaced struct {
	SubmissionID string          `json:"submission_id"`
	ProfileID    string          `json:"profile_id"`
	Total        decimal.Decimal `json:"total"`
	Payment      string          `json:"payment"`
	ItemCount    int             `json:"item_count"`
	PlacedAt     time.Time       `json:"placed_at"`
}
