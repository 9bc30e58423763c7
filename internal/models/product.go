package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductID is the backend's product identifier. The backend may send it as a
// JSON number or a JSON string; both decode to the same ProductID.
type ProductID string

func (id ProductID) String() string {
	return string(id)
}

func (id *ProductID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ProductID(n.String())
	return nil
}

// MarshalJSON writes canonical integral ids as numbers so persisted carts keep
// the backend's original shape. Anything else, "007" or "+5" included, stays a
// string.
func (id ProductID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Product as served by the catalog backend.
type Product struct {
	ID               ProductID       `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Category         string          `json:"category"`
	ImageName        *string         `json:"imageName"`
	ProductAvailable bool            `json:"productAvailable"`
	ReviewCount      int             `json:"reviewCount"`
	URL              string          `json:"url,omitempty"`
}

// ProductUpdate is the editable part of a product sent by admins.
type ProductUpdate struct {
	ID               ProductID        `json:"id"`
	Name             string           `json:"name" binding:"required"`
	Description      string           `json:"description"`
	Price            *decimal.Decimal `json:"price"`
	Category         string           `json:"category"`
	ProductAvailable bool             `json:"productAvailable"`
}
