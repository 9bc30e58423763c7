package models

import (
	"encoding/json"
	"strings"
)

// Pincode is a numeric string; the backend may also send it as a number.
type Pincode string

func (p *Pincode) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*p = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Pincode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = Pincode(n.String())
	return nil
}

// Address is a shipping address stored by the backend.
type Address struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Number   string  `json:"number" binding:"required"`
	City     string  `json:"city" binding:"required"`
	State    string  `json:"state" binding:"required"`
	Landmark string  `json:"landmark" binding:"required"`
	Pincode  Pincode `json:"pincode" binding:"required,numeric"`
}

// UserDetails prefills the read-only part of the address form.
type UserDetails struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
