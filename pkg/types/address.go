package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ShippingAddress is the delivery destination captured at checkout.
// Stored as a JSON column so the order snapshot keeps the exact values the
// shopper entered, independent of later profile edits.
type ShippingAddress struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// Validate checks the fields the checkout form requires.
func (a ShippingAddress) Validate() error {
	if len(strings.TrimSpace(a.Name)) < 2 {
		return fmt.Errorf("shipping address: name is required")
	}
	if len(strings.TrimSpace(a.Address)) < 5 {
		return fmt.Errorf("shipping address: address is required")
	}
	if len(strings.TrimSpace(a.City)) < 2 {
		return fmt.Errorf("shipping address: city is required")
	}
	if len(strings.TrimSpace(a.PostalCode)) < 4 {
		return fmt.Errorf("shipping address: postal code is required")
	}
	if len(strings.TrimSpace(a.Country)) < 2 {
		return fmt.Errorf("shipping address: country is required")
	}
	if len(strings.TrimSpace(a.Phone)) < 10 {
		return fmt.Errorf("shipping address: valid phone number required")
	}
	return nil
}

// Value marshals the address into a JSON column value.
func (a ShippingAddress) Value() (driver.Value, error) {
	raw, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("shipping address: marshal: %w", err)
	}
	return string(raw), nil
}

// Scan decodes the JSON column back into the struct.
func (a *ShippingAddress) Scan(value interface{}) error {
	if value == nil {
		*a = ShippingAddress{}
		return nil
	}
	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("shipping address: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, a)
}

func toBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
