package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList stores an ordered set of strings (sizes, image URLs) as JSON.
type StringList []string

// Value marshals the list into a JSON column value.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("string list: marshal: %w", err)
	}
	return string(raw), nil
}

// Scan decodes the JSON column back into the list.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("string list: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, l)
}

// Contains reports whether the list holds the exact value.
func (l StringList) Contains(value string) bool {
	for _, candidate := range l {
		if candidate == value {
			return true
		}
	}
	return false
}

// ColorOption is a selectable product color with its swatch hex.
type ColorOption struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// ColorList stores the product's color options as JSON.
type ColorList []ColorOption

// Value marshals the list into a JSON column value.
func (l ColorList) Value() (driver.Value, error) {
	if l == nil {
		l = ColorList{}
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("color list: marshal: %w", err)
	}
	return string(raw), nil
}

// Scan decodes the JSON column back into the list.
func (l *ColorList) Scan(value interface{}) error {
	if value == nil {
		*l = ColorList{}
		return nil
	}
	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("color list: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, l)
}

// Contains reports whether a color with the given name is offered.
func (l ColorList) Contains(name string) bool {
	for _, candidate := range l {
		if candidate.Name == name {
			return true
		}
	}
	return false
}
