package models

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// StringList is a string slice persisted as a JSON array column
type StringList []string

// Value implements the driver.Valuer interface
func (a StringList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringList) Scan(value interface{}) error {
	if value == nil {
		*a = StringList{}
		return nil
	}
	bytes, err := columnBytes(value)
	if err != nil {
		return err
	}
	if len(bytes) == 0 {
		*a = StringList{}
		return nil
	}
	return json.Unmarshal(bytes, (*[]string)(a))
}

// Contains reports whether s is an element of the list.
func (a StringList) Contains(s string) bool {
	for _, v := range a {
		if v == s {
			return true
		}
	}
	return false
}

// Normalize trims, lowercases and de-duplicates the list, dropping blanks.
// Order of first occurrence is kept.
func (a StringList) Normalize() StringList {
	out := make(StringList, 0, len(a))
	seen := make(map[string]struct{}, len(a))
	for _, v := range a {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Clean trims and lowercases the list, dropping blanks. Repeated entries are
// kept; each repeated recipe cuisine tag counts again when scoring.
func (a StringList) Clean() StringList {
	out := make(StringList, 0, len(a))
	for _, v := range a {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// RecipeTags is the fixed-shape tag blob attached to a recipe.
// A recipe without tags scans into the zero value.
type RecipeTags struct {
	Cuisines  StringList `json:"cuisines,omitempty"`
	Diets     StringList `json:"diets,omitempty"`
	Allergens StringList `json:"allergens,omitempty"`
}

// Value implements the driver.Valuer interface
func (t RecipeTags) Value() (driver.Value, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (t *RecipeTags) Scan(value interface{}) error {
	*t = RecipeTags{}
	if value == nil {
		return nil
	}
	bytes, err := columnBytes(value)
	if err != nil {
		return err
	}
	if len(bytes) == 0 || string(bytes) == "null" {
		return nil
	}
	return json.Unmarshal(bytes, t)
}

func columnBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported JSON column type %T", value)
	}
}
