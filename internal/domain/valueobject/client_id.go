package valueobject

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// maxExactFloat is the largest integer a float64 represents without loss.
const maxExactFloat = 1 << 53

// ClientID identifies a portfolio client. Identifiers that fail numeric
// coercion become NullClientID, which never matches another identifier.
type ClientID struct {
	value int64
	valid bool
}

// NullClientID is the identifier produced by coercion failures.
var NullClientID = ClientID{}

// NewClientID creates a valid identifier.
func NewClientID(v int64) ClientID {
	return ClientID{value: v, valid: true}
}

// ParseClientID coerces a raw cell or request value into a ClientID.
// Integral floats such as "1234.0" are accepted because spreadsheet exports
// render integer columns that way. Anything else yields NullClientID.
func ParseClientID(raw string) ClientID {
	s := strings.TrimSpace(raw)
	if s == "" {
		return NullClientID
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewClientID(v)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return NullClientID
	}
	if f != math.Trunc(f) || math.Abs(f) > maxExactFloat {
		return NullClientID
	}
	return NewClientID(int64(f))
}

// Int64 returns the numeric identifier. It is 0 for NullClientID.
func (c ClientID) Int64() int64 {
	return c.value
}

// IsNull reports whether coercion failed for this identifier.
func (c ClientID) IsNull() bool {
	return !c.valid
}

// Matches reports whether both identifiers are valid and equal.
func (c ClientID) Matches(other ClientID) bool {
	return c.valid && other.valid && c.value == other.value
}

// String returns the decimal form, or "<null>".
func (c ClientID) String() string {
	if !c.valid {
		return "<null>"
	}
	return strconv.FormatInt(c.value, 10)
}

// MarshalJSON encodes a null identifier as JSON null.
func (c ClientID) MarshalJSON() ([]byte, error) {
	if !c.valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.value)
}

// UnmarshalJSON decodes a number or null.
func (c *ClientID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = NullClientID
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = NewClientID(v)
	return nil
}
