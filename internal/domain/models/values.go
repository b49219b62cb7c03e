package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", dateLayout}

// Number is a float that also accepts numeric strings, as HTML forms tend to send them.
type Number float64

// UnmarshalJSON accepts 12.5 as well as "12.5".
func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("invalid number %s", data)
	}

	*n = Number(value)
	return nil
}

// Float64 returns the plain float value.
func (n Number) Float64() float64 { return float64(n) }

// Date is a calendar date or timestamp parsed from JSON.
type Date struct {
	time.Time
}

// UnmarshalJSON accepts YYYY-MM-DD or an RFC 3339 timestamp.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}

	d.Time = parsed
	return nil
}

// ParseDate parses the date formats accepted by the API and normalizes to UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// Optional tracks whether a patch attribute was sent at all.
// Set is true when the key was present; Null is true when it was sent as null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present, non-null Optional.
func Some[T any](value T) Optional[T] {
	return Optional[T]{Value: value, Set: true}
}

// UnmarshalJSON marks the attribute present and decodes its value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(bytes.TrimSpace(data)) == "null" {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// Present reports whether the attribute carries a usable value.
func (o Optional[T]) Present() bool { return o.Set && !o.Null }

// ApplyTo overwrites dst when the attribute is present.
func (o Optional[T]) ApplyTo(dst *T) {
	if o.Present() {
		*dst = o.Value
	}
}
