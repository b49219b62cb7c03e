package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record is implemented by every document owned by a single farmer account.
type Record interface {
	RecordID() primitive.ObjectID
	Owner() primitive.ObjectID
}

func required(field string) error {
	return fieldError{field: field, reason: "is required"}
}

func nonNegative(field string) error {
	return fieldError{field: field, reason: "must be greater than or equal to 0"}
}

type fieldError struct {
	field  string
	reason string
}

func (e fieldError) Error() string { return e.field + " " + e.reason }

// requireValue rejects an explicit null on a mandatory attribute.
func requireValue[T any](field string, o Optional[T]) error {
	if o.Set && o.Null {
		return required(field)
	}
	return nil
}

func requireNumber(field string, o Optional[Number]) error {
	if err := requireValue(field, o); err != nil {
		return err
	}
	if o.Present() && o.Value < 0 {
		return nonNegative(field)
	}
	return nil
}

func requireText(field string, o Optional[string]) error {
	if o.Set && (o.Null || strings.TrimSpace(o.Value) == "") {
		return required(field)
	}
	return nil
}

// applyText overwrites dst when present; an explicit null clears it.
func applyText(o Optional[string], dst *string) {
	if o.Set {
		*dst = o.Value
	}
}
