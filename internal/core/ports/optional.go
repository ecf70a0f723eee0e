package ports

import "encoding/json"

// Optional is a tri-state JSON field used by partial updates: a field can be
// absent (leave the stored value untouched), explicitly null (clear it), or
// set to a value. Plain pointers cannot distinguish the first two.
type Optional[T any] struct {
	// Present is true when the field appeared in the payload at all.
	Present bool
	// Valid is true when the field carried a non-null value.
	Valid bool
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Present: true, Valid: true, Value: v}
}

// Null returns an Optional that is present but explicitly null.
func Null[T any]() Optional[T] {
	return Optional[T]{Present: true}
}

// UnmarshalJSON is only invoked for fields present in the payload, so
// Present is always true here; absent fields keep the zero Optional.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}
