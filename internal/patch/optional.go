// Package patch implements partial updates with tri-state field semantics.
//
// A field in an update payload is either absent (leave the target unchanged),
// explicitly null (clear the target, or reject when the target is required),
// or carries a value (validate, resolve if it is a reference, then assign).
// Updates are collected in a Plan and applied all at once, so a failure in any
// field leaves the target entity untouched.
package patch

import (
	"bytes"
	"encoding/json"
)

type state uint8

const (
	stateAbsent state = iota
	stateNull
	stateValue
)

var jsonNull = []byte("null")

// Optional is a field that may be absent, explicitly null, or set to a value.
// The zero value is absent.
type Optional[T any] struct {
	state state
	value T
}

// Absent returns an Optional that was not supplied.
func Absent[T any]() Optional[T] {
	return Optional[T]{}
}

// Null returns an Optional that was supplied as an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{state: stateNull}
}

// Value returns an Optional holding v.
func Value[T any](v T) Optional[T] {
	return Optional[T]{state: stateValue, value: v}
}

// IsAbsent reports whether the field was not supplied.
func (o Optional[T]) IsAbsent() bool { return o.state == stateAbsent }

// IsNull reports whether the field was supplied as null.
func (o Optional[T]) IsNull() bool { return o.state == stateNull }

// IsPresent reports whether the field was supplied, null or not.
func (o Optional[T]) IsPresent() bool { return o.state != stateAbsent }

// Get returns the value and whether one is held.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.state == stateValue
}

// UnmarshalJSON is only invoked by encoding/json when the key is present,
// which is what separates absent from null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		var zero T
		o.state, o.value = stateNull, zero
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.state, o.value = stateValue, v
	return nil
}

// MarshalJSON encodes an absent or null field as null. Use omitzero on the
// containing struct field to drop absent fields entirely.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.state != stateValue {
		return jsonNull, nil
	}
	return json.Marshal(o.value)
}

// IsZero reports whether the field is absent. It lets encoding/json's omitzero skip it.
func (o Optional[T]) IsZero() bool {
	return o.state == stateAbsent
}
