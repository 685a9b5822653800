// Package optional models patch fields that can be left out, explicitly
// cleared, or set to a value.
package optional

import (
	"bytes"
	"encoding/json"
)

type state uint8

const (
	unset state = iota
	cleared
	present
)

// Field holds one of three states: Unset (the zero value), Clear, or a value.
// When decoded from JSON a missing key stays Unset, null becomes Clear and
// anything else becomes a value.
type Field[T any] struct {
	state state
	value T
}

func Unset[T any]() Field[T] {
	return Field[T]{}
}

func Clear[T any]() Field[T] {
	return Field[T]{state: cleared}
}

func Of[T any](v T) Field[T] {
	return Field[T]{state: present, value: v}
}

// IsSet reports whether the field was supplied at all, cleared or not.
func (f Field[T]) IsSet() bool {
	return f.state != unset
}

func (f Field[T]) IsClear() bool {
	return f.state == cleared
}

// Get returns the value and true when the field carries a value.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == present
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Clear[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Of(v)
	return nil
}

// MarshalJSON writes null for both Unset and Clear.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.state != present {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
