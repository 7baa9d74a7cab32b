// Package patch provides request fields that remember whether they were sent.
//
// A PUT body is applied field by field: absent fields are left alone, present
// fields overwrite, and an explicit null clears a nullable column. Field[T]
// carries the three states so services never have to guess.
package patch

import (
	"encoding/json"

	dErrors "registrar/pkg/domain-errors"
)

// Field is a JSON value that distinguishes absent, null and set.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Val builds a present, non-null field.
func Val[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// NullField builds an explicit null.
func NullField[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Present reports whether the field carries a non-null value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null
}

// Blank reports whether the field is absent, null, or an empty string.
// Required-field checks treat all three as missing.
func (f Field[T]) Blank() bool {
	if !f.Present() {
		return true
	}
	if s, ok := any(f.Value).(string); ok {
		return s == ""
	}
	return false
}

// Ptr returns the value as a pointer, nil when absent or null.
func (f Field[T]) Ptr() *T {
	if !f.Present() {
		return nil
	}
	v := f.Value
	return &v
}

// Or returns the value or def when the field is absent or null.
func (f Field[T]) Or(def T) T {
	if !f.Present() {
		return def
	}
	return f.Value
}

// Assign writes a set field into a non-nullable destination. An explicit null
// is rejected with "<name> cannot be null".
func Assign[T any](dst *T, f Field[T], name string) error {
	if !f.Set {
		return nil
	}
	if f.Null {
		return dErrors.New(dErrors.CodeBadRequest, name+" cannot be null")
	}
	*dst = f.Value
	return nil
}

// AssignNullable writes a set field into a nullable destination; null clears it.
func AssignNullable[T any](dst **T, f Field[T]) {
	if !f.Set {
		return
	}
	if f.Null {
		*dst = nil
		return
	}
	v := f.Value
	*dst = &v
}

// RequiredField names a field for a sequential required check.
type RequiredField struct {
	Name    string
	Missing bool
}

// Req pairs a field name with its blankness.
func Req[T any](name string, f Field[T]) RequiredField {
	return RequiredField{Name: name, Missing: f.Blank()}
}

// CheckRequired returns "<name> is required" for the first missing field.
func CheckRequired(fields ...RequiredField) error {
	for _, f := range fields {
		if f.Missing {
			return dErrors.Required(f.Name)
		}
	}
	return nil
}
