// internal/view/optional.go
package view

import "encoding/json"

// Placeholder is what every missing value formats to.
const Placeholder = "—"

// Optional is a derived value that may be missing because the report
// omitted the section it comes from. The zero value is missing.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// Missing returns the missing sentinel for T.
func Missing[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr turns a nil pointer into Missing and anything else into Some.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return Missing[T]()
	}
	return Some(*p)
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsMissing reports whether the value is the missing sentinel.
func (o Optional[T]) IsMissing() bool {
	return !o.ok
}

// MarshalJSON encodes a missing value as null.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
