package payload

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes an absent field from an explicit null in partial
// update payloads: absent fields keep the stored value, null clears it.
// Plain pointers cannot express the difference, both decode to nil.
type Optional[T any] struct {
	Set   bool // field was present in the request body
	Null  bool // field was present and explicitly null
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Ptr maps the field onto a nullable column pointer: nil for explicit null.
// Only meaningful when Set is true.
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	value := o.Value
	return &value
}
