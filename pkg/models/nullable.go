package models

import (
	"encoding/json"
)

// NullableID is a patch field that tells an absent key apart from an explicit null.
// Set is false when the key was missing; a nil Value with Set true clears the column.
type NullableID struct {
	Set   bool
	Value *int64
}

// SetID returns a NullableID carrying id
func SetID(id int64) NullableID {
	return NullableID{Set: true, Value: &id}
}

// ClearID returns a NullableID that writes NULL
func ClearID() NullableID {
	return NullableID{Set: true}
}

func (n *NullableID) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}

	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n NullableID) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// column returns the value to write, nil meaning NULL
func (n NullableID) column() any {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}
