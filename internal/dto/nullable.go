package dto

import (
	"encoding/json"
	"time"
)

// NullableTime distinguishes an absent JSON field from an explicit null.
// Set is true whenever the field appeared in the payload; Value is nil
// when the payload carried null.
type NullableTime struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON is only invoked when the field is present, which is
// what lets Set track presence.
func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	n.Value = &t
	return nil
}

func (n NullableTime) MarshalJSON() ([]byte, error) {
	if !n.Set || n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
