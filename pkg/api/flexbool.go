package api

import (
	"bytes"
	"fmt"
)

// FlexBool is a boolean that also accepts 1, 0, "1" and "0" on input.
// It is always written back as a JSON boolean.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", "1", `"1"`:
		*b = true
	case "false", "0", `"0"`:
		*b = false
	default:
		return fmt.Errorf("invalid boolean %s: expected true, false, 0 or 1", data)
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (b FlexBool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}
