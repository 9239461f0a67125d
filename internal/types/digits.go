package types

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Digits holds a numeric identifier such as a phone number or postal code.
// Website forms post these either as JSON numbers or as strings, so both are
// accepted and leading zeros survive.
type Digits string

func (d *Digits) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Digits(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = Digits(n.String())
	return nil
}

func (d Digits) String() string {
	return string(d)
}
