package filter

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// UnmarshalJSON accepts string, number, bool and null values. Numbers keep
// their literal decimal form, null and nested values are treated as absent.
func (p *Params) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(Params, len(raw))
	for key, val := range raw {
		dec := json.NewDecoder(bytes.NewReader(val))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		switch t := v.(type) {
		case string:
			out[key] = t
		case json.Number:
			out[key] = t.String()
		case bool:
			out[key] = strconv.FormatBool(t)
		}
	}
	*p = out
	return nil
}
