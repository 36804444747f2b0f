package enhance

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultHeaders are added to every HTTP node, in this order, when the key
// is not already present.
var DefaultHeaders = []struct {
	Key   string
	Value string
}{
	{"User-Agent", "n8n-workflow/1.0"},
	{"Content-Type", "application/json"},
	{"Accept", "application/json, text/plain, */*"},
	{"Connection", "keep-alive"},
}

// NormalizeHeaders returns headers with every missing default key appended.
// Existing keys keep their value and position, including explicit nulls.
// Anything that is not a JSON object is treated as an empty mapping.
func NormalizeHeaders(headers []byte) ([]byte, error) {
	out := []byte("{}")
	if gjson.ValidBytes(headers) && gjson.ParseBytes(headers).IsObject() {
		out = append([]byte(nil), headers...)
	}

	for _, h := range DefaultHeaders {
		if gjson.GetBytes(out, h.Key).Exists() {
			continue
		}
		var err error
		out, err = sjson.SetBytes(out, h.Key, h.Value)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
