package openweather

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// decodeObject decodes a JSON object body. A literal null decodes to a nil map.
func decodeObject(body []byte) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return data, nil
}

// dig walks nested objects (string keys) and arrays (int indexes).
// Missing keys, out of range indexes, wrong container types and JSON null all report false.
func dig(v interface{}, path ...interface{}) (interface{}, bool) {
	current := v
	for _, step := range path {
		switch key := step.(type) {
		case string:
			m, ok := current.(map[string]interface{})
			if !ok {
				return nil, false
			}
			current, ok = m[key]
			if !ok {
				return nil, false
			}
		case int:
			arr, ok := current.([]interface{})
			if !ok || key < 0 || key >= len(arr) {
				return nil, false
			}
			current = arr[key]
		default:
			return nil, false
		}
	}

	if current == nil {
		return nil, false
	}
	return current, true
}

// toInt coerces numbers and numeric strings, truncating fractions.
func toInt(v interface{}) (int, bool) {
	switch v.(type) {
	case nil, bool:
		return 0, false
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func toFloat(v interface{}) (float64, bool) {
	switch v.(type) {
	case nil, bool:
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

func intAt(v interface{}, path ...interface{}) *int {
	raw, ok := dig(v, path...)
	if !ok {
		return nil
	}
	n, ok := toInt(raw)
	if !ok {
		return nil
	}
	return &n
}

func floatAt(v interface{}, path ...interface{}) *float64 {
	raw, ok := dig(v, path...)
	if !ok {
		return nil
	}
	f, ok := toFloat(raw)
	if !ok {
		return nil
	}
	return &f
}

func stringAt(v interface{}, path ...interface{}) (string, bool) {
	raw, ok := dig(v, path...)
	if !ok {
		return "", false
	}
	s, ok := raw.(string)
	return s, ok
}

// timeAt reads an epoch-seconds field as UTC; absent or non-numeric values give nil.
func timeAt(v interface{}, path ...interface{}) *time.Time {
	secs := intAt(v, path...)
	if secs == nil {
		return nil
	}
	t := time.Unix(int64(*secs), 0).UTC()
	return &t
}
