package homebox

import (
	"bytes"
	"encoding/json"

	"github.com/osse101/HomeboxBridge_Go/internal/domain"
)

// ExtractList pulls a list of objects out of a response body whose shape
// varies between server versions:
//
//   - a bare JSON array is used as is;
//   - for a JSON object, the first priority key holding an array wins,
//     otherwise the first array-valued field in document order.
//
// Elements that are not objects are skipped. The second result is false when
// no list could be found.
func ExtractList(body []byte, priority ...string) ([]domain.Record, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, false
	}

	switch trimmed[0] {
	case '[':
		var list []any
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, false
		}
		return records(list), true

	case '{':
		var obj map[string]any
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, false
		}
		for _, key := range priority {
			if list, ok := obj[key].([]any); ok {
				return records(list), true
			}
		}
		key, ok := firstArrayField(trimmed)
		if !ok {
			return nil, false
		}
		list, _ := obj[key].([]any)
		return records(list), true
	}

	return nil, false
}

// firstArrayField walks the top-level object in document order and returns
// the first key whose value is an array.
func firstArrayField(body []byte) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return "", false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", false
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return "", false
		}
		key, ok := keyTok.(string)
		if !ok {
			return "", false
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return "", false
		}
		value = bytes.TrimSpace(value)
		if len(value) > 0 && value[0] == '[' {
			return key, true
		}
	}
	return "", false
}

func records(list []any) []domain.Record {
	out := make([]domain.Record, 0, len(list))
	for _, el := range list {
		if obj, ok := el.(map[string]any); ok {
			out = append(out, domain.Record(obj))
		}
	}
	return out
}
