package data

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"
)

// document is the on-disk shape. Ids are not stored; they are regenerated from array
// position every time a document is loaded.
type document struct {
	Templates []string `json:"templates"`
}

// Decode extracts the ordered template texts from a persisted document.
//
// Anything other than a JSON object whose "templates" key holds an array made only of
// strings yields ok == false. There are no partial results; callers treat a failed decode
// exactly like a missing file.
func Decode(raw string) (items []string, ok bool) {
	// encoding/json would silently substitute U+FFFD, which would rewrite the user's text
	if !utf8.ValidString(raw) {
		return nil, false
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, false
	}
	object, isObject := value.(map[string]any)
	if !isObject {
		return nil, false
	}
	array, isArray := object["templates"].([]any)
	if !isArray {
		return nil, false
	}

	items = make([]string, 0, len(array))
	for _, v := range array {
		s, isString := v.(string)
		if !isString {
			return nil, false
		}
		items = append(items, s)
	}
	return items, true
}

// Encode renders items as a compact {"templates":[...]} document
func Encode(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(document{Templates: items}); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
