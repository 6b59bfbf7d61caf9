package framedata

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

var knownKeyCache sync.Map // reflect.Type -> []string

// knownKeys lists the json object keys a struct type declares through its tags.
func knownKeys(t reflect.Type) []string {
	if v, ok := knownKeyCache.Load(t); ok {
		return v.([]string)
	}
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			keys = append(keys, name)
		}
	}
	knownKeyCache.Store(t, keys)
	return keys
}

// decodeWithExtras decodes data into dst and returns every object key dst does
// not declare, so unknown fields survive an export.
func decodeWithExtras[T any](data []byte, dst *T) (map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, dst); err != nil {
		return nil, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range knownKeys(reflect.TypeOf(*dst)) {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// encodeWithExtras encodes v and folds extra back in. Declared fields win over
// extras of the same name.
func encodeWithExtras[T any](v T, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for k, raw := range extra {
		if _, ok := all[k]; !ok {
			all[k] = raw
		}
	}
	return json.Marshal(all)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func cloneExtras(extra map[string]json.RawMessage) map[string]json.RawMessage {
	if extra == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(extra))
	for k, v := range extra {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}
