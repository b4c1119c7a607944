package integrity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SerializationError indicates a payload that cannot be canonicalized,
// e.g. a value the JSON encoder rejects. Canonicalization never produces
// partial output: callers get the full string or this error.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("payload not serializable: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// Canonical serializes payload into a byte-stable string: the same
// structural value always yields the same text regardless of how it was
// built. Mapping keys are sorted recursively, so two payloads that differ
// only in field insertion order hash identically.
func Canonical(payload any) (string, error) {
	plain, err := normalize(payload)
	if err != nil {
		return "", &SerializationError{Err: err}
	}
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(plain); err != nil {
		return "", &SerializationError{Err: err}
	}
	return string(bytes.TrimSpace(buf.Bytes())), nil
}

// normalize reduces v to plain maps, slices, and scalars. encoding/json
// emits map keys in sorted order, so a fully normalized tree encodes
// deterministically.
func normalize(v any) (any, error) {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			nv, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out[k] = nv
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			nv, err := normalize(item)
			if err != nil {
				return nil, err
			}
			out = append(out, nv)
		}
		return out, nil
	case []map[string]string:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, item)
		}
		return normalize(out)
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = item
		}
		return out, nil
	case json.Number, string, float64, int, int64, bool, nil:
		return val, nil
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("normalize: %w", err)
		}
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		var decoded any
		if err := dec.Decode(&decoded); err != nil {
			return nil, fmt.Errorf("normalize: %w", err)
		}
		return normalize(decoded)
	}
}
