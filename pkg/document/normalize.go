package document

import (
	"encoding/json"
	"time"
)

// Normalize recursively rewrites wire timestamps ({"seconds": s,
// "nanoseconds": n}) into native time.Time values. Native timestamps pass
// through unchanged, so the function is idempotent; every other value is
// recursed structurally and returned with the same shape.
//
// It runs on write payloads before persistence and on stored documents
// before serialization, so a wire timestamp round-trips to a native one.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		return val
	case map[string]any:
		if ts, ok := wireTimestamp(val); ok {
			return ts
		}
		out := make(map[string]any, len(val))
		for k, f := range val {
			out[k] = Normalize(f)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = Normalize(e)
		}
		return out
	default:
		return v
	}
}

// NormalizeMap applies Normalize to a document payload.
func NormalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return Normalize(m).(map[string]any)
}

// wireTimestamp matches the exact wire shape: two fields, both numeric,
// named "seconds" and "nanoseconds". Anything else (extra keys, missing
// keys, non-numeric values) is an ordinary mapping.
func wireTimestamp(m map[string]any) (time.Time, bool) {
	if len(m) != 2 {
		return time.Time{}, false
	}
	secs, ok := asInt64(m["seconds"])
	if !ok {
		return time.Time{}, false
	}
	nanos, ok := asInt64(m["nanoseconds"])
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(secs, nanos).UTC(), true
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}
