package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
)

// Request holds the arguments of one tool invocation: the action name plus
// its action-specific parameters. Key order carries no meaning.
type Request map[string]any

// Key is a canonical, order-independent digest of a Request.
type Key string

// Canonicalize derives the cache key for a request. Requests that differ
// only in key order or in the numeric form of a value (1 vs 1.0) produce
// the same key; any structural difference produces a different one.
//
// The canonical serialization is sorted-key JSON with all numbers widened
// to float64, hashed with SHA-256.
func Canonicalize(req Request) (Key, error) {
	norm, err := normalizeValue(map[string]any(req))
	if err != nil {
		return "", err
	}
	// encoding/json writes map keys in sorted order, which makes the
	// serialization deterministic at every nesting level.
	b, err := json.Marshal(norm)
	if err != nil {
		return "", fmt.Errorf("cache: canonicalize request: %w", err)
	}
	sum := sha256.Sum256(b)
	return Key(hex.EncodeToString(sum[:])), nil
}

// normalizeValue widens numbers to float64 and rebuilds containers so that
// structurally equal values serialize identically regardless of the Go
// types the caller happened to use.
func normalizeValue(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return x, nil
	case string:
		return x, nil
	case float64:
		return x, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("cache: non-numeric value %q", x)
		}
		return f, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			nv, err := normalizeValue(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("cache: unsupported map key type %s", rv.Type().Key())
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			nv, err := normalizeValue(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = nv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cache: unsupported value type %T", v)
	}
}
