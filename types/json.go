package types

import (
	"encoding/json"
	"sort"
)

// JSONStringify renders v as JSON text, matching proxy/builtins.py's
// JSJsonEncoder.default: boxed Strings/Arrays/Proxies unwrap to their plain
// values, Null becomes JSON null, and anything else falls back to Go's own
// encoder for the handful of stack primitives (bool/int64/float64/string).
func JSONStringify(v any) (string, error) {
	native, err := toJSONNative(v)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(native)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func toJSONNative(v any) (any, error) {
	switch x := v.(type) {
	case nil, undefinedType:
		return nil, nil
	case *NullType:
		return nil, nil
	case *String:
		return x.Raw(), nil
	case *Array:
		elems := x.Elems()
		out := make([]any, len(elems))
		for i, e := range elems {
			n, err := toJSONNative(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case *Object:
		keys := x.Keys()
		sort.Strings(keys)
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			val, _ := x.GetAttr(k)
			n, err := toJSONNative(val)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	case interface {
		Keys() []string
		GetAttr(string) (any, error)
	}:
		keys := x.Keys()
		sort.Strings(keys)
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			val, _ := x.GetAttr(k)
			n, err := toJSONNative(val)
			if err != nil {
				return nil, err
			}
			out[k] = n
		}
		return out, nil
	default:
		return x, nil
	}
}
