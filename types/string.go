package types

import (
	"strconv"
	"strings"
)

// String is the boxed string variant (`new String(...)`, or any raw string
// the VM auto-boxes before a member lookup -- spec.md §4.D's `outcall`
// "auto-box raw strings to boxed String before member lookup"). Plain Go
// strings on the stack are the *unboxed* JS string primitive; both carry
// the same methods via the package-level functions below so callers rarely
// need to care which one they hold.
type String struct {
	s string
}

var (
	_ Value    = (*String)(nil)
	_ HasAttrs = (*String)(nil)
)

// NewString boxes a raw Go string.
func NewString(s string) *String { return &String{s: s} }

func (s *String) Type() string   { return "string" }
func (s *String) String() string { return strconv.Quote(s.s) }

// Raw returns the underlying Go string.
func (s *String) Raw() string { return s.s }

func (s *String) Has(name string) bool {
	_, err := s.GetAttr(name)
	return err == nil
}

func (s *String) SetAttr(string, any) error { return nil }
func (s *String) DeleteAttr(string) (bool, error) {
	return true, nil
}

// GetAttr resolves String.prototype-shaped methods and the "length"
// property, matching proxy/builtins.py's String class.
func (s *String) GetAttr(name string) (any, error) {
	switch name {
	case "length":
		return int64(len(s.s)), nil
	case "split":
		return NativeFunc("split", func(_ any, args []any) (any, error) {
			return StringSplit(s.s, arg(args, 0)), nil
		}), nil
	case "indexOf":
		return NativeFunc("indexOf", func(_ any, args []any) (any, error) {
			return int64(strings.Index(s.s, RawString(arg(args, 0)))), nil
		}), nil
	case "match":
		return NativeFunc("match", func(_ any, args []any) (any, error) {
			re, _ := arg(args, 0).(*RegExp)
			if re == nil {
				return Null, nil
			}
			return re.Match(s.s), nil
		}), nil
	case "replace":
		return NativeFunc("replace", func(_ any, args []any) (any, error) {
			return StringReplace(s.s, arg(args, 0), arg(args, 1)), nil
		}), nil
	case "slice":
		return NativeFunc("slice", func(_ any, args []any) (any, error) {
			start := int(AsIndex(arg(args, 0)))
			if len(args) > 1 {
				end := int(AsIndex(args[1]))
				return sliceString(s.s, start, &end), nil
			}
			return sliceString(s.s, start, nil), nil
		}), nil
	case "substr":
		return NativeFunc("substr", func(_ any, args []any) (any, error) {
			start := int(AsIndex(arg(args, 0)))
			if start < 0 {
				start = len(s.s) + start
				if start < 0 {
					start = 0
				}
			}
			if start > len(s.s) {
				return "", nil
			}
			rest := s.s[start:]
			if len(args) > 1 {
				n := int(AsIndex(args[1]))
				if n < 0 {
					n = 0
				}
				if n < len(rest) {
					rest = rest[:n]
				}
			}
			return rest, nil
		}), nil
	case "toLowerCase":
		return NativeFunc("toLowerCase", func(_ any, _ []any) (any, error) {
			return strings.ToLower(s.s), nil
		}), nil
	case "toUpperCase":
		return NativeFunc("toUpperCase", func(_ any, _ []any) (any, error) {
			return strings.ToUpper(s.s), nil
		}), nil
	case "charCodeAt":
		return NativeFunc("charCodeAt", func(_ any, args []any) (any, error) {
			i := int(AsIndex(arg(args, 0)))
			runes := []rune(s.s)
			if i < 0 || i >= len(runes) {
				return nan(), nil
			}
			return int64(runes[i]), nil
		}), nil
	default:
		return Undefined, nil
	}
}

func sliceString(s string, start int, end *int) string {
	n := len(s)
	if start < 0 {
		start = n + start
	}
	e := n
	if end != nil {
		e = *end
		if e < 0 {
			e = n + e
		}
	}
	if start < 0 {
		start = 0
	}
	if e > n {
		e = n
	}
	if start >= e {
		return ""
	}
	return s[start:e]
}

func nan() float64 { var z float64; return z / z }

// StringSplit implements String.prototype.split for both a plain
// separator string and a RegExp separator.
func StringSplit(s string, sep any) *Array {
	if re, ok := sep.(*RegExp); ok {
		return NewArray(toAnySlice(re.Split(s))...)
	}
	return NewArray(toAnySlice(strings.Split(s, RawString(sep)))...)
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// StringReplace implements String.prototype.replace for a string or RegExp
// pattern and a string or Function replacement.
func StringReplace(s string, pattern, repl any) string {
	replaceOne := func(match string) string {
		if fn, ok := repl.(Callable); ok {
			r, err := fn.Call(nil, []any{match})
			if err == nil {
				return ToDisplayString(r)
			}
		}
		return RawString(repl)
	}
	if re, ok := pattern.(*RegExp); ok {
		return re.ReplaceFunc(s, replaceOne)
	}
	needle := RawString(pattern)
	idx := strings.Index(s, needle)
	if idx < 0 {
		return s
	}
	return s[:idx] + replaceOne(needle) + s[idx+len(needle):]
}

// RawString unwraps a plain string or *String to its Go string value,
// falling back to a best-effort display form for anything else.
func RawString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case *String:
		return x.s
	case nil:
		return ""
	default:
		return ToDisplayString(v)
	}
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return Undefined
}

// FromCharCode implements the String.fromCharCode static, per
// proxy/builtins.py's String.fromCharCode classmethod.
func FromCharCode(codes ...int64) string {
	var b strings.Builder
	for _, c := range codes {
		b.WriteRune(rune(c))
	}
	return b.String()
}
