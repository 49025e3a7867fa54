package types

import (
	"fmt"
	"math"
)

// ToDisplayString renders any stack value the way JS's implicit
// ToString/string-concatenation coercion would, used by Array.join,
// String.replace, and the `add` opcode's string-coercion path.
func ToDisplayString(v any) string {
	switch x := v.(type) {
	case nil:
		return "undefined"
	case undefinedType:
		return "undefined"
	case *NullType:
		return "null"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case string:
		return x
	case *String:
		return x.Raw()
	case int:
		return fmt.Sprintf("%d", x)
	case int64:
		return fmt.Sprintf("%d", x)
	case float64:
		return formatNumber(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// IsString reports whether v is a raw or boxed string, the check the `add`
// opcode and several shim methods need repeatedly.
func IsString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case *String:
		return x.Raw(), true
	default:
		return "", false
	}
}

// ToNumber coerces v to a float64 the way JS's implicit numeric coercion
// would for the handful of shapes the VM's arithmetic opcodes encounter.
func ToNumber(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float64:
		return x
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		return parseNumber(x)
	case *String:
		return parseNumber(x.Raw())
	case *Number:
		return x.v
	case nil, undefinedType:
		return math.NaN()
	case *NullType:
		return 0
	default:
		return math.NaN()
	}
}

func parseNumber(s string) float64 {
	var f float64
	if _, err := fmt.Sscanf(s, "%g", &f); err != nil {
		return math.NaN()
	}
	return f
}

// LooseEquals implements the `eq` opcode's equality (JS ==-shaped for the
// value kinds this VM actually produces: numbers compare numerically,
// strings textually, everything else by identity/deep value).
func LooseEquals(a, b any) bool {
	if IsNullish(a) && IsNullish(b) {
		return true
	}
	as, aIsStr := IsString(a)
	bs, bIsStr := IsString(b)
	if aIsStr && bIsStr {
		return as == bs
	}
	if isNumeric(a) && isNumeric(b) {
		return ToNumber(a) == ToNumber(b)
	}
	if ab, ok := a.(bool); ok {
		return LooseEquals(boolToNumber(ab), b)
	}
	if bb, ok := b.(bool); ok {
		return LooseEquals(a, boolToNumber(bb))
	}
	return a == b
}

func boolToNumber(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int64, float64:
		return true
	default:
		return false
	}
}

// Truthy implements the VM's truthiness test (`je`'s "if TOS truthy").
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil, undefinedType, *NullType:
		return false
	case bool:
		return x
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	case *String:
		return x.Raw() != ""
	default:
		return true
	}
}

// Signed32 reduces n to the signed 32-bit range, per spec.md §3/§4.D's
// bitwise-result invariant.
func Signed32(n int64) int32 { return int32(uint32(n)) }

// Unsigned32 reduces n to the unsigned 32-bit range, used by `urshift`.
func Unsigned32(n int64) uint32 { return uint32(n) }
