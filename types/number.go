package types

import "fmt"

// Number is the boxed number proxy (`new Number(...)`), distinct from the
// unboxed float64/int64 primitives that populate most of the VM stack, per
// proxy/builtins.py's Number class.
type Number struct {
	*Object
	v float64
}

var _ Value = (*Number)(nil)

// NewNumber boxes v.
func NewNumber(v float64) *Number { return &Number{Object: NewObject("Number"), v: v} }

func (n *Number) String() string { return fmt.Sprint(n.v) }

// ToFixed implements Number.prototype.toFixed.
func (n *Number) ToFixed(digits int) string {
	return fmt.Sprintf("%.*f", digits, n.v)
}

func (n *Number) GetAttr(name string) (any, error) {
	if name == "toFixed" {
		return NativeFunc("toFixed", func(_ any, args []any) (any, error) {
			digits := 0
			if len(args) > 0 {
				digits = int(AsIndex(args[0]))
			}
			return n.ToFixed(digits), nil
		}), nil
	}
	return n.Object.GetAttr(name)
}
