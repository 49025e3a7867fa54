// Package types implements the dynamic, JS-shaped value model that the
// chaosvm virtual machine operates over: objects with string-keyed
// properties, boxed and unboxed strings, arrays, functions, and the handful
// of built-ins (RegExp, Date, Promise, Symbol) a payload's probes touch.
//
// Unlike a typical Go interpreter's value model, this package does not force
// every stack slot through a single Value interface. A payload's opcode
// stream pushes raw Go bools, int64s, float64s and strings right alongside
// proxy objects, exactly as the reference implementation keeps native
// Python ints/floats/strs on its operand stack next to proxy instances. The
// vm package's stack is therefore typed as []any; this package defines the
// proxy types that appear on it and the free functions used to manipulate
// any stack slot irrespective of its concrete type.
package types

import "fmt"

// Value is implemented by every proxy object on the VM stack (Object,
// Array, String, Function, RegExp, Date, Promise, Symbol, Null,
// ProxyException). Raw bool/int64/float64/string/nil slots are valid stack
// values too but do not implement this interface; use TypeOf and the
// free functions in this package to handle both uniformly.
type Value interface {
	// Type returns the JS typeof-ish name used by error messages and the
	// typeof opcode.
	Type() string
	fmt.Stringer
}

// HasAttrs is implemented by values whose properties can be read and
// written by name. Plain Go strings are handled separately (boxed on
// demand) since they cannot carry methods directly.
type HasAttrs interface {
	Value
	GetAttr(name string) (any, error)
	SetAttr(name string, v any) error
	DeleteAttr(name string) (bool, error)
	Has(name string) bool
}

// Callable is implemented by values that can appear as the callee of a
// call-shaped opcode (outcall, wincall, new, new_attr).
type Callable interface {
	Value
	Call(this any, args []any) (any, error)
}

// Cell is a zero-or-one-element mutable box. Named locals in the VM are
// stored as cells so that a vm_factory closure can alias the parent's live
// value instead of a snapshot (spec.md §9, "Nested VM via closure"). The
// distinction between an empty cell (never assigned) and one holding
// Undefined matters: several opcodes (getobj, chobj) branch on it.
type Cell struct {
	has bool
	v   any
}

func (c *Cell) Type() string   { return "cell" }
func (c *Cell) String() string { return "cell" }

// NewCell returns an empty (unassigned) cell.
func NewCell() *Cell { return &Cell{} }

// NewCellWith returns a cell already holding v.
func NewCellWith(v any) *Cell { return &Cell{has: true, v: v} }

// Get returns the cell's value and whether it has ever been set.
func (c *Cell) Get() (any, bool) { return c.v, c.has }

// Set assigns v to the cell, marking it non-empty.
func (c *Cell) Set(v any) { c.v, c.has = v, true }

// AsIndex resolves a stack slot that is either a raw integer or a
// one-element box wrapping one (as produced by the inst_arr opcode, which
// some handlers reuse as a plain index carrier) down to a plain int.
func AsIndex(v any) int {
	if c, ok := v.(*Cell); ok {
		v, _ = c.Get()
	}
	if ls, ok := v.([]any); ok && len(ls) == 1 {
		v = ls[0]
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

// Group is the 2-element lvalue slot opcodes like group/getattr/setattr
// consume: [object, propertyName]. Spec.md §3 calls this the "group"
// invariant: a group always has length 2 at consumption sites.
type Group struct {
	Object any
	Name   any
}

func (g *Group) Type() string   { return "group" }
func (g *Group) String() string { return "[group]" }

// NullType is the sentinel JS `null` value. Its only instance is Null.
// Reading any property from it through GetAttr raises a TypeError.
type NullType struct{}

// Null is the unique instance of NullType, analogous to the Python
// implementation's NULL.s singleton.
var Null = &NullType{}

func (*NullType) Type() string   { return "object" }
func (*NullType) String() string { return "null" }

// Undefined represents the JS `undefined` value. It is distinct from a Go
// nil interface only in that both compare equal to it; callers should treat
// any untyped nil any value as undefined (an empty cell, a missing
// property, a bare `undefined` opcode push all yield it).
type undefinedType struct{}

func (undefinedType) Type() string   { return "undefined" }
func (undefinedType) String() string { return "undefined" }

// Undefined is pushed by the `undefined` opcode. A Go nil any is treated
// identically by every helper in this package; Undefined exists so code
// that holds a types.Value can still represent it.
var Undefined Value = undefinedType{}

// IsNullish reports whether v is Go nil, Undefined, or Null -- the three
// "nothing here" stack values. GetAttr raises a TypeError on a property
// read from any of them.
func IsNullish(v any) bool {
	if v == nil {
		return true
	}
	switch v.(type) {
	case undefinedType:
		return true
	case *NullType:
		return true
	}
	return false
}

// TypeOf implements the `typeof` opcode's mapping from a stack value's
// concrete Go type to its JS typeof string, per spec.md §4.D.
func TypeOf(v any) string {
	switch x := v.(type) {
	case nil, undefinedType:
		return "undefined"
	case bool:
		return "boolean"
	case int, int64, float64:
		return "number"
	case string:
		return "string"
	case Callable:
		return "function"
	case *Symbol:
		return "symbol"
	case Value:
		return x.Type()
	default:
		return "object"
	}
}
