package types

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Object is the generic "plain dictionary" variant of the host object
// model (spec.md §4.C, §9 "Dynamic object model"): a (string) -> any
// mapping with no special-cased behavior. Every other proxy type (Array,
// Window, Document, ...) embeds an *Object (or reimplements the same
// GetAttr/SetAttr/DeleteAttr contract) so that dot/bracket property access
// works uniformly regardless of the concrete variant.
//
// Property storage uses dolthub/swiss, the same open-addressing hash map
// the teacher's lang/machine/map.go uses for its language-level Map type,
// generalized here from Value-keyed to string-keyed since every host object
// key is either already a string or an integer stringified by the caller
// (spec.md §3, "Host object ... string or integer keys").
type Object struct {
	class string
	props *swiss.Map[string, any]
}

var (
	_ Value    = (*Object)(nil)
	_ HasAttrs = (*Object)(nil)
)

// NewObject returns an empty Object. class is the string reported by
// Type(), defaulting to "object" for plain objects; DOM/host subtypes pass
// their own class name (e.g. "Window", "Document").
func NewObject(class string) *Object {
	if class == "" {
		class = "object"
	}
	return &Object{class: class, props: swiss.NewMap[string, any](8)}
}

func (o *Object) Type() string   { return o.class }
func (o *Object) String() string { return fmt.Sprintf("[object %s]", o.class) }

// GetAttr returns the object's attribute, or Undefined if absent -- a
// missing property read on a generic object never raises (spec.md §4.C).
func (o *Object) GetAttr(name string) (any, error) {
	if v, ok := o.props.Get(name); ok {
		return v, nil
	}
	return Undefined, nil
}

// SetAttr assigns an attribute, creating it if absent.
func (o *Object) SetAttr(name string, v any) error {
	o.props.Put(name, v)
	return nil
}

// DeleteAttr removes an attribute and reports whether it is now absent,
// matching the `delattr` opcode's "push success flag" contract.
func (o *Object) DeleteAttr(name string) (bool, error) {
	o.props.Delete(name)
	_, stillThere := o.props.Get(name)
	return !stillThere, nil
}

// Has reports whether name is an own property, backing the `contains`
// opcode's "in" semantics for plain objects.
func (o *Object) Has(name string) bool {
	_, ok := o.props.Get(name)
	return ok
}

// Keys returns the object's own property names, used by JSON.stringify and
// the supplemented for-in style enumeration helpers.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.props.Count())
	o.props.Iter(func(k string, _ any) bool {
		keys = append(keys, k)
		return false
	})
	return keys
}

// Each calls fn for every own property; iteration order is unspecified, as
// with a real JS object's non-integer keys under spec.md's fingerprinting
// use case (no payload observed here depends on enumeration order).
func (o *Object) Each(fn func(key string, v any)) {
	o.props.Iter(func(k string, v any) bool {
		fn(k, v)
		return false
	})
}

// GetAttr / SetAttr / DeleteAttr / Has are the contract every other host
// object variant (Window, Document, Navigator, ...) either delegates to an
// embedded *Object for, or implements directly when it needs bespoke
// behavior (Array's integer-keyed length, String's boxed methods, NULL's
// always-raise).
func GetAttr(v any, name string) (any, error) {
	switch x := v.(type) {
	case nil, undefinedType:
		return nil, &TypeError{Msg: fmt.Sprintf("cannot read properties of undefined (reading '%s')", name)}
	case *NullType:
		return nil, &TypeError{Msg: fmt.Sprintf("cannot read properties of null (reading '%s')", name)}
	case string:
		return GetAttr(NewString(x), name)
	case HasAttrs:
		return x.GetAttr(name)
	default:
		return Undefined, nil
	}
}

// SetAttr mirrors GetAttr's dispatch for the `setattr` opcode.
func SetAttr(v any, name string, val any) error {
	switch x := v.(type) {
	case nil, undefinedType:
		return &TypeError{Msg: fmt.Sprintf("cannot set properties of undefined (setting '%s')", name)}
	case *NullType:
		return &TypeError{Msg: fmt.Sprintf("cannot set properties of null (setting '%s')", name)}
	case HasAttrs:
		return x.SetAttr(name, val)
	default:
		return nil
	}
}

// DeleteAttr mirrors GetAttr's dispatch for the `delattr` opcode.
func DeleteAttr(v any, name string) (bool, error) {
	switch x := v.(type) {
	case nil, undefinedType, *NullType:
		return false, &TypeError{Msg: fmt.Sprintf("cannot delete properties of %s", TypeOf(v))}
	case HasAttrs:
		return x.DeleteAttr(name)
	default:
		return true, nil
	}
}

// Contains implements the `contains` ("in") opcode for any right-hand
// operand shape the payload might use.
func Contains(name any, v any) bool {
	key := ToPropertyKey(name)
	switch x := v.(type) {
	case HasAttrs:
		return x.Has(key)
	default:
		return false
	}
}

// ToPropertyKey stringifies a property key the way JS coerces object keys:
// integers are stringified, everything else uses its natural string form.
func ToPropertyKey(k any) string {
	switch x := k.(type) {
	case string:
		return x
	case *String:
		return x.Raw()
	case int:
		return fmt.Sprintf("%d", x)
	case int64:
		return fmt.Sprintf("%d", x)
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprint(k)
	}
}
