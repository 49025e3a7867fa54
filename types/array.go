package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Array is the JS array variant: elements are stored under
// integer-stringified keys in an embedded Object, and length is derived as
// the maximum numeric key plus one, per spec.md §4.C.
type Array struct {
	*Object
}

var (
	_ Value    = (*Array)(nil)
	_ HasAttrs = (*Array)(nil)
)

// NewArray returns an array populated with elems, in order.
func NewArray(elems ...any) *Array {
	a := &Array{Object: NewObject("Array")}
	for i, e := range elems {
		a.SetAttr(strconv.Itoa(i), e)
	}
	return a
}

func (a *Array) String() string {
	n := a.Length()
	if n == 0 {
		return "[]"
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		v, _ := a.GetAttr(strconv.Itoa(i))
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Length returns max(numeric key) + 1, or 0 for an empty array.
func (a *Array) Length() int {
	max := -1
	for _, k := range a.Object.Keys() {
		if n, err := strconv.Atoi(k); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

// GetAttr special-cases "length"; everything else goes through the
// embedded Object.
func (a *Array) GetAttr(name string) (any, error) {
	if name == "length" {
		return int64(a.Length()), nil
	}
	return a.Object.GetAttr(name)
}

// SetAttr special-cases "length" truncation/extension per JS semantics:
// setting a smaller length drops trailing elements, setting a larger one
// pads with Undefined.
func (a *Array) SetAttr(name string, v any) error {
	if name == "length" {
		newLen := int(AsIndex(v))
		cur := a.Length()
		for i := newLen; i < cur; i++ {
			a.Object.DeleteAttr(strconv.Itoa(i))
		}
		for i := cur; i < newLen; i++ {
			a.Object.SetAttr(strconv.Itoa(i), Undefined)
		}
		return nil
	}
	return a.Object.SetAttr(name, v)
}

// Elems returns the array's elements 0..Length()-1 as a plain Go slice.
func (a *Array) Elems() []any {
	n := a.Length()
	out := make([]any, n)
	for i := 0; i < n; i++ {
		out[i], _ = a.GetAttr(strconv.Itoa(i))
	}
	return out
}

// Push appends o and returns the new length, per Array.prototype.push.
func (a *Array) Push(o any) int {
	n := a.Length()
	a.SetAttr(strconv.Itoa(n), o)
	return n + 1
}

// Unshift prepends elems, shifting existing elements up.
func (a *Array) Unshift(elems ...any) {
	n := len(elems)
	cur := a.Length()
	for i := cur - 1; i >= 0; i-- {
		v, _ := a.GetAttr(strconv.Itoa(i))
		a.SetAttr(strconv.Itoa(i+n), v)
	}
	for i, e := range elems {
		a.SetAttr(strconv.Itoa(i), e)
	}
}

// PopLeft removes and returns the first element, reporting whether the
// array was non-empty -- the pair the `arr_popleft` opcode pushes.
func (a *Array) PopLeft() (any, bool) {
	n := a.Length()
	if n == 0 {
		return nil, false
	}
	first, _ := a.GetAttr("0")
	for i := 1; i < n; i++ {
		v, _ := a.GetAttr(strconv.Itoa(i))
		a.SetAttr(strconv.Itoa(i-1), v)
	}
	a.SetAttr("length", int64(n-1))
	return first, true
}

// IndexOf returns the index of the first element equal to target, or -1.
func (a *Array) IndexOf(target any) int {
	n := a.Length()
	for i := 0; i < n; i++ {
		v, _ := a.GetAttr(strconv.Itoa(i))
		if LooseEquals(v, target) {
			return i
		}
	}
	return -1
}

// Join concatenates the elements' string forms separated by sep.
func (a *Array) Join(sep string) string {
	elems := a.Elems()
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = ToDisplayString(e)
	}
	return strings.Join(parts, sep)
}

// Slice returns a new Array over [start,end), negative start counting from
// the end as in JS.
func (a *Array) Slice(start int, end *int) *Array {
	n := a.Length()
	e := n
	if end != nil {
		e = *end
	}
	if start < 0 {
		start = n + start
	}
	if start < 0 {
		start = 0
	}
	if e > n {
		e = n
	}
	if start >= e {
		return NewArray()
	}
	out := make([]any, 0, e-start)
	for i := start; i < e; i++ {
		v, _ := a.GetAttr(strconv.Itoa(i))
		out = append(out, v)
	}
	return NewArray(out...)
}

// Reverse reverses the array in place and returns it.
func (a *Array) Reverse() *Array {
	elems := a.Elems()
	for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
		elems[i], elems[j] = elems[j], elems[i]
	}
	for i, e := range elems {
		a.SetAttr(strconv.Itoa(i), e)
	}
	return a
}

// ForEach invokes fn(element) for every element, in order.
func (a *Array) ForEach(fn func(elem any)) {
	for _, e := range a.Elems() {
		fn(e)
	}
}
