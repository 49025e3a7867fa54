package shim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mna/chaosvm/types"
)

// elementLike lets tree-walking helpers (getElementById) reach the common
// *Element embedded in every element kind (Canvas, VideoElement, ...)
// without knowing the concrete wrapper type.
type elementLike interface {
	base() *Element
}

// Element is the supplemented DOM element shim (proxy/element.py's
// HtmlElement), backed by an attribute map and a parent/children slice
// instead of a real HTML/XML tree -- spec.md §1's Non-goal excludes real
// HTML/XML parsing, so this is specified at the granularity of observable
// behavior only.
type Element struct {
	tag      string
	attrs    map[string]string
	style    *CSSStyleDeclaration
	parent   *Element
	children []any // *Element (or subtype) or string, in document order
	text     string
}

var (
	_ types.Value    = (*Element)(nil)
	_ types.HasAttrs = (*Element)(nil)
	_ elementLike    = (*Element)(nil)
)

// NewElement returns a bare element for the given tag name.
func NewElement(tag string) *Element {
	return &Element{
		tag:   strings.ToLower(tag),
		attrs: make(map[string]string),
		style: NewCSSStyleDeclaration(),
	}
}

func (e *Element) base() *Element { return e }

func (e *Element) Type() string   { return "HTMLElement" }
func (e *Element) String() string { return fmt.Sprintf("<%s>", e.tag) }

// SetAttribute/RemoveAttribute back both the DOM methods of the same name
// and ordinary JS property assignment (`el.foo = "bar"`), since
// proxy/element.py's __setattr__ routes both through the same attrib map.
func (e *Element) SetAttribute(name, value string) { e.attrs[name] = value }
func (e *Element) RemoveAttribute(name string)     { delete(e.attrs, name) }

func (e *Element) childElements() *types.Array {
	var out []any
	for _, c := range e.children {
		if _, ok := c.(elementLike); ok {
			out = append(out, c)
		}
	}
	return types.NewArray(out...)
}

// AppendChild appends a text run (string) to the element's own text, or
// links another element as a child, per proxy/element.py#appendChild.
func (e *Element) AppendChild(o any) {
	if s, ok := types.IsString(o); ok {
		e.text += s
		return
	}
	if el, ok := o.(elementLike); ok {
		el.base().parent = e
	}
	e.children = append(e.children, o)
}

func (e *Element) RemoveChild(o any) {
	for i, c := range e.children {
		if c == o {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return
		}
	}
}

func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.RemoveChild(any(e))
		e.parent = nil
	}
}

func (e *Element) CloneNode(deep bool) *Element {
	clone := NewElement(e.tag)
	for k, v := range e.attrs {
		clone.attrs[k] = v
	}
	clone.style = e.style.Clone()
	clone.text = e.text
	if deep {
		for _, c := range e.children {
			if el, ok := c.(elementLike); ok {
				cc := el.base().CloneNode(true)
				cc.parent = clone
				clone.children = append(clone.children, cc)
				continue
			}
			clone.children = append(clone.children, c)
		}
	}
	return clone
}

func (e *Element) InsertBefore(node, ref any) any {
	if ref == nil || types.IsNullish(ref) {
		e.AppendChild(node)
		return node
	}
	idx := -1
	for i, c := range e.children {
		if c == ref {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.AppendChild(node)
		return node
	}
	if el, ok := node.(elementLike); ok {
		el.base().parent = e
	}
	e.children = append(e.children[:idx:idx], append([]any{node}, e.children[idx:]...)...)
	return node
}

func (e *Element) ReplaceChild(newEl, oldEl any) any {
	for i, c := range e.children {
		if c == oldEl {
			e.children[i] = newEl
			if el, ok := newEl.(elementLike); ok {
				el.base().parent = e
			}
			return oldEl
		}
	}
	return oldEl
}

// GetBoundingClientRect reads left/top/width/height off the inline style
// map the same way proxy/element.py does: take the first two characters
// of the style string and parse them as an int (e.g. "12px" -> 12), 0 if
// the property was never set.
func (e *Element) GetBoundingClientRect() *types.Object {
	x := styleDigits(e.style.raw("left"))
	y := styleDigits(e.style.raw("top"))
	w := styleDigits(e.style.raw("width"))
	h := styleDigits(e.style.raw("height"))
	o := types.NewObject("DOMRect")
	o.SetAttr("x", int64(x))
	o.SetAttr("left", int64(x))
	o.SetAttr("y", int64(y))
	o.SetAttr("top", int64(y))
	o.SetAttr("width", int64(w))
	o.SetAttr("height", int64(h))
	o.SetAttr("right", int64(x+w))
	o.SetAttr("bottom", int64(y+h))
	return o
}

func (e *Element) offsetLeft() int {
	if v := e.style.raw("left"); v != "" {
		return styleDigits(v)
	}
	return 0
}

func styleDigits(s string) int {
	if s == "" {
		return 0
	}
	if len(s) > 2 {
		s = s[:2]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func (e *Element) InnerHTML() string {
	var b strings.Builder
	b.WriteString(e.text)
	for _, c := range e.children {
		switch x := c.(type) {
		case string:
			b.WriteString(x)
		case elementLike:
			b.WriteString(x.base().OuterHTML())
		}
	}
	return b.String()
}

// SetInnerHTML replaces the element's content with the raw string, a
// black-box stand-in for real fragment parsing (spec.md §1 Non-goal).
func (e *Element) SetInnerHTML(s string) {
	e.children = nil
	e.text = s
}

func (e *Element) OuterHTML() string {
	var attrs strings.Builder
	for k, v := range e.attrs {
		fmt.Fprintf(&attrs, " %s=%q", k, v)
	}
	return fmt.Sprintf("<%s%s>%s</%s>", e.tag, attrs.String(), e.InnerHTML(), e.tag)
}

func (e *Element) GetAttr(name string) (any, error) {
	switch name {
	case "tagName":
		return strings.ToUpper(e.tag), nil
	case "tag":
		return e.tag, nil
	case "style":
		return e.style, nil
	case "children":
		return e.childElements(), nil
	case "appendChild":
		return types.NativeFunc("appendChild", func(_ any, args []any) (any, error) {
			if len(args) > 0 {
				e.AppendChild(args[0])
			}
			return types.Undefined, nil
		}), nil
	case "removeChild":
		return types.NativeFunc("removeChild", func(_ any, args []any) (any, error) {
			if len(args) > 0 {
				e.RemoveChild(args[0])
			}
			return types.Undefined, nil
		}), nil
	case "remove":
		return types.NativeFunc("remove", func(any, []any) (any, error) {
			e.Remove()
			return types.Undefined, nil
		}), nil
	case "cloneNode":
		return types.NativeFunc("cloneNode", func(_ any, args []any) (any, error) {
			deep := len(args) > 0 && types.Truthy(args[0])
			return e.CloneNode(deep), nil
		}), nil
	case "insertBefore":
		return types.NativeFunc("insertBefore", func(_ any, args []any) (any, error) {
			return e.InsertBefore(arg(args, 0), arg(args, 1)), nil
		}), nil
	case "replaceChild":
		return types.NativeFunc("replaceChild", func(_ any, args []any) (any, error) {
			return e.ReplaceChild(arg(args, 0), arg(args, 1)), nil
		}), nil
	case "setAttribute":
		return types.NativeFunc("setAttribute", func(_ any, args []any) (any, error) {
			e.SetAttribute(types.ToPropertyKey(arg(args, 0)), types.ToDisplayString(arg(args, 1)))
			return types.Undefined, nil
		}), nil
	case "removeAttribute":
		return types.NativeFunc("removeAttribute", func(_ any, args []any) (any, error) {
			e.RemoveAttribute(types.ToPropertyKey(arg(args, 0)))
			return types.Undefined, nil
		}), nil
	case "getBoundingClientRect":
		return types.NativeFunc("getBoundingClientRect", func(any, []any) (any, error) {
			return e.GetBoundingClientRect(), nil
		}), nil
	case "offsetLeft":
		return int64(e.offsetLeft()), nil
	case "innerHTML":
		return e.InnerHTML(), nil
	case "outerHTML":
		return e.OuterHTML(), nil
	}

	if v, ok := e.attrs[name]; ok {
		return v, nil
	}
	return e.style.GetAttr(name)
}

func (e *Element) SetAttr(name string, v any) error {
	switch name {
	case "innerHTML":
		e.SetInnerHTML(types.ToDisplayString(v))
		return nil
	case "style":
		return nil
	default:
		e.attrs[name] = types.ToDisplayString(v)
		return nil
	}
}

func (e *Element) DeleteAttr(name string) (bool, error) {
	delete(e.attrs, name)
	_, ok := e.attrs[name]
	return !ok, nil
}

func (e *Element) Has(name string) bool {
	if _, ok := e.attrs[name]; ok {
		return true
	}
	return e.style.Has(name)
}

// CSSStyleDeclaration is the element-level inline style bag
// (proxy/element.py's own empty CSSStyleDeclaration proxy, distinct from
// the fixed-value one getComputedStyle returns): an ordinary string-keyed
// property object.
type CSSStyleDeclaration struct {
	*types.Object
}

func NewCSSStyleDeclaration() *CSSStyleDeclaration {
	return &CSSStyleDeclaration{Object: types.NewObject("CSSStyleDeclaration")}
}

func (s *CSSStyleDeclaration) Clone() *CSSStyleDeclaration {
	clone := NewCSSStyleDeclaration()
	s.Each(func(k string, v any) { clone.SetAttr(k, v) })
	return clone
}

func (s *CSSStyleDeclaration) raw(name string) string {
	v, _ := s.GetAttr(name)
	return types.RawString(v)
}

// ComputedStyle is what window.getComputedStyle returns: a fixed,
// always-green getPropertyValue, per proxy/dom.py's CSSStyleDeclaration.
type ComputedStyle struct {
	*types.Object
}

func NewComputedStyle(*Element) *ComputedStyle {
	return &ComputedStyle{Object: types.NewObject("CSSStyleDeclaration")}
}

func (c *ComputedStyle) GetAttr(name string) (any, error) {
	if name == "getPropertyValue" {
		return types.NativeFunc("getPropertyValue", func(any, []any) (any, error) {
			return "rgb(0, 255, 0)", nil
		}), nil
	}
	return c.Object.GetAttr(name)
}
