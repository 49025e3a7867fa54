// Package shim implements the host/browser environment a payload's
// bytecode observes as `window` and the objects reachable from it
// (spec.md §4.C). Every value here is built from fixed, hardcoded data --
// there is no real DOM, network stack, or GPU behind it, matching
// proxy/dom.py and proxy/element.py's own "black box" fixtures.
package shim

import (
	"fmt"

	"github.com/mna/chaosvm/types"
)

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return types.Undefined
}

// listenerEntry is one addEventListener registration.
type listenerEntry struct {
	fn         types.Callable
	useCapture bool
}

// eventTarget is the mixin proxy/dom.py's EventTarget provides to both
// Document and Window: a registry of (listener, useCapture) pairs per
// event name, plus a fallback so reading an event name off the object
// itself returns its first registered listener (EventTarget.__getattribute__).
type eventTarget struct {
	listeners map[string][]listenerEntry
}

func newEventTarget() eventTarget {
	return eventTarget{listeners: make(map[string][]listenerEntry)}
}

func (e *eventTarget) addEventListener(event string, fn types.Callable, useCapture bool) {
	e.listeners[event] = append(e.listeners[event], listenerEntry{fn: fn, useCapture: useCapture})
}

func (e *eventTarget) first(event string) (types.Callable, bool) {
	if ls, ok := e.listeners[event]; ok && len(ls) > 0 {
		return ls[0].fn, true
	}
	return nil, false
}

func extractListenerArgs(args []any) (string, types.Callable, bool) {
	event := types.RawString(arg(args, 0))
	fn, _ := arg(args, 1).(types.Callable)
	useCapture := false
	if len(args) > 2 {
		useCapture = types.Truthy(args[2])
	}
	return event, fn, useCapture
}

// NativeConstructor is a callable host constructor (`new X(...)`) that also
// carries static properties (`X.staticMethod`) -- the shape window exposes
// for Array/Object/String/Number/Date/RegExp/JSON/Math/Symbol, generalizing
// proxy/builtins.py's per-class @classmethod statics into one Go type.
type NativeConstructor struct {
	name    string
	call    types.Func
	statics map[string]any
}

var (
	_ types.Value    = (*NativeConstructor)(nil)
	_ types.Callable = (*NativeConstructor)(nil)
	_ types.HasAttrs = (*NativeConstructor)(nil)
)

// NewConstructor wraps call as a named host constructor with no statics.
func NewConstructor(name string, call types.Func) *NativeConstructor {
	return &NativeConstructor{name: name, call: call, statics: make(map[string]any)}
}

func (c *NativeConstructor) Type() string   { return "function" }
func (c *NativeConstructor) String() string { return fmt.Sprintf("ƒ %s", c.name) }

func (c *NativeConstructor) Call(this any, args []any) (any, error) { return c.call(this, args) }

// Static registers a static property and returns c for chaining.
func (c *NativeConstructor) Static(name string, v any) *NativeConstructor {
	c.statics[name] = v
	return c
}

func (c *NativeConstructor) GetAttr(name string) (any, error) {
	if v, ok := c.statics[name]; ok {
		return v, nil
	}
	return types.Undefined, nil
}

func (c *NativeConstructor) SetAttr(name string, v any) error {
	c.statics[name] = v
	return nil
}

func (c *NativeConstructor) DeleteAttr(name string) (bool, error) {
	delete(c.statics, name)
	return true, nil
}

func (c *NativeConstructor) Has(name string) bool {
	_, ok := c.statics[name]
	return ok
}

func notAConstructor(name string) types.Func {
	return func(any, []any) (any, error) {
		return nil, &types.TypeError{Msg: name + " is not a constructor"}
	}
}
