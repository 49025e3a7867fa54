package types

import "fmt"

// ProxyException is the value the VM's exception unwind machinery stores
// into `err` and into a catch slot: it wraps the original Go error plus a
// formatted trace, and exposes `.message`/`.stack`/`.toString()` to the
// payload exactly as proxy/builtins.py's ProxyException does.
type ProxyException struct {
	*Object
	Err   error
	Trace string
}

var _ Value = (*ProxyException)(nil)

// NewProxyException wraps err with a formatted trace, to be inspected by
// the payload as err.message / err.stack.
func NewProxyException(err error, trace string) *ProxyException {
	return &ProxyException{Object: NewObject("Error"), Err: err, Trace: trace}
}

func (p *ProxyException) String() string { return p.Error() }
func (p *ProxyException) Error() string  { return p.Err.Error() }

func (p *ProxyException) GetAttr(name string) (any, error) {
	switch name {
	case "message":
		return p.Err.Error(), nil
	case "stack":
		return p.Trace, nil
	case "toString":
		return NativeFunc("toString", func(any, []any) (any, error) {
			return fmt.Sprintf("Error: %s", p.Err.Error()), nil
		}), nil
	default:
		return p.Object.GetAttr(name)
	}
}

// JsError is the error kind raised by the `throw` opcode, wrapping
// whatever value was on top of stack (spec.md §7), mirroring
// proxy/builtins.py's JsError(RuntimeError).
type JsError struct {
	Value any
}

func (e *JsError) Error() string { return fmt.Sprintf("uncaught: %v", e.Value) }

// TypeError is raised by attribute access on Null/Undefined and by
// arithmetic/attribute handlers that hit a Go type assertion failure,
// mirroring Python's TypeError/AttributeError pair (spec.md §7 treats both
// identically for unwind purposes).
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string { return e.Msg }

// Recoverable marks the three error kinds the VM's call_stack can catch:
// TypeError, JsError, and an already-wrapped ProxyException rethrown from
// a nested vm_factory invocation. Anything else (Go panics aside) escapes
// unaltered, per spec.md §7.
type Recoverable interface {
	error
	recoverable()
}

func (*JsError) recoverable()    {}
func (*TypeError) recoverable()  {}

func (p *ProxyException) recoverable() {}
