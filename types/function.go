package types

import "fmt"

// Func is the Go shape every callable host/VM value implements: called
// with a `this` binding (nil when none applies) and a positional argument
// list, as produced by a `new Function(...)`, vm_factory closure, or a
// shim method.
type Func func(this any, args []any) (any, error)

// Function is the host Function proxy (proxy/builtins.py's Function): it
// wraps a Go closure and exposes the `call`/`apply` methods the VM's
// outcall/wincall opcodes and payload probes use directly.
type Function struct {
	name string
	fn   Func
}

var (
	_ Value    = (*Function)(nil)
	_ Callable = (*Function)(nil)
	_ HasAttrs = (*Function)(nil)
)

// NativeFunc wraps fn as a named host Function.
func NativeFunc(name string, fn Func) *Function { return &Function{name: name, fn: fn} }

func (f *Function) Type() string   { return "function" }
func (f *Function) String() string { return fmt.Sprintf("ƒ %s", f.name) }

// Call invokes the wrapped closure directly (the `obj.name(obj, *args)`
// shape outcall/wincall use when the target is already a Function).
func (f *Function) Call(this any, args []any) (any, error) { return f.fn(this, args) }

// GetAttr exposes `call` and `apply`. Both drop their first argument (the
// `this` binding) and invoke the wrapped closure with a nil `this` and only
// the remaining arguments; apply spreads its Array argument.
func (f *Function) GetAttr(name string) (any, error) {
	switch name {
	case "call":
		return NativeFunc("call", func(_ any, args []any) (any, error) {
			if len(args) == 0 {
				return f.fn(nil, nil)
			}
			return f.fn(nil, args[1:])
		}), nil
	case "apply":
		return NativeFunc("apply", func(_ any, args []any) (any, error) {
			var rest []any
			if len(args) > 1 {
				if arr, ok := args[1].(*Array); ok {
					rest = arr.Elems()
				}
			}
			return f.fn(nil, rest)
		}), nil
	case "name":
		return f.name, nil
	default:
		return Undefined, nil
	}
}

func (f *Function) SetAttr(string, any) error           { return nil }
func (f *Function) DeleteAttr(string) (bool, error)     { return true, nil }
func (f *Function) Has(name string) bool                { return name == "call" || name == "apply" || name == "name" }
