package vm

// handlerFunc implements one canonical opcode against a Machine's stack
// and pc. It returns an error when the underlying operation raises (the
// Go stand-in for a Python TypeError/AttributeError); the stop/check_err
// halt signal itself is read back out of the Machine's state by dispatch,
// not via this return value.
type handlerFunc func(m *Machine) error

// handlers is indexed by Op (spec.md §6's fixed canonical order). Built
// once at init from the per-category tables in ops_*.go.
var handlers [OpMax + 1]handlerFunc

func register(op Op, fn handlerFunc) {
	handlers[op] = fn
}
