package vm

import (
	"fmt"

	"github.com/mna/chaosvm/types"
)

// catchFrame is a call_stack entry: where to resume, how deep the stack
// should be truncated to, and which slot (if any) receives the caught
// ProxyException. Slot 0 means "no slot" (spec.md §4.D stepin/stepout).
type catchFrame struct {
	resumePC   int
	stackDepth int
	catchSlot  int
}

// Machine is one VM invocation: spec.md §3's "VM frame / invocation
// state". A fresh Machine is created for every top-level run and for
// every vm_factory closure call (sharing the parent's opcode stream and
// opmap, but never its stack).
type Machine struct {
	pc        int
	opcode    []int
	opmap     map[int]int
	window    any
	stack     []any
	callStack []catchFrame
	err       error
	emptyInit bool
}

// NewMachine constructs the outermost invocation: the stack starts with a
// cell holding window and a cell holding a fresh Object, and the
// run return value is the stack tail from index 3 onward (spec.md §4.D
// dispatch loop's termination rule).
func NewMachine(pc int, opcode []int, opmap map[int]int, window any) *Machine {
	return &Machine{
		pc:     pc,
		opcode: opcode,
		opmap:  opmap,
		window: window,
		stack: []any{
			types.NewCellWith(window),
			types.NewCellWith(types.NewObject("Object")),
		},
		emptyInit: true,
	}
}

// newChildMachine constructs a nested invocation spawned by vm_factory:
// stack is caller-supplied, so the run return value is just the top of
// stack (spec.md §4.D's "else return the top").
func newChildMachine(pc int, opcode []int, opmap map[int]int, window any, stack []any) *Machine {
	return &Machine{
		pc:     pc,
		opcode: opcode,
		opmap:  opmap,
		window: window,
		stack:  stack,
	}
}

// Run executes the opcode stream from pc until a stop/check_err halt or
// an uncaught error, per spec.md §4.D's dispatch loop and §7's unwind
// rules.
func (m *Machine) Run() (any, error) {
	for {
		halted, err := m.dispatchLoop()
		if err != nil {
			if rec, ok := err.(types.Recoverable); ok && len(m.callStack) > 0 {
				m.unwind(rec)
				continue
			}
			return nil, err
		}
		_ = halted // dispatchLoop only returns (true, nil) or (_, non-nil)

		if m.err != nil {
			// A pending err at halt time is re-raised per spec.md §4.D; this
			// is always a *types.ProxyException, and it is returned directly
			// rather than passed back through unwind, so it escapes
			// unconditionally here regardless of call_stack depth.
			return nil, m.err
		}

		if m.emptyInit {
			m.stack = m.stack[:len(m.stack)-1]
			if len(m.stack) <= 3 {
				return []any{}, nil
			}
			tail := make([]any, len(m.stack)-3)
			copy(tail, m.stack[3:])
			return tail, nil
		}

		top := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		return top, nil
	}
}

func (m *Machine) dispatchLoop() (bool, error) {
	for {
		local := m.opcode[m.pc]
		m.pc++
		canon, ok := m.opmap[local]
		if !ok {
			return false, fmt.Errorf("vm: unmapped local opcode %d at pc %d", local, m.pc-1)
		}
		halt, err := m.dispatch(Op(canon))
		if err != nil {
			return false, err
		}
		if halt {
			return true, nil
		}
	}
}

func (m *Machine) dispatch(op Op) (bool, error) {
	if op < 0 || op > OpMax {
		return false, fmt.Errorf("vm: canonical opcode %d out of range", op)
	}
	if err := handlers[op](m); err != nil {
		return false, err
	}
	switch op {
	case OpStop:
		return true, nil
	case OpCheckErr:
		return m.err != nil, nil
	default:
		return false, nil
	}
}

// unwind implements spec.md §7's catch-frame handling: pop a frame,
// resume at its pc, truncate the stack to its captured depth, and box
// the error into a ProxyException written to the catch slot.
func (m *Machine) unwind(rec types.Recoverable) {
	n := len(m.callStack)
	frame := m.callStack[n-1]
	m.callStack = m.callStack[:n-1]

	m.pc = frame.resumePC
	if frame.stackDepth < len(m.stack) {
		m.stack = m.stack[:frame.stackDepth]
	}

	proxy := types.NewProxyException(rec, fmt.Sprintf("%+v", rec))
	m.err = proxy

	if frame.catchSlot != 0 {
		if cell, ok := m.stack[frame.catchSlot].(*types.Cell); ok {
			cell.Set(proxy)
		} else {
			m.stack[frame.catchSlot] = types.NewCellWith(proxy)
		}
	}
}

// nextImm reads the raw integer at pc and advances pc by one, mirroring
// BuiltinOps._curcode(1).
func (m *Machine) nextImm() int {
	v := m.opcode[m.pc]
	m.pc++
	return v
}

// nextImmN reads n raw integers starting at pc and advances pc by n,
// mirroring BuiltinOps._curcode(n).
func (m *Machine) nextImmN(n int) []int {
	v := m.opcode[m.pc : m.pc+n]
	m.pc += n
	return v
}

func (m *Machine) push(v any) { m.stack = append(m.stack, v) }

func (m *Machine) pop() any {
	n := len(m.stack) - 1
	v := m.stack[n]
	m.stack = m.stack[:n]
	return v
}

func (m *Machine) top() any { return m.stack[len(m.stack)-1] }

func (m *Machine) setTop(v any) { m.stack[len(m.stack)-1] = v }

// popN removes and returns the top n stack values in original (bottom to
// top) order, mirroring `args = self.stack[-n:]; self.stack = self.stack[:-n]`.
func (m *Machine) popN(n int) []any {
	if n == 0 {
		return nil
	}
	start := len(m.stack) - n
	args := append([]any(nil), m.stack[start:]...)
	m.stack = m.stack[:start]
	return args
}
