package vm

import "github.com/mna/chaosvm/types"

func init() {
	register(OpStepin, opStepin)
	register(OpStepout, opStepout)
	register(OpJump, opJump)
	register(OpJe, opJe)
	register(OpClear, opClear)
	register(OpStop, opNoop)
	register(OpCheckErr, opNoop)
	register(OpThrow, opThrow)
}

func opNoop(*Machine) error { return nil }

// opStepin pushes a catch frame: resume pc, stack depth to truncate to on
// unwind, and the slot (0 means none) that receives the caught exception.
func opStepin(m *Machine) error {
	pair := m.nextImmN(2)
	m.callStack = append(m.callStack, catchFrame{
		resumePC:   pair[0],
		stackDepth: len(m.stack),
		catchSlot:  pair[1],
	})
	return nil
}

func opStepout(m *Machine) error {
	m.callStack = m.callStack[:len(m.callStack)-1]
	return nil
}

func opJump(m *Machine) error {
	m.pc = m.opcode[m.pc]
	return nil
}

func opJe(m *Machine) error {
	target := m.nextImm()
	if types.Truthy(m.top()) {
		m.pc = target
	}
	return nil
}

func opClear(m *Machine) error {
	m.err = nil
	return nil
}

// opThrow raises whatever is on top of stack as a catchable JsError,
// without popping it -- the unwind path reads the stack only after
// truncating to the catch frame's recorded depth.
func opThrow(m *Machine) error {
	return &types.JsError{Value: m.top()}
}
