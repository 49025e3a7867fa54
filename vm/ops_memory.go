package vm

import "github.com/mna/chaosvm/types"

func init() {
	register(OpInst, opInst)
	register(OpAssign, opAssign)
	register(OpUndefined, opUndefined)
	register(OpNull, opNull)
	register(OpTrue, opTrue)
	register(OpFalse, opFalse)
	register(OpInstArr, opInstArr)
	register(OpDrop, opDrop)
	register(OpRealloc, opRealloc)
}

func opInst(m *Machine) error {
	m.push(m.nextImm())
	return nil
}

func opAssign(m *Machine) error {
	m.setTop(m.nextImm())
	return nil
}

func opUndefined(m *Machine) error {
	m.push(nil)
	return nil
}

// opNull is the null/refeq peephole: the payload compiler emits `null`
// immediately followed by `refeq` whenever source does `x === null`, so
// null peeks at (and fully consumes) the next instruction itself rather
// than pushing the NULL singleton and letting refeq run normally -- it
// leaves the compared value on the stack instead of popping it.
func opNull(m *Machine) error {
	local := m.nextImm()
	if canon, ok := m.opmap[local]; ok && Op(canon) == OpRefeq {
		m.push(m.top() == types.Null)
		return nil
	}
	m.pc--
	m.push(types.Null)
	return nil
}

func opTrue(m *Machine) error {
	m.push(true)
	return nil
}

func opFalse(m *Machine) error {
	m.push(false)
	return nil
}

// opInstArr pushes a fresh cell preloaded with the immediate, the shape a
// local variable slot has right after its declaration is compiled.
func opInstArr(m *Machine) error {
	m.push(types.NewCellWith(m.nextImm()))
	return nil
}

func opDrop(m *Machine) error {
	m.pop()
	return nil
}

func opRealloc(m *Machine) error {
	i := m.nextImm()
	switch {
	case len(m.stack) > i:
		m.stack = m.stack[:i]
	case len(m.stack) < i:
		m.stack = append(m.stack, make([]any, i-len(m.stack))...)
	}
	return nil
}
