package vm

import (
	"math"

	"github.com/mna/chaosvm/types"
)

func init() {
	register(OpAdd, opAdd)
	register(OpSub, opSub)
	register(OpMul, opMul)
	register(OpDiv, opDiv)
	register(OpMod, opMod)
	register(OpBitor, opBitor)
	register(OpBitand, opBitand)
	register(OpXor, opXor)
	register(OpLshift, opLshift)
	register(OpRshift, opRshift)
	register(OpUrshift, opUrshift)
}

// opAdd mirrors the reference implementation's string/number dispatch: a
// boxed String right-hand side unwraps to its raw string first, then
// either side being a string forces string concatenation.
func opAdd(m *Machine) error {
	rhs := m.pop()
	if s, ok := rhs.(*types.String); ok {
		rhs = s.Raw()
	}
	lhs := m.top()
	if rs, ok := rhs.(string); ok {
		m.setTop(types.ToDisplayString(lhs) + rs)
		return nil
	}
	if ls, ok := lhs.(string); ok {
		m.setTop(ls + types.ToDisplayString(rhs))
		return nil
	}
	m.setTop(types.ToNumber(lhs) + types.ToNumber(rhs))
	return nil
}

func opSub(m *Machine) error {
	rhs := types.ToNumber(m.pop())
	m.setTop(types.ToNumber(m.top()) - rhs)
	return nil
}

func opMul(m *Machine) error {
	rhs := types.ToNumber(m.pop())
	m.setTop(types.ToNumber(m.top()) * rhs)
	return nil
}

// opDiv demotes an exactly-integral quotient to an int64, matching the
// reference VM's `if int(x) == x: x = int(x)` normalization.
func opDiv(m *Machine) error {
	rhs := types.ToNumber(m.pop())
	res := types.ToNumber(m.top()) / rhs
	if i := int64(res); float64(i) == res {
		m.setTop(i)
		return nil
	}
	m.setTop(res)
	return nil
}

func opMod(m *Machine) error {
	rhs := types.ToNumber(m.pop())
	m.setTop(math.Mod(types.ToNumber(m.top()), rhs))
	return nil
}

func opBitor(m *Machine) error {
	rhs := int64(types.ToNumber(m.pop()))
	lhs := int64(types.ToNumber(m.top()))
	m.setTop(int64(types.Signed32(lhs | rhs)))
	return nil
}

func opBitand(m *Machine) error {
	rhs := int64(types.ToNumber(m.pop()))
	lhs := int64(types.ToNumber(m.top()))
	m.setTop(int64(types.Signed32(lhs & rhs)))
	return nil
}

func opXor(m *Machine) error {
	rhs := int64(types.ToNumber(m.pop()))
	lhs := int64(types.ToNumber(m.top()))
	m.setTop(int64(types.Signed32(lhs ^ rhs)))
	return nil
}

// opLshift special-cases a NaN left-hand side as 0 (the reference VM
// checks `stack[-2] != stack[-2]`, Python's idiom for a NaN float).
func opLshift(m *Machine) error {
	rhs := uint(int64(types.ToNumber(m.pop())))
	lhsF := types.ToNumber(m.top())
	if math.IsNaN(lhsF) {
		m.setTop(int64(0))
		return nil
	}
	m.setTop(int64(types.Signed32(int64(lhsF) << rhs)))
	return nil
}

func opRshift(m *Machine) error {
	rhs := uint(int64(types.ToNumber(m.pop())))
	lhs := int64(types.ToNumber(m.top()))
	m.setTop(int64(types.Signed32(lhs >> rhs)))
	return nil
}

func opUrshift(m *Machine) error {
	rhs := uint(int64(types.ToNumber(m.pop())))
	lhs := int64(types.ToNumber(m.top()))
	u := types.Unsigned32(lhs)
	m.setTop(int64(u) >> rhs)
	return nil
}
