package vm

import "github.com/mna/chaosvm/types"

func init() {
	register(OpGe, opGe)
	register(OpGeq, opGeq)
	register(OpInv, opInv)
	register(OpEq, opEq)
	register(OpRefeq, opRefeq)
	register(OpContains, opContains)
}

func compareGreater(lhs, rhs any) bool {
	if ls, lok := types.IsString(lhs); lok {
		if rs, rok := types.IsString(rhs); rok {
			return ls > rs
		}
	}
	return types.ToNumber(lhs) > types.ToNumber(rhs)
}

func opGe(m *Machine) error {
	rhs := m.pop()
	m.setTop(compareGreater(m.top(), rhs))
	return nil
}

// opGeq coerces a boxed String left-hand side to a number before
// comparing, matching the reference VM's `float(stack[-2]._s) >= ...`
// special case; everything else compares as a plain string or number.
func opGeq(m *Machine) error {
	rhs := m.pop()
	lhs := m.top()
	if s, ok := lhs.(*types.String); ok {
		m.setTop(types.ToNumber(s.Raw()) >= types.ToNumber(rhs))
		return nil
	}
	if ls, lok := types.IsString(lhs); lok {
		if rs, rok := types.IsString(rhs); rok {
			m.setTop(ls >= rs)
			return nil
		}
	}
	m.setTop(types.ToNumber(lhs) >= types.ToNumber(rhs))
	return nil
}

func opInv(m *Machine) error {
	m.setTop(!types.Truthy(m.top()))
	return nil
}

func opEq(m *Machine) error {
	rhs := m.pop()
	m.setTop(types.LooseEquals(m.top(), rhs))
	return nil
}

// opRefeq emulates Python's string/int interning: a bare string or
// integer compares by value even under `is`, everything else by identity.
func opRefeq(m *Machine) error {
	rhs := m.pop()
	switch rhs.(type) {
	case string, int, int64:
		m.setTop(types.LooseEquals(m.top(), rhs))
	default:
		m.setTop(m.top() == rhs)
	}
	return nil
}

func opContains(m *Machine) error {
	container := m.pop()
	m.setTop(types.Contains(m.top(), container))
	return nil
}
