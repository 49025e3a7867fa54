package vm

import "github.com/mna/chaosvm/types"

func init() {
	register(OpCopy, opCopy)
	register(OpSwap, opSwap)
	register(OpN2list, opN2list)
	register(OpArrPopleft, opArrPopleft)
}

func opCopy(m *Machine) error {
	m.push(m.top())
	return nil
}

func opSwap(m *Machine) error {
	i := m.nextImm()
	n := len(m.stack)
	j := n - 2 - i
	m.stack[j], m.stack[n-1] = m.stack[n-1], m.stack[j]
	return nil
}

// opN2list turns an untouched local slot into an empty, mutable cell so a
// later chobj/grobj reference to it has a stable identity to alias,
// without disturbing a slot that is already a cell (even an empty one).
func opN2list(m *Machine) error {
	i := m.nextImm()
	if m.stack[i] == nil {
		m.stack[i] = types.NewCell()
	}
	return nil
}

// opArrPopleft does not consume the array itself: it mutates it in place
// and appends the popped element plus a found/not-found flag, leaving
// both the (now shorter) array and the new pair on the stack.
func opArrPopleft(m *Machine) error {
	arr, ok := m.top().(*types.Array)
	if !ok || arr.Length() == 0 {
		m.push(nil)
		m.push(false)
		return nil
	}
	v, _ := arr.PopLeft()
	m.push(v)
	m.push(true)
	return nil
}
