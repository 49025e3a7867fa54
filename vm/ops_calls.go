package vm

import (
	"fmt"

	"github.com/mna/chaosvm/types"
)

func init() {
	register(OpOutcall, opOutcall)
	register(OpWincall, opWincall)
	register(OpNew, opNew)
	register(OpNewAttr, opNewAttr)
	register(OpVMFactory, opVMFactory)
}

// opOutcall implements a method call compiled from `obj.name(args...)`.
// The reference VM branches on whether obj is already a Function proxy
// before deciding how to invoke the resolved attribute; both branches
// collapse to the same "resolve then call with obj as this" shape once
// every callable on the Go stack is uniformly types.Callable.
func opOutcall(m *Machine) error {
	n := m.nextImm()
	args := m.popN(n)
	grp, ok := m.pop().(*types.Group)
	if !ok {
		return fmt.Errorf("vm: outcall: top of stack is not a group")
	}
	obj := grp.Object
	if s, ok := obj.(string); ok {
		obj = types.NewString(s)
	}
	name := types.ToPropertyKey(grp.Name)
	attr, err := types.GetAttr(obj, name)
	if err != nil {
		return err
	}
	fn, ok := attr.(types.Callable)
	if !ok {
		return &types.TypeError{Msg: fmt.Sprintf("%s.%s is not a function", types.TypeOf(obj), name)}
	}
	result, err := fn.Call(obj, args)
	if err != nil {
		return err
	}
	m.push(result)
	return nil
}

// opWincall implements a call compiled from `someGlobal(args...)`, binding
// window as `this` when the target is callable.
func opWincall(m *Machine) error {
	n := m.nextImm()
	args := m.popN(n)
	fn, ok := m.top().(types.Callable)
	if !ok {
		return &types.TypeError{Msg: fmt.Sprintf("%s is not a function", types.TypeOf(m.top()))}
	}
	result, err := fn.Call(m.window, args)
	if err != nil {
		return err
	}
	m.setTop(result)
	return nil
}

func opNew(m *Machine) error {
	n := m.nextImm()
	args := m.popN(n)
	fn, ok := m.top().(types.Callable)
	if !ok {
		return &types.TypeError{Msg: fmt.Sprintf("%s is not a constructor", types.TypeOf(m.top()))}
	}
	result, err := fn.Call(nil, args)
	if err != nil {
		return err
	}
	m.setTop(result)
	return nil
}

// opNewAttr is `new obj.name(args...)`: the group at top of stack is read,
// not popped, before being overwritten with the construction result.
func opNewAttr(m *Machine) error {
	n := m.nextImm()
	args := m.popN(n)
	grp, ok := m.top().(*types.Group)
	if !ok {
		return fmt.Errorf("vm: new_attr: top of stack is not a group")
	}
	attr, err := types.GetAttr(grp.Object, types.ToPropertyKey(grp.Name))
	if err != nil {
		return err
	}
	fn, ok := attr.(types.Callable)
	if !ok {
		return &types.TypeError{Msg: fmt.Sprintf("%s is not a constructor", types.TypeOf(attr))}
	}
	result, err := fn.Call(grp.Object, args)
	if err != nil {
		return err
	}
	m.setTop(result)
	return nil
}

// opVMFactory builds a closure: captured pairs (i,j) alias the parent's
// live stack cells at index j under new index i (so mutations inside the
// child invocation are visible to the parent and vice versa, spec.md §9),
// and a second (U) list designates which of the closure's own call
// arguments land in which child stack slot. Slots 0/1/2 are always this,
// arguments, and the closure function itself.
func opVMFactory(m *Machine) error {
	triple := m.nextImmN(3)
	pcNew, aLen, uLen := triple[0], triple[1], triple[2]

	captured := make(map[int]any, aLen)
	maxI := -1
	for k := 0; k < aLen; k++ {
		pair := m.nextImmN(2)
		i, j := pair[0], pair[1]
		captured[i] = m.stack[j]
		if i > maxI {
			maxI = i
		}
	}
	var dense []any
	if len(captured) > 0 {
		dense = make([]any, maxI+1)
		for i, v := range captured {
			dense[i] = v
		}
	}

	u := m.nextImmN(uLen)
	uCopy := append([]int(nil), u...)

	opcode, opmap, window := m.opcode, m.opmap, m.window

	var f *types.Function
	vmcall := func(this any, args []any) (any, error) {
		newStack := append([]any(nil), dense...)
		maxU := 0
		for _, i := range uCopy {
			if i > maxU {
				maxU = i
			}
		}
		minLen := maxU + 1
		if minLen < 3 {
			minLen = 3
		}
		for len(newStack) < minLen {
			newStack = append(newStack, nil)
		}

		w := this
		if !types.Truthy(w) {
			w = window
		}
		newStack[0] = types.NewCellWith(w)
		newStack[1] = types.NewCellWith(types.NewArray(args...))
		newStack[2] = types.NewCellWith(f)

		for k, i := range uCopy {
			if k >= len(args) {
				break
			}
			if i > 0 {
				newStack[i] = types.NewCellWith(args[k])
			}
		}

		child := newChildMachine(pcNew, opcode, opmap, window, newStack)
		return child.Run()
	}
	f = types.NativeFunc("vm_factory", vmcall)
	m.push(f)
	return nil
}
