package vm

import (
	"fmt"

	"github.com/mna/chaosvm/types"
)

func init() {
	register(OpGroup, opGroup)
	register(OpGrgetattr, opGrgetattr)
	register(OpGetattr, opGetattr)
	register(OpSetattr, opSetattr)
	register(OpDelattr, opDelattr)
	register(OpGetGlobal, opGetGlobal)
	register(OpGrwinattr, opGrwinattr)
	register(OpTypeof, opTypeof)
	register(OpTolist, opTolist)
	register(OpGrobj, opGrobj)
	register(OpGetobj, opGetobj)
	register(OpGetobj2, opGetobj2)
	register(OpChobj, opChobj)
}

func opGroup(m *Machine) error {
	name := m.pop()
	obj := m.top()
	m.setTop(&types.Group{Object: obj, Name: name})
	return nil
}

// opGrgetattr reads an attribute off the group at stack[-2] (without
// popping it) and pairs the result with a second, freshly popped key --
// the shape a chained `obj.a.b` member expression compiles to.
func opGrgetattr(m *Machine) error {
	grp, ok := m.stack[len(m.stack)-2].(*types.Group)
	if !ok {
		return fmt.Errorf("vm: grgetattr: stack[-2] is not a group")
	}
	val, err := types.GetAttr(grp.Object, types.ToPropertyKey(grp.Name))
	if err != nil {
		return err
	}
	name := m.pop()
	m.setTop(&types.Group{Object: val, Name: name})
	return nil
}

func opGetattr(m *Machine) error {
	grp, ok := m.pop().(*types.Group)
	if !ok {
		return fmt.Errorf("vm: getattr: top of stack is not a group")
	}
	key := types.ToPropertyKey(grp.Name)
	if s, ok := grp.Object.(string); ok && key == "length" {
		m.push(int64(len(s)))
		return nil
	}
	v, err := types.GetAttr(grp.Object, key)
	if err != nil {
		return err
	}
	m.push(v)
	return nil
}

// opSetattr writes through the group at stack[-2] without popping either
// operand -- the compiler follows an assignment with a `drop` of its own.
func opSetattr(m *Machine) error {
	grp, ok := m.stack[len(m.stack)-2].(*types.Group)
	if !ok {
		return fmt.Errorf("vm: setattr: stack[-2] is not a group")
	}
	return types.SetAttr(grp.Object, types.ToPropertyKey(grp.Name), m.top())
}

// opDelattr reads the group at top of stack without popping it and
// pushes whether the property is now absent.
func opDelattr(m *Machine) error {
	grp, ok := m.top().(*types.Group)
	if !ok {
		return fmt.Errorf("vm: delattr: top of stack is not a group")
	}
	gone, err := types.DeleteAttr(grp.Object, types.ToPropertyKey(grp.Name))
	if err != nil {
		return err
	}
	m.push(gone)
	return nil
}

func opGetGlobal(m *Machine) error {
	key := types.ToPropertyKey(m.top())
	v, err := types.GetAttr(m.window, key)
	if err != nil {
		return err
	}
	m.setTop(v)
	return nil
}

func opGrwinattr(m *Machine) error {
	m.setTop(&types.Group{Object: m.window, Name: m.top()})
	return nil
}

func opTypeof(m *Machine) error {
	m.setTop(types.TypeOf(m.top()))
	return nil
}

func opTolist(m *Machine) error {
	v := m.top()
	switch x := v.(type) {
	case *types.Array:
		m.setTop(types.NewArray(x.Elems()...))
	case string:
		m.setTop(types.NewArray(explode(x)...))
	case *types.String:
		m.setTop(types.NewArray(explode(x.Raw())...))
	default:
		return &types.TypeError{Msg: fmt.Sprintf("%s is not iterable", types.TypeOf(v))}
	}
	return nil
}

func explode(s string) []any {
	out := make([]any, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// opGrobj dereferences a parent stack cell by index (stack[-2], itself
// possibly boxed in a cell carrying the index) and pairs its value with a
// freshly popped key, used to address a captured closure variable's
// property.
func opGrobj(m *Machine) error {
	i := types.AsIndex(m.stack[len(m.stack)-2])
	c, ok := m.stack[i].(*types.Cell)
	if !ok {
		return &types.TypeError{Msg: "grobj: referenced slot is not initialized"}
	}
	val, _ := c.Get()
	name := m.pop()
	m.setTop(&types.Group{Object: val, Name: name})
	return nil
}

// opGetobj pushes the value held by the cell at the given immediate
// index, or undefined if that cell has never been assigned.
func opGetobj(m *Machine) error {
	i := m.nextImm()
	if c, ok := m.stack[i].(*types.Cell); ok {
		if v, has := c.Get(); has {
			m.push(v)
			return nil
		}
	}
	m.push(nil)
	return nil
}

// opGetobj2 is getobj with the index itself read off the stack instead of
// an immediate (an indirect local reference).
func opGetobj2(m *Machine) error {
	i := types.AsIndex(m.top())
	c, ok := m.stack[i].(*types.Cell)
	if !ok {
		return &types.TypeError{Msg: "getobj2: referenced slot is not initialized"}
	}
	v, _ := c.Get()
	m.setTop(v)
	return nil
}

// opChobj assigns into the cell at stack[stack[-2]] in place, so that any
// vm_factory closure that captured the same cell observes the write --
// the slot must already be a cell (via inst_arr/n2list), never a raw
// uninitialized nil.
func opChobj(m *Machine) error {
	i := types.AsIndex(m.stack[len(m.stack)-2])
	c, ok := m.stack[i].(*types.Cell)
	if !ok {
		return &types.TypeError{Msg: "chobj: target slot is not initialized"}
	}
	c.Set(m.top())
	return nil
}
