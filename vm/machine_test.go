package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/chaosvm/types"
)

// identityOpmap returns a mapping where every local opcode is already its
// own canonical index, letting tests write opcode streams directly in
// terms of the Op constants instead of a payload-specific shuffle.
func identityOpmap() map[int]int {
	m := make(map[int]int, int(OpMax)+1)
	for i := 0; i <= int(OpMax); i++ {
		m[i] = i
	}
	return m
}

func op(o Op) int { return int(o) }

func TestArithmeticAddNumeric(t *testing.T) {
	opcode := []int{op(OpInst), 2, op(OpInst), 3, op(OpAdd), op(OpStop)}
	m := newChildMachine(0, opcode, identityOpmap(), nil, nil)
	res, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, 5.0, res)
}

func TestArithmeticAddStringCoercion(t *testing.T) {
	opcode := []int{op(OpZstr), op(OpConcat), 'h', op(OpConcat), 'i', op(OpInst), 1, op(OpAdd), op(OpStop)}
	m := newChildMachine(0, opcode, identityOpmap(), nil, nil)
	res, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, "hi1", res)
}

func TestZstrConcatBuildsString(t *testing.T) {
	opcode := []int{op(OpZstr), op(OpConcat), 'h', op(OpConcat), 'i', op(OpStop)}
	m := newChildMachine(0, opcode, identityOpmap(), nil, nil)
	res, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, "hi", res)
}

func TestNullPushesSingletonWithoutFollowingRefeq(t *testing.T) {
	opcode := []int{op(OpNull), op(OpTrue), op(OpStop)}
	m := newChildMachine(0, opcode, identityOpmap(), nil, nil)
	halted, err := m.dispatchLoop()
	require.NoError(t, err)
	require.True(t, halted)
	require.Equal(t, []any{types.Null, true}, m.stack)
}

func TestNullRefeqPeepholeFusesIdentityCheck(t *testing.T) {
	opcode := []int{op(OpInst), 0, op(OpNull), op(OpRefeq), op(OpStop)}
	m := newChildMachine(0, opcode, identityOpmap(), nil, nil)
	halted, err := m.dispatchLoop()
	require.NoError(t, err)
	require.True(t, halted)
	require.Equal(t, []any{0, false}, m.stack)
}

func TestJeJumpsOnlyWhenTruthy(t *testing.T) {
	// push true, je 6 (skip the false-branch inst), inst 1, stop
	opcode := []int{op(OpTrue), op(OpJe), 6, op(OpInst), 0, op(OpStop), op(OpInst), 1, op(OpStop)}
	m := newChildMachine(0, opcode, identityOpmap(), nil, nil)
	res, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, 1, res)
}

// TestVMFactoryCapturesLiveCell exercises vm_factory's closure capture: a
// captured (i, j) pair aliases the parent's cell, so a write performed
// from inside the spawned child is visible through the parent's own
// reference to the same cell afterward.
func TestVMFactoryCapturesLiveCell(t *testing.T) {
	const pcNew = 7
	opcode := []int{
		op(OpVMFactory), // 0
		pcNew,           // 1: pc
		1,               // 2: Alen
		0,               // 3: Ulen
		3,               // 4: captured index i (child slot 3)
		0,               // 5: source index j (parent slot 0)
		op(OpStop),      // 6
		// child body at pcNew=7
		op(OpInst), 3, // 7,8: push index 3
		op(OpInst), 99, // 9,10: push new value
		op(OpChobj),   // 11: write stack[3] = 99 in place
		op(OpDrop),    // 12
		op(OpDrop),    // 13
		op(OpInst), 1, // 14,15: sentinel return value
		op(OpStop), // 16
	}

	shared := types.NewCellWith(int64(10))
	parent := newChildMachine(0, opcode, identityOpmap(), nil, []any{shared})
	closureVal, err := parent.Run()
	require.NoError(t, err)

	fn, ok := closureVal.(*types.Function)
	require.True(t, ok)

	result, err := fn.Call(nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result)

	v, has := shared.Get()
	require.True(t, has)
	require.Equal(t, 99, v)
}

// TestThrowUnwindsToCatchSlot exercises the stepin/throw/unwind path: a
// raised value truncates the stack back to the catch frame's recorded
// depth and writes a ProxyException into the designated slot before
// resuming at the frame's pc.
func TestThrowUnwindsToCatchSlot(t *testing.T) {
	opcode := []int{
		op(OpStepin), 6, 3, // 0,1,2: resume at 6, catch slot 3
		op(OpInst), 42, // 3,4: value to throw
		op(OpThrow),   // 5
		op(OpClear),   // 6: resumes here after unwind, resets the pending err
		op(OpInst), 7, // 7,8
		op(OpStop), // 9
	}
	initial := []any{nil, nil, nil, types.NewCell()}
	m := newChildMachine(0, opcode, identityOpmap(), nil, initial)
	res, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, 7, res)

	caught, has := initial[3].(*types.Cell).Get()
	require.True(t, has)
	proxy, ok := caught.(*types.ProxyException)
	require.True(t, ok)
	require.Contains(t, proxy.Error(), "42")
}
