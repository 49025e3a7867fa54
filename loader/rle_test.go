package loader

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeOpcodesInsertsBeforeFirstByte(t *testing.T) {
	out, err := DecodeOpcodes("ChQ=", []int{0, 99})
	require.NoError(t, err)
	require.Equal(t, []int{99, 10, 20}, out)
}

func TestDecodeOpcodesNoInsertions(t *testing.T) {
	out, err := DecodeOpcodes("ChQ=", nil)
	require.NoError(t, err)
	require.Equal(t, []int{10, 20}, out)
}

func TestDecodeOpcodesInsertionPastEnd(t *testing.T) {
	out, err := DecodeOpcodes("ChQ=", []int{2, 42})
	require.NoError(t, err)
	require.Equal(t, []int{10, 20, 42}, out)
}

func TestDecodeOpcodesMultipleInsertionsSamePosition(t *testing.T) {
	// positions count every emitted value, insertions included, so two
	// insertions before the same data byte use consecutive positions
	out, err := DecodeOpcodes("ChQ=", []int{0, 1, 1, 2})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 10, 20}, out)
}

func TestDecodeOpcodesWideInsertionValue(t *testing.T) {
	out, err := DecodeOpcodes("ChQ=", []int{1, 1000})
	require.NoError(t, err)
	require.Equal(t, []int{10, 1000, 20}, out)
}

func TestDecodeOpcodesRejectsBadBase64(t *testing.T) {
	_, err := DecodeOpcodes("not base64!!", nil)
	require.Error(t, err)
}
