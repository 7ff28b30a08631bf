package back

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisters(t *testing.T) {
	r := NewRegisters(NumRegs)

	for i := 0; i < NumRegs; i++ {
		x, err := r.Alloc()
		require.NoError(t, err)
		assert.Equal(t, Reg(i), x)
	}

	_, err := r.Alloc()

	var e *Error
	require.ErrorAs(t, err, &e)

	require.NoError(t, r.Free(2))

	x, err := r.Alloc()
	require.NoError(t, err)
	assert.Equal(t, Reg(2), x)
}

func TestRegistersLowestFirst(t *testing.T) {
	r := NewRegisters(NumRegs)

	for i := 0; i < NumRegs; i++ {
		_, err := r.Alloc()
		require.NoError(t, err)
	}

	require.NoError(t, r.Free(3))
	require.NoError(t, r.Free(1))
	require.NoError(t, r.Free(2))

	for _, exp := range []Reg{1, 2, 3} {
		x, err := r.Alloc()
		require.NoError(t, err)
		assert.Equal(t, exp, x)
	}

	assert.Equal(t, NumRegs, r.Used())
}

func TestRegistersBadFree(t *testing.T) {
	r := NewRegisters(NumRegs)

	var e *InternalError

	require.ErrorAs(t, r.Free(0), &e)
	require.ErrorAs(t, r.Free(-1), &e)
	require.ErrorAs(t, r.Free(NumRegs), &e)

	x, err := r.Alloc()
	require.NoError(t, err)

	require.NoError(t, r.Free(x))
	require.ErrorAs(t, r.Free(x), &e)

	assert.Equal(t, 0, r.Used())
}

func TestRegistersReset(t *testing.T) {
	r := NewRegisters(2)

	_, err := r.Alloc()
	require.NoError(t, err)

	r.Reset()

	assert.Equal(t, 0, r.Used())

	for i := 0; i < 2; i++ {
		x, err := r.Alloc()
		require.NoError(t, err)
		assert.Equal(t, Reg(i), x)
	}
}
