package amount

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckedAdd(t *testing.T) {
	sum, err := Add(1_000_000, 500)
	require.NoError(t, err)
	assert.Equal(t, Amount(1_000_500), sum)

	_, err = Add(math.MaxUint64, 1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestCheckedSub(t *testing.T) {
	diff, err := Sub(1_000_000, 200_000)
	require.NoError(t, err)
	assert.Equal(t, Amount(800_000), diff)

	_, err = Sub(5, 6)
	assert.ErrorIs(t, err, ErrUnderflow)
}

func TestCheckedMul(t *testing.T) {
	prod, err := Mul(1_000_000, 20)
	require.NoError(t, err)
	assert.Equal(t, Amount(20_000_000), prod)

	_, err = Mul(math.MaxUint64, 2)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestCheckedDiv(t *testing.T) {
	// Integer division truncates toward zero.
	q, err := Div(20_000_000, 100)
	require.NoError(t, err)
	assert.Equal(t, Amount(200_000), q)

	q, err = Div(7, 2)
	require.NoError(t, err)
	assert.Equal(t, Amount(3), q)

	_, err = Div(1, 0)
	assert.ErrorIs(t, err, ErrDivideByZero)
}

func TestFromString(t *testing.T) {
	a, err := FromString("2500000000")
	require.NoError(t, err)
	assert.Equal(t, Amount(2_500_000_000), a)

	_, err = FromString("-1")
	assert.Error(t, err)

	_, err = FromString("not a number")
	assert.Error(t, err)
}
