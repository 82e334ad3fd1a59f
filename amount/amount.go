package amount

import (
	"errors"
	"math/bits"
	"strconv"
)

// Amount represents the atomic unit of the $BRATS token economy.
// All balances and transfers are tracked in these units.
type Amount uint64

var (
	ErrOverflow     = errors.New("amount overflow")
	ErrUnderflow    = errors.New("amount underflow")
	ErrDivideByZero = errors.New("amount divide by zero")
)

// Add returns a+b, failing closed instead of wrapping.
func Add(a, b Amount) (Amount, error) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return Amount(sum), nil
}

// Sub returns a-b, failing closed instead of wrapping below zero.
func Sub(a, b Amount) (Amount, error) {
	diff, borrow := bits.Sub64(uint64(a), uint64(b), 0)
	if borrow != 0 {
		return 0, ErrUnderflow
	}
	return Amount(diff), nil
}

// Mul returns a*b, failing closed on overflow.
func Mul(a, b Amount) (Amount, error) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 {
		return 0, ErrOverflow
	}
	return Amount(lo), nil
}

// Div returns a/b truncated toward zero.
func Div(a, b Amount) (Amount, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

func FromString(str string) (Amount, error) {
	v, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return 0, err
	}
	return Amount(v), nil
}

func (a Amount) Uint64() uint64 {
	return uint64(a)
}

func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}
