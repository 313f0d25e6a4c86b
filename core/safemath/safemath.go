// Package safemath provides the checked arithmetic primitives used on
// every balance, allowance and monetary total in the repository. Raw
// unchecked arithmetic on those quantities is not permitted anywhere else.
package safemath

import (
	"rose-token-crowdsale/core/model"

	"github.com/holiman/uint256"
)

// Add returns a+b, or ErrOverflow if the sum wraps.
func Add(a, b *uint256.Int) (*uint256.Int, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, model.ErrOverflow
	}
	return sum, nil
}

// Sub returns a-b, or ErrUnderflow if b > a.
func Sub(a, b *uint256.Int) (*uint256.Int, error) {
	diff, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, model.ErrUnderflow
	}
	return diff, nil
}

// Mul returns a*b, or ErrOverflow if the product is not representable.
// A zero multiplicand short-circuits to zero.
func Mul(a, b *uint256.Int) (*uint256.Int, error) {
	if a.IsZero() {
		return new(uint256.Int), nil
	}
	product, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, model.ErrOverflow
	}
	return product, nil
}

// Div returns a/b truncated, or ErrDivisionByZero if b is zero.
func Div(a, b *uint256.Int) (*uint256.Int, error) {
	if b.IsZero() {
		return nil, model.ErrDivisionByZero
	}
	return new(uint256.Int).Div(a, b), nil
}
