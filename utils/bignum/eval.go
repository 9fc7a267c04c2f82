package bignum

import (
	"math/big"
)

// MonomialEval evaluates y = sum x^i * poly[i].
func MonomialEval(x *big.Float, poly []*big.Float) (y *big.Float) {
	n := len(poly)
	y = new(big.Float).Set(poly[n-1])
	for i := n - 2; i >= 0; i-- {
		y.Mul(y, x)
		y.Add(y, poly[i])
	}
	return
}

// SetSlice converts a slice of float64 coefficients to big.Float values
// with prec bits of precision.
func SetSlice(coeffs []float64, prec uint) (y []*big.Float) {
	y = make([]*big.Float, len(coeffs))
	for i := range coeffs {
		y[i] = NewFloat(coeffs[i], prec)
	}
	return
}
