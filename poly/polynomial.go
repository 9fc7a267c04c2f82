// Package poly implements dense univariate polynomials over float64 and the
// bisection-based isolation of their real roots. The root finder is the
// numeric workhorse of the distance queries: those reduce a geometric
// minimization to the roots of a low-degree characteristic polynomial, then
// re-evaluate the candidates in higher precision.
package poly

import (
	"github.com/numgeom/robust/utils"
)

// Polynomial is a dense coefficient sequence c[0..deg] representing
// sum c[i] * x^i. Trailing zero coefficients are permitted; Degree reports
// the nominal degree len-1 and Trim removes the zeros. The arithmetic
// operations return new polynomials and never mutate their operands.
type Polynomial []float64

// New returns the polynomial with the given coefficients, constant term
// first.
func New(coeffs ...float64) Polynomial {
	p := make(Polynomial, len(coeffs))
	copy(p, coeffs)
	return p
}

// Degree returns len(p)-1, the nominal degree. The effective degree of a
// polynomial with trailing zero coefficients is lower; see Trim.
func (p Polynomial) Degree() int {
	return len(p) - 1
}

// Trim returns p without trailing zero coefficients. The zero polynomial
// trims to the single coefficient 0.
func (p Polynomial) Trim() Polynomial {
	n := len(p)
	for n > 1 && p[n-1] == 0 {
		n--
	}
	return p[:n]
}

// Add returns p + q.
func (p Polynomial) Add(q Polynomial) Polynomial {
	r := make(Polynomial, utils.Max(len(p), len(q)))
	copy(r, p)
	for i := range q {
		r[i] += q[i]
	}
	return r
}

// Sub returns p - q.
func (p Polynomial) Sub(q Polynomial) Polynomial {
	r := make(Polynomial, utils.Max(len(p), len(q)))
	copy(r, p)
	for i := range q {
		r[i] -= q[i]
	}
	return r
}

// Neg returns -p.
func (p Polynomial) Neg() Polynomial {
	r := make(Polynomial, len(p))
	for i := range p {
		r[i] = -p[i]
	}
	return r
}

// Scale returns s * p.
func (p Polynomial) Scale(s float64) Polynomial {
	r := make(Polynomial, len(p))
	for i := range p {
		r[i] = s * p[i]
	}
	return r
}

// Mul returns p * q. The degree of the product is deg(p) + deg(q).
func (p Polynomial) Mul(q Polynomial) Polynomial {
	if len(p) == 0 || len(q) == 0 {
		return Polynomial{}
	}
	r := make(Polynomial, len(p)+len(q)-1)
	for i := range p {
		for j := range q {
			r[i+j] += p[i] * q[j]
		}
	}
	return r
}

// Evaluate returns p(x) by Horner accumulation.
func (p Polynomial) Evaluate(x float64) float64 {
	if len(p) == 0 {
		return 0
	}
	y := p[len(p)-1]
	for i := len(p) - 2; i >= 0; i-- {
		y = y*x + p[i]
	}
	return y
}

// Derivative returns dp/dx.
func (p Polynomial) Derivative() Polynomial {
	if len(p) <= 1 {
		return Polynomial{0}
	}
	r := make(Polynomial, len(p)-1)
	for i := 1; i < len(p); i++ {
		r[i-1] = float64(i) * p[i]
	}
	return r
}

// CauchyBound returns 1 + max|c[i]/c[deg]| over i < deg, a bound on the
// magnitude of all real roots of p. The leading coefficient must be
// non-zero.
func (p Polynomial) CauchyBound() float64 {
	q := p.Trim()
	invLeading := 1 / q[len(q)-1]
	maxValue := 0.0
	for i := 0; i < len(q)-1; i++ {
		if v := utils.Abs(q[i] * invLeading); v > maxValue {
			maxValue = v
		}
	}
	return 1 + maxValue
}
