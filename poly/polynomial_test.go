package poly

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/numgeom/robust/utils/bignum"
	"github.com/numgeom/robust/utils/sampling"
)

func randomPolynomial(prng sampling.PRNG, degree int) Polynomial {
	p := make(Polynomial, degree+1)
	for i := range p {
		p[i] = sampling.Float64(prng, -1, 1)
	}
	if p[degree] == 0 {
		p[degree] = 1
	}
	return p
}

func TestArithmetic(t *testing.T) {

	t.Run("Add", func(t *testing.T) {
		p := New(1, 2).Add(New(3, 0, 4))
		require.Empty(t, cmp.Diff(Polynomial{4, 2, 4}, p))
	})

	t.Run("Sub", func(t *testing.T) {
		p := New(1, 2, 3).Sub(New(1, 2, 3))
		require.Empty(t, cmp.Diff(Polynomial{0, 0, 0}, p))
		require.Equal(t, 0, p.Trim().Degree())
	})

	t.Run("Mul", func(t *testing.T) {
		// (1+x)(1-x) = 1 - x^2
		p := New(1, 1).Mul(New(1, -1))
		require.Empty(t, cmp.Diff(Polynomial{1, 0, -1}, p))
	})

	t.Run("Evaluate", func(t *testing.T) {
		// 2 - 3x + x^3 at x=2: 2 - 6 + 8 = 4
		require.Equal(t, 4.0, New(2, -3, 0, 1).Evaluate(2))
	})

	t.Run("Derivative", func(t *testing.T) {
		// d/dx (1 + 2x + 3x^2) = 2 + 6x
		require.Empty(t, cmp.Diff(Polynomial{2, 6}, New(1, 2, 3).Derivative()))
		require.Empty(t, cmp.Diff(Polynomial{0}, New(5).Derivative()))
	})
}

func TestIdentities(t *testing.T) {

	prng, err := sampling.NewSeededPRNG("poly/identities")
	require.NoError(t, err)

	t.Run("AddAssociativity", func(t *testing.T) {
		for i := 0; i < 256; i++ {
			p := randomPolynomial(prng, 3)
			q := randomPolynomial(prng, 5)
			r := randomPolynomial(prng, 2)
			require.Empty(t, cmp.Diff(p.Add(q).Add(r), p.Add(q.Add(r))))
		}
	})

	t.Run("MulEvaluate", func(t *testing.T) {
		for i := 0; i < 256; i++ {
			p := randomPolynomial(prng, 4)
			q := randomPolynomial(prng, 3)
			x := sampling.Float64(prng, -2, 2)
			require.InDelta(t, p.Evaluate(x)*q.Evaluate(x), p.Mul(q).Evaluate(x), 1e-9)
		}
	})

	t.Run("NegSub", func(t *testing.T) {
		for i := 0; i < 256; i++ {
			p := randomPolynomial(prng, 4)
			q := randomPolynomial(prng, 4)
			require.Empty(t, cmp.Diff(p.Sub(q), p.Add(q.Neg())))
		}
	})

	// Horner in float64 against the same monomial sum accumulated at 256
	// bits.
	t.Run("EvaluateBigFloat", func(t *testing.T) {
		for i := 0; i < 256; i++ {
			p := randomPolynomial(prng, 6)
			x := sampling.Float64(prng, -2, 2)
			ref, _ := bignum.MonomialEval(
				bignum.NewFloat(x, 256), bignum.SetSlice(p, 256)).Float64()
			require.InDelta(t, ref, p.Evaluate(x), 1e-12)
		}
	})

	t.Run("MulDegree", func(t *testing.T) {
		for i := 0; i < 256; i++ {
			p := randomPolynomial(prng, 1+int(sampling.Uint64(prng)%6))
			q := randomPolynomial(prng, 1+int(sampling.Uint64(prng)%6))
			require.Equal(t, p.Degree()+q.Degree(), p.Mul(q).Degree())
		}
	})
}

func TestCauchyBound(t *testing.T) {
	// Roots of (x-1)(x-2)(x-3) all lie within the Cauchy bound.
	p := New(-6, 11, -6, 1)
	bound := p.CauchyBound()
	require.Greater(t, bound, 3.0)
}
