package interval

import (
	"math"
	"math/big"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"

	"github.com/numgeom/robust/utils/sampling"
)

func TestNewPair(t *testing.T) {
	u := NewPair(-1.0, 2.0)
	require.Equal(t, -1.0, u.Lo())
	require.Equal(t, 2.0, u.Hi())
	require.Panics(t, func() { NewPair(2.0, -1.0) })
}

func TestNeg(t *testing.T) {
	u := NewPair(-1.0, 2.0).Neg()
	require.Equal(t, -2.0, u.Lo())
	require.Equal(t, 1.0, u.Hi())
}

func TestSign(t *testing.T) {
	require.Equal(t, 1, NewPair(0.5, 2.0).Sign())
	require.Equal(t, -1, NewPair(-2.0, -0.5).Sign())
	require.Equal(t, 0, NewPair(-1.0, 1.0).Sign())
	require.Equal(t, 0, New(0.0).Sign())
}

// The quotient [1,1]/[3,3] must bracket 1/3 within a couple of ulps.
func TestDivOneThird(t *testing.T) {
	w := New(1.0).Div(New(3.0))

	third := new(big.Float).SetPrec(256).Quo(
		new(big.Float).SetPrec(256).SetFloat64(1),
		new(big.Float).SetPrec(256).SetFloat64(3),
	)

	require.LessOrEqual(t, new(big.Float).SetFloat64(w.Lo()).Cmp(third), 0)
	require.GreaterOrEqual(t, new(big.Float).SetFloat64(w.Hi()).Cmp(third), 0)

	ulp := math.Nextafter(1.0/3.0, math.Inf(1)) - 1.0/3.0
	require.LessOrEqual(t, w.Width(), 4*ulp)
}

func TestDivByZeroContaining(t *testing.T) {
	u := NewPair(1.0, 2.0)

	w := u.Div(NewPair(-1.0, 1.0))
	require.True(t, math.IsInf(w.Lo(), -1))
	require.True(t, math.IsInf(w.Hi(), 1))

	// Divisor with zero as its low endpoint: one-sided unbounded.
	w = u.Div(NewPair(0.0, 2.0))
	require.False(t, math.IsInf(w.Lo(), -1))
	require.True(t, math.IsInf(w.Hi(), 1))

	// Divisor with zero as its high endpoint.
	w = u.Div(NewPair(-2.0, 0.0))
	require.True(t, math.IsInf(w.Lo(), -1))
	require.False(t, math.IsInf(w.Hi(), 1))
}

// A zero-endpoint divisor reciprocates to an infinite endpoint. When the
// dividend also touches zero, the corner product must come out as an exact
// zero, never the hardware 0*Inf NaN; the result always brackets the true
// quotient set.
func TestDivZeroEndpointDivisor(t *testing.T) {

	requireNotNaN := func(t *testing.T, w Interval[float64]) {
		t.Helper()
		require.False(t, math.IsNaN(w.Lo()))
		require.False(t, math.IsNaN(w.Hi()))
	}

	t.Run("ZeroDividend", func(t *testing.T) {
		w := New(0.0).Div(NewPair(0.0, 2.0))
		requireNotNaN(t, w)
		require.True(t, w.ContainsZero())
	})

	t.Run("ZeroTouchingDividend", func(t *testing.T) {
		w := NewPair(0.0, 1.0).Div(NewPair(0.0, 2.0))
		requireNotNaN(t, w)
		require.True(t, w.Contains(0.25)) // 0.5/2
		require.True(t, math.IsInf(w.Hi(), 1))
	})

	t.Run("NegativeZeroEndpoints", func(t *testing.T) {
		// x/y for x in [-1,0], y in [-2,0) covers [0, +Inf).
		w := NewPair(-1.0, 0.0).Div(NewPair(-2.0, 0.0))
		requireNotNaN(t, w)
		require.True(t, w.Contains(0.25))
		require.True(t, math.IsInf(w.Hi(), 1))
	})

	t.Run("SubnormalDivisor", func(t *testing.T) {
		// The reciprocal endpoint overflows to +Inf even though the divisor
		// is strictly positive.
		w := NewPair(0.0, 1.0).Div(New(5e-324))
		requireNotNaN(t, w)
		require.True(t, w.ContainsZero())
	})

	t.Run("ZeroOverPoint", func(t *testing.T) {
		w := FromInt[float64](0).Div(FromInt[float64](3))
		requireNotNaN(t, w)
		require.True(t, w.ContainsZero())
	})
}

func TestFloat32(t *testing.T) {
	w := New[float32](1).Div(New[float32](3))
	third := float64(1) / float64(3)
	require.LessOrEqual(t, float64(w.Lo()), third)
	require.GreaterOrEqual(t, float64(w.Hi()), third)
	require.LessOrEqual(t, w.Width(), float32(1e-6))
}

// Soundness: for degenerate operand intervals [a,a] op [b,b], the result
// must contain the reference value computed at 256 bits. Operands are drawn
// with uniformly random bit patterns so subnormals and extreme exponents
// are exercised.
func TestSoundness(t *testing.T) {

	prng, err := sampling.NewSeededPRNG("interval/soundness")
	require.NoError(t, err)

	ops := []struct {
		name string
		intv func(u, v Interval[float64]) Interval[float64]
		ref  func(z, a, b *big.Float) *big.Float
	}{
		{"Add", Interval[float64].Add, (*big.Float).Add},
		{"Sub", Interval[float64].Sub, (*big.Float).Sub},
		{"Mul", Interval[float64].Mul, (*big.Float).Mul},
		{"Div", Interval[float64].Div, (*big.Float).Quo},
	}

	for _, op := range ops {
		op := op
		t.Run(op.name, func(t *testing.T) {

			widths := make([]float64, 0, 4096)

			for i := 0; i < 4096; i++ {
				a := sampling.Float64Bits(prng)
				b := sampling.Float64Bits(prng)
				if op.name == "Div" && b == 0 {
					continue
				}

				w := op.intv(New(a), New(b))

				ref := op.ref(
					new(big.Float).SetPrec(256),
					new(big.Float).SetPrec(256).SetFloat64(a),
					new(big.Float).SetPrec(256).SetFloat64(b),
				)

				lo := new(big.Float).SetFloat64(w.Lo())
				hi := new(big.Float).SetFloat64(w.Hi())
				require.LessOrEqual(t, lo.Cmp(ref), 0, "a=%x b=%x", a, b)
				require.GreaterOrEqual(t, hi.Cmp(ref), 0, "a=%x b=%x", a, b)

				// Track relative widths of the results that stay in the
				// normal range; the wrapper must remain within a few ulps
				// of the true value there. Subnormal and overflowed results
				// are sound but their relative width is not meaningful.
				if r, _ := ref.Float64(); math.Abs(r) > 1e-300 && math.Abs(r) < 1e300 &&
					!math.IsInf(w.Lo(), 0) && !math.IsInf(w.Hi(), 0) {
					widths = append(widths, math.Abs(w.Width()/r))
				}
			}

			maxWidth, err := stats.Max(widths)
			require.NoError(t, err)
			meanWidth, err := stats.Mean(widths)
			require.NoError(t, err)
			require.Less(t, maxWidth, 1e-14)
			require.Less(t, meanWidth, 1e-15)
		})
	}
}

// Monotonicity under containment: widening either operand can only widen
// the result.
func TestContainmentMonotonicity(t *testing.T) {

	prng, err := sampling.NewSeededPRNG("interval/monotonicity")
	require.NoError(t, err)

	contains := func(outer, inner Interval[float64]) bool {
		return outer.Lo() <= inner.Lo() && inner.Hi() <= outer.Hi()
	}

	ops := map[string]func(u, v Interval[float64]) Interval[float64]{
		"Add": Interval[float64].Add,
		"Sub": Interval[float64].Sub,
		"Mul": Interval[float64].Mul,
		"Div": Interval[float64].Div,
	}

	for name, op := range ops {
		name, op := name, op
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 2048; i++ {
				a := sampling.Float64(prng, -100, 100)
				b := sampling.Float64(prng, -100, 100)
				da := sampling.Float64(prng, 0, 1)
				db := sampling.Float64(prng, 0, 1)

				a0 := NewPair(a, a+da)
				a1 := NewPair(a-da, a+2*da)
				b0 := NewPair(b, b+db)
				b1 := NewPair(b-db, b+2*db)

				require.True(t, contains(op(a1, b1), op(a0, b0)),
					"a0=%v a1=%v b0=%v b1=%v", a0, a1, b0, b1)
			}
		})
	}
}
