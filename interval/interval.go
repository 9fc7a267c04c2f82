// Package interval implements software interval arithmetic over the
// hardware floating-point types. A value is represented by a closed interval
// [lo, hi] guaranteed to contain the true real-valued result of the
// expression it was computed from: every arithmetic operation rounds its
// low endpoint toward -Inf and its high endpoint toward +Inf by one ulp
// after the hardware operation. This permits a fast floating-point-only
// pass that either certifies the sign of a predicate or signals that exact
// arithmetic is required.
package interval

import (
	"math"
)

// Float is the set of types an Interval can be instantiated with.
type Float interface {
	float32 | float64
}

// Interval is an immutable closed interval [lo, hi] with lo <= hi. The zero
// value is the degenerate interval [0, 0].
type Interval[T Float] struct {
	lo, hi T
}

// New returns the degenerate interval [e, e].
func New[T Float](e T) Interval[T] {
	return Interval[T]{lo: e, hi: e}
}

// NewPair returns the interval [e0, e1]. The endpoints must be ordered;
// e0 > e1 is a caller error and panics.
func NewPair[T Float](e0, e1 T) Interval[T] {
	if e0 > e1 {
		panic("interval: endpoints out of order")
	}
	return Interval[T]{lo: e0, hi: e1}
}

// FromInt returns the degenerate interval containing e promoted to T.
func FromInt[T Float](e int32) Interval[T] {
	return New(T(e))
}

// Lo returns the low endpoint.
func (u Interval[T]) Lo() T { return u.lo }

// Hi returns the high endpoint.
func (u Interval[T]) Hi() T { return u.hi }

// Width returns hi - lo.
func (u Interval[T]) Width() T { return u.hi - u.lo }

// Contains reports whether x lies in [lo, hi].
func (u Interval[T]) Contains(x T) bool { return u.lo <= x && x <= u.hi }

// ContainsZero reports whether 0 lies in [lo, hi].
func (u Interval[T]) ContainsZero() bool { return u.lo <= 0 && 0 <= u.hi }

// Sign returns +1 if the interval is entirely positive, -1 if entirely
// negative and 0 if the sign cannot be certified.
func (u Interval[T]) Sign() int {
	if u.lo > 0 {
		return 1
	}
	if u.hi < 0 {
		return -1
	}
	return 0
}

// Neg returns [-hi, -lo].
func (u Interval[T]) Neg() Interval[T] {
	return Interval[T]{lo: -u.hi, hi: -u.lo}
}

// Add returns an interval containing u + v.
func (u Interval[T]) Add(v Interval[T]) Interval[T] {
	return Interval[T]{
		lo: down(u.lo + v.lo),
		hi: up(u.hi + v.hi),
	}
}

// Sub returns an interval containing u - v.
func (u Interval[T]) Sub(v Interval[T]) Interval[T] {
	return Interval[T]{
		lo: down(u.lo - v.hi),
		hi: up(u.hi - v.lo),
	}
}

// Mul returns an interval containing u * v. The case split on the signs of
// the operands selects which endpoint products bound the result; when both
// operands straddle zero, all four corner products must be examined.
func (u Interval[T]) Mul(v Interval[T]) Interval[T] {
	if u.lo >= 0 {
		if v.lo >= 0 {
			return mul(u.lo, u.hi, v.lo, v.hi)
		} else if v.hi <= 0 {
			return mul(u.hi, u.lo, v.lo, v.hi)
		} else { // v.lo < 0 < v.hi
			return mul(u.hi, u.hi, v.lo, v.hi)
		}
	} else if u.hi <= 0 {
		if v.lo >= 0 {
			return mul(u.lo, u.hi, v.hi, v.lo)
		} else if v.hi <= 0 {
			return mul(u.hi, u.lo, v.hi, v.lo)
		} else { // v.lo < 0 < v.hi
			return mul(u.lo, u.lo, v.hi, v.lo)
		}
	} else { // u.lo < 0 < u.hi
		if v.lo >= 0 {
			return mul(u.lo, u.hi, v.hi, v.hi)
		} else if v.hi <= 0 {
			return mul(u.hi, u.lo, v.lo, v.lo)
		} else { // v.lo < 0 < v.hi
			return mul2(u.lo, u.hi, v.lo, v.hi)
		}
	}
}

// Div returns an interval containing u / v. If v does not contain zero, the
// result is u times the reciprocal interval of v. If exactly one endpoint
// of v is zero, the result is unbounded on the side the reciprocal blows up
// toward, unless the dividend endpoint feeding that corner is exactly zero,
// in which case the corner product is zero and the result stays bounded. If
// zero is interior to v, the result is (-Inf, +Inf); callers needing a
// tighter answer must branch on the sub-intervals [v.lo, 0] and [0, v.hi].
func (u Interval[T]) Div(v Interval[T]) Interval[T] {
	if !v.ContainsZero() {
		return u.Mul(reciprocal(v.lo, v.hi))
	}
	if v.lo == 0 && v.hi != 0 {
		return u.Mul(reciprocalDown(v.hi))
	}
	if v.hi == 0 && v.lo != 0 {
		return u.Mul(reciprocalUp(v.lo))
	}
	// v.lo < 0 < v.hi, or v = [0, 0].
	return Interval[T]{lo: inf[T](-1), hi: inf[T](1)}
}

// prod returns a*b with 0 * ±Inf evaluating to 0 rather than NaN. A zero
// endpoint is exact, so the corner product it contributes is exactly zero
// no matter how large the other factor's bound is; the hardware NaN would
// otherwise leak into the result when a divisor endpoint reciprocates to
// infinity.
func prod[T Float](a, b T) T {
	if a == 0 || b == 0 {
		return 0
	}
	return a * b
}

func mul[T Float](u0, u1, v0, v1 T) Interval[T] {
	return Interval[T]{
		lo: down(prod(u0, v0)),
		hi: up(prod(u1, v1)),
	}
}

// mul2 handles the straddling-times-straddling case: the lower bound is the
// smaller of the two cross products and the upper bound the larger of the
// two like-signed products.
func mul2[T Float](u0, u1, v0, v1 T) Interval[T] {
	u0v1 := down(prod(u0, v1))
	u1v0 := down(prod(u1, v0))
	u0v0 := up(prod(u0, v0))
	u1v1 := up(prod(u1, v1))
	lo := u0v1
	if u1v0 < lo {
		lo = u1v0
	}
	hi := u0v0
	if u1v1 > hi {
		hi = u1v1
	}
	return Interval[T]{lo: lo, hi: hi}
}

func reciprocal[T Float](v0, v1 T) Interval[T] {
	return Interval[T]{
		lo: down(1 / v1),
		hi: up(1 / v0),
	}
}

func reciprocalDown[T Float](v T) Interval[T] {
	return Interval[T]{lo: down(1 / v), hi: inf[T](1)}
}

func reciprocalUp[T Float](v T) Interval[T] {
	return Interval[T]{lo: inf[T](-1), hi: up(1 / v)}
}

// down rounds x one ulp toward -Inf.
func down[T Float](x T) T {
	switch v := any(x).(type) {
	case float32:
		return T(math.Nextafter32(v, float32(math.Inf(-1))))
	case float64:
		return T(math.Nextafter(v, math.Inf(-1)))
	}
	panic("unreachable")
}

// up rounds x one ulp toward +Inf.
func up[T Float](x T) T {
	switch v := any(x).(type) {
	case float32:
		return T(math.Nextafter32(v, float32(math.Inf(1))))
	case float64:
		return T(math.Nextafter(v, math.Inf(1)))
	}
	panic("unreachable")
}

func inf[T Float](sign int) T {
	return T(math.Inf(sign))
}
