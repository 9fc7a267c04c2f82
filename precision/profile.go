// Package precision predicts the number of bits required to represent the
// exact result of arithmetic expressions over arbitrary-precision number and
// rational operands. The estimates are used to pre-size storage before the
// exact computation is performed; they never under-estimate, so a consumer
// allocating the predicted number of bits is guaranteed not to round.
package precision

import "github.com/numgeom/robust/utils"

// Kind identifies a hardware-representable numeric type from which a base
// profile can be derived.
type Kind int

const (
	Float32 Kind = iota
	Float64
	Int32
	Int64
	Uint32
	Uint64
)

// Parameters describes the exponent range and bit length needed to exactly
// represent a number produced by a chain of arithmetic operations.
// MaxWords is the number of 32-bit words covering MaxBits.
type Parameters struct {
	MinExponent int32
	MaxExponent int32
	MaxBits     int32
	MaxWords    int32
}

func newParameters(minExponent, maxExponent, maxBits int32) Parameters {
	return Parameters{
		MinExponent: minExponent,
		MaxExponent: maxExponent,
		MaxBits:     maxBits,
		MaxWords:    words(maxBits),
	}
}

func words(bits int32) int32 {
	w := bits / 32
	if bits%32 > 0 {
		w++
	}
	return w
}

// IsValid reports whether the parameters describe a representable number:
// a positive bit length, a consistent exponent range and the word-count
// invariant.
func (p Parameters) IsValid() bool {
	return p.MaxBits > 0 && p.MinExponent <= p.MaxExponent && p.MaxWords == words(p.MaxBits)
}

// Profile carries the parameters for the two exact representations of a
// value: Number for a pure arbitrary-precision number and Rational for a
// numerator/denominator pair. The numerator and denominator of a rational
// are assumed to share the same parameters.
type Profile struct {
	Number   Parameters
	Rational Parameters
}

// New returns the profile for a value with the given exponent range and bit
// length, identical for both representations.
func New(minExponent, maxExponent, maxBits int32) Profile {
	p := newParameters(minExponent, maxExponent, maxBits)
	return Profile{Number: p, Rational: p}
}

// FromKind returns the base profile of a hardware type. The triples match
// the IEEE-754 binary32/binary64 and two's-complement ranges exactly.
func FromKind(kind Kind) Profile {
	switch kind {
	case Float32:
		return New(-149, 127, 24)
	case Float64:
		return New(-1074, 1023, 53)
	case Int32:
		return New(0, 30, 31)
	case Int64:
		return New(0, 62, 63)
	case Uint32:
		return New(0, 31, 32)
	case Uint64:
		return New(0, 63, 64)
	default:
		panic("precision: unknown kind")
	}
}

// Add returns the profile of a sum (or difference) of two values.
//
// For the number representation the exponent range is the union of the
// input ranges widened by a possible carry-out, and the bit length spans
// from the larger maximum exponent down to the smaller minimum exponent,
// plus the carry bit when the operand mantissas can overlap.
//
// For the rational representation, n0/d0 + n1/d1 = (n0*d1 + n1*d0)/(d0*d1):
// the profile is the addition of the two cross-product profiles, with a
// carry-out bit always reserved.
func Add(a, b Profile) Profile {
	var result Profile

	n := &result.Number
	n.MinExponent = utils.Min(a.Number.MinExponent, b.Number.MinExponent)
	hi, lo := a.Number, b.Number
	if hi.MaxExponent < lo.MaxExponent {
		hi, lo = lo, hi
	}
	n.MaxExponent = hi.MaxExponent
	if hi.MaxExponent-hi.MaxBits+1 <= lo.MaxExponent {
		n.MaxExponent++
	}
	n.MaxBits = hi.MaxExponent - lo.MinExponent + 1
	if n.MaxBits <= hi.MaxBits+lo.MaxBits-1 {
		n.MaxBits++
	}
	n.MaxWords = words(n.MaxBits)

	mulMinExponent := a.Rational.MinExponent + b.Rational.MinExponent
	mulMaxExponent := a.Rational.MaxExponent + b.Rational.MaxExponent + 1
	mulMaxBits := a.Rational.MaxBits + b.Rational.MaxBits

	// The cross products n0*d1 and n1*d0 share the multiplication profile,
	// so their sum always has a carry-out.
	r := &result.Rational
	r.MinExponent = mulMinExponent
	r.MaxExponent = mulMaxExponent + 1
	r.MaxBits = mulMaxExponent - mulMinExponent + 1
	if r.MaxBits <= 2*mulMaxBits-1 {
		r.MaxBits++
	}
	r.MaxWords = words(r.MaxBits)

	return result
}

// Sub returns the profile of a difference. Subtraction requires the same
// precision as addition.
func Sub(a, b Profile) Profile {
	return Add(a, b)
}

// Mul returns the profile of a product. The bit length is the sum of the
// input bit lengths and the exponent range is the componentwise sum widened
// by one. The rational form composes numerator and denominator identically.
func Mul(a, b Profile) Profile {
	var result Profile

	result.Number = newParameters(
		a.Number.MinExponent+b.Number.MinExponent,
		a.Number.MaxExponent+b.Number.MaxExponent+1,
		a.Number.MaxBits+b.Number.MaxBits,
	)
	result.Rational = newParameters(
		a.Rational.MinExponent+b.Rational.MinExponent,
		a.Rational.MaxExponent+b.Rational.MaxExponent+1,
		a.Rational.MaxBits+b.Rational.MaxBits,
	)

	return result
}

// Div returns the profile of a quotient. Division is not closed over the
// arbitrary-precision numbers, so the Number parameters of the result are
// zero. The rational form (n0/d0)/(n1/d1) = (n0*d1)/(n1*d0) has the same
// parameters as a multiplication.
func Div(a, b Profile) Profile {
	var result Profile
	result.Rational = newParameters(
		a.Rational.MinExponent+b.Rational.MinExponent,
		a.Rational.MaxExponent+b.Rational.MaxExponent+1,
		a.Rational.MaxBits+b.Rational.MaxBits,
	)
	return result
}

// Cmp returns the profile required to exactly compare two values. A single
// profile covers all six comparison operators: the number form needs only
// the extremes of the inputs, while the rational form must cross-multiply
// numerators and denominators, which is the subtraction profile.
func Cmp(a, b Profile) Profile {
	var result Profile

	result.Number = newParameters(
		utils.Min(a.Number.MinExponent, b.Number.MinExponent),
		utils.Max(a.Number.MaxExponent, b.Number.MaxExponent),
		utils.Max(a.Number.MaxBits, b.Number.MaxBits),
	)
	result.Rational = newParameters(
		a.Rational.MinExponent+b.Rational.MinExponent,
		a.Rational.MaxExponent+b.Rational.MaxExponent+1,
		a.Rational.MaxBits+b.Rational.MaxBits,
	)

	return result
}
