package dist

import (
	"math/big"

	"github.com/numgeom/robust/interval"
	"github.com/numgeom/robust/poly"
	"github.com/numgeom/robust/precision"
	"github.com/numgeom/robust/utils"
	"github.com/numgeom/robust/utils/bignum"
)

// rootFinder isolates the real roots of the characteristic polynomials the
// queries reduce to. It is stateless across calls, so one instance serves
// the whole package.
var rootFinder = poly.NewFinder(1024)

// Relative tolerance separating "distinct minima" from "potential tie" among
// candidate squared distances. Candidates within this relative gap are
// re-evaluated in big.Float arithmetic before the tie is decided, so the
// tolerance only has to be wide enough to cover the rounding of the
// double-precision candidate reconstruction.
const sqrTieTol = 1e-12

// Precisions for the escalation paths, sized by the precision estimator
// over the expression trees evaluated below.
var (
	// a*b - c*d over float64 inputs: a product profile combined by a
	// subtraction. At this mantissa length the products and the difference
	// are exact, so the recomputed sign is the true sign.
	detPrec = func() uint {
		d := precision.FromKind(precision.Float64)
		m := precision.Mul(d, d)
		return uint(precision.Sub(m, m).Number.MaxBits)
	}()

	// The candidate squared-distance reconstruction: delta components are a
	// float64 plus two 3-factor products; cross components are differences
	// of products of those sums; then dots of the crosses, squares and
	// final additions. The profile follows that tree, so none of the
	// products or sums in deltaCircleSqr round before the square root; the
	// square root itself is correctly rounded at this precision.
	sqrPrec = func() uint {
		d := precision.FromKind(precision.Float64)
		prod3 := precision.Mul(precision.Mul(d, d), d)
		delta := precision.Add(d, precision.Add(prod3, prod3))
		cc := precision.Sub(precision.Mul(d, delta), precision.Mul(d, delta))
		dotc := precision.Add(precision.Add(
			precision.Mul(cc, cc), precision.Mul(cc, cc)), precision.Mul(cc, cc))
		nd := precision.Add(precision.Add(
			precision.Mul(d, delta), precision.Mul(d, delta)), precision.Mul(d, delta))
		general := precision.Add(precision.Mul(nd, nd), dotc)

		deltaSqr := precision.Add(precision.Add(
			precision.Mul(delta, delta), precision.Mul(delta, delta)),
			precision.Mul(delta, delta))
		axis := precision.Add(deltaSqr, precision.Mul(d, d))

		return uint(utils.Max(general.Number.MaxBits, axis.Number.MaxBits))
	}()
)

// detSign returns the sign of a*b - c*d. A software-interval evaluation
// certifies most cases without leaving hardware floats; when the interval
// straddles zero the determinant is recomputed exactly in big.Float at a
// precision under which the two products and their difference cannot
// round.
func detSign(a, b, c, d float64) int {
	w := interval.New(a).Mul(interval.New(b)).Sub(interval.New(c).Mul(interval.New(d)))
	if s := w.Sign(); s != 0 {
		return s
	}

	ab := new(big.Float).SetPrec(detPrec).SetFloat64(a)
	ab.Mul(ab, new(big.Float).SetPrec(detPrec).SetFloat64(b))
	cd := new(big.Float).SetPrec(detPrec).SetFloat64(c)
	cd.Mul(cd, new(big.Float).SetPrec(detPrec).SetFloat64(d))
	return bignum.Sign(ab.Sub(ab, cd))
}

// crossIsZero reports whether Cross(v, w) is exactly the zero vector,
// deciding each component with detSign rather than trusting the rounded
// hardware cross product.
func crossIsZero(v, w Vector3) bool {
	return detSign(v[1], w[2], v[2], w[1]) == 0 &&
		detSign(v[2], w[0], v[0], w[2]) == 0 &&
		detSign(v[0], w[1], v[1], w[0]) == 0
}

// bvec3 is a vector in R^3 with big.Float components, used by the
// high-precision re-evaluation of near-tied candidates.
type bvec3 [3]*big.Float

func newBvec3(v Vector3, prec uint) bvec3 {
	return bvec3{
		new(big.Float).SetPrec(prec).SetFloat64(v[0]),
		new(big.Float).SetPrec(prec).SetFloat64(v[1]),
		new(big.Float).SetPrec(prec).SetFloat64(v[2]),
	}
}

func (v bvec3) add(w bvec3) bvec3 {
	return bvec3{
		new(big.Float).SetPrec(v[0].Prec()).Add(v[0], w[0]),
		new(big.Float).SetPrec(v[1].Prec()).Add(v[1], w[1]),
		new(big.Float).SetPrec(v[2].Prec()).Add(v[2], w[2]),
	}
}

func (v bvec3) scale(s *big.Float) bvec3 {
	return bvec3{
		new(big.Float).SetPrec(v[0].Prec()).Mul(v[0], s),
		new(big.Float).SetPrec(v[1].Prec()).Mul(v[1], s),
		new(big.Float).SetPrec(v[2].Prec()).Mul(v[2], s),
	}
}

func (v bvec3) dot(w bvec3) *big.Float {
	prec := v[0].Prec()
	y := new(big.Float).SetPrec(prec).Mul(v[0], w[0])
	t := new(big.Float).SetPrec(prec)
	y.Add(y, t.Mul(v[1], w[1]))
	y.Add(y, new(big.Float).SetPrec(prec).Mul(v[2], w[2]))
	return y
}

func (v bvec3) cross(w bvec3) bvec3 {
	prec := v[0].Prec()
	det := func(a, b, c, d *big.Float) *big.Float {
		y := new(big.Float).SetPrec(prec).Mul(a, b)
		t := new(big.Float).SetPrec(prec).Mul(c, d)
		return y.Sub(y, t)
	}
	return bvec3{
		det(v[1], w[2], v[2], w[1]),
		det(v[2], w[0], v[0], w[2]),
		det(v[0], w[1], v[1], w[0]),
	}
}

// sqrBig recomputes the squared distance of a circle-circle candidate in
// big.Float arithmetic. The candidate is identified by its angular
// position (cs, sn) on circle1; the geometry follows the hardware path of
// CircleCircle exactly, with every rounding removed up to the square
// roots, which are correctly rounded at sqrPrec bits.
func sqrBig(circle0, circle1 Circle3, u1, v1 Vector3, cs, sn float64) *big.Float {
	prec := sqrPrec

	d := newBvec3(circle1.Center.Sub(circle0.Center), prec)
	n0 := newBvec3(circle0.Normal, prec)
	r0 := bignum.NewFloat(circle0.Radius, prec)
	r1 := bignum.NewFloat(circle1.Radius, prec)

	// delta = D + r1*(cs*U1 + sn*V1)
	bu := newBvec3(u1, prec).scale(bignum.NewFloat(cs, prec))
	bv := newBvec3(v1, prec).scale(bignum.NewFloat(sn, prec))
	delta := d.add(bu.add(bv).scale(r1))

	return deltaCircleSqr(n0, r0, delta, prec)
}

// sqrBigLine recomputes the squared distance between the line point
// D + t*M (relative to the circle center) and the circle, in big.Float
// arithmetic at sqrPrec bits.
func sqrBigLine(circle Circle3, d, m Vector3, t float64) *big.Float {
	prec := sqrPrec
	delta := newBvec3(d, prec).add(newBvec3(m, prec).scale(bignum.NewFloat(t, prec)))
	n := newBvec3(circle.Normal, prec)
	r := bignum.NewFloat(circle.Radius, prec)
	return deltaCircleSqr(n, r, delta, prec)
}

// deltaCircleSqr is the squared distance between the point delta (relative
// to the circle center) and the circle with unit normal n and radius r:
// (|n x delta| - r)^2 + (n . delta)^2, or |delta|^2 + r^2 when delta lies
// on the circle's axis.
func deltaCircleSqr(n bvec3, r *big.Float, delta bvec3, prec uint) *big.Float {
	ndDelta := n.dot(delta)
	nxDelta := n.cross(delta)

	lenSqr := nxDelta.dot(nxDelta)
	if bignum.Sign(lenSqr) > 0 {
		diff := new(big.Float).SetPrec(prec).Sqrt(lenSqr)
		diff.Sub(diff, r)
		diff.Mul(diff, diff)
		sqr := new(big.Float).SetPrec(prec).Mul(ndDelta, ndDelta)
		return sqr.Add(sqr, diff)
	}

	// The point lies on the circle's axis; every circle point is equally
	// close, at squared distance |delta|^2 + r^2.
	sqr := delta.dot(delta)
	rsqr := new(big.Float).SetPrec(prec).Mul(r, r)
	return sqr.Add(sqr, rsqr)
}
