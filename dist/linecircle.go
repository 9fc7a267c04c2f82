package dist

import (
	"math"
	"sort"

	"github.com/numgeom/robust/poly"
)

// LineCircleResult reports the minimum distance between a line and a circle
// in 3D. NumClosestPairs is 1 or 2; when 2, the minimum is attained at two
// distinct pairs and both are populated. Equidistant is true only when the
// line is the circle's axis, in which case every circle point is closest:
// LineClosest[0] is the circle center and CircleClosest[0] is an arbitrary
// representative on the circle.
type LineCircleResult struct {
	Distance        float64
	SqrDistance     float64
	NumClosestPairs int
	LineClosest     [2]Vector3
	CircleClosest   [2]Vector3
	Equidistant     bool
}

var lcBisector = poly.NewBisector(2048)

type lcCandidate struct {
	t             float64
	sqrDistance   float64
	lineClosest   Vector3
	circleClosest Vector3
	equidistant   bool
}

// LineCircle computes the minimum distance between a line and a circle in
// 3D using the polynomial formulation: the critical line parameters are
// the real roots of a quartic, except in degenerate configurations that
// admit closed forms. Direction and Normal must be unit length.
func LineCircle(line Line3, circle Circle3) LineCircleResult {
	var result LineCircleResult

	d := line.Origin.Sub(circle.Center)
	nxM := circle.Normal.Cross(line.Direction)
	nxD := circle.Normal.Cross(d)

	switch {
	case crossIsZero(circle.Normal, line.Direction):
		if !crossIsZero(circle.Normal, d) {
			// The line is the circle's axis direction through a point off
			// the axis: H(t) = |N x D|^2 * (t + M.D)^2.
			result.NumClosestPairs = 1
			t := -line.Direction.Dot(d)
			result.LineClosest[0], result.CircleClosest[0] = closestPair(line, circle, d, t)
		} else {
			// The line is the circle's axis.
			u := Orthogonal(circle.Normal)
			result.NumClosestPairs = 1
			result.LineClosest[0] = circle.Center
			result.CircleClosest[0] = circle.Center.Add(u.Scale(circle.Radius))
			result.Equidistant = true
		}

	case crossIsZero(circle.Normal, d):
		// The line passes through the circle center, not parallel to the
		// normal: H(t) = |N x M|^2 * t^2 * (t^2 - r^2*|N x M|^2), and the
		// two symmetric nonzero roots realize the minimum.
		result.NumClosestPairs = 2
		t := circle.Radius * nxM.Length()
		result.LineClosest[0], result.CircleClosest[0] = closestPair(line, circle, d, t)
		result.LineClosest[1], result.CircleClosest[1] = closestPair(line, circle, d, -t)

	case circle.Normal.Dot(line.Direction) != 0:
		lineCircleQuartic(line, circle, d, nxM, nxD, &result)

	default:
		// The line is parallel to the circle's plane:
		// H(t) = (t+v)^2 * ((t+v)^2 - (r^2 - u^2)).
		u := nxM.Dot(d)
		v := line.Direction.Dot(d)
		discr := circle.Radius*circle.Radius - u*u
		if discr > 0 {
			result.NumClosestPairs = 2
			rootDiscr := math.Sqrt(discr)
			result.LineClosest[0], result.CircleClosest[0] = closestPair(line, circle, d, -v+rootDiscr)
			result.LineClosest[1], result.CircleClosest[1] = closestPair(line, circle, d, -v-rootDiscr)
		} else {
			result.NumClosestPairs = 1
			result.LineClosest[0], result.CircleClosest[0] = closestPair(line, circle, d, -v)
		}
	}

	diff := result.LineClosest[0].Sub(result.CircleClosest[0])
	result.SqrDistance = diff.Dot(diff)
	result.Distance = math.Sqrt(result.SqrDistance)
	return result
}

// lineCircleQuartic handles the generic configuration: the critical values
// of t satisfy H(t) = (a*t^2 + 2*b*t + c)*(t+d)^2 - r^2*(a*t + b)^2 = 0,
// a quartic with at least one real root.
func lineCircleQuartic(line Line3, circle Circle3, dvec, nxM, nxD Vector3, result *LineCircleResult) {
	a := nxM.Dot(nxM)
	b := nxM.Dot(nxD)
	c := nxD.Dot(nxD)
	d := line.Direction.Dot(dvec)
	rSqr := circle.Radius * circle.Radius
	aSqr, bSqr, dSqr := a*a, b*b, d*d

	h := poly.New(
		c*dSqr-bSqr*rSqr,
		2*(c*d+b*dSqr-a*b*rSqr),
		c+4*b*d+a*dSqr-aSqr*rSqr,
		2*(b+a*d),
		a,
	)

	roots := rootFinder.FindRoots(h)
	if len(roots) == 0 {
		// Unreachable in exact arithmetic (the minimum is a critical
		// point), but rounding of the coefficients can lose a root near a
		// multiple root. The vertex of the leading quadratic factor is a
		// serviceable fallback.
		roots = []float64{-d}
	}

	candidates := make([]lcCandidate, 0, len(roots))
	for _, t := range roots {
		info := lcCandidate{t: t}
		if nxDelta := nxD.Add(nxM.Scale(t)); !nxDelta.IsZero() {
			info.lineClosest, info.circleClosest = closestPair(line, circle, dvec, t)
		} else {
			u := Orthogonal(circle.Normal)
			info.lineClosest = circle.Center
			info.circleClosest = circle.Center.Add(u.Scale(circle.Radius))
			info.equidistant = true
		}
		diff := info.lineClosest.Sub(info.circleClosest)
		info.sqrDistance = diff.Dot(diff)
		candidates = append(candidates, info)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sqrDistance < candidates[j].sqrDistance
	})

	best, tied := resolveLineTie(line, circle, dvec, candidates)

	result.NumClosestPairs = 1
	result.LineClosest[0] = best.lineClosest
	result.CircleClosest[0] = best.circleClosest
	result.Equidistant = best.equidistant
	if tied != nil {
		result.NumClosestPairs = 2
		result.LineClosest[1] = tied.lineClosest
		result.CircleClosest[1] = tied.circleClosest
	}
}

// resolveLineTie mirrors resolveTie for line-circle candidates: near-tied
// double-precision squared distances are re-evaluated in big.Float before
// the tie is declared or broken.
func resolveLineTie(line Line3, circle Circle3, dvec Vector3, candidates []lcCandidate) (best, tied *lcCandidate) {
	best = &candidates[0]
	if len(candidates) < 2 {
		return best, nil
	}
	second := &candidates[1]

	gap := second.sqrDistance - best.sqrDistance
	scale := math.Max(best.sqrDistance, 1)
	if gap > sqrTieTol*scale {
		return best, nil
	}

	b0 := sqrBigLine(circle, dvec, line.Direction, best.t)
	b1 := sqrBigLine(circle, dvec, line.Direction, second.t)
	switch b0.Cmp(b1) {
	case 0:
		return best, second
	case 1:
		return second, nil
	default:
		return best, nil
	}
}

// closestPair returns the line point at parameter t and its projection onto
// the circle. dvec is Origin - Center. The line point must not lie on the
// circle's axis.
func closestPair(line Line3, circle Circle3, dvec Vector3, t float64) (lineClosest, circleClosest Vector3) {
	delta := dvec.Add(line.Direction.Scale(t))
	lineClosest = circle.Center.Add(delta)
	proj, _ := delta.Sub(circle.Normal.Scale(circle.Normal.Dot(delta))).Normalized()
	circleClosest = circle.Center.Add(proj.Scale(circle.Radius))
	return
}

// LineCircleRobust computes the same query as LineCircle without forming
// the quartic. The line origin is shifted along the direction so the
// critical-point condition becomes g(s) = s + m2b2 - r*m0sqr*s/sqrt(
// m0sqr*s^2 + b1sqr) = 0, a strictly increasing function bisected on
// sign-bracketing intervals derived from the configuration. This avoids
// the subtractive cancellation of the quartic coefficients for
// nearly-degenerate inputs.
func LineCircleRobust(line Line3, circle Circle3) LineCircleResult {
	var result LineCircleResult

	d := line.Origin.Sub(circle.Center)
	mxN := line.Direction.Cross(circle.Normal)
	dxN := d.Cross(circle.Normal)

	m0sqr := mxN.Dot(mxN)
	if crossIsZero(line.Direction, circle.Normal) || m0sqr == 0 {
		// The line is parallel to the circle's axis.
		if !crossIsZero(d, circle.Normal) {
			result.NumClosestPairs = 1
			t := -line.Direction.Dot(d)
			result.LineClosest[0], result.CircleClosest[0] = closestPair(line, circle, d, t)
		} else {
			u := Orthogonal(circle.Normal)
			result.NumClosestPairs = 1
			result.LineClosest[0] = circle.Center
			result.CircleClosest[0] = circle.Center.Add(u.Scale(circle.Radius))
			result.Equidistant = true
		}
		diff := result.LineClosest[0].Sub(result.CircleClosest[0])
		result.SqrDistance = diff.Dot(diff)
		result.Distance = math.Sqrt(result.SqrDistance)
		return result
	}

	// Shift the origin to B' = B + lambda*M so that M.B' has no component
	// from the in-plane offset; in the shifted frame B' = (0, b1, b2).
	m0 := math.Sqrt(m0sqr)
	rm0 := circle.Radius * m0
	lambda := -mxN.Dot(dxN) / m0sqr
	oldD := d
	d = d.Add(line.Direction.Scale(lambda))
	dxN = dxN.Add(mxN.Scale(lambda))
	m2b2 := line.Direction.Dot(d)
	b1sqr := dxN.Dot(dxN)

	var roots []float64
	if b1sqr > 0 {
		b1 := math.Sqrt(b1sqr)
		rm0sqr := circle.Radius * m0sqr
		if rm0sqr > b1 {
			// g has two local extrema at +/-sHat; the number of roots and
			// their brackets depend on where m2b2 falls relative to the
			// extremal value cutoff.
			sHat := math.Sqrt(math.Cbrt(rm0sqr*rm0sqr*b1sqr*b1sqr)-b1sqr) / m0
			gHat := rm0sqr * sHat / math.Sqrt(m0sqr*sHat*sHat+b1sqr)
			cutoff := gHat - sHat
			switch {
			case m2b2 <= -cutoff:
				roots = append(roots, bisectG(m2b2, rm0sqr, m0sqr, b1sqr, -m2b2, -m2b2+rm0))
				if m2b2 == -cutoff {
					roots = append(roots, -sHat)
				}
			case m2b2 >= cutoff:
				roots = append(roots, bisectG(m2b2, rm0sqr, m0sqr, b1sqr, -m2b2-rm0, -m2b2))
				if m2b2 == cutoff {
					roots = append(roots, sHat)
				}
			case m2b2 <= 0:
				roots = append(roots,
					bisectG(m2b2, rm0sqr, m0sqr, b1sqr, -m2b2, -m2b2+rm0),
					bisectG(m2b2, rm0sqr, m0sqr, b1sqr, -m2b2-rm0, -sHat))
			default:
				roots = append(roots,
					bisectG(m2b2, rm0sqr, m0sqr, b1sqr, -m2b2-rm0, -m2b2),
					bisectG(m2b2, rm0sqr, m0sqr, b1sqr, sHat, -m2b2+rm0))
			}
		} else {
			// g is strictly increasing: one root.
			switch {
			case m2b2 < 0:
				roots = append(roots, bisectG(m2b2, rm0sqr, m0sqr, b1sqr, -m2b2, -m2b2+rm0))
			case m2b2 > 0:
				roots = append(roots, bisectG(m2b2, rm0sqr, m0sqr, b1sqr, -m2b2-rm0, -m2b2))
			default:
				roots = append(roots, 0)
			}
		}
	} else {
		// B' = (0, 0, b2): the roots are closed-form.
		switch {
		case m2b2 < 0:
			roots = append(roots, -m2b2+rm0)
		case m2b2 > 0:
			roots = append(roots, -m2b2-rm0)
		default:
			roots = append(roots, rm0, -rm0)
		}
	}

	candidates := make([]lcCandidate, 0, len(roots))
	for _, s := range roots {
		t := s + lambda
		info := lcCandidate{t: t}
		if nxDelta := circle.Normal.Cross(oldD.Add(line.Direction.Scale(t))); !nxDelta.IsZero() {
			info.lineClosest, info.circleClosest = closestPair(line, circle, oldD, t)
		} else {
			u := Orthogonal(circle.Normal)
			info.lineClosest = circle.Center
			info.circleClosest = circle.Center.Add(u.Scale(circle.Radius))
			info.equidistant = true
		}
		diff := info.lineClosest.Sub(info.circleClosest)
		info.sqrDistance = diff.Dot(diff)
		candidates = append(candidates, info)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sqrDistance < candidates[j].sqrDistance
	})

	best, tied := resolveLineTie(line, circle, oldD, candidates)

	result.NumClosestPairs = 1
	result.LineClosest[0] = best.lineClosest
	result.CircleClosest[0] = best.circleClosest
	result.Equidistant = best.equidistant
	if tied != nil {
		result.NumClosestPairs = 2
		result.LineClosest[1] = tied.lineClosest
		result.CircleClosest[1] = tied.circleClosest
	}

	diff := result.LineClosest[0].Sub(result.CircleClosest[0])
	result.SqrDistance = diff.Dot(diff)
	result.Distance = math.Sqrt(result.SqrDistance)
	return result
}

// bisectG isolates the root of the strictly increasing
// g(s) = s + m2b2 - rm0sqr*s/sqrt(m0sqr*s^2 + b1sqr) on [smin, smax].
// The endpoint values are known by construction to bracket zero, so only
// their signs are supplied.
func bisectG(m2b2, rm0sqr, m0sqr, b1sqr, smin, smax float64) float64 {
	g := func(s float64) float64 {
		return s + m2b2 - rm0sqr*s/math.Sqrt(m0sqr*s*s+b1sqr)
	}
	res := lcBisector.RootWith(g, smin, smax, -1, 1)
	return res.Root
}
