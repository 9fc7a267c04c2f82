package dist

import (
	"math"
	"sort"

	"github.com/numgeom/robust/poly"
	"github.com/numgeom/robust/utils"
)

// CircleCircleResult reports the minimum distance between two circles in 3D
// together with the realizing point pair(s). When the minimum is attained at
// two distinct pairs, NumClosestPairs is 2 and both pairs are populated.
// Equidistant is true when one circle's closest point is ambiguous because
// the other circle's relevant point lies on its normal axis (for example,
// concentric coplanar circles); the reported pair is then one arbitrary
// representative.
type CircleCircleResult struct {
	Distance        float64
	SqrDistance     float64
	NumClosestPairs int
	Circle0Closest  [2]Vector3
	Circle1Closest  [2]Vector3
	Equidistant     bool
}

// ccCandidate is one solution candidate of the circle-circle query,
// generated from an isolated root (cs, sn) of the critical-angle system.
type ccCandidate struct {
	cs, sn         float64
	sqrDistance    float64
	circle0Closest Vector3
	circle1Closest Vector3
	equidistant    bool
}

// CircleCircle computes the minimum distance between two circles in 3D.
// Both normals must be unit length and both radii positive.
//
// When the circles lie in non-parallel planes the critical angles on
// circle1 are the real roots of a degree-8 polynomial in cos(theta); each
// root yields a candidate pair and the global minimum is selected among
// them. Parallel planes (decided by an exact sign test on the cross product
// of the normals, not a tolerance) reduce to a closed-form 1D overlap
// analysis of the projected circles.
func CircleCircle(circle0, circle1 Circle3) CircleCircleResult {
	var result CircleCircleResult

	n0 := circle0.Normal
	r0, r1 := circle0.Radius, circle1.Radius
	d := circle1.Center.Sub(circle0.Center)

	if crossIsZero(n0, circle1.Normal) {
		circleCircleParallel(circle0, circle1, d, &result)
		result.Distance = math.Sqrt(result.SqrDistance)
		return result
	}

	r0sqr, r1sqr := r0*r0, r1*r1
	u1, v1 := OrthonormalBasis(circle1.Normal)

	// Coefficients of the squared-distance function
	// H(cs, sn) = p6(cs) + sn*p7(cs) restricted to cs^2 + sn^2 = 1.
	n0xD := n0.Cross(d)
	n0xU1, n0xV1 := n0.Cross(u1), n0.Cross(v1)
	a0 := r1 * d.Dot(u1)
	a1 := r1 * d.Dot(v1)
	a2 := n0xD.Dot(n0xD)
	a3 := r1 * n0xD.Dot(n0xU1)
	a4 := r1 * n0xD.Dot(n0xV1)
	a5 := r1sqr * n0xU1.Dot(n0xU1)
	a6 := r1sqr * n0xU1.Dot(n0xV1)
	a7 := r1sqr * n0xV1.Dot(n0xV1)

	p0 := poly.New(a2+a7, 2*a3, a5-a7)
	p1 := poly.New(2*a4, 2*a6)
	p2 := poly.New(0, a1)
	p3 := poly.New(-a0)
	p4 := poly.New(-a6, a4, 2*a6)
	p5 := poly.New(-a3, a7-a5)
	omcsqr := poly.New(1, 0, -1) // 1 - cs^2, i.e. sn^2 on the unit circle
	tmp1 := p2.Mul(p2).Add(omcsqr.Mul(p3).Mul(p3))
	tmp2 := p2.Mul(p3).Scale(2)
	tmp3 := p4.Mul(p4).Add(omcsqr.Mul(p5).Mul(p5))
	tmp4 := p4.Mul(p5).Scale(2)
	p6 := p0.Mul(tmp1).Add(omcsqr.Mul(p1).Mul(tmp2)).Sub(tmp3.Scale(r0sqr))
	p7 := p0.Mul(tmp2).Add(p1.Mul(tmp1)).Sub(tmp4.Scale(r0sqr))

	var pairs [][2]float64
	if p7.Trim().Degree() > 0 || p7[0] != 0 {
		// Eliminate sn: phi(cs) = p6^2 - (1-cs^2)*p7^2.
		phi := p6.Mul(p6).Sub(omcsqr.Mul(p7).Mul(p7))
		for _, cs := range rootFinder.FindRoots(phi) {
			if math.Abs(cs) > 1 {
				continue
			}
			if q := p7.Evaluate(cs); q != 0 {
				pairs = append(pairs, [2]float64{cs, -p6.Evaluate(cs) / q})
			} else {
				sn := math.Sqrt(utils.Clamp(1-cs*cs, 0, 1))
				pairs = append(pairs, [2]float64{cs, sn})
				if sn != 0 {
					pairs = append(pairs, [2]float64{cs, -sn})
				}
			}
		}
	} else {
		// H does not depend on sn; both signs of sn pair with each root.
		for _, cs := range rootFinder.FindRoots(p6) {
			if math.Abs(cs) > 1 {
				continue
			}
			sn := math.Sqrt(utils.Clamp(1-cs*cs, 0, 1))
			pairs = append(pairs, [2]float64{cs, sn})
			if sn != 0 {
				pairs = append(pairs, [2]float64{cs, -sn})
			}
		}
	}

	if len(pairs) == 0 {
		// The exact minimum is a root with |cs| <= 1, but rounding in the
		// coefficient construction can push it just outside. Fall back to
		// the boundary angles.
		pairs = [][2]float64{{1, 0}, {-1, 0}}
	}

	candidates := make([]ccCandidate, 0, len(pairs))
	for _, pair := range pairs {
		cs, sn := pair[0], pair[1]
		info := ccCandidate{cs: cs, sn: sn}
		delta := d.Add(u1.Scale(cs).Add(v1.Scale(sn)).Scale(r1))
		info.circle1Closest = circle0.Center.Add(delta)
		n0dDelta := n0.Dot(delta)
		if lenN0xDelta := n0.Cross(delta).Length(); lenN0xDelta > 0 {
			diff := lenN0xDelta - r0
			info.sqrDistance = n0dDelta*n0dDelta + diff*diff
			proj, _ := delta.Sub(n0.Scale(n0dDelta)).Normalized()
			info.circle0Closest = circle0.Center.Add(proj.Scale(r0))
		} else {
			// The candidate point on circle1 lies on circle0's axis: every
			// point of circle0 is equally close.
			r0u0 := Orthogonal(n0).Scale(r0)
			diff := delta.Sub(r0u0)
			info.sqrDistance = diff.Dot(diff)
			info.circle0Closest = circle0.Center.Add(r0u0)
			info.equidistant = true
		}
		candidates = append(candidates, info)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sqrDistance < candidates[j].sqrDistance
	})

	best, tied := resolveTie(circle0, circle1, u1, v1, candidates)

	result.NumClosestPairs = 1
	result.SqrDistance = best.sqrDistance
	result.Circle0Closest[0] = best.circle0Closest
	result.Circle1Closest[0] = best.circle1Closest
	result.Equidistant = best.equidistant
	if tied != nil {
		result.NumClosestPairs = 2
		result.Circle0Closest[1] = tied.circle0Closest
		result.Circle1Closest[1] = tied.circle1Closest
	}
	result.Distance = math.Sqrt(result.SqrDistance)
	return result
}

// resolveTie selects the minimum candidate and decides whether the runner-up
// realizes the same distance. Candidates whose double-precision squared
// distances agree to within sqrTieTol are re-evaluated in big.Float
// arithmetic: if the re-evaluations differ the smaller one wins outright,
// and if they agree the minimum is a genuine tie.
func resolveTie(circle0, circle1 Circle3, u1, v1 Vector3, candidates []ccCandidate) (best, tied *ccCandidate) {
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

	b0 := sqrBig(circle0, circle1, u1, v1, best.cs, best.sn)
	b1 := sqrBig(circle0, circle1, u1, v1, second.cs, second.sn)
	switch b0.Cmp(b1) {
	case 0:
		return best, second
	case 1:
		return second, nil
	default:
		return best, nil
	}
}

// circleCircleParallel handles circles in parallel planes, where the query
// reduces to the overlap of the projected intervals [-r0, r0] and
// [d-r1, d+r1] along the in-plane direction of the center difference.
func circleCircleParallel(circle0, circle1 Circle3, d Vector3, result *CircleCircleResult) {
	n0dD := circle0.Normal.Dot(d)
	normProj := circle0.Normal.Scale(n0dD)
	compProj := d.Sub(normProj)
	u, dist := compProj.Normalized()

	r0, r1 := circle0.Radius, circle1.Radius
	dmr1 := dist - r1
	var distance float64
	switch {
	case dmr1 >= r0:
		// Separated, or tangent with one circle outside the other.
		distance = dmr1 - r0
		result.NumClosestPairs = 1
		result.Circle0Closest[0] = circle0.Center.Add(u.Scale(r0))
		result.Circle1Closest[0] = circle1.Center.Sub(u.Scale(r1))

	case dist+r1 <= r0:
		// Circle1 is inside circle0.
		distance = r0 - (dist + r1)
		result.NumClosestPairs = 1
		if dist == 0 {
			// Concentric: any direction works, all at equal distance.
			u = Orthogonal(circle0.Normal)
			result.Equidistant = true
		}
		result.Circle0Closest[0] = circle0.Center.Add(u.Scale(r0))
		result.Circle1Closest[0] = circle1.Center.Add(u.Scale(r1))

	case dmr1 <= -r0:
		// Circle0 is inside circle1.
		distance = -r0 - dmr1
		result.NumClosestPairs = 1
		if dist == 0 {
			u = Orthogonal(circle0.Normal)
			result.Equidistant = true
			result.Circle0Closest[0] = circle0.Center.Add(u.Scale(r0))
			result.Circle1Closest[0] = circle1.Center.Add(u.Scale(r1))
		} else {
			result.Circle0Closest[0] = circle0.Center.Sub(u.Scale(r0))
			result.Circle1Closest[0] = circle1.Center.Sub(u.Scale(r1))
		}

	default:
		// The projected circles overlap in two points:
		// C0 + s*(C1-C0) +/- h*(N x U) with s = (1 + (r0^2-r1^2)/d^2)/2
		// and h = sqrt(r0^2 - s^2*d^2).
		r0sqr, r1sqr, dsqr := r0*r0, r1*r1, dist*dist
		s := (1 + (r0sqr-r1sqr)/dsqr) / 2
		h := math.Sqrt(math.Max(r0sqr-dsqr*s*s, 0))
		midpoint := circle0.Center.Add(compProj.Scale(s))
		hNxU := circle0.Normal.Cross(u).Scale(h)
		distance = 0
		result.NumClosestPairs = 2
		result.Circle0Closest[0] = midpoint.Add(hNxU)
		result.Circle0Closest[1] = midpoint.Sub(hNxU)
		result.Circle1Closest[0] = result.Circle0Closest[0].Add(normProj)
		result.Circle1Closest[1] = result.Circle0Closest[1].Add(normProj)
	}

	result.SqrDistance = distance*distance + n0dD*n0dD
}
