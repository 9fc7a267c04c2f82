package poly

// Bisector estimates a root of a continuous function on an interval by
// interval halving. It holds only its iteration budget; a single Bisector
// may be shared read-only between goroutines.
type Bisector struct {
	maxIterations int
}

// NewBisector returns a Bisector with the given iteration budget. The
// budget must be positive. Bisection converges linearly, so the budget is
// deliberately generous for callers that bisect functions known
// analytically to be monotonic on the bracket.
func NewBisector(maxIterations int) *Bisector {
	if maxIterations <= 0 {
		panic("poly: the maximum iterations must be positive")
	}
	return &Bisector{maxIterations: maxIterations}
}

// BisectionResult reports the outcome of a bisection.
//
// Bracketed is false when F(tMin) and F(tMax) share a sign, in which case
// it is unknown whether the interval contains a root and the remaining
// fields are zero. Iterations is 0 when one of the endpoints is itself a
// root. FAtRoot is F(Root); rounding can keep it away from exactly zero.
type BisectionResult struct {
	Root       float64
	FAtRoot    float64
	Iterations int
	Bracketed  bool
}

// Root bisects F on [tMin, tMax], evaluating F at the endpoints first.
// tMin < tMax is required.
func (b *Bisector) Root(F func(float64) float64, tMin, tMax float64) BisectionResult {
	if tMin >= tMax {
		panic("poly: invalid ordering of t-interval endpoints")
	}
	return b.RootWith(F, tMin, tMax, F(tMin), F(tMax))
}

// RootWith bisects F on [tMin, tMax] with the endpoint values already
// known. This is useful when |F| at an endpoint is infinite: the bisection
// cares only about signs, so the caller can pass -1 or +1 instead of the
// infinity.
func (b *Bisector) RootWith(F func(float64) float64, tMin, tMax, fMin, fMax float64) BisectionResult {
	if tMin >= tMax {
		panic("poly: invalid ordering of t-interval endpoints")
	}

	signFMin := sign(fMin)
	if signFMin == 0 {
		return BisectionResult{Root: tMin, Bracketed: true}
	}
	signFMax := sign(fMax)
	if signFMax == 0 {
		return BisectionResult{Root: tMax, Bracketed: true}
	}
	if signFMin == signFMax {
		return BisectionResult{}
	}

	var result BisectionResult
	result.Bracketed = true
	for result.Iterations = 1; result.Iterations < b.maxIterations; result.Iterations++ {
		result.Root = 0.5 * (tMin + tMax)
		result.FAtRoot = F(result.Root)

		signFRoot := sign(result.FAtRoot)
		if signFRoot == 0 {
			// The function is exactly 0.
			break
		}
		if result.Root == tMin || result.Root == tMax {
			// The estimate lies between two consecutive floating-point
			// numbers; the bracket cannot shrink further.
			break
		}
		if signFRoot == signFMin {
			tMin = result.Root
			fMin = result.FAtRoot
		} else {
			tMax = result.Root
			fMax = result.FAtRoot
		}
	}
	return result
}

func sign(x float64) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
