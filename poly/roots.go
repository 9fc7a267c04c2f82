package poly

import (
	"sort"
)

// Finder isolates the real roots of a polynomial. It holds only its
// configuration, so a single Finder may be shared read-only between
// goroutines operating on independent polynomials.
//
// The isolation is recursive: the roots of the derivative partition the
// search domain into intervals on which the polynomial is monotonic, and a
// bisection on each interval with a sign change locates the root there.
// The bisection runs in hardware float64 even when the caller re-evaluates
// the result with exact arithmetic afterwards; the roots are therefore
// accurate to double precision only. This trades a provable bit-exactness
// for a bounded amount of work per root.
type Finder struct {
	maxIterations int
}

// NewFinder returns a Finder with the given per-root bisection budget.
// The budget must be positive.
func NewFinder(maxIterations int) *Finder {
	if maxIterations <= 0 {
		panic("poly: the maximum iterations must be positive")
	}
	return &Finder{maxIterations: maxIterations}
}

// FindRoots returns all real roots of p in increasing order. The trimmed
// polynomial must have positive degree; handing a constant to the root
// finder is a caller bug and panics.
func (f *Finder) FindRoots(p Polynomial) []float64 {
	p = p.Trim()
	if p.Degree() < 1 {
		panic("poly: FindRoots requires a polynomial of positive degree")
	}
	bound := p.CauchyBound()
	return f.findRecursive(p, -bound, bound)
}

// FindRootsIn returns the real roots of p restricted to [tMin, tMax], in
// increasing order. The same degree precondition as FindRoots applies.
func (f *Finder) FindRootsIn(p Polynomial, tMin, tMax float64) []float64 {
	p = p.Trim()
	if p.Degree() < 1 {
		panic("poly: FindRootsIn requires a polynomial of positive degree")
	}
	if tMin >= tMax {
		return nil
	}
	return f.findRecursive(p, tMin, tMax)
}

// findRecursive isolates the roots of p on [tMin, tMax] by first locating
// the roots of the derivative, which bracket the intervals of monotonicity.
func (f *Finder) findRecursive(p Polynomial, tMin, tMax float64) []float64 {
	var roots []float64

	if p.Degree() == 1 {
		// c0 + c1*t = 0
		root := -p[0] / p[1]
		if tMin <= root && root <= tMax {
			roots = append(roots, root)
		}
		return roots
	}

	// The derivative is scaled by 1/degree; the scale does not move its
	// roots but keeps the coefficients in range.
	deriv := p.Derivative().Scale(1 / float64(p.Degree())).Trim()

	var derivRoots []float64
	if deriv.Degree() >= 1 {
		derivRoots = f.findRecursive(deriv, tMin, tMax)
	}

	if len(derivRoots) > 0 {
		if root, ok := f.bracketRoot(p, tMin, derivRoots[0]); ok {
			roots = append(roots, root)
		}
		for i := 0; i+1 < len(derivRoots); i++ {
			if root, ok := f.bracketRoot(p, derivRoots[i], derivRoots[i+1]); ok {
				roots = append(roots, root)
			}
		}
		if root, ok := f.bracketRoot(p, derivRoots[len(derivRoots)-1], tMax); ok {
			roots = append(roots, root)
		}
	} else {
		// The polynomial is monotonic on [tMin, tMax].
		if root, ok := f.bracketRoot(p, tMin, tMax); ok {
			roots = append(roots, root)
		}
	}

	sort.Float64s(roots)
	return dedupe(roots)
}

// bracketRoot bisects p on [tMin, tMax]. p must be monotonic there; ok is
// false when the endpoint values share a sign, in which case the interval
// holds no root of a monotonic function.
func (f *Finder) bracketRoot(p Polynomial, tMin, tMax float64) (float64, bool) {
	pMin := p.Evaluate(tMin)
	if pMin == 0 {
		return tMin, true
	}
	pMax := p.Evaluate(tMax)
	if pMax == 0 {
		return tMax, true
	}
	if pMin*pMax > 0 {
		return 0, false
	}
	if tMin >= tMax {
		return 0, false
	}

	var root float64
	for i := 1; i <= f.maxIterations; i++ {
		root = 0.5 * (tMin + tMax)

		// The midpoint of two consecutive floating-point numbers equals
		// one of them; no further refinement is possible.
		if root == tMin || root == tMax {
			break
		}

		v := p.Evaluate(root)
		product := v * pMin
		if product < 0 {
			tMax = root
			pMax = v
		} else if product > 0 {
			tMin = root
			pMin = v
		} else {
			break
		}
	}
	return root, true
}

// dedupe removes duplicate entries from a sorted slice. Roots found at a
// shared endpoint of two adjacent monotonic intervals appear twice.
func dedupe(sorted []float64) []float64 {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, r := range sorted[1:] {
		if r != out[len(out)-1] {
			out = append(out, r)
		}
	}
	return out
}
