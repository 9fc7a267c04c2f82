// Package dist implements robust minimum-distance queries between geometric
// primitives whose separation has no simple closed form. The queries reduce
// the problem to the real roots of a low-degree characteristic polynomial,
// isolate those roots with the poly package, and disambiguate close
// candidates by escalating from hardware floating point to interval
// arithmetic and then to big.Float arithmetic sized by the precision
// estimator.
package dist

import (
	"math"
)

// Vector3 is a vector in R^3.
type Vector3 [3]float64

// Add returns v + w.
func (v Vector3) Add(w Vector3) Vector3 {
	return Vector3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns v - w.
func (v Vector3) Sub(w Vector3) Vector3 {
	return Vector3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Scale returns s * v.
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{s * v[0], s * v[1], s * v[2]}
}

// Dot returns the inner product of v and w.
func (v Vector3) Dot(w Vector3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Cross returns the cross product of v and w.
func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// Length returns |v|.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// IsZero reports whether all components are exactly zero.
func (v Vector3) IsZero() bool {
	return v == Vector3{}
}

// Normalized returns v/|v| and |v|. The zero vector normalizes to itself
// with length 0.
func (v Vector3) Normalized() (Vector3, float64) {
	length := v.Length()
	if length == 0 {
		return Vector3{}, 0
	}
	return v.Scale(1 / length), length
}

// Orthogonal returns a unit-length vector perpendicular to v. v must be
// non-zero; the choice among the perpendicular directions is arbitrary but
// deterministic.
func Orthogonal(v Vector3) Vector3 {
	if math.Abs(v[0]) > math.Abs(v[1]) {
		inv := 1 / math.Sqrt(v[0]*v[0]+v[2]*v[2])
		return Vector3{-v[2] * inv, 0, v[0] * inv}
	}
	inv := 1 / math.Sqrt(v[1]*v[1]+v[2]*v[2])
	return Vector3{0, v[2] * inv, -v[1] * inv}
}

// OrthonormalBasis returns unit vectors u, w such that {n, u, w} is a
// right-handed orthonormal set. n must be unit length.
func OrthonormalBasis(n Vector3) (u, w Vector3) {
	u = Orthogonal(n)
	w = n.Cross(u)
	return
}

// Circle3 is a circle in 3D: the points C + r*(cos(t)*U + sin(t)*V) where
// {N, U, V} is an orthonormal set. Normal must be unit length.
type Circle3 struct {
	Center Vector3
	Normal Vector3
	Radius float64
}

// Line3 is the parametric line P(t) = Origin + t*Direction. Direction must
// be unit length.
type Line3 struct {
	Origin    Vector3
	Direction Vector3
}
