package sampling

import (
	"encoding/binary"
	"math"
)

// Uint64 returns a uniform random value in [0, 2^64).
func Uint64(prng PRNG) uint64 {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if _, err := prng.Read(b); err != nil {
		panic(err)
	}
	return binary.BigEndian.Uint64(b)
}

// Float64 returns a uniform random float between min and max.
func Float64(prng PRNG, min, max float64) float64 {
	f := float64(Uint64(prng)) / 1.8446744073709552e+19
	return min + f*(max-min)
}

// Float64Bits returns a float64 with uniformly random bit pattern, redrawing
// NaN and infinite values. The samples cover subnormals and the full
// exponent range, which uniform-in-value sampling does not.
func Float64Bits(prng PRNG) float64 {
	for {
		f := math.Float64frombits(Uint64(prng))
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
}
