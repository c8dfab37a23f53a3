package utils

import "math"

// NormalizeL2 rescales x in place to unit length. A zero vector has no
// direction and is left untouched.
func NormalizeL2(x []float32) {
	var sumSq float32
	for _, v := range x {
		sumSq += v * v
	}
	if sumSq == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(float64(sumSq)))
	for i := range x {
		x[i] *= inv
	}
}
