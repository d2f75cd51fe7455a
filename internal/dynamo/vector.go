package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Precision scales a magnitude before it is compared against one unit.
// Anything at or below 1/Precision is treated as floating-point noise.
const Precision = 1e11

// G is the gravitational constant in N·m²/kg².
const G = 6.67430e-11

var Zero = mgl64.Vec3{}

// Significant reports whether a vector quantity is large enough to be
// propagated.
func Significant(v mgl64.Vec3) bool {
	return v.Len()*Precision > 1
}

// RoundDigits rounds v to the given number of decimal digits.
func RoundDigits(v float64, digits int) float64 {
	n := math.Pow(10, float64(digits))
	return math.Round(v*n) / n
}

func isFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
