package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// RoundHalf rounds v to the nearest half unit. Ties round towards positive
// infinity.
func RoundHalf(v float64) float64 {
	return math.Floor(v*2+0.5) / 2
}

func RoundHalfVec(v cp.Vector) cp.Vector {
	return cp.Vector{X: RoundHalf(v.X), Y: RoundHalf(v.Y)}
}

func FloorVec(v cp.Vector) cp.Vector {
	return cp.Vector{X: math.Floor(v.X), Y: math.Floor(v.Y)}
}
