package tree

import (
	"math"

	"github.com/viant/vec/search"
)

// DistanceFunc computes the distance between two points.
type DistanceFunc func(p1, p2 *Point) float32

// EuclideanDistance returns the Euclidean distance between two points.
func EuclideanDistance(p1, p2 *Point) float32 {
	return search.Float32s(p1.Vector).EuclideanDistance(p2.Vector)
}

// wideDistance is EuclideanDistance accumulated in float64.
func wideDistance(p1, p2 *Point) float64 {
	var sum float64
	for i := range p1.Vector {
		d := float64(p1.Vector[i]) - float64(p2.Vector[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
