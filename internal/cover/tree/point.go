package tree

// Point represents a vector in the cover tree. The index is assigned on
// insert and doubles as the insertion order used to break distance ties.
type Point struct {
	index  int32
	Vector []float32
}

// HasValue reports whether the point has been inserted into a tree.
func (p *Point) HasValue() bool {
	return p != nil && p.index >= 0
}

// Index returns the insertion index of the point, or -1 if not inserted.
func (p *Point) Index() int32 {
	if p == nil {
		return -1
	}
	return p.index
}

// NewPoint constructs a point for the given vector.
func NewPoint(vector ...float32) *Point {
	return &Point{index: -1, Vector: vector}
}
