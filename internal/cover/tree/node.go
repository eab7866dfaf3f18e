package tree

// Node represents a cover-tree node. Every descendant of a node at level l
// lies within base^l of the node's point; radius caches the exact bound.
type Node struct {
	level          int32
	point          *Point
	children       []Node
	radius         float32
	radiusComputed uint64
}

// NewNode constructs a node for the provided point and level.
func NewNode(point *Point, level int32) Node {
	return Node{level: level, point: point}
}
