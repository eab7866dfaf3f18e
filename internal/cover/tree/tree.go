package tree

// This implementation is adapted from github.com/viant/gds/tree/cover.

import (
	"container/heap"
	"math"
	"sort"
	"sync"
)

// pruneSlack is the minimum relative slack on the triangle-inequality bound.
// Trees over wide vectors widen it to cover float32 summation error.
const pruneSlack = 1e-5

// maxLevel bounds root growth for non-finite distances.
const maxLevel = 512

// Tree is a cover tree answering exact Euclidean kNN queries.
type Tree[T any] struct {
	root         *Node
	base         float32
	distanceFunc DistanceFunc
	values       values[T]
	slack        float32
	version      uint64
	mu           sync.Mutex
}

// NewTree constructs a cover tree with the provided base (> 1).
func NewTree[T any](base float32) *Tree[T] {
	if base <= 1 {
		base = 1.3
	}
	return &Tree[T]{
		base:         base,
		slack:        pruneSlack,
		distanceFunc: EuclideanDistance,
	}
}

// Len returns the number of inserted points.
func (t *Tree[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.values.len()
}

// Insert adds a new value/vector pair to the tree and returns its index.
func (t *Tree[T]) Insert(value T, point *Point) int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	point.index = t.values.put(value)
	t.version++
	if t.root == nil {
		if s := float32(len(point.Vector)+2) * 0x1p-23; s > t.slack {
			t.slack = s
		}
		node := NewNode(point, 0)
		t.root = &node
		return point.index
	}
	// raise the root until it covers the new point
	d := t.distanceFunc(point, t.root.point)
	for d >= t.scale(t.root.level) && t.root.level < maxLevel {
		t.root.level++
	}
	node := t.root
	for {
		next := -1
		for i := range node.children {
			child := &node.children[i]
			if t.distanceFunc(point, child.point) < t.scale(child.level) {
				next = i
				break
			}
		}
		if next < 0 {
			node.children = append(node.children, NewNode(point, node.level-1))
			return point.index
		}
		node = &node.children[next]
	}
}

// Value returns the stored value for the given point.
func (t *Tree[T]) Value(point *Point) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	var zero T
	if !point.HasValue() {
		return zero
	}
	return t.values.value(point.index)
}

// KNearestNeighbors runs a depth-first kNN search and returns up to k
// neighbors ordered by ascending distance, then insertion index.
func (t *Tree[T]) KNearestNeighbors(point *Point, k int) []*Neighbor {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.root == nil || k <= 0 {
		return nil
	}
	h := &Neighbors{}
	heap.Init(h)
	t.kNearestNeighbors(t.root, point, k, h)
	result := make([]*Neighbor, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		n := heap.Pop(h).(Neighbor)
		result[i] = &n
	}
	return result
}

func (t *Tree[T]) kNearestNeighbors(node *Node, point *Point, k int, h *Neighbors) {
	candidate := Neighbor{Point: node.point, Distance: t.distanceFunc(point, node.point)}
	if h.Len() < k {
		heap.Push(h, candidate)
	} else if (*h)[0].worse(candidate) {
		heap.Pop(h)
		heap.Push(h, candidate)
	}
	if len(node.children) == 0 {
		return
	}
	type childDist struct {
		child *Node
		dist  float32
	}
	cds := make([]childDist, 0, len(node.children))
	for i := range node.children {
		child := &node.children[i]
		cds = append(cds, childDist{child: child, dist: t.distanceFunc(point, child.point)})
	}
	sort.Slice(cds, func(i, j int) bool { return cds[i].dist < cds[j].dist })
	for _, cd := range cds {
		// strict comparison plus slack keeps subtrees that may hold an
		// equidistant point with a lower insertion index
		if h.Len() == k && t.prunable(cd.dist, cd.child, (*h)[0].Distance) {
			continue
		}
		t.kNearestNeighbors(cd.child, point, k, h)
	}
}

// Within returns every point whose distance to point is at most r, ordered
// by ascending distance, then insertion index.
func (t *Tree[T]) Within(point *Point, r float32) []*Neighbor {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.root == nil || !(r >= 0) {
		return nil
	}
	var found []Neighbor
	t.within(t.root, t.distanceFunc(point, t.root.point), point, r, &found)
	sort.Slice(found, func(i, j int) bool { return found[j].worse(found[i]) })
	result := make([]*Neighbor, len(found))
	for i := range found {
		result[i] = &found[i]
	}
	return result
}

func (t *Tree[T]) within(node *Node, dist float32, point *Point, r float32, found *[]Neighbor) {
	if dist <= r {
		*found = append(*found, Neighbor{Point: node.point, Distance: dist})
	}
	for i := range node.children {
		child := &node.children[i]
		d := t.distanceFunc(point, child.point)
		if t.prunable(d, child, r) {
			continue
		}
		t.within(child, d, point, r, found)
	}
}

// prunable reports whether no point under child can lie within bound of the
// query, given the query's distance dist to child. The slack is relative to
// both distances since float32 error grows with the larger one.
func (t *Tree[T]) prunable(dist float32, child *Node, bound float32) bool {
	return dist-t.radius(child) > bound+t.slack*(1+bound+dist)
}

// radius returns the covering radius of the subtree, recomputed lazily after
// inserts. It is summed in float64 and rounded up so it never understates the
// float32 bound.
func (t *Tree[T]) radius(n *Node) float32 {
	if n.radiusComputed == t.version {
		return n.radius
	}
	maxR := 0.0
	for i := range n.children {
		child := &n.children[i]
		d := wideDistance(n.point, child.point) + float64(t.radius(child))
		if d > maxR {
			maxR = d
		}
	}
	r := float32(maxR)
	if float64(r) < maxR {
		r = math.Nextafter32(r, float32(math.Inf(1)))
	}
	n.radius = r
	n.radiusComputed = t.version
	return r
}

func (t *Tree[T]) scale(level int32) float32 {
	return float32(math.Pow(float64(t.base), float64(level)))
}
