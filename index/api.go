package index

// Neighbor pairs a training example position with its distance to a query.
// Distances live here, never on the examples themselves, so one training set
// can serve concurrent queries.
type Neighbor struct {
	Position int
	Distance float64
}

// Index defines a kNN index over feature vectors.
type Index interface {
	// Build loads the vectors; positions in query results refer to this order.
	// All vectors must have the same arity.
	Build(vectors [][]float64) error

	// Query returns up to k neighbors ordered by ascending distance. Equal
	// distances are ordered by position, so insertion order breaks ties.
	// k <= 0 or k > Len returns every vector.
	Query(query []float64, k int) ([]Neighbor, error)

	// Len returns the number of indexed vectors.
	Len() int
}
