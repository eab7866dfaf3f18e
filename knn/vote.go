package knn

import "github.com/viant/mlnotes/feature"

// Neighbor is a training example paired with its distance to the query.
type Neighbor struct {
	Example  feature.Example
	Distance float64
}

// Result describes a classification.
type Result struct {
	Label     string
	Neighbors []Neighbor
	// Votes counts labels among Neighbors; nil when a single neighbor decided.
	Votes map[string]int
}

func decide(neighbors []Neighbor) Result {
	if len(neighbors) == 1 {
		return Result{Label: neighbors[0].Example.Label, Neighbors: neighbors}
	}
	votes := Tally(neighbors)
	return Result{Label: Winner(votes), Neighbors: neighbors, Votes: votes}
}

// Tally counts label frequency across neighbors.
func Tally(neighbors []Neighbor) map[string]int {
	votes := make(map[string]int, len(neighbors))
	for _, n := range neighbors {
		votes[n.Example.Label]++
	}
	return votes
}

// Winner returns the label with the highest count; equal counts resolve to
// the lexicographically smallest label.
func Winner(votes map[string]int) string {
	var best string
	bestCount := -1
	for label, count := range votes {
		if count > bestCount || (count == bestCount && label < best) {
			best, bestCount = label, count
		}
	}
	return best
}
