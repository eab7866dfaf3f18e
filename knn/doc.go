// Package knn classifies a query point against a labeled training set with
// k-nearest-neighbors: Euclidean distance, stable ranking and a majority vote
// among the k closest examples.
//
// Tie-break rules:
//   - examples at equal distance keep their insertion order
//   - labels with equal vote counts resolve to the lexicographically
//     smallest label
package knn
