// Package index defines a minimal abstraction for nearest-neighbor indexes
// built from feature vectors and queried for the k closest positions.
// Implementations in this module are an exact brute-force scan and a cover
// tree for larger training sets.
package index
