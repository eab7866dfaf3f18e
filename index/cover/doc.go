// Package cover provides a kNN index backed by a cover tree. The tree prunes
// candidates with float32 distances; the returned neighbors are re-scored in
// float64 and ordered with the same tie-break as the brute-force index.
package cover
