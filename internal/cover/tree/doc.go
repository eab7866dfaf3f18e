// Package tree implements a generic cover tree used by the cover index to
// prune Euclidean kNN searches over large training sets.
package tree
