// Package engine provides helpers for working with the modernc.org/sqlite
// driver in this module: opening connections with the knn SQL functions
// registered. It keeps a thin surface so other packages share the same
// driver instance.
package engine
