// Package store keeps named training sets in SQLite so the classifier can be
// fed from a database instead of a CSV file. Each set records its feature
// schema and its examples in insertion order; loading a set rebuilds a
// knn.NeighborSet. Nearest ranks examples inside SQLite with knn_l2.
package store
