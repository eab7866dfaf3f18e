// Package vector holds the numeric primitives used by the classifier:
//   - Euclidean distance between two feature vectors
//   - ErrDimensionMismatch, shared by every package that pairs vectors
//   - Feature encoding (BLOB) for SQLite storage
package vector
