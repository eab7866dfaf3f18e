// Package feature defines the schema shared by training examples and queries:
// an ordered set of feature names and the Example record that carries one
// value per feature plus an optional label.
package feature
