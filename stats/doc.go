// Package stats holds small probability formulas: the Bayesian posterior
// built from a likelihood table, Shannon entropy of a class distribution and
// the information gain of a split.
package stats
