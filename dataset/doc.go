// Package dataset reads and writes training sets as comma separated text:
// a header naming the features, one record per line, an optional leading
// name column and a trailing label column. It also ships the ingredients
// sample used throughout the documentation and tests.
package dataset
