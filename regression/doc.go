// Package regression fits and evaluates straight lines y = a + b*x.
package regression
