// Package normalize rescales feature columns across a collection of examples
// so that features measured on different natural scales contribute
// comparably to a distance. Strategies mutate the collection in place and
// return the fitted Scale, which must then be applied to any query point.
package normalize
