// Package bruteforce provides the reference kNN index: it scores every vector
// with the Euclidean distance and stable-sorts the results, so equidistant
// examples keep their insertion order.
package bruteforce
