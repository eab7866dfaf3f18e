package knn

import "errors"

var (
	// ErrEmptyNeighborSet is returned when classifying against no examples.
	ErrEmptyNeighborSet = errors.New("knn: empty neighbor set")
	// ErrInvalidK is returned when k is not within [1, size of the set].
	ErrInvalidK = errors.New("knn: invalid k")
)
