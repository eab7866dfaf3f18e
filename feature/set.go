package feature

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownFeature is returned when a feature name is not part of a Set.
var ErrUnknownFeature = errors.New("feature: unknown feature")

// Name identifies a single feature column, e.g. "sweetness".
type Name string

// Set is the ordered list of features every Example and query must follow.
// The position of a name in the set is the index of its value in
// Example.Features.
type Set []Name

// NewSet builds a Set from plain strings.
func NewSet(names ...string) Set {
	out := make(Set, len(names))
	for i, n := range names {
		out[i] = Name(n)
	}
	return out
}

// Generic returns a Set of n positional names: x1, x2, ... xn.
func Generic(n int) Set {
	out := make(Set, n)
	for i := range out {
		out[i] = Name("x" + strconv.Itoa(i+1))
	}
	return out
}

// Len returns the arity of the set.
func (s Set) Len() int { return len(s) }

// Index returns the column index of name.
func (s Set) Index(name Name) (int, bool) {
	for i, n := range s {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// Indexes resolves names to column indexes, preserving the requested order.
// An empty request selects every column.
func (s Set) Indexes(names ...Name) ([]int, error) {
	if len(names) == 0 {
		out := make([]int, len(s))
		for i := range out {
			out[i] = i
		}
		return out, nil
	}
	out := make([]int, 0, len(names))
	for _, name := range names {
		i, ok := s.Index(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownFeature, name, s.Strings())
		}
		out = append(out, i)
	}
	return out, nil
}

// Strings returns the names as plain strings.
func (s Set) Strings() []string {
	out := make([]string, len(s))
	for i, n := range s {
		out[i] = string(n)
	}
	return out
}

// Equal reports whether both sets name the same features in the same order.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}
