package feature

// Example is a single labeled point. Label is empty for an unlabeled query.
// Name is an optional human readable identifier (e.g. "grape").
type Example struct {
	Name     string
	Label    string
	Features []float64
}

// NewExample constructs an Example from its values.
func NewExample(name, label string, values ...float64) Example {
	return Example{Name: name, Label: label, Features: values}
}

// Clone returns a deep copy so that the feature slice is not shared.
func (e Example) Clone() Example {
	e.Features = append([]float64(nil), e.Features...)
	return e
}

// Value returns the value of the named feature.
func (e Example) Value(s Set, name Name) (float64, bool) {
	i, ok := s.Index(name)
	if !ok || i >= len(e.Features) {
		return 0, false
	}
	return e.Features[i], true
}

// CloneAll deep copies a slice of examples.
func CloneAll(examples []Example) []Example {
	out := make([]Example, len(examples))
	for i := range examples {
		out[i] = examples[i].Clone()
	}
	return out
}
