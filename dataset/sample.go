package dataset

import "github.com/viant/mlnotes/feature"

// Ingredients returns the sample training set: foods rated for sweetness and
// crunchiness on a 1-10 scale.
func Ingredients() (feature.Set, []feature.Example) {
	return feature.NewSet("sweetness", "crunchiness"), []feature.Example{
		feature.NewExample("green_bean", "vegetable", 3, 7),
		feature.NewExample("grape", "fruit", 8, 5),
		feature.NewExample("nuts", "protein", 3, 6),
		feature.NewExample("orange", "fruit", 7, 3),
	}
}

// Tomato is the sample query: how similar is a tomato to the ingredients?
func Tomato() feature.Example {
	return feature.NewExample("tomato", "", 6, 4)
}
