/*
Package sample draws the random choices made before growing a tree: which
attribute columns records are built from and which records are used for
training and which for evaluation.
*/
package sample

import (
	"fmt"
	"math/rand"

	mapset "github.com/deckarep/golang-set"
	"github.com/pbanos/sprout/dataset"
)

const (
	// DefaultAttributeCount is the number of attribute columns drawn by default
	DefaultAttributeCount = 5
	// DefaultLowColumn is the lowest column drawn by default. Column 0 holds the label.
	DefaultLowColumn = 1
	// DefaultHighColumn is the exclusive upper bound of the columns drawn by default
	DefaultHighColumn = 23
	// DefaultTrainingRatio is the default probability of a record going to training
	DefaultTrainingRatio = 0.7
)

/*
Attributes takes a number n, a range [low, high) and a random source and
returns n distinct column indexes drawn uniformly from the range, in the
order they were drawn. It fails if the range holds fewer than n indexes.
*/
func Attributes(n, low, high int, r *rand.Rand) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("drawing attributes: negative count %d", n)
	}
	if high-low < n {
		return nil, fmt.Errorf("drawing attributes: cannot draw %d distinct columns from [%d, %d)", n, low, high)
	}
	drawn := mapset.NewSet()
	result := make([]int, 0, n)
	for drawn.Cardinality() < n {
		c := low + r.Intn(high-low)
		if drawn.Add(c) {
			result = append(result, c)
		}
	}
	return result, nil
}

/*
Split takes a dataset, a ratio and a random source and partitions the
records of the dataset in two disjoint datasets: a record goes to the first
(training) one when a uniform draw in [0, 1) is below ratio, and to the
second (evaluation) one otherwise. Record order is kept within each dataset.
*/
func Split(s dataset.Dataset, ratio float64, r *rand.Rand) (dataset.Dataset, dataset.Dataset, error) {
	if ratio < 0.0 || ratio > 1.0 {
		return nil, nil, fmt.Errorf("splitting dataset: ratio %v out of [0, 1]", ratio)
	}
	var training, evaluation []dataset.Record
	for _, rec := range s.Records() {
		if r.Float64() < ratio {
			training = append(training, rec)
		} else {
			evaluation = append(evaluation, rec)
		}
	}
	return dataset.New(training), dataset.New(evaluation), nil
}
