/*
Package benchmark measures how well a predictor classifies a dataset of
labelled records. Records are predicted once and the resulting
probabilities compared against any number of thresholds: a record is
classified as positive when its probability is at or above the threshold.
*/
package benchmark

import (
	"fmt"
	"math"

	"github.com/pbanos/sprout/dataset"
)

// Predictor is anything that returns the probability of the positive
// label for the attribute values of a record, such as a *tree.Tree
type Predictor interface {
	Predict(values []string) (float64, error)
}

// Outcome is the probability predicted for a record and whether the
// record actually carried the positive label
type Outcome struct {
	Probability float64
	Positive    bool
}

// Failure is a record that could not be predicted and the reason
type Failure struct {
	Index int
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("predicting record %d: %v", f.Index, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

/*
Evaluation holds the outcomes of predicting every record of a dataset, and
the failures for those records that could not be predicted.
*/
type Evaluation struct {
	Outcomes []Outcome
	Failures []Failure
}

/*
Evaluate takes a predictor, a dataset and the positive label and predicts
every record of the dataset. Records whose prediction fails are recorded as
failures and left out of the outcomes; it is up to the caller to decide
whether any failure should abort the benchmark.
*/
func Evaluate(p Predictor, s dataset.Dataset, positiveLabel string) *Evaluation {
	e := &Evaluation{}
	for i, r := range s.Records() {
		prob, err := p.Predict(r.Values)
		if err != nil {
			e.Failures = append(e.Failures, Failure{i, err})
			continue
		}
		e.Outcomes = append(e.Outcomes, Outcome{prob, r.Label == positiveLabel})
	}
	return e
}

/*
Confusion is the confusion matrix of an evaluation at a threshold. Failed
counts the records that could not be predicted and are not part of the
matrix.
*/
type Confusion struct {
	Threshold      float64
	TruePositives  int
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int
	Failed         int
}

// Confusion returns the confusion matrix of the evaluation at the given threshold
func (e *Evaluation) Confusion(threshold float64) Confusion {
	c := Confusion{Threshold: threshold, Failed: len(e.Failures)}
	for _, o := range e.Outcomes {
		switch {
		case o.Probability >= threshold && o.Positive:
			c.TruePositives++
		case o.Probability >= threshold:
			c.FalsePositives++
		case o.Positive:
			c.FalseNegatives++
		default:
			c.TrueNegatives++
		}
	}
	return c
}

// Sweep returns the confusion matrices of the evaluation at each of the given thresholds
func (e *Evaluation) Sweep(thresholds []float64) []Confusion {
	result := make([]Confusion, len(thresholds))
	for i, t := range thresholds {
		result[i] = e.Confusion(t)
	}
	return result
}

// DefaultThresholds returns the thresholds 0.00, 0.01, ... 0.99
func DefaultThresholds() []float64 {
	result := make([]float64, 100)
	for i := range result {
		result[i] = float64(i) / 100.0
	}
	return result
}

// Total returns the number of records classified
func (c Confusion) Total() int {
	return c.TruePositives + c.TrueNegatives + c.FalsePositives + c.FalseNegatives
}

// Correct returns the number of records classified correctly
func (c Confusion) Correct() int {
	return c.TruePositives + c.TrueNegatives
}

// Accuracy returns the proportion of classified records classified correctly
func (c Confusion) Accuracy() float64 {
	return ratio(c.Correct(), c.Total())
}

// Precision returns the proportion of records classified as positive that are positive
func (c Confusion) Precision() float64 {
	return ratio(c.TruePositives, c.TruePositives+c.FalsePositives)
}

// Recall returns the proportion of positive records classified as positive
func (c Confusion) Recall() float64 {
	return c.TruePositiveRate()
}

// TruePositiveRate returns the proportion of positive records classified as positive
func (c Confusion) TruePositiveRate() float64 {
	return ratio(c.TruePositives, c.TruePositives+c.FalseNegatives)
}

// TrueNegativeRate returns the proportion of negative records classified as negative
func (c Confusion) TrueNegativeRate() float64 {
	return ratio(c.TrueNegatives, c.TrueNegatives+c.FalsePositives)
}

// FalsePositiveRate returns the proportion of negative records classified as positive
func (c Confusion) FalsePositiveRate() float64 {
	return ratio(c.FalsePositives, c.FalsePositives+c.TrueNegatives)
}

// FalseNegativeRate returns the proportion of positive records classified as negative
func (c Confusion) FalseNegativeRate() float64 {
	return ratio(c.FalseNegatives, c.FalseNegatives+c.TruePositives)
}

// ratio returns NaN when the denominator is 0
func ratio(a, b int) float64 {
	if b == 0 {
		return math.NaN()
	}
	return float64(a) / float64(b)
}

// Point is a point of a curve
type Point struct {
	X, Y float64
}

// ROC returns the (false positive rate, true positive rate) points of the given matrices
func ROC(cs []Confusion) []Point {
	result := make([]Point, len(cs))
	for i, c := range cs {
		result[i] = Point{c.FalsePositiveRate(), c.TruePositiveRate()}
	}
	return result
}

// PR returns the (precision, recall) points of the given matrices
func PR(cs []Confusion) []Point {
	result := make([]Point, len(cs))
	for i, c := range cs {
		result[i] = Point{c.Precision(), c.Recall()}
	}
	return result
}
