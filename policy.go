package sprout

import (
	"fmt"
	"sort"

	"github.com/pbanos/sprout/dataset"
)

const (
	// DefaultPositiveLabel is the label whose probability leaves
	// report unless configured otherwise
	DefaultPositiveLabel = "e"
	// DefaultPurityThreshold is the clearance at or above which
	// a node is not developed further unless configured otherwise
	DefaultPurityThreshold = 0.99
)

// Policy holds the configuration
// for growing a tree.
type Policy struct {
	// PositiveLabel is the label whose probability
	// every leaf reports.
	PositiveLabel string
	// PurityThreshold is the minimum clearance that
	// turns a node into a leaf without evaluating
	// any attribute.
	PurityThreshold float64
	// MaxDepth is the number of stages after which
	// nodes become leaves. 0 means no limit.
	MaxDepth int
}

// DefaultPolicy returns a policy with the default positive label and purity
// threshold and no depth limit
func DefaultPolicy() Policy {
	return Policy{
		PositiveLabel:   DefaultPositiveLabel,
		PurityThreshold: DefaultPurityThreshold,
	}
}

// Validate returns an error if the policy cannot be used to grow a tree
func (p Policy) Validate() error {
	if p.PositiveLabel == "" {
		return fmt.Errorf("policy: positive label must not be empty")
	}
	if p.PurityThreshold <= 0.0 || p.PurityThreshold > 1.0 {
		return fmt.Errorf("policy: purity threshold %v out of (0, 1]", p.PurityThreshold)
	}
	if p.MaxDepth < 0 {
		return fmt.Errorf("policy: negative max depth %d", p.MaxDepth)
	}
	return nil
}

/*
Clearance takes a dataset and a positive label and returns the majority label
of the dataset together with its proportion among the records. When several
labels tie for the majority, the positive label is preferred if it is among
them and the lexicographically smallest one otherwise.
*/
func Clearance(s dataset.Dataset, positiveLabel string) (float64, string, error) {
	count := s.Count()
	if count == 0 {
		return 0.0, "", dataset.ErrEmptyDataset
	}
	counts := s.LabelCounts()
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	var majority string
	max := -1
	for _, l := range labels {
		if counts[l] > max {
			max = counts[l]
			majority = l
		}
	}
	if counts[positiveLabel] == max {
		majority = positiveLabel
	}
	return float64(max) / float64(count), majority, nil
}

// LeafProbability takes a clearance and the majority label it belongs to and
// returns the probability of the positive label a leaf should report
func (p Policy) LeafProbability(clearance float64, majority string) float64 {
	if majority == p.PositiveLabel {
		return clearance
	}
	return 1.0 - clearance
}
