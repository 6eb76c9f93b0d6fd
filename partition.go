package sprout

import (
	"fmt"
	"sort"

	"github.com/pbanos/sprout/dataset"
)

/*
Partition represents a partition of a dataset according to the values of an
attribute, with the gain ratio the partition achieves on the labels.
*/
type Partition struct {
	Attribute int
	Groups    map[string]dataset.Dataset
	GainRatio float64
}

/*
NewPartition takes a non-empty dataset and an attribute index and returns the
partition of the dataset by the values of the attribute. Its gain ratio is

	(Entropy(S) - Σ |Si|/|S| x Entropy(Si)) / SplitInformation(S)

with SplitInformation being the entropy of the group sizes. When the attribute
takes a single value on the dataset the split information is 0 and so is the
gain ratio.
*/
func NewPartition(s dataset.Dataset, attribute int) (*Partition, error) {
	entropy, err := s.Entropy()
	if err != nil {
		return nil, err
	}
	groups, err := s.Partition(attribute)
	if err != nil {
		return nil, err
	}
	total := float64(s.Count())
	values := groupValues(groups)
	sizes := make([]int, len(values))
	var postSplitEntropy float64
	for i, v := range values {
		g := groups[v]
		gEntropy, err := g.Entropy()
		if err != nil {
			return nil, fmt.Errorf("evaluating group %q of attribute %d: %w", v, attribute, err)
		}
		sizes[i] = g.Count()
		postSplitEntropy += float64(sizes[i]) / total * gEntropy
	}
	result := &Partition{Attribute: attribute, Groups: groups}
	splitInformation := dataset.CountsEntropy(sizes...)
	if splitInformation != 0.0 {
		result.GainRatio = (entropy - postSplitEntropy) / splitInformation
	}
	return result, nil
}

/*
GainRatio takes a non-empty dataset and an attribute index and returns the
gain ratio of partitioning the dataset by the attribute.
*/
func GainRatio(s dataset.Dataset, attribute int) (float64, error) {
	p, err := NewPartition(s, attribute)
	if err != nil {
		return 0.0, err
	}
	return p.GainRatio, nil
}

/*
SelectAttribute takes a non-empty dataset and the number of attributes of its
records, and returns the partition for the attribute with the greatest gain
ratio. Attributes are evaluated in index order and a later attribute only
replaces the current best when its gain ratio is strictly greater, so ties go
to the lowest index. A nil partition is returned when there are no attributes.
*/
func SelectAttribute(s dataset.Dataset, attributeCount int) (*Partition, error) {
	var best *Partition
	for a := 0; a < attributeCount; a++ {
		p, err := NewPartition(s, a)
		if err != nil {
			return nil, err
		}
		if best == nil || p.GainRatio > best.GainRatio {
			best = p
		}
	}
	return best, nil
}

// Values returns the sorted attribute values of the partition groups
func (p *Partition) Values() []string {
	return groupValues(p.Groups)
}

func groupValues(groups map[string]dataset.Dataset) []string {
	values := make([]string, 0, len(groups))
	for v := range groups {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
