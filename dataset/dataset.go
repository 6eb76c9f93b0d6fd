package dataset

import (
	"fmt"
	"math"
	"sort"
)

const (
	recordCountThresholdForDatasetImplementation = 1000
)

/*
Dataset represents a read-only collection of labelled records.

Its Entropy method returns the Shannon entropy, in bits, of the distribution
of labels among its records.

Its Partition method groups its records by the value they present for an
attribute and returns a dataset per distinct value.

Its LabelCounts method returns how many records carry each label.

Its AttributeCount method returns the number of attribute values every record
in the dataset has, or an error if they disagree.
*/
type Dataset interface {
	Count() int
	Records() []Record
	AttributeCount() (int, error)
	LabelCounts() map[string]int
	Entropy() (float64, error)
	Partition(attribute int) (map[string]Dataset, error)
}

type memoryIntensiveDataset struct {
	records []Record
}

type cpuIntensiveDataset struct {
	backing []Record
	indexes []int
}

/*
New takes a slice of records and returns a dataset built with them.
The dataset will be a CPU intensive one when the number of records is
over recordCountThresholdForDatasetImplementation.
The slice is not copied and must not be modified afterwards.
*/
func New(records []Record) Dataset {
	if len(records) > recordCountThresholdForDatasetImplementation {
		return NewCPUIntensive(records)
	}
	return NewMemoryIntensive(records)
}

/*
NewMemoryIntensive takes a slice of records and returns a Dataset
built with them. A memory-intensive dataset copies its records into
new groups when partitioned, so every subset is independent from the
dataset it was derived from.
*/
func NewMemoryIntensive(records []Record) Dataset {
	return &memoryIntensiveDataset{records}
}

/*
NewCPUIntensive takes a slice of records and returns a Dataset
built with them. A cpu-intensive dataset never copies records: its
subsets are views holding indexes into the original slice, which is
treated as an immutable backing store.
*/
func NewCPUIntensive(records []Record) Dataset {
	indexes := make([]int, len(records))
	for i := range indexes {
		indexes[i] = i
	}
	return &cpuIntensiveDataset{records, indexes}
}

func (s *memoryIntensiveDataset) Count() int {
	return len(s.records)
}

func (s *cpuIntensiveDataset) Count() int {
	return len(s.indexes)
}

func (s *memoryIntensiveDataset) Records() []Record {
	return s.records
}

func (s *cpuIntensiveDataset) Records() []Record {
	records := make([]Record, 0, len(s.indexes))
	s.iterate(func(_ int, r Record) {
		records = append(records, r)
	})
	return records
}

func (s *memoryIntensiveDataset) AttributeCount() (int, error) {
	return attributeCount(len(s.records), func(f func(int, Record)) {
		for i, r := range s.records {
			f(i, r)
		}
	})
}

func (s *cpuIntensiveDataset) AttributeCount() (int, error) {
	return attributeCount(len(s.indexes), s.iterate)
}

func (s *memoryIntensiveDataset) LabelCounts() map[string]int {
	result := make(map[string]int)
	for _, r := range s.records {
		result[r.Label]++
	}
	return result
}

func (s *cpuIntensiveDataset) LabelCounts() map[string]int {
	result := make(map[string]int)
	s.iterate(func(_ int, r Record) {
		result[r.Label]++
	})
	return result
}

func (s *memoryIntensiveDataset) Entropy() (float64, error) {
	if len(s.records) == 0 {
		return 0.0, ErrEmptyDataset
	}
	return CountsEntropy(SortedCounts(s.LabelCounts())...), nil
}

func (s *cpuIntensiveDataset) Entropy() (float64, error) {
	if len(s.indexes) == 0 {
		return 0.0, ErrEmptyDataset
	}
	return CountsEntropy(SortedCounts(s.LabelCounts())...), nil
}

func (s *memoryIntensiveDataset) Partition(attribute int) (map[string]Dataset, error) {
	if len(s.records) == 0 {
		return nil, ErrEmptyDataset
	}
	groups := make(map[string][]Record)
	for i, r := range s.records {
		v, ok := r.ValueAt(attribute)
		if !ok {
			return nil, fmt.Errorf("partitioning by attribute %d: record %d has %d attributes", attribute, i, len(r.Values))
		}
		groups[v] = append(groups[v], r.clone())
	}
	result := make(map[string]Dataset, len(groups))
	for v, records := range groups {
		result[v] = &memoryIntensiveDataset{records}
	}
	return result, nil
}

func (s *cpuIntensiveDataset) Partition(attribute int) (map[string]Dataset, error) {
	if len(s.indexes) == 0 {
		return nil, ErrEmptyDataset
	}
	groups := make(map[string][]int)
	for _, i := range s.indexes {
		r := s.backing[i]
		v, ok := r.ValueAt(attribute)
		if !ok {
			return nil, fmt.Errorf("partitioning by attribute %d: record %d has %d attributes", attribute, i, len(r.Values))
		}
		groups[v] = append(groups[v], i)
	}
	result := make(map[string]Dataset, len(groups))
	for v, indexes := range groups {
		result[v] = &cpuIntensiveDataset{s.backing, indexes}
	}
	return result, nil
}

func (s *cpuIntensiveDataset) iterate(lambda func(int, Record)) {
	for _, i := range s.indexes {
		lambda(i, s.backing[i])
	}
}

/*
CountsEntropy takes the sizes of the classes of a distribution and returns
its Shannon entropy in bits. Classes of size 0 do not contribute.
*/
func CountsEntropy(counts ...int) float64 {
	var total float64
	for _, c := range counts {
		total += float64(c)
	}
	var result float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		result -= p * math.Log2(p)
	}
	return result
}

/*
SortedCounts returns the values of a map of counts ordered by key, so that
sums over them are reproducible regardless of map iteration order.
*/
func SortedCounts(counts map[string]int) []int {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	result := make([]int, len(keys))
	for i, k := range keys {
		result[i] = counts[k]
	}
	return result
}

func attributeCount(n int, iterate func(func(int, Record))) (int, error) {
	if n == 0 {
		return 0, ErrEmptyDataset
	}
	expected := -1
	var err error
	iterate(func(i int, r Record) {
		if err != nil {
			return
		}
		if expected < 0 {
			expected = len(r.Values)
			return
		}
		if len(r.Values) != expected {
			err = &InconsistentRecordShapeError{Index: i, Expected: expected, Got: len(r.Values)}
		}
	})
	if err != nil {
		return 0, err
	}
	return expected, nil
}
