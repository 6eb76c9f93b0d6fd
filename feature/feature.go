/*
Package feature describes the columns of a tabular source of records: the
name of the label column, the positive label, and the name and optionally
the available values of each attribute column.
*/
package feature

import (
	"fmt"

	"github.com/pbanos/sprout/dataset"
)

/*
Feature represents a categorical property that can be observed. A feature
without available values accepts any value.
*/
type Feature struct {
	name            string
	availableValues []string
}

/*
New takes a name string and a slice of available value strings
and returns a feature with the given name and available values.
*/
func New(name string, availableValues []string) *Feature {
	return &Feature{name, availableValues}
}

/*
Name returns a string with the name of the feature
*/
func (f *Feature) Name() string {
	return f.name
}

// AvailableValues returns the values the feature can take, or nil if any is valid
func (f *Feature) AvailableValues() []string {
	return f.availableValues
}

/*
Valid receives a value and returns a boolean and an error. When the value is
included in the available values of the feature, or the feature has none, the
method returns true and nil. Otherwise it returns false and an error describing
the reason.
*/
func (f *Feature) Valid(value string) (bool, error) {
	if len(f.availableValues) == 0 {
		return true, nil
	}
	for _, av := range f.availableValues {
		if av == value {
			return true, nil
		}
	}
	return false, fmt.Errorf("value %q not available for feature %s", value, f.name)
}

/*
Metadata describes a headerless tabular source. Column 0 holds the label,
named after Label, and column i (i > 0) holds the attribute described by
Features[i-1].
*/
type Metadata struct {
	Label         string
	PositiveLabel string
	Features      []*Feature
}

// ColumnCount returns the number of columns in the source, label included
func (md *Metadata) ColumnCount() int {
	return len(md.Features) + 1
}

// Column returns the source column of the feature with the given name
func (md *Metadata) Column(name string) (int, error) {
	for i, f := range md.Features {
		if f.Name() == name {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unknown feature %s", name)
}

/*
Select takes a slice of source columns and returns the features read from
them, in the same order, or an error if any column holds no feature.
*/
func (md *Metadata) Select(columns []int) ([]*Feature, error) {
	result := make([]*Feature, len(columns))
	for i, c := range columns {
		if c < 1 || c > len(md.Features) {
			return nil, fmt.Errorf("column %d holds no feature", c)
		}
		result[i] = md.Features[c-1]
	}
	return result, nil
}

/*
AttributeNames takes a slice of source columns and returns the names of
the features read from them, suitable for naming the attributes of a tree
grown from records built with those columns.
*/
func (md *Metadata) AttributeNames(columns []int) ([]string, error) {
	features, err := md.Select(columns)
	if err != nil {
		return nil, err
	}
	result := make([]string, len(features))
	for i, f := range features {
		result[i] = f.Name()
	}
	return result, nil
}

/*
Validate takes a dataset whose records were built from the given source
columns and returns an error for the first record holding a value not
available for its feature.
*/
func (md *Metadata) Validate(s dataset.Dataset, columns []int) error {
	features, err := md.Select(columns)
	if err != nil {
		return err
	}
	for i, r := range s.Records() {
		if len(r.Values) != len(features) {
			return &dataset.InconsistentRecordShapeError{Index: i, Expected: len(features), Got: len(r.Values)}
		}
		for j, v := range r.Values {
			if ok, err := features[j].Valid(v); !ok {
				return fmt.Errorf("record %d: %v", i, err)
			}
		}
	}
	return nil
}
