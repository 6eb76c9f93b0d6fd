package dataset

import (
	"fmt"
	"strings"
)

/*
Record represents a labelled observation: an ordered sequence of categorical
attribute values and the class label observed for them.
*/
type Record struct {
	Values []string
	Label  string
}

/*
NewRecord takes a label and the attribute values of an observation and
returns a Record holding them.
*/
func NewRecord(label string, values ...string) Record {
	return Record{Values: values, Label: label}
}

// ValueAt returns the value for the attribute at index i and whether the
// record has such an attribute.
func (r Record) ValueAt(i int) (string, bool) {
	if i < 0 || i >= len(r.Values) {
		return "", false
	}
	return r.Values[i], true
}

func (r Record) clone() Record {
	values := make([]string, len(r.Values))
	copy(values, r.Values)
	return Record{Values: values, Label: r.Label}
}

func (r Record) String() string {
	return fmt.Sprintf("[%s] -> %s", strings.Join(r.Values, ","), r.Label)
}
