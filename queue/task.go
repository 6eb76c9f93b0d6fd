package queue

import (
	"fmt"

	"github.com/pbanos/sprout/dataset"
	"github.com/pbanos/sprout/tree"
)

// Task represents a tree.Draft to be developed
// from the records that reach it.
type Task struct {
	// The draft node to be developed
	Draft *tree.Draft
	// The dataset of training records that reach
	// the draft from the root of the tree.
	Dataset dataset.Dataset
	// The number of stages above the draft
	Depth int
	// The number of attributes every record in
	// the dataset has.
	AttributeCount int
}

// ID returns a string that identifies the
// task, the ID of its Draft.
func (t *Task) ID() string {
	return t.Draft.ID
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %s depth:%d records:%d}", t.Draft.ID, t.Depth, t.Dataset.Count())
}
