package tree

import (
	"fmt"

	"github.com/google/uuid"
)

// DraftError represents an error related with growing a draft
type DraftError string

/*
ErrUnfinishedDraft is the error returned when freezing a draft that, or
some descendant of which, was never made a leaf or a stage.
*/
const ErrUnfinishedDraft = DraftError("draft node was never developed")

// ErrDraftDeveloped is the error returned when developing a draft twice
const ErrDraftDeveloped = DraftError("draft node already developed")

func (de DraftError) Error() string {
	return string(de)
}

type draftState int

const (
	pending draftState = iota
	leaf
	stage
)

/*
Draft is a node of a tree that is still being grown. It starts pending and
is developed exactly once, either into a leaf or into a stage with one
pending child draft per attribute value. Once every draft under a root has
been developed, Freeze turns them into an immutable Node tree.

A draft must be developed by a single goroutine, and the children returned
by MakeStage must be handed to other goroutines only through a
synchronizing mechanism (such as a queue.Queue).
*/
type Draft struct {
	ID          string
	state       draftState
	probability float64
	weight      int
	attribute   int
	children    map[string]*Draft
}

// NewDraft returns a pending draft with a random ID
func NewDraft() *Draft {
	return &Draft{ID: uuid.NewString()}
}

// MakeLeaf develops a pending draft into a leaf
func (d *Draft) MakeLeaf(probability float64, weight int) error {
	if d.state != pending {
		return fmt.Errorf("developing draft %s: %w", d.ID, ErrDraftDeveloped)
	}
	d.state = leaf
	d.probability = probability
	d.weight = weight
	return nil
}

// MakeStage develops a pending draft into a stage branching on the given
// attribute, and returns a new pending child draft for every value.
func (d *Draft) MakeStage(attribute int, values []string) (map[string]*Draft, error) {
	if d.state != pending {
		return nil, fmt.Errorf("developing draft %s: %w", d.ID, ErrDraftDeveloped)
	}
	d.state = stage
	d.attribute = attribute
	d.children = make(map[string]*Draft, len(values))
	result := make(map[string]*Draft, len(values))
	for _, v := range values {
		c := NewDraft()
		d.children[v] = c
		result[v] = c
	}
	return result, nil
}

// Freeze returns the immutable node equivalent to the draft and its
// descendants, or ErrUnfinishedDraft if any of them is still pending.
func (d *Draft) Freeze() (*Node, error) {
	switch d.state {
	case leaf:
		return NewLeaf(d.probability, d.weight), nil
	case stage:
		children := make(map[string]*Node, len(d.children))
		for v, c := range d.children {
			n, err := c.Freeze()
			if err != nil {
				return nil, err
			}
			children[v] = n
		}
		return &Node{attribute: d.attribute, children: children}, nil
	}
	return nil, fmt.Errorf("freezing draft %s: %w", d.ID, ErrUnfinishedDraft)
}
