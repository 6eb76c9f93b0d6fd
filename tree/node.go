package tree

import "sort"

/*
Node is a node of the tree. It is either a leaf, holding the probability of
the positive label for records reaching it, or a stage, that inspects one
attribute of a record and hands it over to the child for the observed value.

Nodes are immutable once built.
*/
type Node struct {
	// The probability of the positive label. Only meaningful on leaves.
	probability float64
	// The number of training records the leaf was built from.
	weight int
	// The index of the attribute inspected by a stage.
	attribute int
	// The subtrees of a stage keyed by attribute value. Nil for leaves.
	children map[string]*Node
}

// NewLeaf returns a leaf node predicting the given probability for the
// positive label, built from weight training records.
func NewLeaf(probability float64, weight int) *Node {
	return &Node{probability: probability, weight: weight}
}

// NewStage returns a stage node branching on the given attribute index.
// The children map is copied.
func NewStage(attribute int, children map[string]*Node) *Node {
	c := make(map[string]*Node, len(children))
	for v, n := range children {
		c[v] = n
	}
	return &Node{attribute: attribute, children: c}
}

// IsLeaf returns whether the node is a leaf
func (n *Node) IsLeaf() bool {
	return n.children == nil
}

// Probability returns the positive label probability held by a leaf
func (n *Node) Probability() float64 {
	return n.probability
}

// Weight returns the number of training records a leaf was built from
func (n *Node) Weight() int {
	return n.weight
}

// Attribute returns the attribute index a stage branches on
func (n *Node) Attribute() int {
	return n.attribute
}

// Child returns the subtree of a stage for the given attribute value
func (n *Node) Child(value string) (*Node, bool) {
	c, ok := n.children[value]
	return c, ok
}

// Values returns the sorted attribute values a stage has subtrees for
func (n *Node) Values() []string {
	values := make([]string, 0, len(n.children))
	for v := range n.children {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
