package tree

import (
	"fmt"
	"strings"
)

// Tree represents a decision tree. It is composed of the root node
// from which every prediction starts, the label whose probability
// its leaves report, and optionally the names of the attributes
// its stages inspect.
type Tree struct {
	root           *Node
	positiveLabel  string
	attributeNames []string
}

// New takes the root Node, the positive label and the names of the
// attributes (which may be nil) and returns a tree.
func New(root *Node, positiveLabel string, attributeNames []string) *Tree {
	var names []string
	if len(attributeNames) > 0 {
		names = make([]string, len(attributeNames))
		copy(names, attributeNames)
	}
	return &Tree{root, positiveLabel, names}
}

// Root returns the root node of the tree
func (t *Tree) Root() *Node {
	return t.root
}

// PositiveLabel returns the label whose probability the leaves report
func (t *Tree) PositiveLabel() string {
	return t.positiveLabel
}

// AttributeNames returns the names of the attributes, if known
func (t *Tree) AttributeNames() []string {
	return t.attributeNames
}

// AttributeName returns the name of the attribute at index i, falling
// back to a generic one when names were not provided.
func (t *Tree) AttributeName(i int) string {
	if i >= 0 && i < len(t.attributeNames) && t.attributeNames[i] != "" {
		return t.attributeNames[i]
	}
	return fmt.Sprintf("attribute %d", i)
}

// Predict takes the attribute values of a record and returns the
// probability of the positive label according to the tree, or an error
// if the record cannot be taken to a leaf.
func (t *Tree) Predict(values []string) (float64, error) {
	if t == nil || t.root == nil {
		return 0.0, ErrNilTree
	}
	n := t.root
	for !n.IsLeaf() {
		if n.attribute >= len(values) {
			return 0.0, &AttributeIndexOutOfRangeError{Attribute: n.attribute, Length: len(values)}
		}
		v := values[n.attribute]
		c, ok := n.children[v]
		if !ok {
			return 0.0, &UnseenCategoryError{Attribute: n.attribute, Value: v}
		}
		n = c
	}
	return n.probability, nil
}

// Traverse takes a bottomup boolean and an error-returning function and
// goes through the tree calling the function with the depth of every node,
// the attribute value that led to it from its parent ("" for the root) and
// the node itself. Subtrees are visited in attribute value order.
// The function is called for a parent before its children if bottomup is
// false, and after them if it is true. If the function returns an error the
// traversing is aborted and the error is returned.
func (t *Tree) Traverse(bottomup bool, f func(depth int, value string, n *Node) error) error {
	if t == nil || t.root == nil {
		return nil
	}
	return traverse(t.root, 0, "", bottomup, f)
}

func traverse(n *Node, depth int, value string, bottomup bool, f func(int, string, *Node) error) error {
	if !bottomup {
		if err := f(depth, value, n); err != nil {
			return err
		}
	}
	for _, v := range n.Values() {
		if err := traverse(n.children[v], depth+1, v, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(depth, value, n)
	}
	return nil
}

// Depth returns the number of stages on the longest path from the root to a leaf
func (t *Tree) Depth() int {
	var max int
	t.Traverse(false, func(depth int, _ string, n *Node) error {
		if n.IsLeaf() && depth > max {
			max = depth
		}
		return nil
	})
	return max
}

// LeafCount returns the number of leaves in the tree
func (t *Tree) LeafCount() int {
	var count int
	t.Traverse(false, func(_ int, _ string, n *Node) error {
		if n.IsLeaf() {
			count++
		}
		return nil
	})
	return count
}

// StageCount returns the number of stages in the tree
func (t *Tree) StageCount() int {
	var count int
	t.Traverse(false, func(_ int, _ string, n *Node) error {
		if !n.IsLeaf() {
			count++
		}
		return nil
	})
	return count
}

func (t *Tree) String() string {
	if t == nil || t.root == nil {
		return "[empty tree]\n"
	}
	return t.subtreeString(t.root, "[root]")
}

func (t *Tree) subtreeString(n *Node, header string) string {
	result := fmt.Sprintf("%s\n", header)
	if n.IsLeaf() {
		return fmt.Sprintf("%s{ P(%s)=%f w=%d }\n", result, t.positiveLabel, n.probability, n.weight)
	}
	result = fmt.Sprintf("%s{ split on %s }\n|\n", result, t.AttributeName(n.attribute))
	values := n.Values()
	for i, v := range values {
		st := t.subtreeString(n.children[v], fmt.Sprintf("[%s is %s]", t.AttributeName(n.attribute), v))
		for j, line := range strings.Split(st, "\n") {
			if len(line) == 0 {
				continue
			}
			if j == 0 {
				result = fmt.Sprintf("%s|__%s\n", result, line)
			} else if i == len(values)-1 {
				result = fmt.Sprintf("%s   %s\n", result, line)
			} else {
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}
