/*
Package json provides methods to serialize tree.Tree values as JSON
documents and to read them back.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/sprout/tree"
)

type jsonTree struct {
	PositiveLabel string    `json:"positiveLabel"`
	Attributes    []string  `json:"attributes,omitempty"`
	Root          *jsonNode `json:"root"`
}

type jsonNode struct {
	Probability *float64             `json:"p,omitempty"`
	Weight      int                  `json:"w,omitempty"`
	Attribute   *int                 `json:"a,omitempty"`
	Children    map[string]*jsonNode `json:"c,omitempty"`
}

/*
Marshal takes a pointer to a tree.Tree and returns it serialized as a JSON
object with the following fields:
  - "positiveLabel": the label whose probability leaves report
  - "attributes": the names of the attributes, if known
  - "root": the root node. Leaves are objects with a "p" probability and a
    "w" weight; stages are objects with an "a" attribute index and a "c"
    object mapping attribute values to subtrees.
*/
func Marshal(t *tree.Tree) ([]byte, error) {
	if t == nil || t.Root() == nil {
		return nil, fmt.Errorf("marshalling tree: nil tree")
	}
	return json.Marshal(&jsonTree{
		PositiveLabel: t.PositiveLabel(),
		Attributes:    t.AttributeNames(),
		Root:          encodeNode(t.Root()),
	})
}

/*
Unmarshal takes a slice of bytes with a tree serialized by Marshal and
returns the tree or an error if it cannot be decoded.
*/
func Unmarshal(data []byte) (*tree.Tree, error) {
	jt := &jsonTree{}
	err := json.Unmarshal(data, jt)
	if err != nil {
		return nil, err
	}
	if jt.Root == nil {
		return nil, fmt.Errorf("no root node available")
	}
	root, err := decodeNode(jt.Root, "root")
	if err != nil {
		return nil, err
	}
	return tree.New(root, jt.PositiveLabel, jt.Attributes), nil
}

/*
WriteJSONTree takes a pointer to a tree.Tree and an io.Writer and
serializes the given tree as JSON onto the io.Writer.
*/
func WriteJSONTree(t *tree.Tree, w io.Writer) error {
	data, err := Marshal(t)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

/*
ReadJSONTree takes an io.Reader and returns the tree unmarshalled from
its contents, or an error if the JSON cannot be read or decoded.
*/
func ReadJSONTree(r io.Reader) (*tree.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading JSON tree: %w", err)
	}
	return Unmarshal(data)
}

func encodeNode(n *tree.Node) *jsonNode {
	if n.IsLeaf() {
		p := n.Probability()
		return &jsonNode{Probability: &p, Weight: n.Weight()}
	}
	a := n.Attribute()
	jn := &jsonNode{Attribute: &a, Children: make(map[string]*jsonNode)}
	for _, v := range n.Values() {
		c, _ := n.Child(v)
		jn.Children[v] = encodeNode(c)
	}
	return jn
}

func decodeNode(jn *jsonNode, path string) (*tree.Node, error) {
	if jn == nil {
		return nil, fmt.Errorf("unmarshalling node %s: null node", path)
	}
	if jn.Attribute == nil {
		if jn.Probability == nil {
			return nil, fmt.Errorf("unmarshalling node %s: neither attribute nor probability defined", path)
		}
		if *jn.Probability < 0.0 || *jn.Probability > 1.0 {
			return nil, fmt.Errorf("unmarshalling node %s: probability %v out of [0, 1]", path, *jn.Probability)
		}
		return tree.NewLeaf(*jn.Probability, jn.Weight), nil
	}
	if *jn.Attribute < 0 {
		return nil, fmt.Errorf("unmarshalling node %s: negative attribute index %d", path, *jn.Attribute)
	}
	if len(jn.Children) == 0 {
		return nil, fmt.Errorf("unmarshalling node %s: stage without children", path)
	}
	children := make(map[string]*tree.Node, len(jn.Children))
	for v, jc := range jn.Children {
		c, err := decodeNode(jc, fmt.Sprintf("%s/%s", path, v))
		if err != nil {
			return nil, err
		}
		children[v] = c
	}
	return tree.NewStage(*jn.Attribute, children), nil
}
