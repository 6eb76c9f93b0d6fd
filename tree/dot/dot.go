/*
Package dot renders trees as Graphviz DOT documents.
*/
package dot

import (
	"fmt"
	"io"

	"github.com/awalterschulze/gographviz"
	"github.com/pbanos/sprout/tree"
)

const graphName = "sprout"

/*
Graph takes a tree and returns a directed gographviz graph with a box
for every stage, naming the attribute it inspects, an ellipse for every
leaf, with its probability and weight, and an edge labelled with the
attribute value from every stage to each of its children.
*/
func Graph(t *tree.Tree) (*gographviz.Graph, error) {
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return nil, err
	}
	if err := g.SetDir(true); err != nil {
		return nil, err
	}
	if t == nil || t.Root() == nil {
		return g, nil
	}
	var next int
	_, err := addNode(g, t, t.Root(), &next)
	if err != nil {
		return nil, err
	}
	return g, nil
}

/*
Write takes a tree and an io.Writer and writes the DOT document for the
tree onto it.
*/
func Write(t *tree.Tree, w io.Writer) error {
	g, err := Graph(t)
	if err != nil {
		return fmt.Errorf("rendering tree as DOT: %w", err)
	}
	_, err = io.WriteString(w, g.String())
	return err
}

func addNode(g *gographviz.Graph, t *tree.Tree, n *tree.Node, next *int) (string, error) {
	name := fmt.Sprintf("n%d", *next)
	*next++
	attrs := map[string]string{}
	if n.IsLeaf() {
		attrs["shape"] = "ellipse"
		attrs["label"] = fmt.Sprintf("%q", fmt.Sprintf("P(%s)=%.4f\nw=%d", t.PositiveLabel(), n.Probability(), n.Weight()))
	} else {
		attrs["shape"] = "box"
		attrs["label"] = fmt.Sprintf("%q", t.AttributeName(n.Attribute()))
	}
	if err := g.AddNode(graphName, name, attrs); err != nil {
		return "", err
	}
	for _, v := range n.Values() {
		c, _ := n.Child(v)
		cName, err := addNode(g, t, c, next)
		if err != nil {
			return "", err
		}
		err = g.AddEdge(name, cName, true, map[string]string{"label": fmt.Sprintf("%q", v)})
		if err != nil {
			return "", err
		}
	}
	return name, nil
}
