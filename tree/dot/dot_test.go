package dot

import (
	"bytes"
	"testing"

	"github.com/pbanos/sprout/tree"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGraph(t *testing.T) {
	Convey("Given a tree with one stage and two leaves", t, func() {
		tr := tree.New(tree.NewStage(0, map[string]*tree.Node{
			"a": tree.NewLeaf(1.0, 2),
			"b": tree.NewLeaf(0.0, 1),
		}), "e", []string{"odor"})
		Convey("the graph has a node per tree node and an edge per branch", func() {
			g, err := Graph(tr)
			So(err, ShouldBeNil)
			So(g.Nodes.Nodes, ShouldHaveLength, 3)
			So(g.Edges.Edges, ShouldHaveLength, 2)
			So(g.Nodes.Lookup["n0"].Attrs["label"], ShouldEqual, `"odor"`)
		})
		Convey("the DOT document is written", func() {
			var buf bytes.Buffer
			So(Write(tr, &buf), ShouldBeNil)
			So(buf.String(), ShouldContainSubstring, "digraph sprout")
			So(buf.String(), ShouldContainSubstring, "n0->n1")
		})
	})
}
