package tree

import (
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// odor -> {a: 1.0, b: cap -> {x: 0.25, y: 0.0}}
func sampleTree() *Tree {
	capStage := NewStage(1, map[string]*Node{
		"x": NewLeaf(0.25, 4),
		"y": NewLeaf(0.0, 3),
	})
	root := NewStage(0, map[string]*Node{
		"a": NewLeaf(1.0, 10),
		"b": capStage,
	})
	return New(root, "e", []string{"odor", "cap"})
}

func TestPredict(t *testing.T) {
	Convey("Given a tree with two stages", t, func() {
		tr := sampleTree()
		Convey("records are routed to the leaf for their values", func() {
			p, err := tr.Predict([]string{"a", "whatever"})
			So(err, ShouldBeNil)
			So(p, ShouldEqual, 1.0)
			p, err = tr.Predict([]string{"b", "x"})
			So(err, ShouldBeNil)
			So(p, ShouldEqual, 0.25)
			p, err = tr.Predict([]string{"b", "y"})
			So(err, ShouldBeNil)
			So(p, ShouldEqual, 0.0)
		})
		Convey("predicting twice yields the same result", func() {
			p1, err1 := tr.Predict([]string{"b", "x"})
			p2, err2 := tr.Predict([]string{"b", "x"})
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)
			So(p1, ShouldEqual, p2)
		})
		Convey("an unseen value fails with an UnseenCategoryError", func() {
			_, err := tr.Predict([]string{"c", "x"})
			So(errors.Is(err, ErrUnseenCategory), ShouldBeTrue)
			var uce *UnseenCategoryError
			So(errors.As(err, &uce), ShouldBeTrue)
			So(uce.Attribute, ShouldEqual, 0)
			So(uce.Value, ShouldEqual, "c")
		})
		Convey("a record too short for a stage fails with an AttributeIndexOutOfRangeError", func() {
			_, err := tr.Predict([]string{"b"})
			So(errors.Is(err, ErrAttributeIndexOutOfRange), ShouldBeTrue)
			var oor *AttributeIndexOutOfRangeError
			So(errors.As(err, &oor), ShouldBeTrue)
			So(oor.Attribute, ShouldEqual, 1)
			So(oor.Length, ShouldEqual, 1)
		})
		Convey("a short record that stops at a shallow leaf still predicts", func() {
			p, err := tr.Predict([]string{"a"})
			So(err, ShouldBeNil)
			So(p, ShouldEqual, 1.0)
		})
	})
	Convey("A nil tree cannot predict", t, func() {
		var tr *Tree
		_, err := tr.Predict([]string{"a"})
		So(err, ShouldEqual, ErrNilTree)
	})
}

func TestTreeShape(t *testing.T) {
	Convey("Given a tree with two stages", t, func() {
		tr := sampleTree()
		So(tr.Depth(), ShouldEqual, 2)
		So(tr.LeafCount(), ShouldEqual, 3)
		So(tr.StageCount(), ShouldEqual, 2)
		Convey("Traverse visits parents first in value order", func() {
			var visited []string
			tr.Traverse(false, func(depth int, value string, n *Node) error {
				visited = append(visited, value)
				return nil
			})
			So(visited, ShouldResemble, []string{"", "a", "b", "x", "y"})
		})
		Convey("Traverse bottom-up visits children first", func() {
			var visited []string
			tr.Traverse(true, func(depth int, value string, n *Node) error {
				visited = append(visited, value)
				return nil
			})
			So(visited, ShouldResemble, []string{"a", "x", "y", "b", ""})
		})
		Convey("Traverse stops on the first error", func() {
			stop := errors.New("stop")
			var count int
			err := tr.Traverse(false, func(int, string, *Node) error {
				count++
				if count == 2 {
					return stop
				}
				return nil
			})
			So(err, ShouldEqual, stop)
			So(count, ShouldEqual, 2)
		})
		Convey("String names attributes and values", func() {
			s := tr.String()
			So(s, ShouldStartWith, "[root]\n{ split on odor }")
			So(s, ShouldContainSubstring, "[odor is b]")
			So(s, ShouldContainSubstring, "[cap is x]")
			So(s, ShouldContainSubstring, "P(e)=0.250000 w=4")
			So(strings.Count(s, "|__"), ShouldEqual, 4)
		})
	})
	Convey("Attribute names fall back to indexes", t, func() {
		tr := New(NewLeaf(1.0, 1), "e", nil)
		So(tr.AttributeName(3), ShouldEqual, "attribute 3")
	})
	Convey("NewStage copies the children map", t, func() {
		children := map[string]*Node{"a": NewLeaf(1.0, 1)}
		s := NewStage(0, children)
		children["b"] = NewLeaf(0.0, 1)
		So(s.Values(), ShouldResemble, []string{"a"})
	})
}

func TestDraft(t *testing.T) {
	Convey("Given a draft root", t, func() {
		root := NewDraft()
		So(root.ID, ShouldNotBeEmpty)
		children, err := root.MakeStage(0, []string{"a", "b"})
		So(err, ShouldBeNil)
		So(children, ShouldHaveLength, 2)
		Convey("it cannot be developed twice", func() {
			So(errors.Is(root.MakeLeaf(1.0, 1), ErrDraftDeveloped), ShouldBeTrue)
			_, err := root.MakeStage(1, nil)
			So(errors.Is(err, ErrDraftDeveloped), ShouldBeTrue)
		})
		Convey("freezing with pending children fails", func() {
			So(children["a"].MakeLeaf(1.0, 2), ShouldBeNil)
			_, err := root.Freeze()
			So(errors.Is(err, ErrUnfinishedDraft), ShouldBeTrue)
			var pe PredictionError
			So(errors.As(err, &pe), ShouldBeFalse)
		})
		Convey("freezing a fully developed draft builds the node tree", func() {
			So(children["a"].MakeLeaf(1.0, 2), ShouldBeNil)
			So(children["b"].MakeLeaf(0.0, 1), ShouldBeNil)
			n, err := root.Freeze()
			So(err, ShouldBeNil)
			So(n.IsLeaf(), ShouldBeFalse)
			So(n.Values(), ShouldResemble, []string{"a", "b"})
			b, ok := n.Child("b")
			So(ok, ShouldBeTrue)
			So(b.Weight(), ShouldEqual, 1)
		})
	})
}
