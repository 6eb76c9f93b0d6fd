package benchmark

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/pbanos/sprout/dataset"
	"github.com/pbanos/sprout/tree"
	. "github.com/smartystreets/goconvey/convey"
)

func mushroomTree() *tree.Tree {
	return tree.New(tree.NewStage(0, map[string]*tree.Node{
		"a": tree.NewLeaf(0.9, 10),
		"b": tree.NewLeaf(0.2, 10),
	}), "e", nil)
}

func TestEvaluate(t *testing.T) {
	Convey("Given a tree and an evaluation dataset", t, func() {
		s := dataset.New([]dataset.Record{
			dataset.NewRecord("e", "a"),
			dataset.NewRecord("p", "a"),
			dataset.NewRecord("e", "b"),
			dataset.NewRecord("p", "b"),
			dataset.NewRecord("p", "b"),
			dataset.NewRecord("e", "c"),
		})
		e := Evaluate(mushroomTree(), s, "e")
		Convey("unpredictable records are failures", func() {
			So(len(e.Outcomes), ShouldEqual, 5)
			So(len(e.Failures), ShouldEqual, 1)
			So(e.Failures[0].Index, ShouldEqual, 5)
			So(errors.Is(e.Failures[0], tree.ErrUnseenCategory), ShouldBeTrue)
		})
		Convey("at threshold 0.5 the matrix and rates are those of the records", func() {
			c := e.Confusion(0.5)
			So(c.TruePositives, ShouldEqual, 1)
			So(c.FalsePositives, ShouldEqual, 1)
			So(c.FalseNegatives, ShouldEqual, 1)
			So(c.TrueNegatives, ShouldEqual, 2)
			So(c.Failed, ShouldEqual, 1)
			So(c.Accuracy(), ShouldAlmostEqual, 0.6)
			So(c.Precision(), ShouldAlmostEqual, 0.5)
			So(c.Recall(), ShouldAlmostEqual, 0.5)
			So(c.TrueNegativeRate(), ShouldAlmostEqual, 2.0/3.0)
			So(c.FalsePositiveRate(), ShouldAlmostEqual, 1.0/3.0)
			So(c.FalseNegativeRate(), ShouldAlmostEqual, 0.5)
		})
		Convey("a probability equal to the threshold is positive", func() {
			c := e.Confusion(0.9)
			So(c.TruePositives, ShouldEqual, 1)
			So(c.FalsePositives, ShouldEqual, 1)
		})
		Convey("rates with no records to divide by are NaN", func() {
			c := e.Confusion(0.95)
			So(c.TruePositives+c.FalsePositives, ShouldEqual, 0)
			So(math.IsNaN(c.Precision()), ShouldBeTrue)
		})
		Convey("sweeping the default thresholds yields 100 ROC and PR points", func() {
			cs := e.Sweep(DefaultThresholds())
			So(len(cs), ShouldEqual, 100)
			So(cs[0].Threshold, ShouldEqual, 0.0)
			So(cs[99].Threshold, ShouldAlmostEqual, 0.99)
			roc := ROC(cs)
			So(roc[0], ShouldResemble, Point{1.0, 1.0})
			So(roc[99], ShouldResemble, Point{0.0, 0.0})
			pr := PR(cs)
			So(pr[0].X, ShouldAlmostEqual, 0.4)
			So(pr[0].Y, ShouldEqual, 1.0)
		})
		Convey("the report lists every threshold", func() {
			var buf bytes.Buffer
			So(WriteReport(&buf, "mushrooms", e.Sweep([]float64{0.5, 0.9})), ShouldBeNil)
			out := strings.ToUpper(buf.String())
			So(out, ShouldContainSubstring, "THRESHOLD")
			So(out, ShouldContainSubstring, "0.50")
			So(out, ShouldContainSubstring, "0.90")
			So(out, ShouldContainSubstring, "0.6000")
		})
	})
}
