package sample

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/pbanos/sprout/dataset"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAttributes(t *testing.T) {
	Convey("Given a seeded random source", t, func() {
		r := rand.New(rand.NewSource(42))
		Convey("the default draw returns 5 distinct columns in [1, 23)", func() {
			columns, err := Attributes(DefaultAttributeCount, DefaultLowColumn, DefaultHighColumn, r)
			So(err, ShouldBeNil)
			So(len(columns), ShouldEqual, 5)
			seen := make(map[int]bool)
			for _, c := range columns {
				So(c, ShouldBeBetweenOrEqual, 1, 22)
				So(seen[c], ShouldBeFalse)
				seen[c] = true
			}
		})
		Convey("drawing the whole range returns a permutation of it", func() {
			columns, err := Attributes(4, 3, 7, r)
			So(err, ShouldBeNil)
			sort.Ints(columns)
			So(columns, ShouldResemble, []int{3, 4, 5, 6})
		})
		Convey("drawing more columns than the range holds fails", func() {
			_, err := Attributes(5, 1, 5, r)
			So(err, ShouldNotBeNil)
		})
		Convey("the same seed yields the same draw", func() {
			c1, _ := Attributes(5, 1, 23, rand.New(rand.NewSource(7)))
			c2, _ := Attributes(5, 1, 23, rand.New(rand.NewSource(7)))
			So(c1, ShouldResemble, c2)
		})
	})
}

func TestSplit(t *testing.T) {
	Convey("Given a dataset of 1000 records", t, func() {
		var records []dataset.Record
		for i := 0; i < 1000; i++ {
			records = append(records, dataset.NewRecord("e", fmt.Sprint(i)))
		}
		s := dataset.New(records)
		r := rand.New(rand.NewSource(1))
		Convey("splitting keeps every record exactly once", func() {
			training, evaluation, err := Split(s, DefaultTrainingRatio, r)
			So(err, ShouldBeNil)
			So(training.Count()+evaluation.Count(), ShouldEqual, 1000)
			So(training.Count(), ShouldBeBetween, 600, 800)
			seen := make(map[string]bool)
			for _, rec := range append(training.Records(), evaluation.Records()...) {
				So(seen[rec.Values[0]], ShouldBeFalse)
				seen[rec.Values[0]] = true
			}
		})
		Convey("ratios 1 and 0 send everything to one side", func() {
			training, evaluation, err := Split(s, 1.0, r)
			So(err, ShouldBeNil)
			So(training.Count(), ShouldEqual, 1000)
			So(evaluation.Count(), ShouldEqual, 0)
			training, evaluation, err = Split(s, 0.0, r)
			So(err, ShouldBeNil)
			So(training.Count(), ShouldEqual, 0)
			So(evaluation.Count(), ShouldEqual, 1000)
		})
		Convey("invalid ratios are rejected", func() {
			_, _, err := Split(s, 1.5, r)
			So(err, ShouldNotBeNil)
		})
	})
}
