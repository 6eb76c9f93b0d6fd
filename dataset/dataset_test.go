package dataset

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func mushrooms() []Record {
	return []Record{
		NewRecord("e", "a", "x"),
		NewRecord("e", "a", "y"),
		NewRecord("p", "b", "x"),
		NewRecord("p", "b", "y"),
	}
}

func implementations(records []Record) map[string]Dataset {
	return map[string]Dataset{
		"memory-intensive": NewMemoryIntensive(records),
		"cpu-intensive":    NewCPUIntensive(records),
	}
}

func TestEntropy(t *testing.T) {
	for name, ds := range implementations(mushrooms()) {
		Convey("Given a "+name+" dataset with two labels at 50%", t, func() {
			Convey("its entropy is 1 bit", func() {
				e, err := ds.Entropy()
				So(err, ShouldBeNil)
				So(e, ShouldAlmostEqual, 1.0)
			})
		})
	}
	Convey("Given a dataset where all records share one label", t, func() {
		ds := New([]Record{NewRecord("e", "a"), NewRecord("e", "b"), NewRecord("e", "c")})
		Convey("its entropy is exactly 0", func() {
			e, err := ds.Entropy()
			So(err, ShouldBeNil)
			So(e, ShouldEqual, 0.0)
		})
	})
	Convey("Given an empty dataset", t, func() {
		ds := New(nil)
		Convey("entropy fails with ErrEmptyDataset", func() {
			_, err := ds.Entropy()
			So(err, ShouldEqual, ErrEmptyDataset)
		})
		Convey("partitioning fails with ErrEmptyDataset", func() {
			_, err := ds.Partition(0)
			So(err, ShouldEqual, ErrEmptyDataset)
		})
	})
}

func TestPartition(t *testing.T) {
	for name, ds := range implementations(mushrooms()) {
		Convey("Given a "+name+" dataset", t, func() {
			Convey("partitioning by attribute 0 groups records by value", func() {
				groups, err := ds.Partition(0)
				So(err, ShouldBeNil)
				So(groups, ShouldHaveLength, 2)
				So(groups["a"].Count(), ShouldEqual, 2)
				So(groups["b"].Count(), ShouldEqual, 2)
				So(groups["a"].LabelCounts(), ShouldResemble, map[string]int{"e": 2})
				So(groups["b"].LabelCounts(), ShouldResemble, map[string]int{"p": 2})
			})
			Convey("partitioning by a missing attribute fails", func() {
				_, err := ds.Partition(2)
				So(err, ShouldNotBeNil)
			})
		})
	}
	Convey("Given a memory-intensive dataset", t, func() {
		records := mushrooms()
		ds := NewMemoryIntensive(records)
		Convey("its partitions do not alias the original records", func() {
			groups, err := ds.Partition(0)
			So(err, ShouldBeNil)
			groups["a"].Records()[0].Values[1] = "changed"
			So(records[0].Values[1], ShouldEqual, "x")
		})
	})
}

func TestAttributeCount(t *testing.T) {
	Convey("Given records with the same shape", t, func() {
		ds := New(mushrooms())
		Convey("the attribute count is reported", func() {
			n, err := ds.AttributeCount()
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 2)
		})
	})
	for name, ds := range implementations([]Record{NewRecord("e", "a", "x"), NewRecord("p", "b")}) {
		Convey("Given a "+name+" dataset with records of different shapes", t, func() {
			Convey("AttributeCount fails with an InconsistentRecordShapeError", func() {
				_, err := ds.AttributeCount()
				So(errors.Is(err, ErrInconsistentRecordShape), ShouldBeTrue)
				var shapeErr *InconsistentRecordShapeError
				So(errors.As(err, &shapeErr), ShouldBeTrue)
				So(shapeErr.Index, ShouldEqual, 1)
				So(shapeErr.Expected, ShouldEqual, 2)
				So(shapeErr.Got, ShouldEqual, 1)
			})
		})
	}
}

func TestCountsEntropy(t *testing.T) {
	Convey("CountsEntropy ignores empty classes", t, func() {
		So(CountsEntropy(3, 0, 3), ShouldAlmostEqual, 1.0)
		So(CountsEntropy(5), ShouldEqual, 0.0)
		So(CountsEntropy(1, 1, 1, 1), ShouldAlmostEqual, 2.0)
	})
}
