package mongodataset

import (
	"testing"

	"github.com/pbanos/sprout/dataset"
	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/mgo.v2/bson"
)

func TestRecordDocument(t *testing.T) {
	Convey("Given a record", t, func() {
		r := dataset.NewRecord("e", "x", "s", "n")
		Convey("its BSON document carries its label and values", func() {
			data, err := bson.Marshal(newRecordDocument(r))
			So(err, ShouldBeNil)
			var m bson.M
			So(bson.Unmarshal(data, &m), ShouldBeNil)
			So(m[labelField], ShouldEqual, "e")
			So(m[valuesField], ShouldResemble, []interface{}{"x", "s", "n"})
		})
		Convey("decoding the document yields the record back", func() {
			data, err := bson.Marshal(newRecordDocument(r))
			So(err, ShouldBeNil)
			var doc recordDocument
			So(bson.Unmarshal(data, &doc), ShouldBeNil)
			So(doc.record(), ShouldResemble, r)
		})
	})
	Convey("Given a record without attributes", t, func() {
		doc := newRecordDocument(dataset.NewRecord("p"))
		So(doc.Values, ShouldResemble, []string{})
	})
}

func TestDecodeLabelCount(t *testing.T) {
	roundTrip := func(doc bson.M) bson.M {
		data, err := bson.Marshal(doc)
		So(err, ShouldBeNil)
		var result bson.M
		So(bson.Unmarshal(data, &result), ShouldBeNil)
		return result
	}
	Convey("Given label count documents as the server sends them", t, func() {
		Convey("32 bit counts are decoded", func() {
			label, count, err := decodeLabelCount(roundTrip(bson.M{"_id": "e", countField: int32(199)}))
			So(err, ShouldBeNil)
			So(label, ShouldEqual, "e")
			So(count, ShouldEqual, 199)
		})
		Convey("64 bit counts are decoded", func() {
			label, count, err := decodeLabelCount(roundTrip(bson.M{"_id": "p", countField: int64(1) << 33}))
			So(err, ShouldBeNil)
			So(label, ShouldEqual, "p")
			So(count, ShouldEqual, 1<<33)
		})
		Convey("double counts are decoded", func() {
			_, count, err := decodeLabelCount(roundTrip(bson.M{"_id": "p", countField: 3.0}))
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 3)
		})
		Convey("a count of another type is rejected", func() {
			_, _, err := decodeLabelCount(roundTrip(bson.M{"_id": "p", countField: "3"}))
			So(err, ShouldNotBeNil)
		})
		Convey("a missing label is rejected", func() {
			_, _, err := decodeLabelCount(roundTrip(bson.M{countField: int32(3)}))
			So(err, ShouldNotBeNil)
		})
	})
}
