package yaml

import (
	"testing"

	"github.com/pbanos/sprout/dataset"
	. "github.com/smartystreets/goconvey/convey"
)

const mushroomMetadata = `
label: class
positiveLabel: e
features:
  - name: cap-shape
    values: [b, c, x, f, k, s]
  - name: cap-surface
    values: [f, g, y, s]
  - name: bruises
    values: [t, f]
  - name: odor
`

func TestReadMetadata(t *testing.T) {
	Convey("Given a metadata document", t, func() {
		md, err := ReadMetadata([]byte(mushroomMetadata))
		So(err, ShouldBeNil)
		Convey("label and features are read in column order", func() {
			So(md.Label, ShouldEqual, "class")
			So(md.PositiveLabel, ShouldEqual, "e")
			So(md.ColumnCount(), ShouldEqual, 5)
			c, err := md.Column("bruises")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, 3)
		})
		Convey("selected columns are named after their features", func() {
			names, err := md.AttributeNames([]int{4, 1})
			So(err, ShouldBeNil)
			So(names, ShouldResemble, []string{"odor", "cap-shape"})
			_, err = md.AttributeNames([]int{0})
			So(err, ShouldNotBeNil)
		})
		Convey("non-string values are read as strings", func() {
			md, err := ReadMetadata([]byte("features:\n  - name: rings\n    values: [0, 1, 2]\n"))
			So(err, ShouldBeNil)
			So(md.Features[0].AvailableValues(), ShouldResemble, []string{"0", "1", "2"})
		})
		Convey("records are validated against the available values", func() {
			columns := []int{3, 4}
			ok := dataset.New([]dataset.Record{dataset.NewRecord("e", "t", "anything")})
			So(md.Validate(ok, columns), ShouldBeNil)
			ko := dataset.New([]dataset.Record{dataset.NewRecord("e", "t", "a"), dataset.NewRecord("p", "x", "a")})
			So(md.Validate(ko, columns), ShouldNotBeNil)
		})
	})
	Convey("Documents without features are rejected", t, func() {
		_, err := ReadMetadata([]byte("label: class\n"))
		So(err, ShouldNotBeNil)
	})
	Convey("Duplicated features are rejected", t, func() {
		_, err := ReadMetadata([]byte("features:\n  - name: a\n  - name: a\n"))
		So(err, ShouldNotBeNil)
	})
	Convey("Missing files are reported", t, func() {
		_, err := ReadMetadataFromFile("/nonexistent/metadata.yml")
		So(err, ShouldNotBeNil)
	})
}
