package pgadapter

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDialect(t *testing.T) {
	Convey("PostgreSQL placeholders are numbered", t, func() {
		d := Dialect()
		So(d.Placeholder(1), ShouldEqual, "$1")
		So(d.Placeholder(12), ShouldEqual, "$12")
		So(d.PrimaryKey("id"), ShouldEqual, `"id" SERIAL PRIMARY KEY`)
	})
}
