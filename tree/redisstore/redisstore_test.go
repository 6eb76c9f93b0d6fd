package redisstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pbanos/sprout/tree"
	. "github.com/smartystreets/goconvey/convey"
	"gopkg.in/redis.v5"
)

func TestStore(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	defer mr.Close()
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rc.Close()
	ctx := context.Background()

	Convey("Given a store over redis", t, func() {
		rs := New(rc, "trees")
		tr := tree.New(tree.NewStage(0, map[string]*tree.Node{
			"a": tree.NewLeaf(1.0, 2),
			"b": tree.NewLeaf(0.0, 1),
		}), "e", nil)

		Convey("a created tree can be retrieved by its ID", func() {
			id, err := rs.Create(ctx, tr)
			So(err, ShouldBeNil)
			So(mr.Exists("trees:"+id), ShouldBeTrue)
			got, err := rs.Get(ctx, id)
			So(err, ShouldBeNil)
			So(got.String(), ShouldEqual, tr.String())
		})
		Convey("storing under an ID replaces the tree", func() {
			So(rs.Store(ctx, "fixed", tr), ShouldBeNil)
			So(rs.Store(ctx, "fixed", tree.New(tree.NewLeaf(0.5, 4), "e", nil)), ShouldBeNil)
			got, err := rs.Get(ctx, "fixed")
			So(err, ShouldBeNil)
			So(got.Root().IsLeaf(), ShouldBeTrue)
		})
		Convey("a deleted tree is not found", func() {
			id, err := rs.Create(ctx, tr)
			So(err, ShouldBeNil)
			So(rs.Delete(ctx, id), ShouldBeNil)
			_, err = rs.Get(ctx, id)
			So(err, ShouldEqual, ErrTreeNotFound)
		})
		Convey("operations fail on a cancelled context", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := rs.Get(cctx, "fixed")
			So(err, ShouldEqual, context.Canceled)
		})
	})
}
