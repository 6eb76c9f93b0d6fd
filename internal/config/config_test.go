package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pbanos/sprout"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/pflag"
)

func TestLoad(t *testing.T) {
	Convey("Without file, environment or flags", t, func() {
		c, err := Load("", nil)
		So(err, ShouldBeNil)
		Convey("the defaults are used", func() {
			So(c.Policy(), ShouldResemble, sprout.DefaultPolicy())
			So(c.Workers, ShouldEqual, 1)
			So(c.Redis.Addr, ShouldEqual, "localhost:6379")
			So(c.Listen, ShouldEqual, ":8080")
			So(c.PositiveLabelSet, ShouldBeFalse)
		})
	})
	Convey("Given a configuration file", t, func() {
		file := filepath.Join(t.TempDir(), "sprout.yml")
		err := os.WriteFile(file, []byte("positive-label: p\nmax-depth: 3\nredis:\n  addr: redis:6379\n"), 0644)
		So(err, ShouldBeNil)
		Convey("its settings replace the defaults", func() {
			c, err := Load(file, nil)
			So(err, ShouldBeNil)
			So(c.PositiveLabel, ShouldEqual, "p")
			So(c.PositiveLabelSet, ShouldBeTrue)
			So(c.MaxDepth, ShouldEqual, 3)
			So(c.PurityThreshold, ShouldEqual, 0.99)
			So(c.Redis.Addr, ShouldEqual, "redis:6379")
		})
		Convey("the environment overrides the file", func() {
			t.Setenv("SPROUT_MAX_DEPTH", "5")
			t.Setenv("SPROUT_REDIS_PREFIX", "trees")
			c, err := Load(file, nil)
			So(err, ShouldBeNil)
			So(c.MaxDepth, ShouldEqual, 5)
			So(c.Redis.Prefix, ShouldEqual, "trees")
		})
		Convey("flags that were set override everything else", func() {
			t.Setenv("SPROUT_MAX_DEPTH", "5")
			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			flags.Int("max-depth", 0, "")
			flags.Int("workers", 1, "")
			flags.Bool("unrelated", false, "")
			So(flags.Parse([]string{"--max-depth=7"}), ShouldBeNil)
			c, err := Load(file, flags)
			So(err, ShouldBeNil)
			So(c.MaxDepth, ShouldEqual, 7)
			So(c.Workers, ShouldEqual, 1)
		})
	})
	Convey("A positive label passed with its default value counts as set", t, func() {
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("positive-label", sprout.DefaultPositiveLabel, "")
		So(flags.Parse([]string{"--positive-label", sprout.DefaultPositiveLabel}), ShouldBeNil)
		c, err := Load("", flags)
		So(err, ShouldBeNil)
		So(c.PositiveLabel, ShouldEqual, sprout.DefaultPositiveLabel)
		So(c.PositiveLabelSet, ShouldBeTrue)
		Convey("unlike an untouched flag", func() {
			flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
			flags.String("positive-label", sprout.DefaultPositiveLabel, "")
			So(flags.Parse(nil), ShouldBeNil)
			c, err := Load("", flags)
			So(err, ShouldBeNil)
			So(c.PositiveLabelSet, ShouldBeFalse)
		})
	})
	Convey("A positive label from the environment counts as set", t, func() {
		t.Setenv("SPROUT_POSITIVE_LABEL", "p")
		c, err := Load("", nil)
		So(err, ShouldBeNil)
		So(c.PositiveLabel, ShouldEqual, "p")
		So(c.PositiveLabelSet, ShouldBeTrue)
	})
	Convey("Invalid settings are rejected", t, func() {
		t.Setenv("SPROUT_PURITY_THRESHOLD", "1.5")
		_, err := Load("", nil)
		So(err, ShouldNotBeNil)
	})
	Convey("A missing configuration file is reported", t, func() {
		_, err := Load("/nonexistent/sprout.yml", nil)
		So(err, ShouldNotBeNil)
	})
}
