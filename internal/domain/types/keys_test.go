package types_test

import (
	"testing"

	types "github.com/okian/padelmatch/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPairKey(t *testing.T) {
	Convey("Given two player ids", t, func() {
		Convey("When building the key in both orders", func() {
			ab, ok1 := types.PairKey("ana", "bea")
			ba, ok2 := types.PairKey("bea", "ana")

			Convey("Then the keys should be equal and sorted", func() {
				So(ok1, ShouldBeTrue)
				So(ok2, ShouldBeTrue)
				So(ab, ShouldEqual, ba)
				So(ab, ShouldEqual, "ana|bea")
			})
		})

		Convey("When an id is empty", func() {
			_, ok := types.PairKey("ana", "")
			So(ok, ShouldBeFalse)
		})

		Convey("When both ids are the same", func() {
			_, ok := types.PairKey("ana", "ana")
			So(ok, ShouldBeFalse)
		})

		Convey("When splitting a key", func() {
			a, b, ok := types.SplitPairKey("ana|bea")
			So(ok, ShouldBeTrue)
			So(a, ShouldEqual, "ana")
			So(b, ShouldEqual, "bea")

			_, _, ok = types.SplitPairKey("ana")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMatchKey(t *testing.T) {
	Convey("Given two pairs", t, func() {
		Convey("When they are disjoint", func() {
			k1, ok1 := types.MatchKey([2]string{"dani", "carla"}, [2]string{"bea", "ana"})
			k2, ok2 := types.MatchKey([2]string{"ana", "bea"}, [2]string{"carla", "dani"})

			Convey("Then the key should not depend on order", func() {
				So(ok1, ShouldBeTrue)
				So(ok2, ShouldBeTrue)
				So(k1, ShouldEqual, k2)
				So(k1, ShouldEqual, "ana|bea::carla|dani")
			})

			Convey("And it should split back into pair keys", func() {
				p1, p2, ok := types.SplitMatchKey(k1)
				So(ok, ShouldBeTrue)
				So(p1, ShouldEqual, "ana|bea")
				So(p2, ShouldEqual, "carla|dani")
			})
		})

		Convey("When they share a player", func() {
			_, ok := types.MatchKey([2]string{"ana", "bea"}, [2]string{"bea", "carla"})
			So(ok, ShouldBeFalse)
		})

		Convey("When a pair is incomplete", func() {
			_, ok := types.MatchKey([2]string{"ana", ""}, [2]string{"bea", "carla"})
			So(ok, ShouldBeFalse)
		})

		Convey("When splitting a malformed key", func() {
			_, _, ok := types.SplitMatchKey("ana|bea")
			So(ok, ShouldBeFalse)
			_, _, ok = types.SplitMatchKey("ana::bea")
			So(ok, ShouldBeFalse)
		})
	})
}
