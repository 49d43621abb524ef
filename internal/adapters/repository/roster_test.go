package repository

import (
	"errors"
	"testing"

	"github.com/okian/padelmatch/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadRoster(t *testing.T) {
	Convey("Given a roster file", t, func() {
		rf, err := LoadRoster("testdata/roster.yaml")

		Convey("Then players and pair stats should be decoded", func() {
			So(err, ShouldBeNil)
			So(len(rf.Players), ShouldEqual, 3)
			ana := rf.Players[0]
			So(ana.ID, ShouldEqual, "ana")
			So(ana.Rating, ShouldEqual, 7.2)
			So(ana.NetPlay, ShouldEqual, 0.62)
			So(ana.PreferredSide, ShouldEqual, model.SideDrive)
			So(ana.MatchesPlayed, ShouldEqual, 30)
			So(ana.RecentResults, ShouldResemble, []model.Result{model.Win, model.Win, model.Loss, model.Win, model.Loss})
			So(rf.Players[1].Streak, ShouldEqual, -1)
			So(rf.Players[2].PreferredSide, ShouldEqual, model.SideUnset)

			So(len(rf.PairStats), ShouldEqual, 1)
			So(rf.PairStats[0].PlayerA, ShouldEqual, "bea")
			So(rf.PairStats[0].TieBreakWinRate, ShouldEqual, 0.6)
			So(rf.PairStats[0].Trend, ShouldEqual, model.TrendUp)
		})
	})

	Convey("Given bad roster files", t, func() {
		Convey("When the file does not exist", func() {
			_, err := LoadRoster("testdata/missing.yaml")
			So(errors.Is(err, ErrRosterLoad), ShouldBeTrue)
		})

		Convey("When the file is not valid YAML", func() {
			_, err := LoadRoster("testdata/broken.yaml")
			So(errors.Is(err, ErrRosterLoad), ShouldBeTrue)
		})

		Convey("When the file has no players", func() {
			_, err := LoadRoster("testdata/empty.yaml")
			So(errors.Is(err, ErrRosterLoad), ShouldBeTrue)
		})
	})
}
