package recommend_test

import (
	"testing"

	"github.com/okian/padelmatch/internal/domain/recommend"
	"github.com/okian/padelmatch/internal/domain/roster"
	"github.com/okian/padelmatch/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

type keys map[string]bool

func (k keys) Contains(key string) bool { return k[key] }

func defaultPairs(t *testing.T) []scoring.PairMetrics {
	t.Helper()
	r, err := roster.New(roster.DefaultPlayers(), roster.DefaultPairStats())
	if err != nil {
		t.Fatalf("default roster: %v", err)
	}
	return r.AllPairMetrics()
}

func TestGenerate(t *testing.T) {
	pairs := defaultPairs(t)

	Convey("Given the default roster and filter", t, func() {
		g := recommend.New()

		Convey("When generating with nothing excluded", func() {
			cands, st := g.Generate(pairs)

			Convey("Then the cap should be reached", func() {
				So(len(cands), ShouldEqual, recommend.DefaultLimit)
				So(st.Truncated, ShouldBeTrue)
				So(st.Evaluated, ShouldBeGreaterThanOrEqualTo, len(cands))
			})

			Convey("Then the best matchup should come first", func() {
				So(cands[0].Key, ShouldEqual, "alba|diego::bruno|fran")
				So(cands[0].Highlight, ShouldEqual, 95)
				So(cands[0].Strong.Key, ShouldEqual, "alba|diego")
				So(cands[0].ExpectedGames, ShouldEqual, 12)
				So(cands[1].Key, ShouldEqual, "alba|carla::bruno|fran")
				So(cands[2].Key, ShouldEqual, "alba|diego::bruno|gala")
			})

			Convey("Then every candidate should pass the filter", func() {
				seen := map[string]bool{}
				for _, c := range cands {
					So(c.Diff, ShouldBeBetweenOrEqual, recommend.DefaultMinDiff, recommend.DefaultMaxDiff)
					So(c.Fairness, ShouldBeGreaterThanOrEqualTo, recommend.DefaultMinFairness)
					So(c.Strong.SharesPlayer(&c.Underdog), ShouldBeFalse)
					So(c.Strong.Score, ShouldBeGreaterThanOrEqualTo, c.Underdog.Score)
					So(seen[c.Key], ShouldBeFalse)
					seen[c.Key] = true
				}
			})

			Convey("Then the order should be highlight desc, then gap asc", func() {
				for i := 1; i < len(cands); i++ {
					prev, cur := cands[i-1], cands[i]
					So(cur.Highlight, ShouldBeLessThanOrEqualTo, prev.Highlight)
					if cur.Highlight == prev.Highlight {
						So(cur.Diff, ShouldBeGreaterThanOrEqualTo, prev.Diff)
					}
				}
			})

			Convey("Then generation should be deterministic", func() {
				again, _ := g.Generate(pairs)
				So(again, ShouldResemble, cands)
			})
		})

		Convey("When the top key is excluded", func() {
			cands, st := g.Generate(pairs, keys{"alba|diego::bruno|fran": true}, nil)

			Convey("Then it should not come back and the list should still be full", func() {
				So(st.Excluded, ShouldEqual, 1)
				So(len(cands), ShouldEqual, recommend.DefaultLimit)
				So(cands[0].Key, ShouldEqual, "bruno|carla::diego|elena")
				for _, c := range cands {
					So(c.Key, ShouldNotEqual, "alba|diego::bruno|fran")
				}
			})
		})

		Convey("When the input order is shuffled", func() {
			reversed := make([]scoring.PairMetrics, len(pairs))
			for i := range pairs {
				reversed[len(pairs)-1-i] = pairs[i]
			}
			a, _ := g.Generate(pairs)
			b, _ := g.Generate(reversed)

			Convey("Then the result should not change", func() {
				So(b, ShouldResemble, a)
			})
		})
	})

	Convey("Given a small limit", t, func() {
		g := recommend.New(recommend.WithLimit(5))
		cands, _ := g.Generate(pairs)

		Convey("Then scanning should stop at the first accepted matchups", func() {
			So(g.Limit(), ShouldEqual, 5)
			So(len(cands), ShouldEqual, 5)
			So(cands[0].Key, ShouldEqual, "alba|carla::bruno|irene")
			So(cands[0].Highlight, ShouldEqual, 79)
			So(cands[4].Key, ShouldEqual, "alba|carla::diego|gala")
		})
	})

	Convey("Given pairs whose gap sits exactly on a bound", t, func() {
		g := recommend.New(recommend.WithMinFairness(0))
		bound := func(strong float64) []scoring.PairMetrics {
			return []scoring.PairMetrics{
				{Key: "a|b", PlayerA: "a", PlayerB: "b", Score: strong},
				{Key: "c|d", PlayerA: "c", PlayerB: "d", Score: 66.9},
			}
		}

		Convey("Then a gap of exactly the minimum should be kept", func() {
			cands, _ := g.Generate(bound(70.1))
			So(len(cands), ShouldEqual, 1)
			So(cands[0].Diff, ShouldEqual, recommend.DefaultMinDiff)
		})

		Convey("Then a gap of exactly the maximum should be kept", func() {
			cands, _ := g.Generate(bound(77.4))
			So(len(cands), ShouldEqual, 1)
			So(cands[0].Diff, ShouldEqual, recommend.DefaultMaxDiff)
		})
	})

	Convey("Given a filter nothing can pass", t, func() {
		g := recommend.New(recommend.WithMinFairness(1), recommend.WithDiffRange(50, 60))
		cands, st := g.Generate(pairs)

		Convey("Then the list should be empty", func() {
			So(cands, ShouldBeEmpty)
			So(st.Truncated, ShouldBeFalse)
			So(st.Rejected, ShouldEqual, st.Evaluated)
		})
	})

	Convey("Given fewer than four players", t, func() {
		r, err := roster.New(roster.DefaultPlayers()[:3], nil)
		So(err, ShouldBeNil)
		cands, st := recommend.New().Generate(r.AllPairMetrics())

		Convey("Then no matchup can be formed", func() {
			So(cands, ShouldBeEmpty)
			So(st.Evaluated, ShouldEqual, 0)
		})
	})

	Convey("Given invalid options", t, func() {
		g := recommend.New(recommend.WithLimit(0), recommend.WithDiffRange(5, 1), recommend.WithMinFairness(2))

		Convey("Then defaults should be kept", func() {
			So(g.Limit(), ShouldEqual, recommend.DefaultLimit)
			cands, _ := g.Generate(pairs)
			So(len(cands), ShouldEqual, recommend.DefaultLimit)
		})
	})
}
