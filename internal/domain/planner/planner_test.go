package planner_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/okian/padelmatch/internal/domain/dedupe"
	"github.com/okian/padelmatch/internal/domain/planner"
	"github.com/okian/padelmatch/internal/domain/recommend"
	"github.com/okian/padelmatch/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	topKey    = "alba|diego::bruno|fran"
	secondKey = "bruno|carla::diego|elena"
	thirdKey  = "alba|hugo::bruno|carla"
	topNotes  = "Controlled level gap. Aspiring pair in good form. Compatible chemistry. Intense duel expected."
)

var fixedNow = time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)

func newPlanner(t *testing.T, opts ...planner.Option) *planner.Planner {
	t.Helper()
	r, err := roster.New(roster.DefaultPlayers(), roster.DefaultPairStats())
	if err != nil {
		t.Fatalf("default roster: %v", err)
	}
	opts = append([]planner.Option{planner.WithClock(func() time.Time { return fixedNow })}, opts...)
	return planner.New(r, opts...)
}

func TestRecommendations(t *testing.T) {
	Convey("Given a fresh session", t, func() {
		p := newPlanner(t)

		Convey("Then the current recommendation should be the best candidate", func() {
			c, ok := p.Current()
			So(ok, ShouldBeTrue)
			So(c.Key, ShouldEqual, topKey)
			So(len(p.Candidates()), ShouldEqual, recommend.DefaultLimit)
			form := p.Form()
			So(form.Empty(), ShouldBeTrue)
		})

		Convey("When accepting the current recommendation", func() {
			c, err := p.AcceptRecommendation("")

			Convey("Then the form should hold the pairs with drive players first", func() {
				So(err, ShouldBeNil)
				So(c.Key, ShouldEqual, topKey)
				f := p.Form()
				So(f.Pair1, ShouldEqual, [2]string{"alba", "diego"})
				So(f.Pair2, ShouldEqual, [2]string{"bruno", "fran"})
				So(f.Notes, ShouldEqual, topNotes)
			})

			Convey("And the key should be dismissed and pending", func() {
				So(p.Pending(), ShouldEqual, topKey)
				So(p.Dismissed(), ShouldResemble, []string{topKey})
				next, _ := p.Current()
				So(next.Key, ShouldEqual, secondKey)
			})

			Convey("And accepting the next one should reorder its strong pair", func() {
				_, err := p.AcceptRecommendation("")
				So(err, ShouldBeNil)
				f := p.Form()
				So(f.Pair1, ShouldEqual, [2]string{"carla", "bruno"})
				So(f.Pair2, ShouldEqual, [2]string{"elena", "diego"})
				So(p.Pending(), ShouldEqual, secondKey)
			})
		})

		Convey("When the same summary is accepted into existing notes", func() {
			p.UpdateForm(planner.Form{Notes: "bring balls\n" + topNotes})
			_, err := p.AcceptRecommendation(topKey)

			Convey("Then the notes should not grow", func() {
				So(err, ShouldBeNil)
				So(p.Form().Notes, ShouldEqual, "bring balls\n"+topNotes)
			})
		})

		Convey("When the notes already have other text", func() {
			p.UpdateForm(planner.Form{Notes: "court 3 booked"})
			_, err := p.AcceptRecommendation("")

			Convey("Then the summary should go on a new line", func() {
				So(err, ShouldBeNil)
				So(p.Form().Notes, ShouldEqual, "court 3 booked\n"+topNotes)
			})
		})

		Convey("When skipping", func() {
			p.UpdateForm(planner.Form{Court: "Pista 2"})
			c, err := p.SkipRecommendation("")

			Convey("Then the key should be dismissed but the form untouched", func() {
				So(err, ShouldBeNil)
				So(c.Key, ShouldEqual, topKey)
				So(p.Form().Court, ShouldEqual, "Pista 2")
				So(p.Pending(), ShouldEqual, "")
				next, _ := p.Current()
				So(next.Key, ShouldEqual, secondKey)
			})

			Convey("And skipping twice should move further down", func() {
				_, err := p.SkipRecommendation("")
				So(err, ShouldBeNil)
				next, _ := p.Current()
				So(next.Key, ShouldEqual, thirdKey)
			})

			Convey("And reset should bring it back", func() {
				p.ResetRecommendations()
				So(p.Dismissed(), ShouldBeEmpty)
				next, _ := p.Current()
				So(next.Key, ShouldEqual, topKey)
			})
		})

		Convey("When naming a key that is not recommended", func() {
			_, err := p.SkipRecommendation("ana|bea::carla|dani")

			Convey("Then it should fail without changes", func() {
				So(errors.Is(err, planner.ErrNoRecommendation), ShouldBeTrue)
				So(p.Dismissed(), ShouldBeEmpty)
			})
		})
	})

	Convey("Given a generator that never recommends", t, func() {
		p := newPlanner(t, planner.WithGenerator(recommend.New(recommend.WithDiffRange(90, 95))))

		Convey("Then accept and skip should report no recommendation", func() {
			_, ok := p.Current()
			So(ok, ShouldBeFalse)
			_, err := p.AcceptRecommendation("")
			So(errors.Is(err, planner.ErrNoRecommendation), ShouldBeTrue)
			_, err = p.SkipRecommendation("")
			So(errors.Is(err, planner.ErrNoRecommendation), ShouldBeTrue)
			form := p.Form()
			So(form.Empty(), ShouldBeTrue)
		})
	})

	Convey("Given a generation observer", t, func() {
		runs := 0
		last := 0
		p := newPlanner(t, planner.WithGenerationObserver(func(n int, _ recommend.Stats, _ time.Duration) {
			runs++
			last = n
		}))

		Convey("Then every candidate computation should be reported", func() {
			p.Candidates()
			_, _ = p.Current()
			So(runs, ShouldEqual, 2)
			So(last, ShouldEqual, recommend.DefaultLimit)
		})
	})
}

func TestCreateMatch(t *testing.T) {
	id := uuid.MustParse("7f1c2d9e-4b6a-4c1e-9a55-0d3c2b1a0f99")

	Convey("Given a session", t, func() {
		p := newPlanner(t, planner.WithIDGenerator(func() uuid.UUID { return id }))

		Convey("When creating from an accepted recommendation", func() {
			_, err := p.AcceptRecommendation("")
			So(err, ShouldBeNil)
			p.UpdateForm(withCourt(p.Form(), " Pista 1 "))
			m, err := p.CreateFromForm()

			Convey("Then the match should be planned as recommended", func() {
				So(err, ShouldBeNil)
				So(m.ID, ShouldEqual, id)
				So(m.Key, ShouldEqual, topKey)
				So(m.Provenance, ShouldEqual, planner.ProvenanceRecommended)
				So(m.Court, ShouldEqual, "Pista 1")
				So(m.CreatedAt, ShouldEqual, fixedNow)
				So(m.Notes, ShouldEqual, topNotes)
				So(m.Evaluation.Key, ShouldEqual, topKey)
				So(m.Pair1.Key, ShouldEqual, "alba|diego")
			})

			Convey("And the form and pending key should be cleared", func() {
				form := p.Form()
				So(form.Empty(), ShouldBeTrue)
				So(p.Pending(), ShouldEqual, "")
				So(len(p.Planned()), ShouldEqual, 1)
			})

			Convey("And reset should not bring a planned key back", func() {
				p.ResetRecommendations()
				for _, c := range p.Candidates() {
					So(c.Key, ShouldNotEqual, topKey)
				}
			})
		})

		Convey("When creating the same four players twice", func() {
			f := planner.Form{Pair1: [2]string{"alba", "bruno"}, Pair2: [2]string{"carla", "diego"}}
			first, err := p.CreateMatch(f)
			So(err, ShouldBeNil)
			So(first.Provenance, ShouldEqual, planner.ProvenanceManual)

			swapped := planner.Form{Pair1: [2]string{"diego", "carla"}, Pair2: [2]string{"bruno", "alba"}, Notes: "rematch"}
			p.UpdateForm(swapped)
			_, err = p.CreateMatch(swapped)

			Convey("Then the second attempt should be rejected without changes", func() {
				So(errors.Is(err, planner.ErrDuplicateMatch), ShouldBeTrue)
				So(len(p.Planned()), ShouldEqual, 1)
				So(p.Form().Notes, ShouldEqual, "rematch")
			})
		})

		Convey("When the selection is incomplete", func() {
			_, err := p.CreateMatch(planner.Form{Pair1: [2]string{"alba", " "}, Pair2: [2]string{"carla", "diego"}})
			So(errors.Is(err, planner.ErrIncompleteSelection), ShouldBeTrue)
			So(errors.Is(err, planner.ErrSharedPlayer), ShouldBeFalse)
			So(p.Planned(), ShouldBeEmpty)
		})

		Convey("When the pairs share a player", func() {
			_, err := p.CreateMatch(planner.Form{Pair1: [2]string{"alba", "bruno"}, Pair2: [2]string{"bruno", "diego"}})
			So(errors.Is(err, planner.ErrSharedPlayer), ShouldBeTrue)
			So(errors.Is(err, planner.ErrIncompleteSelection), ShouldBeTrue)
		})

		Convey("When a player is unknown", func() {
			_, err := p.CreateMatch(planner.Form{Pair1: [2]string{"alba", "zoe"}, Pair2: [2]string{"carla", "diego"}})
			So(errors.Is(err, planner.ErrUnknownPair), ShouldBeTrue)
			So(p.Planned(), ShouldBeEmpty)
		})
	})
}

func TestRemoveMatch(t *testing.T) {
	Convey("Given a planned match", t, func() {
		p := newPlanner(t)
		_, err := p.AcceptRecommendation("")
		So(err, ShouldBeNil)
		_, err = p.CreateFromForm()
		So(err, ShouldBeNil)
		_, err = p.CreateMatch(planner.Form{Pair1: [2]string{"gala", "hugo"}, Pair2: [2]string{"irene", "javi"}})
		So(err, ShouldBeNil)

		Convey("When removing it", func() {
			removed := p.RemoveMatch(topKey)

			Convey("Then it should be gone and eligible again", func() {
				So(removed, ShouldBeTrue)
				So(len(p.Planned()), ShouldEqual, 1)
				So(p.Dismissed(), ShouldNotContain, topKey)
				c, _ := p.Current()
				So(c.Key, ShouldEqual, topKey)
			})

			Convey("And removing it again should change nothing", func() {
				before := p.Planned()
				dismissed := p.Dismissed()
				So(p.RemoveMatch(topKey), ShouldBeFalse)
				So(p.Planned(), ShouldResemble, before)
				So(p.Dismissed(), ShouldResemble, dismissed)
			})
		})
	})

	Convey("Given a skipped recommendation that was never planned", t, func() {
		p := newPlanner(t)
		_, err := p.SkipRecommendation("")
		So(err, ShouldBeNil)
		So(p.Dismissed(), ShouldContain, topKey)

		Convey("When removing its key", func() {
			removed := p.RemoveMatch(topKey)

			Convey("Then nothing is removed but the key is eligible again", func() {
				So(removed, ShouldBeFalse)
				So(p.Planned(), ShouldBeEmpty)
				So(p.Dismissed(), ShouldNotContain, topKey)
				c, _ := p.Current()
				So(c.Key, ShouldEqual, topKey)
			})
		})
	})

	Convey("Given a bounded dismissed set", t, func() {
		p := newPlanner(t, planner.WithDismissedSet(dedupe.NewInMemorySet(dedupe.WithMaxSize(1))))
		_, _ = p.SkipRecommendation("")
		_, _ = p.SkipRecommendation("")

		Convey("Then only the newest dismissal should be kept", func() {
			So(p.Dismissed(), ShouldResemble, []string{secondKey})
			c, _ := p.Current()
			So(c.Key, ShouldEqual, topKey)
		})
	})
}

func withCourt(f planner.Form, court string) planner.Form {
	f.Court = court
	return f
}
