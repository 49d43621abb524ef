package dedupe_test

import (
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/okian/padelmatch/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemorySet(t *testing.T) {
	Convey("Given a new unbounded set", t, func() {
		s := dedupe.NewInMemorySet()

		Convey("Then it should start empty", func() {
			So(s.Size(), ShouldEqual, 0)
			So(s.Keys(), ShouldBeEmpty)
		})

		Convey("When recording a new key", func() {
			seen := s.SeenAndRecord("a|b::c|d")

			Convey("Then it should report it as new", func() {
				So(seen, ShouldBeFalse)
				So(s.Contains("a|b::c|d"), ShouldBeTrue)
				So(s.Size(), ShouldEqual, 1)
			})

			Convey("And recording it again should report it as seen", func() {
				So(s.SeenAndRecord("a|b::c|d"), ShouldBeTrue)
				So(s.Size(), ShouldEqual, 1)
			})
		})

		Convey("When recording several keys", func() {
			for _, k := range []string{"k1", "k2", "k3"} {
				s.SeenAndRecord(k)
			}

			Convey("Then keys should keep insertion order", func() {
				So(s.Keys(), ShouldResemble, []string{"k1", "k2", "k3"})
			})

			Convey("And unrecording from the middle should keep the rest in order", func() {
				s.Unrecord("k2")
				So(s.Keys(), ShouldResemble, []string{"k1", "k3"})
				So(s.Contains("k2"), ShouldBeFalse)
				So(s.SeenAndRecord("k2"), ShouldBeFalse)
				So(s.Keys(), ShouldResemble, []string{"k1", "k3", "k2"})
			})

			Convey("And unrecording the ends should update head and tail", func() {
				s.Unrecord("k1")
				s.Unrecord("k3")
				So(s.Keys(), ShouldResemble, []string{"k2"})
				s.SeenAndRecord("k4")
				So(s.Keys(), ShouldResemble, []string{"k2", "k4"})
			})

			Convey("And unrecording an unknown key should be a no-op", func() {
				s.Unrecord("missing")
				So(s.Size(), ShouldEqual, 3)
			})

			Convey("And reset should forget everything", func() {
				s.Reset()
				So(s.Size(), ShouldEqual, 0)
				So(s.Keys(), ShouldBeEmpty)
				So(s.SeenAndRecord("k1"), ShouldBeFalse)
			})
		})
	})

	Convey("Given a bounded set", t, func() {
		s := dedupe.NewInMemorySet(dedupe.WithMaxSize(2))

		Convey("When more keys than the bound are recorded", func() {
			s.SeenAndRecord("k1")
			s.SeenAndRecord("k2")
			s.SeenAndRecord("k3")

			Convey("Then the oldest should be evicted", func() {
				So(s.Size(), ShouldEqual, 2)
				So(s.Contains("k1"), ShouldBeFalse)
				So(s.Keys(), ShouldResemble, []string{"k2", "k3"})
			})
		})
	})

	Convey("Given concurrent writers", t, func() {
		s := dedupe.NewInMemorySet()
		var wg sync.WaitGroup
		var mu sync.Mutex
		fresh := 0
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 100; i++ {
					if !s.SeenAndRecord(fmt.Sprintf("key-%d", i)) {
						mu.Lock()
						fresh++
						mu.Unlock()
					}
				}
			}()
		}
		wg.Wait()

		Convey("Then every key should be recorded exactly once", func() {
			So(fresh, ShouldEqual, 100)
			So(s.Size(), ShouldEqual, 100)
		})
	})
}
