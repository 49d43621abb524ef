package sessionsim_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/padelmatch/internal/adapters/http/api"
	service "github.com/okian/padelmatch/internal/app"
	"github.com/okian/padelmatch/internal/sessionsim"
	"github.com/okian/padelmatch/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
}

func newServer(t *testing.T, opts ...api.Option) *httptest.Server {
	t.Helper()
	svc := service.New()
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	srv := httptest.NewServer(api.NewServer(svc, svc, opts...).Router(context.Background()))
	t.Cleanup(func() {
		srv.Close()
		svc.Stop()
	})
	return srv
}

func TestRun(t *testing.T) {
	Convey("Given a running planner server", t, func() {
		srv := newServer(t)
		ctx := context.Background()

		Convey("When a session accepts and skips with concurrent readers", func() {
			stats, err := sessionsim.Run(ctx, &sessionsim.Config{
				BaseURL:   srv.URL,
				Rounds:    10,
				SkipRatio: 0.4,
				Seed:      7,
				Readers:   3,
				Timeout:   5 * time.Second,
				Court:     "Pista 2",
			})

			Convey("Then no invariant should be violated", func() {
				So(err, ShouldBeNil)
				So(stats.Violations, ShouldBeEmpty)
				So(stats.Rounds, ShouldEqual, 10)
				So(stats.Accepted+stats.Skipped, ShouldEqual, 10)
			})

			Convey("And every accepted match plus the re-planned one should be counted", func() {
				So(err, ShouldBeNil)
				if stats.Accepted > 0 {
					So(stats.Removed, ShouldEqual, 1)
					So(stats.Created, ShouldEqual, stats.Accepted+1)
				}
			})
		})

		Convey("When a session only accepts", func() {
			stats, err := sessionsim.Run(ctx, &sessionsim.Config{BaseURL: srv.URL, Rounds: 4, SkipRatio: 0})

			Convey("Then one match should be planned per round", func() {
				So(err, ShouldBeNil)
				So(stats.Accepted, ShouldEqual, 4)
				So(stats.Skipped, ShouldEqual, 0)
				So(stats.Created, ShouldEqual, 5)
			})
		})

		Convey("When two sessions run one after the other", func() {
			_, err := sessionsim.Run(ctx, &sessionsim.Config{BaseURL: srv.URL, Rounds: 3, SkipRatio: 0})
			So(err, ShouldBeNil)
			_, err = sessionsim.Run(ctx, &sessionsim.Config{BaseURL: srv.URL, Rounds: 3, SkipRatio: 0})

			Convey("Then the second should respect the matches of the first", func() {
				So(err, ShouldBeNil)
			})
		})
	})

	Convey("Given a server that requires a token", t, func() {
		srv := newServer(t, api.WithToken("s3cret"))
		ctx := context.Background()

		Convey("When the simulator has no token", func() {
			_, err := sessionsim.Run(ctx, &sessionsim.Config{BaseURL: srv.URL, Rounds: 1})

			Convey("Then it should stop with the 401", func() {
				var ae *sessionsim.APIError
				So(errors.As(err, &ae), ShouldBeTrue)
				So(ae.Status, ShouldEqual, 401)
				So(sessionsim.IsCode(err, "unauthorized"), ShouldBeTrue)
			})
		})

		Convey("When the simulator sends the token", func() {
			_, err := sessionsim.Run(ctx, &sessionsim.Config{BaseURL: srv.URL, Token: "s3cret", Rounds: 2})

			Convey("Then the session should complete", func() {
				So(err, ShouldBeNil)
			})
		})
	})

	Convey("Given a server with the default rate limit", t, func() {
		srv := newServer(t, api.WithRateLimit(20, 40))

		Convey("When a full session runs with readers", func() {
			stats, err := sessionsim.Run(context.Background(), &sessionsim.Config{
				BaseURL:   srv.URL,
				Rounds:    8,
				SkipRatio: 0.3,
				Seed:      1,
				Readers:   2,
				Timeout:   5 * time.Second,
			})

			Convey("Then 429s should slow it down but not abort it", func() {
				So(err, ShouldBeNil)
				So(stats.Violations, ShouldBeEmpty)
				So(stats.Rounds, ShouldEqual, 8)
			})
		})
	})

	Convey("Given no server at the address", t, func() {
		srv := httptest.NewServer(nil)
		url := srv.URL
		srv.Close()

		Convey("Then the health check should fail", func() {
			_, err := sessionsim.Run(context.Background(), &sessionsim.Config{BaseURL: url, Timeout: time.Second})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "health check")
		})
	})
}
