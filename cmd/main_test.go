package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/padelmatch/internal/config"
	"github.com/okian/padelmatch/pkg/logger"
	"github.com/okian/padelmatch/pkg/metrics"
)

// clearEnv unsets every PADEL_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		k, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(k, config.EnvPrefix) {
			t.Setenv(k, "")
			_ = os.Unsetenv(k)
		}
	}
}

// run executes the CLI with args and returns what it wrote to stdout.
func run(args ...string) (string, error) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--env-file", filepath.Join("testdata", "absent.env")}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReportCommands(t *testing.T) {
	clearEnv(t)

	convey.Convey("Given the padelmatch CLI with the built-in roster", t, func() {
		convey.Convey("When listing players", func() {
			out, err := run("players")

			convey.Convey("Then every player should be printed in rank order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldStartWith, "RANK")
				convey.So(out, convey.ShouldContainSubstring, "alba")
				convey.So(out, convey.ShouldContainSubstring, "mario")
				convey.So(strings.Count(out, "\n"), convey.ShouldEqual, 13)
			})
		})

		convey.Convey("When asking for five recommendations as JSON", func() {
			out, err := run("recommend", "--limit", "5", "--json")
			convey.So(err, convey.ShouldBeNil)

			var cands []struct {
				Key      string  `json:"key"`
				Fairness float64 `json:"fairness"`
			}
			convey.So(json.Unmarshal([]byte(out), &cands), convey.ShouldBeNil)

			convey.Convey("Then the best five should be returned", func() {
				convey.So(len(cands), convey.ShouldEqual, 5)
				convey.So(cands[0].Key, convey.ShouldEqual, "alba|carla::bruno|irene")
			})
		})

		convey.Convey("When printing recommendations as a table", func() {
			out, err := run("recommend", "--limit", "3")

			convey.Convey("Then one row per candidate should follow the header", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "FAIRNESS")
				convey.So(strings.Count(out, "\n"), convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When listing the top pairs as JSON", func() {
			out, err := run("pairs", "--limit", "3", "--json")
			convey.So(err, convey.ShouldBeNil)

			var entries []struct {
				Rank int `json:"rank"`
				Pair struct {
					Key   string `json:"key"`
					Label string `json:"label"`
				} `json:"pair"`
			}
			convey.So(json.Unmarshal([]byte(out), &entries), convey.ShouldBeNil)

			convey.Convey("Then the strongest pair should come first", func() {
				convey.So(len(entries), convey.ShouldEqual, 3)
				convey.So(entries[0].Rank, convey.ShouldEqual, 1)
				convey.So(entries[0].Pair.Key, convey.ShouldEqual, "alba|bruno")
				convey.So(entries[0].Pair.Label, convey.ShouldEqual, "Alba Ruiz / Bruno Castro")
			})
		})
	})
}

func TestConfigErrors(t *testing.T) {
	clearEnv(t)

	convey.Convey("Given an invalid log format in the environment", t, func() {
		t.Setenv("PADEL_LOG_FORMAT", "xml")

		convey.Convey("Then every command should fail before running", func() {
			_, err := run("players")
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "log_format")
		})
	})

	convey.Convey("Given a roster file that does not exist", t, func() {
		t.Setenv("PADEL_ROSTER_PATH", filepath.Join("testdata", "missing.yaml"))

		convey.Convey("Then the report should fail to start the service", func() {
			_, err := run("pairs")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestMetricsNames(t *testing.T) {
	clearEnv(t)

	convey.Convey("Given a metrics namespace in the environment", t, func() {
		t.Setenv("PADEL_METRICS_NAMESPACE", "court")
		t.Setenv("PADEL_METRICS_SUBSYSTEM", "night")
		defer metrics.Configure()

		convey.Convey("When a command starts", func() {
			_, err := run("players")
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the exported metrics should carry the configured prefix", func() {
				families, err := metrics.GetRegistry().Gather()
				convey.So(err, convey.ShouldBeNil)
				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				convey.So(names["court_night_roster_players"], convey.ShouldBeTrue)
				convey.So(names["padelmatch_planner_roster_players"], convey.ShouldBeFalse)
			})
		})
	})
}

func TestHandler(t *testing.T) {
	clearEnv(t)
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		t.Fatal(err)
	}

	convey.Convey("Given the HTTP handler built for serve", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		log := logger.Get()
		svc := newService(cfg, log)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		srv := httptest.NewServer(newHandler(ctx, cfg, svc, log))
		defer srv.Close()

		convey.Convey("Then the API and the docs should share one router", func() {
			for _, path := range []string{"/healthz", "/api/v1/players", "/openapi.yaml", "/api-docs"} {
				resp, err := http.Get(srv.URL + path)
				convey.So(err, convey.ShouldBeNil)
				_ = resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			}
		})
	})

	convey.Convey("Given a fresh process", t, func() {
		convey.Convey("Then system metrics should update without panicking", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})
	})
}
