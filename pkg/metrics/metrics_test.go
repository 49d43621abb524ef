package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func value(m prometheus.Metric) float64 {
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		return -1
	}
	if out.Counter != nil {
		return out.Counter.GetValue()
	}
	return out.Gauge.GetValue()
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then every metric should be registered on the given registry", func() {
				So(manager, ShouldNotBeNil)
				manager.plannerOps.WithLabelValues("accept", "ok").Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["padelmatch_planner_roster_players"], ShouldBeTrue)
				So(names["padelmatch_planner_operations_total"], ShouldBeTrue)
				So(names["padelmatch_planner_queue_backpressure_total"], ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("sub"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then names should use the custom namespace", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "sub")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_sub_planned_matches" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When passing empty values", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "padelmatch")
				So(manager.subsystem, ShouldEqual, "planner")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording planner metrics", func() {
			before := value(globalManager.plannerOps.WithLabelValues("skip", "ok"))
			RecordPlannerOp("skip", "ok")
			UpdatePlannerState(3, 7)
			RecordCandidateGeneration(25, 0.4)

			Convey("Then counters and gauges should reflect the values", func() {
				So(value(globalManager.plannerOps.WithLabelValues("skip", "ok")), ShouldEqual, before+1)
				So(value(globalManager.plannedMatches), ShouldEqual, 3)
				So(value(globalManager.dismissedKeys), ShouldEqual, 7)
				So(value(globalManager.candidatesGenerated), ShouldEqual, 25)
			})
		})

		Convey("When recording queue metrics", func() {
			before := value(globalManager.queueBackpressure)
			UpdateQueueCapacity(64)
			UpdateQueueSize(5)
			RecordQueueBackpressure()

			Convey("Then the gauges and counters should update", func() {
				So(value(globalManager.queueCapacity), ShouldEqual, 64)
				So(value(globalManager.queueSize), ShouldEqual, 5)
				So(value(globalManager.queueBackpressure), ShouldEqual, before+1)
			})
		})

		Convey("When recording the remaining metrics", func() {
			Convey("Then nothing should panic", func() {
				So(func() {
					UpdateRosterSize(12, 66)
					RecordEvaluations(40, 15)
					UpdateRepositoryRecordsTotal(66)
					RecordRepositoryQueryLatency(0.2)
					RecordQueueEnqueue()
					RecordQueueDequeue()
					RecordQueueWaitLatency(0.1)
					RecordCommandProcessed("ok", 0.3)
					RecordWorkerPanic()
					RecordHTTPRequest("/api/v1/pairs", "GET", "200")
					RecordHTTPRequestDuration("/api/v1/pairs", "GET", "200", 1.5)
					RecordHTTPRateLimited()
					RecordHTTPUnauthorized()
					RecordErrorByComponent("planner", "duplicate_match")
					RecordErrorByEndpoint("/api/v1/matches", "POST", "duplicate_match")
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.5)
				}, ShouldNotPanic)
			})
		})

		Convey("When asking for the registry", func() {
			Convey("Then it should be the custom registry", func() {
				So(GetRegistry(), ShouldEqual, customRegistry)
			})
		})
	})
}

func TestConfigure(t *testing.T) {
	Convey("Given the global metrics rebuilt with a custom prefix", t, func() {
		Configure(WithNamespace("club"), WithSubsystem("court"), WithHistogramBuckets([]float64{5, 50, 500}))
		defer Configure()

		Convey("When recording through the package functions", func() {
			UpdateRosterSize(12, 66)
			RecordHTTPRequestDuration("/api/v1/pairs", "GET", "200", 7)

			Convey("Then the served registry should hold the renamed metrics", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				var players float64
				var buckets int
				for _, f := range families {
					switch f.GetName() {
					case "club_court_roster_players":
						players = f.GetMetric()[0].GetGauge().GetValue()
					case "club_court_http_request_duration_milliseconds":
						buckets = len(f.GetMetric()[0].GetHistogram().GetBucket())
					}
				}
				So(players, ShouldEqual, 12)
				So(buckets, ShouldEqual, 3)
			})
		})
	})
}
