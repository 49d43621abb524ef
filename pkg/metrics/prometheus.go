// Package metrics provides Prometheus metrics for the padelmatch service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the padelmatch service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Roster
	rosterPlayers prometheus.Gauge
	rosterPairs   prometheus.Gauge

	// Planner
	plannerOps          *prometheus.CounterVec
	plannedMatches      prometheus.Gauge
	dismissedKeys       prometheus.Gauge
	candidatesGenerated prometheus.Gauge
	candidateGenLatency prometheus.Histogram
	evaluationsTotal    prometheus.Counter
	evaluationsRejected prometheus.Counter

	// Repository
	repositoryRecordsTotal prometheus.Gauge
	repositoryQueryLatency prometheus.Histogram

	// Command queue
	queueCapacity     prometheus.Gauge
	queueSize         prometheus.Gauge
	queueEnqueued     prometheus.Counter
	queueDequeued     prometheus.Counter
	queueBackpressure prometheus.Counter
	queueWaitLatency  prometheus.Histogram

	// Worker
	commandsProcessed *prometheus.CounterVec
	commandLatency    prometheus.Histogram
	workerPanics      prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     prometheus.Counter
	httpUnauthorized    prometheus.Counter

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "padelmatch",
		subsystem:        "planner",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	fast := []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100}

	m.rosterPlayers = m.gauge("roster_players", "Number of players in the loaded roster")
	m.rosterPairs = m.gauge("roster_pairs", "Number of computable pairs in the loaded roster")

	m.plannerOps = m.counterVec("operations_total", "Planner operations by op and outcome", "op", "outcome")
	m.plannedMatches = m.gauge("planned_matches", "Number of matches currently planned")
	m.dismissedKeys = m.gauge("dismissed_keys", "Number of recommendation keys dismissed this session")
	m.candidatesGenerated = m.gauge("candidates_generated", "Candidates produced by the last generation run")
	m.candidateGenLatency = m.histogram("candidate_generation_milliseconds",
		"Candidate generation latency in milliseconds", fast)
	m.evaluationsTotal = m.counter("evaluations_total", "Match evaluations computed")
	m.evaluationsRejected = m.counter("evaluations_rejected_total", "Matchups rejected by the candidate filter")

	m.repositoryRecordsTotal = m.gauge("repository_records_total", "Pairs held by the ranked pair store")
	m.repositoryQueryLatency = m.histogram("repository_query_latency_milliseconds",
		"Ranked pair store query latency in milliseconds", fast)

	m.queueCapacity = m.gauge("queue_capacity", "Capacity of the command queue")
	m.queueSize = m.gauge("queue_size", "Commands waiting in the queue")
	m.queueEnqueued = m.counter("queue_enqueued_total", "Commands accepted by the queue")
	m.queueDequeued = m.counter("queue_dequeued_total", "Commands taken from the queue")
	m.queueBackpressure = m.counter("queue_backpressure_total", "Commands rejected because the queue was full")
	m.queueWaitLatency = m.histogram("queue_wait_milliseconds",
		"Time a command spent queued before execution", fast)

	m.commandsProcessed = m.counterVec("commands_processed_total", "Commands executed by the worker", "outcome")
	m.commandLatency = m.histogram("command_latency_milliseconds", "Command execution latency in milliseconds", fast)
	m.workerPanics = m.counter("worker_panics_total", "Commands that panicked inside the worker")

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
	m.httpRateLimited = m.counter("http_rate_limited_total", "Requests rejected by the rate limiter")
	m.httpUnauthorized = m.counter("http_unauthorized_total", "Requests rejected for a missing or wrong token")

	m.errorRateByComponent = m.counterVec("errors_by_component_total",
		"Errors by component and type", "component", "error_type")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Errors by endpoint, method and type", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// Roster Metrics Functions.

// UpdateRosterSize sets the roster player and pair gauges.
func UpdateRosterSize(players, pairs int) {
	globalManager.rosterPlayers.Set(float64(players))
	globalManager.rosterPairs.Set(float64(pairs))
}

// Planner Metrics Functions.

// RecordPlannerOp counts a planner operation with its outcome ("ok" or an error kind).
func RecordPlannerOp(op, outcome string) {
	globalManager.plannerOps.WithLabelValues(op, outcome).Inc()
}

// UpdatePlannerState sets the planned and dismissed gauges.
func UpdatePlannerState(planned, dismissed int) {
	globalManager.plannedMatches.Set(float64(planned))
	globalManager.dismissedKeys.Set(float64(dismissed))
}

// RecordCandidateGeneration records one generation run.
func RecordCandidateGeneration(count int, latencyMs float64) {
	globalManager.candidatesGenerated.Set(float64(count))
	globalManager.candidateGenLatency.Observe(latencyMs)
}

// RecordEvaluations counts evaluated and filtered-out matchups.
func RecordEvaluations(evaluated, rejected int) {
	globalManager.evaluationsTotal.Add(float64(evaluated))
	globalManager.evaluationsRejected.Add(float64(rejected))
}

// Repository Metrics Functions.

// UpdateRepositoryRecordsTotal sets the number of pairs in the store.
func UpdateRepositoryRecordsTotal(count int) {
	globalManager.repositoryRecordsTotal.Set(float64(count))
}

// RecordRepositoryQueryLatency records store query latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.repositoryQueryLatency.Observe(latencyMs)
}

// Queue Metrics Functions.

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueSize sets the current queue depth.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueBackpressure increments the rejected-on-full counter.
func RecordQueueBackpressure() {
	globalManager.queueBackpressure.Inc()
}

// RecordQueueWaitLatency records how long a command waited in the queue.
func RecordQueueWaitLatency(latencyMs float64) {
	globalManager.queueWaitLatency.Observe(latencyMs)
}

// Worker Metrics Functions.

// RecordCommandProcessed records one executed command.
func RecordCommandProcessed(outcome string, latencyMs float64) {
	globalManager.commandsProcessed.WithLabelValues(outcome).Inc()
	globalManager.commandLatency.Observe(latencyMs)
}

// RecordWorkerPanic increments the worker panic counter.
func RecordWorkerPanic() {
	globalManager.workerPanics.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordHTTPRateLimited increments the rate limited counter.
func RecordHTTPRateLimited() {
	globalManager.httpRateLimited.Inc()
}

// RecordHTTPUnauthorized increments the unauthorized counter.
func RecordHTTPUnauthorized() {
	globalManager.httpUnauthorized.Inc()
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// Configure rebuilds the global metrics with opts on a fresh registry. Call
// it once at startup before any handler reads GetRegistry.
func Configure(opts ...Option) {
	customRegistry = prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(customRegistry))...)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
