// Package metrics provides Prometheus metrics for the chartkit service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the chartkit service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Engine Metrics - recompute passes and their outcome
	recomputePasses    *prometheus.CounterVec
	recomputeDuration  prometheus.Histogram
	filterRejected     *prometheus.CounterVec
	regressionSingular prometheus.Counter
	degenerateDomains  *prometheus.CounterVec
	selectedRecords    prometheus.Gauge

	// Interaction Metrics
	hoverTransitions *prometheus.CounterVec
	uiEvents         *prometheus.CounterVec

	// Render Metrics
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram

	// Snapshot Metrics - published views
	snapshotsPublished prometheus.Counter
	snapshotVersion    prometheus.Gauge
	snapshotLastUnix   prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Queue Metrics - UI event loop backlog
	queueSize              prometheus.Gauge
	queueCapacity          prometheus.Gauge
	queueUtilization       prometheus.Gauge
	queueEnqueueRate       prometheus.Counter
	queueDequeueRate       prometheus.Counter
	queueEnqueueErrors     prometheus.Counter
	queueProcessingLatency prometheus.Histogram

	// Worker Metrics - dispatcher performance
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrorRate         prometheus.Counter

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "chartkit",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
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
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: m.metricPrefix + name, Help: help, ConstLabels: m.customLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: m.metricPrefix + name, Help: help, ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: m.metricPrefix + name, Help: help, ConstLabels: m.customLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: m.metricPrefix + name, Help: help, ConstLabels: m.customLabels,
		Buckets: buckets,
	})
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Engine Metrics
	m.recomputePasses = m.counterVec("recompute_passes_total",
		"Total number of recompute passes by result", "result")
	m.recomputeDuration = m.histogram("recompute_duration_milliseconds",
		"Recompute pass duration in milliseconds", m.histogramBuckets)
	m.filterRejected = m.counterVec("filter_rejected_total",
		"Total number of filter updates rejected or ignored by reason", "reason")
	m.regressionSingular = m.counter("regression_singular_total",
		"Total number of partitions whose regression was singular")
	m.degenerateDomains = m.counterVec("degenerate_domains_total",
		"Total number of charts skipped because a scale domain was degenerate", "chart")
	m.selectedRecords = m.gauge("selected_records",
		"Number of ridership records in the active filter")

	// Interaction Metrics
	m.hoverTransitions = m.counterVec("hover_transitions_total",
		"Total number of hover transitions by kind", "transition")
	m.uiEvents = m.counterVec("ui_events_total",
		"Total number of UI events dispatched by kind", "kind")

	// Render Metrics
	m.renders = m.counterVec("renders_total",
		"Total number of SVG renders by chart", "chart")
	m.renderDuration = m.histogram("render_duration_milliseconds",
		"SVG render duration in milliseconds", m.histogramBuckets)

	// Snapshot Metrics
	m.snapshotsPublished = m.counter("snapshots_published_total",
		"Total number of view snapshots published")
	m.snapshotVersion = m.gauge("snapshot_version",
		"Version of the latest published view snapshot")
	m.snapshotLastUnix = m.gauge("snapshot_last_unix",
		"Unix timestamp of the last snapshot publish")

	// HTTP Performance Metrics
	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: m.metricPrefix + "http_request_duration_milliseconds",
		Help: "HTTP request duration in milliseconds", ConstLabels: m.customLabels,
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	// Queue Metrics
	m.queueSize = m.gauge("queue_size", "Current number of pending UI events")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum queue capacity")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Queue utilization ratio (current size / capacity)")
	m.queueEnqueueRate = m.counter("queue_enqueue_total", "Total number of events enqueued")
	m.queueDequeueRate = m.counter("queue_dequeue_total", "Total number of events dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Total number of enqueue errors")
	m.queueProcessingLatency = m.histogram("queue_processing_latency_milliseconds",
		"Time events spend queued in milliseconds", m.histogramBuckets)

	// Worker Metrics
	m.workerActiveCount = m.gauge("worker_active_count", "Number of active dispatchers")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds",
		"Dispatcher processing latency in milliseconds", m.histogramBuckets)
	m.workerErrorRate = m.counter("worker_errors_total", "Total number of dispatcher errors")

	// Error Metrics
	m.errorRateByComponent = m.counterVec("errors_by_component_total",
		"Total number of errors by component", "component", "error_type")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Total number of errors by endpoint", "endpoint", "method", "error_type")

	// System Performance Metrics
	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// RecordRecompute records one recompute pass with its result label
// ("ok", "missing_viewport", "partial", "error") and duration.
func RecordRecompute(result string, latencyMs float64) {
	globalManager.recomputePasses.WithLabelValues(result).Inc()
	globalManager.recomputeDuration.Observe(latencyMs)
}

// RecordFilterRejected increments the rejected filter counter.
func RecordFilterRejected(reason string) {
	globalManager.filterRejected.WithLabelValues(reason).Inc()
}

// RecordRegressionSingular increments the singular regression counter.
func RecordRegressionSingular() {
	globalManager.regressionSingular.Inc()
}

// RecordDegenerateDomain increments the degenerate domain counter for chart.
func RecordDegenerateDomain(chart string) {
	globalManager.degenerateDomains.WithLabelValues(chart).Inc()
}

// UpdateSelectedRecords sets the number of selected ridership records.
func UpdateSelectedRecords(count int) {
	globalManager.selectedRecords.Set(float64(count))
}

// RecordHoverTransition increments the hover transition counter.
func RecordHoverTransition(transition string) {
	globalManager.hoverTransitions.WithLabelValues(transition).Inc()
}

// RecordUIEvent increments the UI event counter for kind.
func RecordUIEvent(kind string) {
	globalManager.uiEvents.WithLabelValues(kind).Inc()
}

// RecordRender records one SVG render.
func RecordRender(chart string, latencyMs float64) {
	globalManager.renders.WithLabelValues(chart).Inc()
	globalManager.renderDuration.Observe(latencyMs)
}

// RecordSnapshotPublished records a snapshot publish.
func RecordSnapshotPublished(version uint64) {
	globalManager.snapshotsPublished.Inc()
	globalManager.snapshotVersion.Set(float64(version))
	globalManager.snapshotLastUnix.Set(float64(time.Now().Unix()))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateQueueSize updates the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity updates the queue capacity gauge.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization updates the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueRate.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueRate.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordQueueProcessingLatency records how long an event waited in the queue.
func RecordQueueProcessingLatency(latencyMs float64) {
	globalManager.queueProcessingLatency.Observe(latencyMs)
}

// UpdateWorkerActiveCount sets the number of running dispatchers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records dispatcher processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the dispatcher error counter.
func RecordWorkerError() {
	globalManager.workerErrorRate.Inc()
}

// RecordErrorByComponent records an error by component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage updates system memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
