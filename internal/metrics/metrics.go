// Package metrics provides Prometheus metric collection and exposition
// for the WikiBase backend.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers the backend's Prometheus metrics.
type Collector struct {
	uploadsAccepted prometheus.Counter
	uploadsRejected *prometheus.CounterVec
	snapshotWrites  prometheus.Counter
	snapshotFails   prometheus.Counter
	httpStatus      *prometheus.CounterVec
	requestLatency  prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		uploadsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wikibase_uploads_accepted_total",
			Help: "Files accepted by the upload endpoint.",
		}),
		uploadsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wikibase_uploads_rejected_total",
			Help: "Uploads rejected, by reason.",
		}, []string{"reason"}),
		snapshotWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wikibase_snapshot_writes_total",
			Help: "Successful overwrites of the data-definition artifact.",
		}),
		snapshotFails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wikibase_snapshot_write_failures_total",
			Help: "Failed attempts to overwrite the artifact.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wikibase_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wikibase_request_latency_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.uploadsAccepted,
		c.uploadsRejected,
		c.snapshotWrites,
		c.snapshotFails,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordUploadAccepted counts an accepted upload.
func (c *Collector) RecordUploadAccepted() {
	c.uploadsAccepted.Inc()
}

// RecordUploadRejected counts a rejected upload with its reason.
func (c *Collector) RecordUploadRejected(reason string) {
	c.uploadsRejected.WithLabelValues(reason).Inc()
}

// RecordSnapshotWrite counts a successful artifact overwrite.
func (c *Collector) RecordSnapshotWrite() {
	c.snapshotWrites.Inc()
}

// RecordSnapshotFailure counts a failed artifact overwrite.
func (c *Collector) RecordSnapshotFailure() {
	c.snapshotFails.Inc()
}

// RecordHTTPStatus counts a response by status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency records a request's duration.
func (c *Collector) RecordRequestLatency(d time.Duration) {
	c.requestLatency.Observe(d.Seconds())
}

// Handler returns the Prometheus scrape handler for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
