// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface handlers and services record through.
type Recorder interface {
	RecordPageCacheHit()
	RecordPageCacheMiss()
	RecordPostCreated()
	RecordCommentCreated()
	RecordFollowCreated()
	RecordHTTPStatus(statusCode int)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	pageCacheHits   prometheus.Counter
	pageCacheMisses prometheus.Counter
	postsCreated    prometheus.Counter
	commentsCreated prometheus.Counter
	followsCreated  prometheus.Counter
	httpStatus      *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		pageCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yatube_page_cache_hits_total",
			Help: "Index page requests served from the page cache",
		}),
		pageCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yatube_page_cache_misses_total",
			Help: "Index page requests that triggered a render",
		}),
		postsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yatube_posts_created_total",
			Help: "Posts created",
		}),
		commentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yatube_comments_created_total",
			Help: "Comments created",
		}),
		followsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "yatube_follows_created_total",
			Help: "Follow edges created",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yatube_http_status_total",
			Help: "Responses by HTTP status code",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.pageCacheHits,
		c.pageCacheMisses,
		c.postsCreated,
		c.commentsCreated,
		c.followsCreated,
		c.httpStatus,
	)

	return c
}

func (c *Collector) RecordPageCacheHit()  { c.pageCacheHits.Inc() }
func (c *Collector) RecordPageCacheMiss() { c.pageCacheMisses.Inc() }
func (c *Collector) RecordPostCreated()   { c.postsCreated.Inc() }
func (c *Collector) RecordCommentCreated() {
	c.commentsCreated.Inc()
}
func (c *Collector) RecordFollowCreated() { c.followsCreated.Inc() }

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler returns the HTTP handler Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop is a Recorder that discards everything; used in tests.
type Nop struct{}

func (Nop) RecordPageCacheHit()          {}
func (Nop) RecordPageCacheMiss()         {}
func (Nop) RecordPostCreated()           {}
func (Nop) RecordCommentCreated()        {}
func (Nop) RecordFollowCreated()         {}
func (Nop) RecordHTTPStatus(statusCode int) {}
