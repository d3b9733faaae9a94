package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus records pipeline, cache and HTTP events as Prometheus metrics.
// It implements [PipelineHooks], [CacheHooks] and [HTTPHooks].
type Prometheus struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	cacheEvents   *prometheus.CounterVec
	cacheBytes    prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	httpErrors    *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "regexrail_stage_duration_seconds",
				Help:    "Duration of pipeline stages",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"stage"},
		),
		stageErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regexrail_stage_errors_total",
				Help: "Total number of failed pipeline stages",
			},
			[]string{"stage"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regexrail_cache_events_total",
				Help: "Cache hits, misses and writes",
			},
			[]string{"event"},
		),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "regexrail_cache_written_bytes_total",
			Help: "Bytes written to the cache",
		}),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regexrail_http_requests_total",
				Help: "HTTP responses by route and status code",
			},
			[]string{"method", "path", "code"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "regexrail_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		httpErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regexrail_http_errors_total",
				Help: "HTTP requests answered with an error body",
			},
			[]string{"method", "path"},
		),
	}

	for _, c := range []prometheus.Collector{
		p.stageDuration, p.stageErrors, p.cacheEvents, p.cacheBytes,
		p.httpRequests, p.httpDuration, p.httpErrors,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Install registers p as the global pipeline, cache and HTTP hooks.
func (p *Prometheus) Install() {
	SetPipelineHooks(p)
	SetCacheHooks(p)
	SetHTTPHooks(p)
}

func (p *Prometheus) stage(stage string, d time.Duration, err error) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		p.stageErrors.WithLabelValues(stage).Inc()
	}
}

func (p *Prometheus) OnParseStart(context.Context, string) {}

func (p *Prometheus) OnParseComplete(_ context.Context, _ string, _ int, d time.Duration, err error) {
	p.stage("parse", d, err)
}

func (p *Prometheus) OnLayoutStart(context.Context, int) {}

func (p *Prometheus) OnLayoutComplete(_ context.Context, _ int, d time.Duration, err error) {
	p.stage("layout", d, err)
}

func (p *Prometheus) OnRenderStart(context.Context, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	p.stage("render", d, err)
}

func (p *Prometheus) OnCacheHit(context.Context, string)  { p.cacheEvents.WithLabelValues("hit").Inc() }
func (p *Prometheus) OnCacheMiss(context.Context, string) { p.cacheEvents.WithLabelValues("miss").Inc() }

func (p *Prometheus) OnCacheSet(_ context.Context, _ string, size int) {
	p.cacheEvents.WithLabelValues("set").Inc()
	p.cacheBytes.Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string) {}

func (p *Prometheus) OnResponse(_ context.Context, method, path string, statusCode int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	p.httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func (p *Prometheus) OnError(_ context.Context, method, path string, _ error) {
	p.httpErrors.WithLabelValues(method, path).Inc()
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ HTTPHooks     = (*Prometheus)(nil)
)
