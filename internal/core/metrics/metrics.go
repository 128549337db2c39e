package metrics

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dep2p/go-vanity/internal/core/search"
)

// namespace 指标名前缀
const namespace = "vanity"

// SearchMetrics 搜索指标
//
// 实现 search.Recorder，注册到独立的 Registry，不污染全局默认注册表。
type SearchMetrics struct {
	Searches             *prometheus.CounterVec
	Attempts             prometheus.Counter
	Matches              prometheus.Counter
	VerificationFailures prometheus.Counter
	ActiveWorkers        prometheus.Gauge
	SearchDuration       prometheus.Histogram
	CurrentRate          prometheus.GaugeFunc

	meter *RateMeter
}

var _ search.Recorder = (*SearchMetrics)(nil)

// New 创建搜索指标并注册到 reg
func New(reg prometheus.Registerer, clk clock.Clock) *SearchMetrics {
	factory := promauto.With(reg)
	meter := NewRateMeter(DefaultRateWindow, clk)

	return &SearchMetrics{
		Searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of finished searches by outcome",
		}, []string{"outcome"}),
		Attempts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attempts_total",
			Help:      "Total number of candidate keypairs generated",
		}),
		Matches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_total",
			Help:      "Total number of candidates whose address matched the pattern",
		}),
		VerificationFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verification_failures_total",
			Help:      "Total number of matching candidates rejected by signature verification",
		}),
		ActiveWorkers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_workers",
			Help:      "Number of workers in the running search",
		}),
		SearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall-clock duration of finished searches",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 12),
		}),
		CurrentRate: factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "keys_per_second",
			Help:      "Keypairs generated per second over the last 10 seconds",
		}, meter.Rate),
		meter: meter,
	}
}

// SearchStarted 记录搜索开始
func (m *SearchMetrics) SearchStarted(threads int) {
	m.ActiveWorkers.Set(float64(threads))
}

// AttemptsObserved 记录新增尝试次数
func (m *SearchMetrics) AttemptsObserved(n uint64) {
	if n == 0 {
		return
	}
	m.Attempts.Add(float64(n))
	m.meter.Add(n)
}

// MatchFound 记录命中
func (m *SearchMetrics) MatchFound() {
	m.Matches.Inc()
}

// VerificationFailed 记录验证失败
func (m *SearchMetrics) VerificationFailed() {
	m.VerificationFailures.Inc()
}

// SearchFinished 记录搜索结束
func (m *SearchMetrics) SearchFinished(state search.State, elapsed time.Duration) {
	m.ActiveWorkers.Set(0)
	m.Searches.WithLabelValues(state.String()).Inc()
	m.SearchDuration.Observe(elapsed.Seconds())
}
