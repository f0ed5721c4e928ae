package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics interface {
	StatsRequest(result string, duration time.Duration)
	GameRecorded()
	LiveConnectionOpened()
	LiveConnectionClosed()
}

var _ Metrics = (*Service)(nil)

const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

type Service struct {
	StatsRequests   *prometheus.CounterVec
	StatsDuration   prometheus.Histogram
	GamesRecorded   prometheus.Counter
	LiveConnections prometheus.Gauge
}

// NewMetricsHandler returns an http.Handler for the given Gatherer, or the
// default one when none is passed.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the collectors, on the default
// registerer unless one is passed.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		StatsRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "robotarena_stats_requests_total",
			Help: "Player stats computations by result.",
		}, []string{"result"}),
		StatsDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "robotarena_stats_duration_seconds",
			Help:    "Time spent fetching and aggregating a player's stats.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		GamesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "robotarena_games_recorded_total",
			Help: "Completed matches persisted.",
		}),
		LiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "robotarena_live_connections",
			Help: "Websocket connections currently subscribed to live stats.",
		}),
	}

	reg.MustRegister(
		s.StatsRequests,
		s.StatsDuration,
		s.GamesRecorded,
		s.LiveConnections,
	)
	return s
}

func (s *Service) StatsRequest(result string, duration time.Duration) {
	s.StatsRequests.WithLabelValues(result).Inc()
	s.StatsDuration.Observe(duration.Seconds())
}

func (s *Service) GameRecorded() {
	s.GamesRecorded.Inc()
}

func (s *Service) LiveConnectionOpened() {
	s.LiveConnections.Inc()
}

func (s *Service) LiveConnectionClosed() {
	s.LiveConnections.Dec()
}
