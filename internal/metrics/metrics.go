// Package metrics exposes lobby and session counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	lobbyParticipants   prometheus.Gauge
	activeSessions      prometheus.Gauge
	sessionsStarted     *prometheus.CounterVec
	sessionResults      *prometheus.CounterVec
	rejectedEvents      *prometheus.CounterVec
	persistenceFailures *prometheus.CounterVec
	rateLimited         prometheus.Counter
}

// NewCollector creates the collector and registers it on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	that := &Collector{
		lobbyParticipants: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lobby_participants",
			Help: "Participants currently registered in the lobby.",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lobby_active_sessions",
			Help: "Sessions currently alive, including those waiting for teardown.",
		}),
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lobby_sessions_started_total",
			Help: "Sessions started, by kind.",
		}, []string{"kind"}),
		sessionResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lobby_session_results_total",
			Help: "Terminal session results, by result.",
		}, []string{"result"}),
		rejectedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lobby_rejected_events_total",
			Help: "Client events rejected by the session manager, by reason.",
		}, []string{"reason"}),
		persistenceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lobby_persistence_failures_total",
			Help: "Score and match writes that failed, by operation.",
		}, []string{"operation"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lobby_rate_limited_messages_total",
			Help: "Inbound messages dropped by the per-connection limiter.",
		}),
	}

	reg.MustRegister(
		that.lobbyParticipants,
		that.activeSessions,
		that.sessionsStarted,
		that.sessionResults,
		that.rejectedEvents,
		that.persistenceFailures,
		that.rateLimited,
	)

	return that
}

func (that *Collector) SetLobbySize(n int) {
	that.lobbyParticipants.Set(float64(n))
}

func (that *Collector) SetActiveSessions(n int) {
	that.activeSessions.Set(float64(n))
}

func (that *Collector) RecordSessionStarted(kind string) {
	that.sessionsStarted.WithLabelValues(kind).Inc()
}

func (that *Collector) RecordSessionResult(result string) {
	that.sessionResults.WithLabelValues(result).Inc()
}

func (that *Collector) RecordRejected(reason string) {
	that.rejectedEvents.WithLabelValues(reason).Inc()
}

func (that *Collector) RecordPersistenceFailure(operation string) {
	that.persistenceFailures.WithLabelValues(operation).Inc()
}

func (that *Collector) RecordRateLimited() {
	that.rateLimited.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
