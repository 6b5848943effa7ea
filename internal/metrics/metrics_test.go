package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("Gauges follow the latest value", func(t *testing.T) {
		// Given: a collector on a private registry
		collector := NewCollector(prometheus.NewRegistry())

		// When: sizes are reported twice
		collector.SetLobbySize(5)
		collector.SetLobbySize(3)
		collector.SetActiveSessions(2)

		// Then: the last value wins
		assert.InDelta(t, 3, testutil.ToFloat64(collector.lobbyParticipants), 0)
		assert.InDelta(t, 2, testutil.ToFloat64(collector.activeSessions), 0)
	})

	t.Run("Counters are labelled", func(t *testing.T) {
		// Given: a collector on a private registry
		collector := NewCollector(prometheus.NewRegistry())

		// When: events are recorded
		collector.RecordSessionStarted("duel")
		collector.RecordSessionStarted("duel")
		collector.RecordSessionStarted("solo")
		collector.RecordSessionResult("draw")
		collector.RecordRejected("not_your_turn")
		collector.RecordPersistenceFailure("increment")
		collector.RecordRateLimited()

		// Then: each label has its own count
		assert.InDelta(t, 2, testutil.ToFloat64(collector.sessionsStarted.WithLabelValues("duel")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(collector.sessionsStarted.WithLabelValues("solo")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(collector.sessionResults.WithLabelValues("draw")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(collector.rejectedEvents.WithLabelValues("not_your_turn")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(collector.persistenceFailures.WithLabelValues("increment")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(collector.rateLimited), 0)
	})

	t.Run("Registering twice on one registry panics", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		NewCollector(reg)

		assert.Panics(t, func() { NewCollector(reg) })
	})
}

func TestHandler(t *testing.T) {
	// Given: a registry with a recorded result
	reg := prometheus.NewRegistry()
	collector := NewCollector(reg)
	collector.RecordSessionResult("win")

	// When: the metrics endpoint is scraped
	server := httptest.NewServer(Handler(reg))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	// Then: the counter is exposed
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `lobby_session_results_total{result="win"} 1`)
}
