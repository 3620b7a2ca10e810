package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()

	m.GameStarted()
	m.GameStarted()
	m.Move("left", true)
	m.Move("left", true)
	m.Move("up", false)
	m.GameFinished(OutcomeLost, 256)
	m.GameFinished(OutcomeWon, 2048)

	if got := testutil.ToFloat64(m.gamesStarted); got != 2 {
		t.Errorf("games started = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.moves.WithLabelValues("left", "true")); got != 2 {
		t.Errorf("left moves = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.moves.WithLabelValues("up", "false")); got != 1 {
		t.Errorf("blocked up moves = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.gamesFinished.WithLabelValues(OutcomeWon)); got != 1 {
		t.Errorf("won games = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.maxTile); got != 1 {
		t.Errorf("max tile histogram series = %d, want 1", got)
	}
}

func TestSessionGauge(t *testing.T) {
	m := New()

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	if got := testutil.ToFloat64(m.sshSessions); got != 1 {
		t.Errorf("active sessions = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	// None of these may panic
	m.GameStarted()
	m.GameFinished(OutcomeLost, 16)
	m.Move("down", true)
	m.SessionOpened()
	m.SessionClosed()

	if m.Registry() != nil {
		t.Error("nil Metrics should have no registry")
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Errorf("nil handler status = %d, want 404", rec.Code)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.GameStarted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, name := range []string{"t2048_games_started_total 1", "t2048_ssh_sessions_active", "go_goroutines"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %q", name)
		}
	}
}
