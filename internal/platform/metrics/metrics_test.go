package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestManagerRecords(t *testing.T) {
	m := NewManager(WithNamespace("test"))

	m.RecordCacheHit("kpi")
	m.RecordCacheHit("kpi")
	m.RecordCacheMiss("kpi")
	m.ObserveQuery("postgres", "kpi_last_5", 0.02, true)
	m.SetCircuitState("warehouse", "open")
	m.AddInvalidated(3)
	m.AddInvalidated(-1)

	if got := testutil.ToFloat64(m.cacheRequests.WithLabelValues("kpi", "hit")); got != 2 {
		t.Fatalf("unexpected hit count: %v", got)
	}
	if got := testutil.ToFloat64(m.queryErrors.WithLabelValues("postgres", "kpi_last_5")); got != 1 {
		t.Fatalf("unexpected query error count: %v", got)
	}
	if got := testutil.ToFloat64(m.circuitState.WithLabelValues("warehouse")); got != 2 {
		t.Fatalf("unexpected circuit state: %v", got)
	}
	if got := testutil.ToFloat64(m.invalidatedKeys); got != 3 {
		t.Fatalf("unexpected invalidated count: %v", got)
	}
}

func TestManagerHandlerExposesMetrics(t *testing.T) {
	m := NewManager()
	m.ObserveHTTP("GET /v1/windows", http.MethodGet, "200", 0.01)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "scouting_http_requests_total") {
		t.Fatalf("expected http counter in exposition, got:\n%s", rec.Body.String())
	}
}

func TestNilManagerIsNoop(t *testing.T) {
	var m *Manager
	m.RecordCacheHit("kpi")
	m.ObserveQuery("memory", "scout_points", 0.1, false)
	m.SetCircuitState("warehouse", "closed")
	if m.Registry() != nil {
		t.Fatalf("nil manager must not expose a registry")
	}
}
