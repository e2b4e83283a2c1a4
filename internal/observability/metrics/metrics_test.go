package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sony/gobreaker/v2"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/ports"
)

var _ ports.ScoringObserver = (*ScoringMetrics)(nil)

func scrape(t *testing.T, handler http.Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	return string(body)
}

func TestHTTPMiddlewareRecordsRequests(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	handler := m.Middleware("api", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/taxonomy", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/unknown/123", nil))
	m.RecordThrottled("api", "rate_limited")

	out := scrape(t, m.Handler())
	for _, want := range []string{
		`automation_alert_http_requests_total{method="GET",path="/v1/taxonomy",service="api",status="418"} 1`,
		`automation_alert_http_requests_total{method="GET",path="other",service="api",status="418"} 1`,
		`automation_alert_http_throttled_total{reason="rate_limited",service="api"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("metrics missing %q:\n%s", want, out)
		}
	}
}

func TestScoringMetricsShareRegistry(t *testing.T) {
	m := NewHTTPServerMetrics("api")
	scoring := NewScoringMetrics("api", m.Registry())
	scoring.ObserveItemsScored("base", "tasks", 3)
	scoring.ObserveItemsScored("base", "tasks", 0)
	scoring.ObserveRejected("agentic", "skills", 1)
	scoring.ObserveModelCall("base", "ok", 1.5)
	scoring.ObserveOccupationRun("error", 2)
	scoring.ObserveBreakerState("onet.tasks", gobreaker.StateClosed, gobreaker.StateOpen)

	out := scrape(t, m.Handler())
	for _, want := range []string{
		`automation_alert_scoring_items_scored_total{category="tasks",layer="base",service="api"} 3`,
		`automation_alert_scoring_records_rejected_total{category="skills",layer="agentic",service="api"} 1`,
		`automation_alert_llm_call_duration_seconds_count{layer="base",service="api",status="ok"} 1`,
		`automation_alert_scoring_occupation_run_duration_seconds_count{service="api",status="error"} 1`,
		`automation_alert_resilience_circuit_breaker_state{operation="onet.tasks",service="api"} 2`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("metrics missing %q:\n%s", want, out)
		}
	}
}

func TestWorkerMetrics(t *testing.T) {
	m := NewWorkerMetrics("worker")
	m.StartRequest()
	m.FinishRequest("worker", 0, nil)

	out := scrape(t, m.Handler())
	if !strings.Contains(out, `automation_alert_worker_score_request_total{service="worker",status="success"} 1`) {
		t.Fatalf("missing worker counter:\n%s", out)
	}
	if !strings.Contains(out, `automation_alert_worker_score_request_in_flight{service="worker"} 0`) {
		t.Fatalf("in-flight gauge should return to zero:\n%s", out)
	}
}
