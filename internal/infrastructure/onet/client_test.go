package onet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/resilience"
)

func ptr(v float64) *float64 { return &v }

func newTestClient(url string) *Client {
	exec := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     time.Millisecond,
		RetryAfterCap:       time.Millisecond,
	}, nil)
	return New(Config{BaseURL: url + "/", Username: "user", Password: "secret", RateLimitRPS: 1000}, exec)
}

func TestFetchOccupation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "user" || pass != "secret" {
			t.Errorf("missing basic auth")
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("unexpected accept header %q", r.Header.Get("Accept"))
		}
		if r.URL.Path != "/online/occupations/41-9022.00" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"code":"41-9022.00","title":" Real Estate Sales Agents ","description":"Rent, buy, or sell property for clients."}`))
	}))
	defer server.Close()

	occupation, err := newTestClient(server.URL).FetchOccupation(context.Background(), "41-9022.00")
	if err != nil {
		t.Fatalf("FetchOccupation() error = %v", err)
	}
	want := domain.Occupation{SOCCode: "41-9022.00", Title: "Real Estate Sales Agents", Description: "Rent, buy, or sell property for clients."}
	if diff := cmp.Diff(want, occupation); diff != "" {
		t.Fatalf("occupation mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchCategoryNormalizesElements(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/online/occupations/41-9022.00/tasks":
			_, _ = w.Write([]byte(`{"task":[
				{"id":"12345","statement":"Draft purchase offers","score":{"scale":"Importance","value":4.2}},
				{"id":7,"title":"Coordinate closings"}
			]}`))
		case "/online/occupations/41-9022.00/skills":
			_, _ = w.Write([]byte(`{"element":{"element_id":"2.B.4.g","name":"Negotiation","score":{"scale":"Level","value":3.5}}}`))
		case "/online/occupations/41-9022.00/job_zone":
			_, _ = w.Write([]byte(`{"code":3,"zones":[{"title":"Medium Preparation Needed"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	tasks, err := client.FetchCategory(context.Background(), "41-9022.00", domain.CategoryTasks)
	if err != nil {
		t.Fatalf("FetchCategory(tasks) error = %v", err)
	}
	wantTasks := []domain.OnetItem{
		{Name: "Draft purchase offers", ElementID: "12345", Importance: ptr(4.2)},
		{Name: "Coordinate closings", ElementID: "7"},
	}
	if diff := cmp.Diff(wantTasks, tasks); diff != "" {
		t.Fatalf("tasks mismatch (-want +got):\n%s", diff)
	}

	skills, err := client.FetchCategory(context.Background(), "41-9022.00", domain.CategorySkills)
	if err != nil {
		t.Fatalf("FetchCategory(skills) error = %v", err)
	}
	wantSkills := []domain.OnetItem{{Name: "Negotiation", ElementID: "2.B.4.g", Level: ptr(3.5)}}
	if diff := cmp.Diff(wantSkills, skills); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}

	zones, err := client.FetchCategory(context.Background(), "41-9022.00", domain.CategoryJobZones)
	if err != nil {
		t.Fatalf("FetchCategory(job zones) error = %v", err)
	}
	if len(zones) != 1 || zones[0].Name != "Medium Preparation Needed" {
		t.Fatalf("expected fallback list, got %+v", zones)
	}
}

func TestFetchCategoryRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"skill":[{"name":"Active Listening"}]}`))
	}))
	defer server.Close()

	items, err := newTestClient(server.URL).FetchCategory(context.Background(), "41-9022.00", domain.CategorySkills)
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if len(items) != 1 || calls.Load() != 2 {
		t.Fatalf("unexpected result: %d items after %d calls", len(items), calls.Load())
	}
}

func TestFetchMapsErrorKinds(t *testing.T) {
	cases := []struct {
		status int
		kind   error
	}{
		{http.StatusUnauthorized, domain.ErrUnauthorized},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusBadGateway, domain.ErrTemporary},
	}
	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tc.status)
		}))
		_, err := newTestClient(server.URL).FetchOccupation(context.Background(), "41-9022.00")
		server.Close()
		if !domain.IsKind(err, tc.kind) {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.kind, err)
		}
	}
}

func TestFetchCategoryWithoutEndpoint(t *testing.T) {
	client := New(Config{BaseURL: "http://127.0.0.1:0"}, nil)
	items, err := client.FetchCategory(context.Background(), "41-9022.00", domain.OnetCategory("hobbies"))
	if err != nil || items != nil {
		t.Fatalf("expected no items and no error, got %v %v", items, err)
	}
}

func TestUnwrapElements(t *testing.T) {
	decode := func(raw string) map[string]json.RawMessage {
		var payload map[string]json.RawMessage
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			t.Fatalf("bad fixture: %v", err)
		}
		return payload
	}

	elements, err := unwrapElements(decode(`{"start":1,"work_value":[{"name":"Achievement"},{"name":"Independence"}]}`))
	if err != nil || len(elements) != 2 {
		t.Fatalf("unexpected work values: %v %v", elements, err)
	}

	elements, err = unwrapElements(decode(`{"education":["Bachelor's degree"]}`))
	if err != nil || len(elements) != 1 || elementName(elements[0]) != "Bachelor's degree" {
		t.Fatalf("unexpected education: %v %v", elements, err)
	}

	if _, err := unwrapElements(decode(`{"code":"x","title":"y"}`)); err == nil {
		t.Fatalf("expected error for response without a list")
	}

	elements, err = unwrapElements(map[string]json.RawMessage{})
	if err != nil || elements != nil {
		t.Fatalf("expected empty result, got %v %v", elements, err)
	}
}
