package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BenLYNC/AI-Automation-Alert/internal/config"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", domain.WrapError(domain.ErrInvalidInput, "score", errors.New("bad soc")), http.StatusBadRequest},
		{"unknown tag", domain.WrapError(domain.ErrUnknownTag, "parse", errors.New("E99")), http.StatusBadRequest},
		{"not found", domain.WrapError(domain.ErrNotFound, "onet.fetch", errors.New("404")), http.StatusNotFound},
		{"upstream auth", domain.WrapError(domain.ErrUnauthorized, "llm", errors.New("401")), http.StatusBadGateway},
		{"malformed", domain.WrapError(domain.ErrMalformedAssessment, "assess", errors.New("no array")), http.StatusBadGateway},
		{"temporary", domain.WrapError(domain.ErrTemporary, "llm", errors.New("503")), http.StatusServiceUnavailable},
		{"deadline", fmt.Errorf("assess: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func postScore(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/occupations/score", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func TestScoreOccupationMapsDomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.WrapError(domain.ErrInvalidInput, "score", errors.New("no items")), http.StatusBadRequest},
		{domain.WrapError(domain.ErrNotFound, "onet.fetch", errors.New("missing")), http.StatusNotFound},
		{domain.WrapError(domain.ErrTemporary, "llm", errors.New("overloaded")), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		handler := newTestHandlerWith(t, config.Config{}, &scorerFake{err: tc.err}, nil).Handler()
		res := postScore(t, handler, `{"soc_code":"41-9022.00"}`)
		if res.Code != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, res.Code)
		}
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	handler := newTestHandlerWith(t, config.Config{}, &scorerFake{err: errors.New("dsn=secret")}, nil).Handler()
	res := postScore(t, handler, `{"soc_code":"41-9022.00"}`)

	var body map[string]string
	if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "internal error" {
		t.Fatalf("expected generic message, got %q", body["error"])
	}
}

func TestValidationRejectsBadRequests(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing soc", `{"title":"Agents"}`, "soc_code"},
		{"bad soc", `{"soc_code":"41-9022.0x"}`, "soc_code"},
		{"unknown category", `{"soc_code":"41-9022.00","categories":["hobbies"]}`, "categories"},
		{"item without name", `{"soc_code":"41-9022.00","items":{"tasks":[{"importance":3}]}}`, "name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scorer := &scorerFake{}
			handler := newTestHandlerWith(t, config.Config{}, scorer, nil).Handler()
			res := postScore(t, handler, tc.body)
			if res.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", res.Code, res.Body.String())
			}
			if !strings.Contains(res.Body.String(), tc.want) {
				t.Fatalf("expected %q in error, got %s", tc.want, res.Body.String())
			}
			if len(scorer.got) != 0 {
				t.Fatalf("scorer must not run for invalid requests")
			}
		})
	}
}

func TestValidationRejectsUnknownSampleFormat(t *testing.T) {
	handler := newTestHandlerWith(t, config.Config{}, nil, nil).Handler()
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/v1/sample?format=pdf", nil))
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestWrongMethodFallsThroughToMux(t *testing.T) {
	handler := newTestHandlerWith(t, config.Config{}, nil, nil).Handler()
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/v1/occupations/score", nil))
	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}
