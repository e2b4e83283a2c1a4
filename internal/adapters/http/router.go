package httpadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/BenLYNC/AI-Automation-Alert/internal/config"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/ports"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/usecase"
	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/report"
	"github.com/BenLYNC/AI-Automation-Alert/internal/observability/metrics"
)

const (
	serviceName     = "api"
	maxRequestBytes = 4 << 20
)

type Router struct {
	cfg       config.Config
	scorer    ports.OccupationScorer
	sampler   ports.SampleReporter
	metrics   *metrics.HTTPServerMetrics
	logger    *slog.Logger
	validator *requestValidator
}

func NewRouter(
	cfg config.Config,
	scorer ports.OccupationScorer,
	sampler ports.SampleReporter,
	httpMetrics *metrics.HTTPServerMetrics,
	logger *slog.Logger,
) (*Router, error) {
	if logger == nil {
		logger = slog.Default()
	}
	validator, err := newRequestValidator()
	if err != nil {
		return nil, err
	}
	return &Router{
		cfg:       cfg,
		scorer:    scorer,
		sampler:   sampler,
		metrics:   httpMetrics,
		logger:    logger,
		validator: validator,
	}, nil
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", rt.healthz)
	mux.HandleFunc("GET /v1/taxonomy", rt.taxonomy)
	mux.HandleFunc("GET /v1/sample", rt.sample)
	mux.HandleFunc("POST /v1/occupations/score", rt.scoreOccupation)
	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics.Handler())
	}

	var guarded http.Handler = rt.validator.middleware(mux)
	guarded = backpressureMiddleware(guarded, rt.cfg.APIMaxInFlight, defaultBackpressureWait, rt.recordThrottled)
	guarded = rateLimitMiddleware(guarded, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst, rt.recordThrottled)

	var handler http.Handler = exempt([]string{"/healthz", "/metrics"}, guarded, mux)
	handler = recoverMiddleware(rt.logger, handler)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	handler = accessLogMiddleware(rt.logger, handler)
	return requestIDMiddleware(handler)
}

func (rt *Router) recordThrottled(reason string) {
	if rt.metrics != nil {
		rt.metrics.RecordThrottled(serviceName, reason)
	}
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) taxonomy(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, usecase.Taxonomy())
}

func (rt *Router) sample(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("format")
	if raw == "" {
		raw = string(report.FormatJSON)
	}
	format, err := report.ParseFormat(raw)
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}

	rep, err := rt.sampler.SampleReport(r.Context())
	if err != nil {
		rt.writeDomainError(w, r, err)
		return
	}
	rt.writeReport(w, r, format, rep)
}

// scoreRequest is the wire form of domain.ScoreRequest. Agentic scoring is on
// unless the caller turns it off.
type scoreRequest struct {
	SOCCode        string                                    `json:"soc_code"`
	Title          string                                    `json:"title"`
	Categories     []domain.OnetCategory                     `json:"categories"`
	IncludeAgentic *bool                                     `json:"include_agentic"`
	Items          map[domain.OnetCategory][]domain.OnetItem `json:"items"`
	Previous       *domain.AutomationAlert                   `json:"previous"`
	ChangeReason   string                                    `json:"change_reason"`
}

func (req scoreRequest) toDomain() domain.ScoreRequest {
	includeAgentic := true
	if req.IncludeAgentic != nil {
		includeAgentic = *req.IncludeAgentic
	}
	return domain.ScoreRequest{
		SOCCode:        strings.TrimSpace(req.SOCCode),
		Title:          strings.TrimSpace(req.Title),
		Categories:     req.Categories,
		IncludeAgentic: includeAgentic,
		Items:          req.Items,
		Previous:       req.Previous,
		ChangeReason:   req.ChangeReason,
	}
}

func (rt *Router) scoreOccupation(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := decoder.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	start := time.Now()
	rep, err := rt.scorer.ScoreOccupation(r.Context(), req.toDomain())
	if err != nil {
		rt.logger.Error("score_occupation_failed",
			"request_id", requestIDFromContext(r.Context()),
			"soc_code", req.SOCCode,
			"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
			"error", err,
		)
		rt.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (rt *Router) writeReport(w http.ResponseWriter, r *http.Request, format report.Format, rep *domain.Report) {
	var buf bytes.Buffer
	if err := report.Render(&buf, format, rep); err != nil {
		rt.writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	if format == report.FormatXLSX {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportFilename(rep, format)))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func reportFilename(rep *domain.Report, format report.Format) string {
	code := strings.NewReplacer(".", "_", "-", "_").Replace(rep.Alert.SOCCode)
	return "automation_alert_" + code + "." + string(format)
}

func (rt *Router) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := mapErrorToHTTPStatus(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		rt.logger.Error("request_failed",
			"request_id", requestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
		if status == http.StatusInternalServerError {
			message = "internal error"
		}
	}
	writeError(w, r, status, message)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":      message,
		"request_id": requestIDFromContext(r.Context()),
	})
}
