package httpadapter

import (
	"context"
	"errors"
	"net/http"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

// mapErrorToHTTPStatus turns a use case error into a response status. Upstream
// auth and malformed model output are the server's problem, not the caller's,
// so they surface as 502.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case domain.IsKind(err, domain.ErrInvalidInput), domain.IsKind(err, domain.ErrUnknownTag):
		return http.StatusBadRequest
	case domain.IsKind(err, domain.ErrNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.ErrUnauthorized), domain.IsKind(err, domain.ErrMalformedAssessment):
		return http.StatusBadGateway
	case domain.IsKind(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
