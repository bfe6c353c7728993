package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
	"github.com/kmikayilov/permeability-measurement-app/internal/logger"
)

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	var body plotRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeErrorCode(w, r, http.StatusRequestEntityTooLarge, domain.CodeInvalidRequest,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		case errors.Is(err, io.EOF):
			writeError(w, r, fmt.Errorf("%w: request body is empty", domain.ErrInvalidInput))
		default:
			writeError(w, r, fmt.Errorf("%w: malformed JSON body: %v", domain.ErrInvalidInput, err))
		}
		return
	}

	req, err := body.toDomain()
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.settings.RequestTimeout)
	defer cancel()

	result, err := s.ports.Corrections.Compute(ctx, req)
	s.metrics.observeCorrection(err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newPlotResponse(result))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func methodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		writeErrorCode(w, r, http.StatusMethodNotAllowed, domain.CodeInvalidRequest, "method not allowed")
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeErrorCode(w, r, http.StatusNotFound, domain.CodeNotFound, "no route for "+r.URL.Path)
}

// statusClientClosedRequest is the non-standard status logged when the
// client disconnects before the response is written.
const statusClientClosedRequest = 499

// statusFor maps an error code to its HTTP status.
func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeInvalidRequest, domain.CodeParse:
		return http.StatusBadRequest
	case domain.CodeDomain, domain.CodeFit:
		return http.StatusUnprocessableEntity
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeRateLimited:
		return http.StatusTooManyRequests
	case domain.CodeTimeout:
		return http.StatusGatewayTimeout
	case domain.CodeCanceled:
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError classifies err and writes the matching error response.
// Server-side failures are logged and their detail is withheld.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.CodeOf(err)
	message := err.Error()

	switch code {
	case domain.CodeTimeout:
		logger.Warn("request %s timed out: %v", RequestIDFromContext(r.Context()), err)
		message = "request timed out"
	case domain.CodeCanceled:
		logger.Debug("request %s canceled by client: %v", RequestIDFromContext(r.Context()), err)
		message = "request canceled"
	case domain.CodeInternal:
		logger.Error("request %s failed: %v", RequestIDFromContext(r.Context()), err)
		message = "internal server error"
	}

	writeErrorCode(w, r, statusFor(code), code, message)
}

func writeErrorCode(w http.ResponseWriter, r *http.Request, status int, code domain.ErrorCode, message string) {
	writeJSON(w, status, errorBody{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
