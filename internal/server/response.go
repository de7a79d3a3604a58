package server

import (
	"encoding/json"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	goerrors "github.com/goliatone/go-errors"
)

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

func (s *Server) writeSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data}); err != nil {
		requestLogger(r.Context(), s.logger).Error("server.encode_success", "error", err)
	}
}

func (s *Server) writeHTML(w http.ResponseWriter, status int, markup string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(markup))
}

// handleError maps err onto a go-errors response and status code.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := requestLogger(r.Context(), s.logger)

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers()).Clone()
	status := statusFor(mapped)
	if mapped.Code == 0 {
		mapped.Code = status
	}
	if mapped.TextCode == "" {
		mapped.TextCode = goerrors.HTTPStatusToTextCode(status)
	}
	mapped.RequestID = chimiddleware.GetReqID(r.Context())

	if status >= http.StatusInternalServerError {
		log.Error("server.request_failed", "error", err, "status", status)
		mapped.Message = "An unexpected error occurred"
		mapped.Source = nil
	} else {
		log.Warn("server.request_rejected", "error", err, "status", status)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(mapped.ToErrorResponse(false, nil)); err != nil {
		log.Error("server.encode_error", "error", err)
	}
}

func statusFor(err *goerrors.Error) int {
	switch err.Category {
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryMethodNotAllowed:
		return http.StatusMethodNotAllowed
	}
	if err.Code >= 400 && err.Code < 600 {
		return err.Code
	}
	return http.StatusInternalServerError
}
