package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Tomlord1122/todo-dashboard/internal/domain"
	"github.com/Tomlord1122/todo-dashboard/internal/validation"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string             `json:"error"`
	Issues []validation.Issue `json:"issues,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// requestError is a client mistake detected before the service is called.
type requestError struct {
	status  int
	message string
}

func (e *requestError) Error() string { return e.message }

// decodeJSON strictly decodes a single JSON object from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(dst)
	if err == nil {
		if decoder.More() {
			return &requestError{http.StatusBadRequest, "Request body must only contain a single JSON object"}
		}
		return nil
	}

	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var maxBytesError *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxError):
		return &requestError{http.StatusBadRequest, fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &requestError{http.StatusBadRequest, "Request body contains badly-formed JSON"}
	case errors.As(err, &unmarshalTypeError):
		return &requestError{http.StatusBadRequest, fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return &requestError{http.StatusBadRequest, fmt.Sprintf("Request body contains unknown field %s", fieldName)}
	case errors.Is(err, io.EOF):
		return &requestError{http.StatusBadRequest, "Request body must not be empty"}
	case errors.As(err, &maxBytesError):
		return &requestError{http.StatusRequestEntityTooLarge, "Request body must not be larger than 1MB"}
	}
	return errors.Wrap(err, "decode request body")
}

// handleError is the one place service and request errors become HTTP
// responses. Anything unrecognised is logged and reported as a 500 with
// fallback as the message.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var (
		reqErr     *requestError
		validErr   *validation.Error
		notFound   *domain.NotFoundError
		conflict   *domain.ConflictError
		badRequest *domain.BadRequestError
	)
	switch {
	case errors.As(err, &reqErr):
		respondWithError(w, reqErr.status, reqErr.message)
	case errors.As(err, &validErr):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation failed", Issues: validErr.Issues})
	case errors.Is(err, domain.ErrIDMismatch):
		respondWithError(w, http.StatusBadRequest, domain.ErrIDMismatch.Error())
	case errors.As(err, &badRequest):
		respondWithError(w, http.StatusBadRequest, badRequest.Message)
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondWithError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		s.logger.Debug("unauthorized request", zap.String("path", r.URL.Path), zap.Error(err))
		respondWithError(w, http.StatusUnauthorized, domain.ErrUnauthorized.Error())
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, domain.ErrForbidden.Error())
	case errors.As(err, &notFound):
		respondWithError(w, http.StatusNotFound, notFound.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found")
	case errors.As(err, &conflict):
		respondWithError(w, http.StatusConflict, conflict.Message)
	default:
		s.logger.Error(fallback,
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("marshal JSON response", zap.Error(err))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
