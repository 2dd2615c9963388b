package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"campaign-manager/internal/core/domain"
)

type dataBody struct {
	Data any `json:"data"`
}

type errorBody struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// httpError carries an explicit status and user-facing message.
type httpError struct {
	code    int
	message string
	cause   error
}

func (e *httpError) Error() string { return e.message }
func (e *httpError) Unwrap() error { return e.cause }

func notFound(message string, cause error) error {
	return &httpError{code: http.StatusNotFound, message: message, cause: cause}
}

func badRequest(message string, cause error) error {
	return &httpError{code: http.StatusBadRequest, message: message, cause: cause}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, payload any) {
	writeJSON(w, status, dataBody{Data: payload})
}

// writeError is the single place where errors become responses. Unknown
// errors are logged and reported as 500 without their cause.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		he   *httpError
		verr *domain.ValidationError
	)
	switch {
	case errors.As(err, &he):
		writeJSON(w, he.code, errorBody{Error: he.message})
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Validation error", Details: verr.Fields})
	case errors.Is(err, domain.ErrEmailTaken):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Email already registered"})
	case errors.Is(err, domain.ErrEmptyUpdate):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "No fields to update"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Invalid credentials"})
	case errors.Is(err, domain.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Invalid token"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Resource not found"})
	default:
		h.logger.Error("request failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal server error"})
	}
}
