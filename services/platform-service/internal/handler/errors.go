package handler

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/apperror"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/payload"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/usecase"
)

var (
	errUnauthorized = errors.New("authentication required")
	errInvalidToken = errors.New("invalid or expired token")
)

var conflictMessages = map[string]string{
	"email":        "User with this email already exists",
	"phone_number": "User with this phone number already exists",
}

// respondError maps err onto an HTTP status. Unexpected errors are logged and
// reported without detail.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *apperror.ValidationError
	var conflictErr *apperror.ConflictError

	switch {
	case errors.As(err, &validationErr):
		respond(w, http.StatusBadRequest, payload.ErrorResponse{
			Message: "Missing or invalid fields",
			Fields:  validationErr.Fields,
		})

	case errors.As(err, &conflictErr):
		msg, ok := conflictMessages[conflictErr.Field]
		if !ok {
			msg = conflictErr.Error()
		}
		respond(w, http.StatusConflict, payload.ErrorResponse{Message: msg})

	case errors.Is(err, repository.ErrDuplicateSlug),
		errors.Is(err, repository.ErrDuplicateContactEmail):
		respond(w, http.StatusConflict, payload.ErrorResponse{Message: err.Error()})

	case errors.Is(err, repository.ErrInvalidID):
		respond(w, http.StatusBadRequest, payload.ErrorResponse{Message: err.Error()})

	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, errUnauthorized),
		errors.Is(err, errInvalidToken):
		respond(w, http.StatusUnauthorized, payload.ErrorResponse{Message: err.Error()})

	case errors.Is(err, apperror.ErrTenantNotFound):
		respond(w, http.StatusNotFound, payload.ErrorResponse{Message: "No tenant database is provisioned for this user"})

	case errors.Is(err, apperror.ErrNotFound),
		errors.Is(err, mongo.ErrNoDocuments):
		respond(w, http.StatusNotFound, payload.ErrorResponse{Message: "Resource not found"})

	default:
		h.logger.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", requestIDFrom(r.Context())).
			Msg("request failed")
		respond(w, http.StatusInternalServerError, payload.ErrorResponse{Message: "Internal server error"})
	}
}
