package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/apperror"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/usecase"
	"github.com/vasapolrittideah/kinext-api/shared/validation"
)

const maxBodyBytes = 1 << 20

// Handler serves the platform HTTP API.
type Handler struct {
	logger       *zerolog.Logger
	validator    *validation.Validator
	registration usecase.RegistrationUsecase
	auth         usecase.AuthUsecase
	tenants      repository.TenantStore
}

func NewHandler(
	logger *zerolog.Logger,
	validator *validation.Validator,
	registration usecase.RegistrationUsecase,
	auth usecase.AuthUsecase,
	tenants repository.TenantStore,
) *Handler {
	return &Handler{
		logger:       logger,
		validator:    validator,
		registration: registration,
		auth:         auth,
		tenants:      tenants,
	}
}

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// decode reads a JSON body into dst. Malformed bodies are reported as a
// validation error on the "body" field.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))

	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return apperror.Validation("body", "request body is empty")
		case errors.As(err, &typeErr):
			return apperror.Validation(typeErr.Field, fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type))
		case errors.As(err, &syntaxErr):
			return apperror.Validation("body", "request body is not valid JSON")
		default:
			return apperror.Validation("body", err.Error())
		}
	}

	return nil
}

// decodeAndValidate decodes the body into dst and runs its validate tags.
func (h *Handler) decodeAndValidate(r *http.Request, dst any) error {
	if err := decode(r, dst); err != nil {
		return err
	}

	fields, err := h.validator.Struct(dst)
	if err != nil {
		return err
	}
	if fields != nil {
		return &apperror.ValidationError{Fields: fields}
	}

	return nil
}

// listParams reads the limit and offset query parameters.
func listParams(r *http.Request) (repository.ListParams, error) {
	var params repository.ListParams

	for name, dst := range map[string]*uint64{"limit": &params.Limit, "offset": &params.Offset} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}

		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return params, apperror.Validation(name, name+" must be a non-negative integer")
		}
		*dst = v
	}

	return params, nil
}
