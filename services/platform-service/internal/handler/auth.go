package handler

import (
	"net/http"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/payload"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/usecase"
)

// handleRegister is the HTTP handler for the POST /api/register route.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := decode(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	res, err := h.registration.Register(r.Context(), usecase.RegisterParams{
		Name:                   req.Name,
		Email:                  req.Email,
		Password:               req.Password,
		PhoneNumber:            req.PhoneNumber,
		Image:                  req.Image,
		TermsAccepted:          req.TermsAccepted,
		NewsletterSubscription: req.NewsletterSubscription,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, payload.RegisterResponse{
		Message: "User created successfully",
		User:    payload.NewUserInfo(res.User),
	})
}

// handleLogin is the HTTP handler for the POST /api/auth/login route.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	res, err := h.auth.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, payload.LoginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   res.ExpiresAt,
		User:        payload.NewUserInfo(res.User),
	})
}
