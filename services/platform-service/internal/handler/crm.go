package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/apperror"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/payload"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
)

// handleListContacts is the HTTP handler for the GET /api/contacts route.
func (h *Handler) handleListContacts(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	filter := repository.FilterContactsParams{ListParams: params}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = ptr(model.ContactStatus(status))
	}

	contacts, err := h.tenants.Contacts(databaseFrom(r.Context())).ListContacts(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, apperror.Persistence("list contacts", err))
		return
	}

	res := make([]payload.ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		res = append(res, payload.NewContactResponse(contact))
	}
	respond(w, http.StatusOK, res)
}

// handleCreateContact is the HTTP handler for the POST /api/contacts route.
func (h *Handler) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateContactRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	contact, err := h.tenants.Contacts(databaseFrom(r.Context())).CreateContact(r.Context(), &model.Contact{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		JobTitle:  req.JobTitle,
		Status:    req.Status,
		Notes:     req.Notes,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, payload.NewContactResponse(contact))
}

// handleGetContact is the HTTP handler for the GET /api/contacts/{contactID} route.
func (h *Handler) handleGetContact(w http.ResponseWriter, r *http.Request) {
	contact, err := h.tenants.Contacts(databaseFrom(r.Context())).GetContact(r.Context(), chi.URLParam(r, "contactID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, payload.NewContactResponse(contact))
}

// handleListInteractions is the HTTP handler for the GET /api/contacts/{contactID}/interactions route.
func (h *Handler) handleListInteractions(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	interactions, err := h.tenants.Interactions(databaseFrom(r.Context())).
		ListInteractionsByContact(r.Context(), chi.URLParam(r, "contactID"), params)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	res := make([]payload.InteractionResponse, 0, len(interactions))
	for _, interaction := range interactions {
		res = append(res, payload.NewInteractionResponse(interaction))
	}
	respond(w, http.StatusOK, res)
}

// handleCreateInteraction is the HTTP handler for the POST /api/contacts/{contactID}/interactions route.
func (h *Handler) handleCreateInteraction(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateInteractionRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	db := databaseFrom(r.Context())
	contact, err := h.tenants.Contacts(db).GetContact(r.Context(), chi.URLParam(r, "contactID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	interaction := &model.Interaction{
		ContactID: contact.ID,
		Type:      req.Type,
		Notes:     req.Notes,
	}
	if req.Date != nil {
		interaction.Date = req.Date.UTC()
	}

	interaction, err = h.tenants.Interactions(db).CreateInteraction(r.Context(), interaction)
	if err != nil {
		h.respondError(w, r, apperror.Persistence("insert interaction", err))
		return
	}

	respond(w, http.StatusCreated, payload.NewInteractionResponse(interaction))
}
