package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/apperror"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/payload"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
)

// handleListPages is the HTTP handler for the GET /api/pages route.
func (h *Handler) handleListPages(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	filter := repository.FilterPagesParams{ListParams: params}
	switch r.URL.Query().Get("published") {
	case "true":
		filter.Published = ptr(true)
	case "false":
		filter.Published = ptr(false)
	}

	pages, err := h.tenants.Pages(databaseFrom(r.Context())).ListPages(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, apperror.Persistence("list pages", err))
		return
	}

	res := make([]payload.PageResponse, 0, len(pages))
	for _, page := range pages {
		res = append(res, payload.NewPageResponse(page))
	}
	respond(w, http.StatusOK, res)
}

// handleCreatePage is the HTTP handler for the POST /api/pages route.
func (h *Handler) handleCreatePage(w http.ResponseWriter, r *http.Request) {
	var req payload.CreatePageRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	page, err := h.tenants.Pages(databaseFrom(r.Context())).CreatePage(r.Context(), &model.Page{
		Title:     req.Title,
		Slug:      req.Slug,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, payload.NewPageResponse(page))
}

// handleGetPage is the HTTP handler for the GET /api/pages/{pageID} route.
func (h *Handler) handleGetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.tenants.Pages(databaseFrom(r.Context())).GetPage(r.Context(), chi.URLParam(r, "pageID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respond(w, http.StatusOK, payload.NewPageResponse(page))
}

// handleListContentBlocks is the HTTP handler for the GET /api/pages/{pageID}/blocks route.
func (h *Handler) handleListContentBlocks(w http.ResponseWriter, r *http.Request) {
	blocks, err := h.tenants.ContentBlocks(databaseFrom(r.Context())).
		ListBlocksByPage(r.Context(), chi.URLParam(r, "pageID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	res := make([]payload.ContentBlockResponse, 0, len(blocks))
	for _, block := range blocks {
		res = append(res, payload.NewContentBlockResponse(block))
	}
	respond(w, http.StatusOK, res)
}

// handleCreateContentBlock is the HTTP handler for the POST /api/pages/{pageID}/blocks route.
func (h *Handler) handleCreateContentBlock(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateContentBlockRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	data, err := model.DecodeBlockDataJSON(req.Type, req.Data)
	if err != nil {
		h.respondError(w, r, apperror.Validation("data", err.Error()))
		return
	}
	fields, err := h.validator.Struct(data)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if fields != nil {
		prefixed := make(map[string]string, len(fields))
		for name, msg := range fields {
			prefixed["data."+name] = msg
		}
		h.respondError(w, r, &apperror.ValidationError{Fields: prefixed})
		return
	}

	db := databaseFrom(r.Context())
	page, err := h.tenants.Pages(db).GetPage(r.Context(), chi.URLParam(r, "pageID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	block, err := h.tenants.ContentBlocks(db).CreateBlock(r.Context(), &model.ContentBlock{
		PageID: page.ID,
		Order:  req.Order,
		Data:   data,
	})
	if err != nil {
		h.respondError(w, r, apperror.Persistence("insert content block", err))
		return
	}

	respond(w, http.StatusCreated, payload.NewContentBlockResponse(block))
}

func ptr[T any](v T) *T { return &v }
