package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/apperror"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/payload"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
)

// handleListCompanies is the HTTP handler for the GET /api/companies route.
func (h *Handler) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	companies, err := h.tenants.Companies(databaseFrom(r.Context())).ListCompanies(r.Context(), params)
	if err != nil {
		h.respondError(w, r, apperror.Persistence("list companies", err))
		return
	}

	res := make([]payload.CompanyResponse, 0, len(companies))
	for _, company := range companies {
		res = append(res, payload.NewCompanyResponse(company))
	}
	respond(w, http.StatusOK, res)
}

// handleCreateCompany is the HTTP handler for the POST /api/companies route.
func (h *Handler) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateCompanyRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	company, err := h.tenants.Companies(databaseFrom(r.Context())).CreateCompany(r.Context(), &model.Company{
		Name:        req.Name,
		Description: req.Description,
		Industry:    req.Industry,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
	})
	if err != nil {
		h.respondError(w, r, apperror.Persistence("insert company", err))
		return
	}

	respond(w, http.StatusCreated, payload.NewCompanyResponse(company))
}

// handleListJobs is the HTTP handler for the GET /api/jobs route.
func (h *Handler) handleListJobs(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	filter := repository.FilterJobsParams{
		ListParams: params,
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}
	if companyID := r.URL.Query().Get("company_id"); companyID != "" {
		filter.CompanyID = &companyID
	}

	jobs, err := h.tenants.Jobs(databaseFrom(r.Context())).ListJobs(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	res := make([]payload.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		res = append(res, payload.NewJobResponse(job))
	}
	respond(w, http.StatusOK, res)
}

// handleCreateJob is the HTTP handler for the POST /api/jobs route.
func (h *Handler) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateJobRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	db := databaseFrom(r.Context())
	company, err := h.tenants.Companies(db).GetCompany(r.Context(), req.CompanyID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	job := &model.Job{
		Title:        req.Title,
		CompanyID:    company.ID,
		Description:  req.Description,
		Location:     req.Location,
		SalaryRange:  req.SalaryRange,
		Type:         req.Type,
		ClosingDate:  req.ClosingDate,
		IsActive:     req.IsActive == nil || *req.IsActive,
		Requirements: req.Requirements,
	}

	job, err = h.tenants.Jobs(db).CreateJob(r.Context(), job)
	if err != nil {
		h.respondError(w, r, apperror.Persistence("insert job", err))
		return
	}

	respond(w, http.StatusCreated, payload.NewJobResponse(job))
}

// handleListApplications is the HTTP handler for the GET /api/jobs/{jobID}/applications route.
func (h *Handler) handleListApplications(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	applications, err := h.tenants.Applications(databaseFrom(r.Context())).
		ListApplicationsByJob(r.Context(), chi.URLParam(r, "jobID"), params)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	res := make([]payload.ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		res = append(res, payload.NewApplicationResponse(application))
	}
	respond(w, http.StatusOK, res)
}

// handleCreateApplication is the HTTP handler for the POST /api/jobs/{jobID}/applications route.
func (h *Handler) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateApplicationRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	db := databaseFrom(r.Context())
	job, err := h.tenants.Jobs(db).GetJob(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	contact, err := h.tenants.Contacts(db).GetContact(r.Context(), req.ContactID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	application, err := h.tenants.Applications(db).CreateApplication(r.Context(), &model.Application{
		JobID:       job.ID,
		ContactID:   contact.ID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
		Status:      req.Status,
	})
	if err != nil {
		h.respondError(w, r, apperror.Persistence("insert application", err))
		return
	}

	respond(w, http.StatusCreated, payload.NewApplicationResponse(application))
}
