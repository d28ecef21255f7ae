package payload

import (
	"time"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
)

type CreateCompanyRequest struct {
	Name        string  `json:"name"        validate:"required,max=200"`
	Description *string `json:"description"`
	Industry    *string `json:"industry"`
	Website     *string `json:"website"     validate:"omitempty,url"`
	LogoURL     *string `json:"logo_url"    validate:"omitempty,url"`
}

type CompanyResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	Website     *string `json:"website,omitempty"`
	LogoURL     *string `json:"logo_url,omitempty"`
}

func NewCompanyResponse(company *model.Company) CompanyResponse {
	return CompanyResponse{
		ID:          company.ID.Hex(),
		Name:        company.Name,
		Description: company.Description,
		Industry:    company.Industry,
		Website:     company.Website,
		LogoURL:     company.LogoURL,
	}
}

type CreateJobRequest struct {
	Title        string        `json:"title"        validate:"required,max=200"`
	CompanyID    string        `json:"company_id"   validate:"required,mongodb"`
	Description  string        `json:"description"  validate:"required"`
	Location     string        `json:"location"     validate:"required"`
	SalaryRange  *string       `json:"salary_range"`
	Type         model.JobType `json:"type"         validate:"required,oneof=full-time part-time contract internship"`
	ClosingDate  *time.Time    `json:"closing_date"`
	IsActive     *bool         `json:"is_active"`
	Requirements []string      `json:"requirements" validate:"dive,required"`
}

type JobResponse struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	CompanyID    string        `json:"company_id"`
	Description  string        `json:"description"`
	Location     string        `json:"location"`
	SalaryRange  *string       `json:"salary_range,omitempty"`
	Type         model.JobType `json:"type"`
	PostedDate   time.Time     `json:"posted_date"`
	ClosingDate  *time.Time    `json:"closing_date,omitempty"`
	IsActive     bool          `json:"is_active"`
	Requirements []string      `json:"requirements"`
}

func NewJobResponse(job *model.Job) JobResponse {
	return JobResponse{
		ID:           job.ID.Hex(),
		Title:        job.Title,
		CompanyID:    job.CompanyID.Hex(),
		Description:  job.Description,
		Location:     job.Location,
		SalaryRange:  job.SalaryRange,
		Type:         job.Type,
		PostedDate:   job.PostedDate,
		ClosingDate:  job.ClosingDate,
		IsActive:     job.IsActive,
		Requirements: job.Requirements,
	}
}

type CreateApplicationRequest struct {
	ContactID   string                  `json:"contact_id"   validate:"required,mongodb"`
	CoverLetter *string                 `json:"cover_letter"`
	ResumeURL   string                  `json:"resume_url"   validate:"required"`
	Status      model.ApplicationStatus `json:"status"       validate:"omitempty,oneof=applied reviewed interviewing rejected hired"`
}

type ApplicationResponse struct {
	ID            string                  `json:"id"`
	JobID         string                  `json:"job_id"`
	ContactID     string                  `json:"contact_id"`
	SubmittedDate time.Time               `json:"submitted_date"`
	CoverLetter   *string                 `json:"cover_letter,omitempty"`
	ResumeURL     string                  `json:"resume_url"`
	Status        model.ApplicationStatus `json:"status"`
}

func NewApplicationResponse(application *model.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:            application.ID.Hex(),
		JobID:         application.JobID.Hex(),
		ContactID:     application.ContactID.Hex(),
		SubmittedDate: application.SubmittedDate,
		CoverLetter:   application.CoverLetter,
		ResumeURL:     application.ResumeURL,
		Status:        application.Status,
	}
}
