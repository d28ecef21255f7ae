package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/apperror"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/tenancy"
)

const sampleDataCount = 5

// SeedUsecase fills a provisioned tenant database with sample content.
type SeedUsecase interface {
	Seed(ctx context.Context, userID string) (*SeedReport, error)
}

// SeedReport counts the documents inserted by Seed.
type SeedReport struct {
	DBName        string
	Pages         int
	ContentBlocks int
	Companies     int
	Contacts      int
	Jobs          int
	Interactions  int
	Applications  int
}

type seedUsecase struct {
	databases tenancy.DatabaseProvider
	instances repository.InstanceRepository
	tenants   repository.TenantStore
}

func NewSeedUsecase(
	databases tenancy.DatabaseProvider,
	instances repository.InstanceRepository,
	tenants repository.TenantStore,
) SeedUsecase {
	return &seedUsecase{
		databases: databases,
		instances: instances,
		tenants:   tenants,
	}
}

// Seed looks the tenant database of userID up in the registry and inserts the
// sample pages, CRM and careers data into it.
func (u *seedUsecase) Seed(ctx context.Context, userID string) (*SeedReport, error) {
	instance, err := u.instances.GetInstanceByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: user %s", apperror.ErrTenantNotFound, userID)
		}
		return nil, apperror.Persistence("lookup tenant instance", err)
	}

	db := u.databases.Database(instance.DBName)
	if err := u.tenants.EnsureIndexes(ctx, db); err != nil {
		return nil, apperror.Persistence("prepare tenant database", err)
	}

	report := &SeedReport{DBName: instance.DBName}
	if err := u.seedPages(ctx, db, report); err != nil {
		return report, err
	}
	companies, err := u.seedCompanies(ctx, db, report)
	if err != nil {
		return report, err
	}
	contacts, err := u.seedContacts(ctx, db, report)
	if err != nil {
		return report, err
	}
	jobs, err := u.seedJobs(ctx, db, companies, report)
	if err != nil {
		return report, err
	}
	if err := u.seedInteractions(ctx, db, contacts, report); err != nil {
		return report, err
	}
	if err := u.seedApplications(ctx, db, jobs, contacts, report); err != nil {
		return report, err
	}

	return report, nil
}

func (u *seedUsecase) seedPages(ctx context.Context, db *mongo.Database, report *SeedReport) error {
	pages := u.tenants.Pages(db)
	blocks := u.tenants.ContentBlocks(db)

	for i := 1; i <= sampleDataCount; i++ {
		page, err := pages.CreatePage(ctx, &model.Page{
			Title:     fmt.Sprintf("Sample Page %d", i),
			Slug:      fmt.Sprintf("sample-page-%d", i),
			Content:   fmt.Sprintf("<p>This is the content of sample page %d.</p>", i),
			Published: true,
		})
		if err != nil {
			return apperror.Persistence("insert sample page", err)
		}
		report.Pages++

		if _, err := blocks.CreateBlock(ctx, &model.ContentBlock{
			PageID: page.ID,
			Data:   &model.TextBlock{Text: fmt.Sprintf("This is sample text block %d.", i)},
		}); err != nil {
			return apperror.Persistence("insert sample content block", err)
		}
		report.ContentBlocks++
	}

	return nil
}

func (u *seedUsecase) seedCompanies(
	ctx context.Context,
	db *mongo.Database,
	report *SeedReport,
) ([]*model.Company, error) {
	repo := u.tenants.Companies(db)
	industry := "Technology"

	companies := make([]*model.Company, 0, sampleDataCount)
	for i := 1; i <= sampleDataCount; i++ {
		description := fmt.Sprintf("This is a description for Company %d.", i)
		company, err := repo.CreateCompany(ctx, &model.Company{
			Name:        fmt.Sprintf("Company %d", i),
			Description: &description,
			Industry:    &industry,
		})
		if err != nil {
			return nil, apperror.Persistence("insert sample company", err)
		}
		companies = append(companies, company)
		report.Companies++
	}

	return companies, nil
}

func (u *seedUsecase) seedContacts(
	ctx context.Context,
	db *mongo.Database,
	report *SeedReport,
) ([]*model.Contact, error) {
	repo := u.tenants.Contacts(db)

	contacts := make([]*model.Contact, 0, sampleDataCount)
	for i := 1; i <= sampleDataCount; i++ {
		company := fmt.Sprintf("Company %d", i)
		contact, err := repo.CreateContact(ctx, &model.Contact{
			FirstName: "Contact",
			LastName:  fmt.Sprintf("%d", i),
			Email:     fmt.Sprintf("contact%d@example.com", i),
			Company:   &company,
			Status:    model.ContactStatusLead,
		})
		if err != nil {
			return nil, apperror.Persistence("insert sample contact", err)
		}
		contacts = append(contacts, contact)
		report.Contacts++
	}

	return contacts, nil
}

func (u *seedUsecase) seedJobs(
	ctx context.Context,
	db *mongo.Database,
	companies []*model.Company,
	report *SeedReport,
) ([]*model.Job, error) {
	repo := u.tenants.Jobs(db)
	salary := "Competitive"

	jobs := make([]*model.Job, 0, len(companies))
	for _, company := range companies {
		job, err := repo.CreateJob(ctx, &model.Job{
			Title:     "Software Engineer at " + company.Name,
			CompanyID: company.ID,
			Description: fmt.Sprintf(
				"We are looking for a talented software engineer to join our team at %s.",
				company.Name,
			),
			Location:     "Remote",
			SalaryRange:  &salary,
			Type:         model.JobTypeFullTime,
			IsActive:     true,
			Requirements: []string{"Go", "MongoDB"},
		})
		if err != nil {
			return nil, apperror.Persistence("insert sample job", err)
		}
		jobs = append(jobs, job)
		report.Jobs++
	}

	return jobs, nil
}

func (u *seedUsecase) seedInteractions(
	ctx context.Context,
	db *mongo.Database,
	contacts []*model.Contact,
	report *SeedReport,
) error {
	repo := u.tenants.Interactions(db)
	now := time.Now().UTC()

	for _, contact := range contacts {
		notes := fmt.Sprintf("Initial contact email for %s %s", contact.FirstName, contact.LastName)
		if _, err := repo.CreateInteraction(ctx, &model.Interaction{
			ContactID: contact.ID,
			Type:      model.InteractionTypeEmail,
			Notes:     &notes,
			Date:      now,
		}); err != nil {
			return apperror.Persistence("insert sample interaction", err)
		}
		report.Interactions++
	}

	return nil
}

func (u *seedUsecase) seedApplications(
	ctx context.Context,
	db *mongo.Database,
	jobs []*model.Job,
	contacts []*model.Contact,
	report *SeedReport,
) error {
	if len(jobs) == 0 || len(contacts) == 0 {
		return nil
	}

	repo := u.tenants.Applications(db)
	for i := range sampleDataCount {
		coverLetter := fmt.Sprintf("Cover letter for application %d", i+1)
		if _, err := repo.CreateApplication(ctx, &model.Application{
			JobID:       jobs[i%len(jobs)].ID,
			ContactID:   contacts[i%len(contacts)].ID,
			CoverLetter: &coverLetter,
			ResumeURL:   fmt.Sprintf("resume%d.pdf", i+1),
			Status:      model.ApplicationStatusApplied,
		}); err != nil {
			return apperror.Persistence("insert sample application", err)
		}
		report.Applications++
	}

	return nil
}
