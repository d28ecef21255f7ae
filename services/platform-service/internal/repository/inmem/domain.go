package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
)

func parseID(id string) (bson.ObjectID, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("%w: %q", repository.ErrInvalidID, id)
	}
	return objectID, nil
}

func findByID[T any](items []*T, id string, idOf func(*T) bson.ObjectID) (*T, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if idOf(item) == objectID {
			return clone(item), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type pageRepository struct {
	store  *Store
	dbName string
}

func (r *pageRepository) CreatePage(_ context.Context, p *model.Page) (*model.Page, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.failure(r.dbName, "CreatePage"); err != nil {
		return nil, err
	}

	db := r.store.db(r.dbName)
	for _, existing := range db.pages {
		if existing.Slug == p.Slug {
			return nil, repository.ErrDuplicateSlug
		}
	}

	now := time.Now().UTC()
	p.ID = bson.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	db.pages = append(db.pages, clone(p))

	return p, nil
}

func (r *pageRepository) GetPage(_ context.Context, id string) (*model.Page, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return findByID(r.store.db(r.dbName).pages, id, func(p *model.Page) bson.ObjectID { return p.ID })
}

func (r *pageRepository) GetPageBySlug(_ context.Context, slug string) (*model.Page, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, p := range r.store.db(r.dbName).pages {
		if p.Slug == slug {
			return clone(p), nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *pageRepository) ListPages(_ context.Context, params repository.FilterPagesParams) ([]*model.Page, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.failure(r.dbName, "ListPages"); err != nil {
		return nil, err
	}

	pages := make([]*model.Page, 0)
	for _, p := range r.store.db(r.dbName).pages {
		if params.Published != nil && p.Published != *params.Published {
			continue
		}
		pages = append(pages, p)
	}
	return page(pages, params.Limit, params.Offset), nil
}

type contentBlockRepository struct {
	store  *Store
	dbName string
}

func (r *contentBlockRepository) CreateBlock(
	_ context.Context,
	block *model.ContentBlock,
) (*model.ContentBlock, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if block.Data == nil {
		return nil, model.ErrMissingBlockData
	}

	block.ID = bson.NewObjectID()
	db := r.store.db(r.dbName)
	db.blocks = append(db.blocks, clone(block))

	return block, nil
}

func (r *contentBlockRepository) ListBlocksByPage(
	_ context.Context,
	pageID string,
) ([]*model.ContentBlock, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	objectID, err := parseID(pageID)
	if err != nil {
		return nil, err
	}

	blocks := make([]*model.ContentBlock, 0)
	for _, b := range r.store.db(r.dbName).blocks {
		if b.PageID == objectID {
			blocks = append(blocks, clone(b))
		}
	}
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].Order < blocks[j].Order })

	return blocks, nil
}

type contactRepository struct {
	store  *Store
	dbName string
}

func (r *contactRepository) CreateContact(_ context.Context, c *model.Contact) (*model.Contact, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.failure(r.dbName, "CreateContact"); err != nil {
		return nil, err
	}

	db := r.store.db(r.dbName)
	for _, existing := range db.contacts {
		if existing.Email == c.Email {
			return nil, repository.ErrDuplicateContactEmail
		}
	}

	now := time.Now().UTC()
	c.ID = bson.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = model.ContactStatusLead
	}
	db.contacts = append(db.contacts, clone(c))

	return c, nil
}

func (r *contactRepository) GetContact(_ context.Context, id string) (*model.Contact, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return findByID(r.store.db(r.dbName).contacts, id, func(c *model.Contact) bson.ObjectID { return c.ID })
}

func (r *contactRepository) ListContacts(
	_ context.Context,
	params repository.FilterContactsParams,
) ([]*model.Contact, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	contacts := make([]*model.Contact, 0)
	for _, c := range r.store.db(r.dbName).contacts {
		if params.Status != nil && c.Status != *params.Status {
			continue
		}
		contacts = append(contacts, c)
	}
	return page(contacts, params.Limit, params.Offset), nil
}

type interactionRepository struct {
	store  *Store
	dbName string
}

func (r *interactionRepository) CreateInteraction(
	_ context.Context,
	i *model.Interaction,
) (*model.Interaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i.ID = bson.NewObjectID()
	if i.Date.IsZero() {
		i.Date = time.Now().UTC()
	}
	db := r.store.db(r.dbName)
	db.interactions = append(db.interactions, clone(i))

	return i, nil
}

func (r *interactionRepository) ListInteractionsByContact(
	_ context.Context,
	contactID string,
	params repository.ListParams,
) ([]*model.Interaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	objectID, err := parseID(contactID)
	if err != nil {
		return nil, err
	}

	interactions := make([]*model.Interaction, 0)
	for _, i := range r.store.db(r.dbName).interactions {
		if i.ContactID == objectID {
			interactions = append(interactions, i)
		}
	}
	return page(interactions, params.Limit, params.Offset), nil
}

type companyRepository struct {
	store  *Store
	dbName string
}

func (r *companyRepository) CreateCompany(_ context.Context, c *model.Company) (*model.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c.ID = bson.NewObjectID()
	db := r.store.db(r.dbName)
	db.companies = append(db.companies, clone(c))

	return c, nil
}

func (r *companyRepository) GetCompany(_ context.Context, id string) (*model.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return findByID(r.store.db(r.dbName).companies, id, func(c *model.Company) bson.ObjectID { return c.ID })
}

func (r *companyRepository) ListCompanies(_ context.Context, params repository.ListParams) ([]*model.Company, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return page(r.store.db(r.dbName).companies, params.Limit, params.Offset), nil
}

type jobRepository struct {
	store  *Store
	dbName string
}

func (r *jobRepository) CreateJob(_ context.Context, j *model.Job) (*model.Job, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	j.ID = bson.NewObjectID()
	if j.PostedDate.IsZero() {
		j.PostedDate = time.Now().UTC()
	}
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	db := r.store.db(r.dbName)
	db.jobs = append(db.jobs, clone(j))

	return j, nil
}

func (r *jobRepository) GetJob(_ context.Context, id string) (*model.Job, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return findByID(r.store.db(r.dbName).jobs, id, func(j *model.Job) bson.ObjectID { return j.ID })
}

func (r *jobRepository) ListJobs(_ context.Context, params repository.FilterJobsParams) ([]*model.Job, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var companyID bson.ObjectID
	if params.CompanyID != nil {
		id, err := parseID(*params.CompanyID)
		if err != nil {
			return nil, err
		}
		companyID = id
	}

	jobs := make([]*model.Job, 0)
	for _, j := range r.store.db(r.dbName).jobs {
		if params.CompanyID != nil && j.CompanyID != companyID {
			continue
		}
		if params.ActiveOnly && !j.IsActive {
			continue
		}
		jobs = append(jobs, j)
	}
	return page(jobs, params.Limit, params.Offset), nil
}

type applicationRepository struct {
	store  *Store
	dbName string
}

func (r *applicationRepository) CreateApplication(
	_ context.Context,
	a *model.Application,
) (*model.Application, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	a.ID = bson.NewObjectID()
	if a.SubmittedDate.IsZero() {
		a.SubmittedDate = time.Now().UTC()
	}
	if a.Status == "" {
		a.Status = model.ApplicationStatusApplied
	}
	db := r.store.db(r.dbName)
	db.applications = append(db.applications, clone(a))

	return a, nil
}

func (r *applicationRepository) ListApplicationsByJob(
	_ context.Context,
	jobID string,
	params repository.ListParams,
) ([]*model.Application, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	objectID, err := parseID(jobID)
	if err != nil {
		return nil, err
	}

	applications := make([]*model.Application, 0)
	for _, a := range r.store.db(r.dbName).applications {
		if a.JobID == objectID {
			applications = append(applications, a)
		}
	}
	return page(applications, params.Limit, params.Offset), nil
}
