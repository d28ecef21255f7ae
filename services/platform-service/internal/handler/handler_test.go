package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/config"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/payload"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository/inmem"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/tenancy"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/usecase"
	"github.com/vasapolrittideah/kinext-api/shared/auth"
	"github.com/vasapolrittideah/kinext-api/shared/database"
	"github.com/vasapolrittideah/kinext-api/shared/logger"
	"github.com/vasapolrittideah/kinext-api/shared/validation"
)

const (
	adminDBName = "kinext-admin"
	testSecret  = "test-secret"
)

type server struct {
	store     *inmem.Store
	databases *database.Manager
	jwtAuth   auth.JWTAuthenticator
	registry  *prometheus.Registry
	handler   http.Handler
}

func newServer(t *testing.T, opts ...tenancy.ResolverOption) *server {
	t.Helper()

	databases := database.NewManager(database.Config{URI: "mongodb://127.0.0.1:1", AdminDBName: adminDBName}, logger.Nop())
	require.NoError(t, databases.Open())
	t.Cleanup(func() { _ = databases.Disconnect(context.Background()) })

	store := inmem.NewStore()
	validator := validation.New()
	jwtAuth := auth.NewJWTAuthenticator("kinext-api", "kinext")
	registry := prometheus.NewRegistry()

	registration := usecase.NewRegistrationUsecase(
		databases,
		store.Users(adminDBName),
		store.Instances(adminDBName),
		store.Tenants(),
		validator,
		"kinext-",
		logger.Nop(),
	)
	login := usecase.NewAuthUsecase(store.Users(adminDBName), jwtAuth, config.TokenConfig{
		AccessTokenSecret:    testSecret,
		Issuer:               "kinext",
		AccessTokenExpiresIn: time.Hour,
	})
	resolver := tenancy.NewResolver(databases, store.Instances(adminDBName), logger.Nop(), opts...)

	h := NewHandler(logger.Nop(), validator, registration, login, store.Tenants())

	return &server{
		store:     store,
		databases: databases,
		jwtAuth:   jwtAuth,
		registry:  registry,
		handler: h.Routes(RouterConfig{
			JWTAuth:     jwtAuth,
			TokenSecret: testSecret,
			Resolver:    resolver,
			Metrics:     NewHTTPMetrics(registry),
			Gatherer:    registry,
		}),
	}
}

func (s *server) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// signUp registers a user and logs them in, returning the user id and token.
func (s *server) signUp(t *testing.T, email string) (string, string) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/register", "", payload.RegisterRequest{
		Name:          "Grace Hopper",
		Email:         email,
		Password:      "correct horse battery",
		TermsAccepted: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered payload.RegisterResponse
	decodeBody(t, rec, &registered)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", payload.LoginRequest{
		Email:    email,
		Password: "correct horse battery",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login payload.LoginResponse
	decodeBody(t, rec, &login)

	return registered.User.ID, login.AccessToken
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(dst))
}

func TestRegister_Created(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodPost, "/api/register", "", payload.RegisterRequest{
		Name:          "Grace Hopper",
		Email:         "grace@example.com",
		Password:      "correct horse battery",
		TermsAccepted: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))

	var res payload.RegisterResponse
	decodeBody(t, rec, &res)
	require.Equal(t, "User created successfully", res.Message)
	require.Equal(t, "grace@example.com", res.User.Email)
	require.Len(t, res.User.ID, 24)

	require.True(t, s.store.Indexed(tenancy.DatabaseName("kinext-", res.User.ID)))
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	s := newServer(t)
	s.signUp(t, "grace@example.com")

	rec := s.do(t, http.MethodPost, "/api/register", "", payload.RegisterRequest{
		Name:          "Someone Else",
		Email:         "grace@example.com",
		Password:      "another password",
		TermsAccepted: true,
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	var res payload.ErrorResponse
	decodeBody(t, rec, &res)
	require.Equal(t, "User with this email already exists", res.Message)
}

func TestRegister_Validation(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodPost, "/api/register", "", payload.RegisterRequest{
		Name:     "Grace Hopper",
		Email:    "not-an-email",
		Password: "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var res payload.ErrorResponse
	decodeBody(t, rec, &res)
	require.Contains(t, res.Fields, "email")
	require.Contains(t, res.Fields, "password")
	require.Contains(t, res.Fields, "terms_accepted")
}

func TestRegister_MalformedBody(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var res payload.ErrorResponse
	decodeBody(t, rec, &res)
	require.Contains(t, res.Fields, "body")
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newServer(t)
	s.signUp(t, "grace@example.com")

	rec := s.do(t, http.MethodPost, "/api/auth/login", "", payload.LoginRequest{
		Email:    "grace@example.com",
		Password: "wrong password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_TokenCarriesUserID(t *testing.T) {
	s := newServer(t)
	userID, token := s.signUp(t, "grace@example.com")

	claims, err := s.jwtAuth.ValidateSessionToken(token, testSecret)
	require.NoError(t, err)
	require.Equal(t, userID, claims.Subject)
}

func TestSession_InvalidTokenRejected(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodGet, "/api/pages", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireSession_AnonymousRejected(t *testing.T) {
	s := newServer(t)

	for _, path := range []string{"/api/contacts", "/api/companies", "/api/jobs"} {
		rec := s.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := s.do(t, http.MethodPost, "/api/pages", "", payload.CreatePageRequest{Title: "Home", Slug: "home"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPages_WritesGoToTheTenantDatabase(t *testing.T) {
	s := newServer(t)
	_, graceToken := s.signUp(t, "grace@example.com")
	_, adaToken := s.signUp(t, "ada@example.com")

	rec := s.do(t, http.MethodPost, "/api/pages", graceToken, payload.CreatePageRequest{
		Title:     "Home",
		Slug:      "home",
		Published: true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var page payload.PageResponse
	decodeBody(t, rec, &page)

	var pages []payload.PageResponse

	rec = s.do(t, http.MethodGet, "/api/pages", graceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &pages)
	require.Len(t, pages, 1)
	require.Equal(t, page.ID, pages[0].ID)

	rec = s.do(t, http.MethodGet, "/api/pages", adaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &pages)
	require.Empty(t, pages)

	// Anonymous readers are served from the admin database.
	rec = s.do(t, http.MethodGet, "/api/pages", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &pages)
	require.Empty(t, pages)

	rec = s.do(t, http.MethodPost, "/api/pages", graceToken, payload.CreatePageRequest{Title: "Again", Slug: "home"})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestPages_GetByID(t *testing.T) {
	s := newServer(t)
	_, token := s.signUp(t, "grace@example.com")

	rec := s.do(t, http.MethodPost, "/api/pages", token, payload.CreatePageRequest{Title: "About", Slug: "about"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var page payload.PageResponse
	decodeBody(t, rec, &page)

	rec = s.do(t, http.MethodGet, "/api/pages/"+page.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/pages/0123456789abcdef01234567", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/pages/nope", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContentBlocks(t *testing.T) {
	s := newServer(t)
	_, token := s.signUp(t, "grace@example.com")

	rec := s.do(t, http.MethodPost, "/api/pages", token, payload.CreatePageRequest{Title: "Home", Slug: "home"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var page payload.PageResponse
	decodeBody(t, rec, &page)
	blocksPath := "/api/pages/" + page.ID + "/blocks"

	rec = s.do(t, http.MethodPost, blocksPath, token, map[string]any{
		"type":  "callout",
		"order": 1,
		"data":  map[string]string{"tone": "info", "text": "Hello"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, blocksPath, token, map[string]any{
		"type":  "text",
		"order": 0,
		"data":  map[string]string{"text": "First"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, blocksPath, token, map[string]any{
		"type": "image",
		"data": map[string]string{"url": "not a url"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var invalid payload.ErrorResponse
	decodeBody(t, rec, &invalid)
	require.Contains(t, invalid.Fields, "data.url")

	rec = s.do(t, http.MethodGet, blocksPath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var blocks []struct {
		Type  string          `json:"type"`
		Order int             `json:"order"`
		Data  json.RawMessage `json:"data"`
	}
	decodeBody(t, rec, &blocks)
	require.Len(t, blocks, 2)
	require.Equal(t, "text", blocks[0].Type)
	require.JSONEq(t, `{"text":"First"}`, string(blocks[0].Data))
	require.Equal(t, "callout", blocks[1].Type)

	rec = s.do(t, http.MethodPost, "/api/pages/0123456789abcdef01234567/blocks", token, map[string]any{
		"type": "text",
		"data": map[string]string{"text": "Orphan"},
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContacts_AndInteractions(t *testing.T) {
	s := newServer(t)
	_, token := s.signUp(t, "grace@example.com")

	rec := s.do(t, http.MethodPost, "/api/contacts", token, payload.CreateContactRequest{
		FirstName: "Alan",
		LastName:  "Turing",
		Email:     "alan@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var contact payload.ContactResponse
	decodeBody(t, rec, &contact)
	require.Equal(t, "lead", string(contact.Status))

	rec = s.do(t, http.MethodPost, "/api/contacts", token, payload.CreateContactRequest{
		FirstName: "Alan",
		LastName:  "Again",
		Email:     "alan@example.com",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	interactionsPath := "/api/contacts/" + contact.ID + "/interactions"
	rec = s.do(t, http.MethodPost, interactionsPath, token, map[string]any{"type": "call"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, interactionsPath, token, map[string]any{"type": "fax"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, interactionsPath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var interactions []payload.InteractionResponse
	decodeBody(t, rec, &interactions)
	require.Len(t, interactions, 1)
	require.Equal(t, contact.ID, interactions[0].ContactID)

	rec = s.do(t, http.MethodGet, "/api/contacts?status=customer", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var contacts []payload.ContactResponse
	decodeBody(t, rec, &contacts)
	require.Empty(t, contacts)

	rec = s.do(t, http.MethodGet, "/api/contacts?limit=abc", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCareers(t *testing.T) {
	s := newServer(t)
	_, token := s.signUp(t, "grace@example.com")

	rec := s.do(t, http.MethodPost, "/api/companies", token, payload.CreateCompanyRequest{Name: "Analytical Engines"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var company payload.CompanyResponse
	decodeBody(t, rec, &company)

	rec = s.do(t, http.MethodPost, "/api/jobs", token, map[string]any{
		"title":       "Engineer",
		"company_id":  "0123456789abcdef01234567",
		"description": "Build engines",
		"location":    "London",
		"type":        "full-time",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/jobs", token, map[string]any{
		"title":       "Engineer",
		"company_id":  company.ID,
		"description": "Build engines",
		"location":    "London",
		"type":        "full-time",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var job payload.JobResponse
	decodeBody(t, rec, &job)
	require.True(t, job.IsActive)

	rec = s.do(t, http.MethodPost, "/api/contacts", token, payload.CreateContactRequest{
		FirstName: "Alan",
		LastName:  "Turing",
		Email:     "alan@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var contact payload.ContactResponse
	decodeBody(t, rec, &contact)

	applicationsPath := "/api/jobs/" + job.ID + "/applications"
	rec = s.do(t, http.MethodPost, applicationsPath, token, map[string]any{
		"contact_id": contact.ID,
		"resume_url": "https://example.com/resume.pdf",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var application payload.ApplicationResponse
	decodeBody(t, rec, &application)
	require.Equal(t, "applied", string(application.Status))

	rec = s.do(t, http.MethodGet, applicationsPath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var applications []payload.ApplicationResponse
	decodeBody(t, rec, &applications)
	require.Len(t, applications, 1)

	rec = s.do(t, http.MethodGet, "/api/jobs?company_id="+company.ID+"&active=true", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var jobs []payload.JobResponse
	decodeBody(t, rec, &jobs)
	require.Len(t, jobs, 1)
}

func TestStrictResolution_MissingRegistryEntry(t *testing.T) {
	s := newServer(t, tenancy.WithStrictResolution(true))
	userID, token := s.signUp(t, "grace@example.com")

	s.store.DeleteInstance(adminDBName, userID)

	rec := s.do(t, http.MethodGet, "/api/contacts", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegistryFailureIsInternalError(t *testing.T) {
	s := newServer(t)
	_, token := s.signUp(t, "grace@example.com")

	s.store.Fail("GetInstanceByUserID", errors.New("connection reset"))

	rec := s.do(t, http.MethodGet, "/api/contacts", token, nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var res payload.ErrorResponse
	decodeBody(t, rec, &res)
	require.Equal(t, "Internal server error", res.Message)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "kinext_http_requests_total")

	require.Equal(t, 2, testutil.CollectAndCount(s.registry, "kinext_http_request_duration_seconds"))
}

func TestHealth_PingFailure(t *testing.T) {
	h := NewHandler(logger.Nop(), validation.New(), nil, nil, nil)
	router := h.Routes(RouterConfig{
		Ping: func(context.Context) error { return errors.New("down") },
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
