package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/apperror"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/tenancy"
	"github.com/vasapolrittideah/kinext-api/shared/security"
	"github.com/vasapolrittideah/kinext-api/shared/validation"
)

// RegistrationUsecase provisions new accounts.
type RegistrationUsecase interface {
	// Register creates the user in the admin database, records its tenant
	// database in the registry and copies the user into that database.
	// Failures are apperror.ValidationError, apperror.ConflictError or
	// apperror.PersistenceError.
	Register(ctx context.Context, params RegisterParams) (*RegisterResult, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Name                   string  `json:"name"                    validate:"required,max=100"`
	Email                  string  `json:"email"                   validate:"required,email"`
	Password               string  `json:"password"                validate:"required,min=8,max=72"`
	PhoneNumber            *string `json:"phone_number"            validate:"omitempty,e164"`
	Image                  *string `json:"image"                   validate:"omitempty,url"`
	TermsAccepted          bool    `json:"terms_accepted"          validate:"required"`
	NewsletterSubscription *bool   `json:"newsletter_subscription"`
}

// RegisterResult is the outcome of a successful registration.
type RegisterResult struct {
	User   *model.User
	UserID string
	DBName string
}

type registrationUsecase struct {
	provisioner
	users     repository.UserRepository
	validator *validation.Validator
}

// NewRegistrationUsecase creates a RegistrationUsecase. users and instances
// operate on the admin database; tenant databases are opened from databases
// by name.
func NewRegistrationUsecase(
	databases tenancy.DatabaseProvider,
	users repository.UserRepository,
	instances repository.InstanceRepository,
	tenants repository.TenantStore,
	validator *validation.Validator,
	dbPrefix string,
	logger *zerolog.Logger,
) RegistrationUsecase {
	return &registrationUsecase{
		provisioner: provisioner{
			databases: databases,
			instances: instances,
			tenants:   tenants,
			dbPrefix:  dbPrefix,
			logger:    logger,
		},
		users:     users,
		validator: validator,
	}
}

func (u *registrationUsecase) Register(ctx context.Context, params RegisterParams) (*RegisterResult, error) {
	fields, err := u.validator.Struct(params)
	if err != nil {
		return nil, err
	}
	if fields != nil {
		return nil, &apperror.ValidationError{Fields: fields}
	}

	if err := u.checkAvailability(ctx, params); err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := u.users.CreateUser(ctx, &model.User{
		Name:                   params.Name,
		Email:                  params.Email,
		PasswordHash:           passwordHash,
		Image:                  params.Image,
		Role:                   model.DefaultRole,
		PhoneNumber:            params.PhoneNumber,
		TermsAccepted:          params.TermsAccepted,
		NewsletterSubscription: params.NewsletterSubscription,
	})
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return nil, apperror.Conflict("email")
	case errors.Is(err, repository.ErrDuplicatePhone):
		return nil, apperror.Conflict("phone_number")
	case err != nil:
		return nil, apperror.Persistence("insert admin user", err)
	}

	userID := user.ID.Hex()

	instance, err := u.createInstance(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := u.provisionTenant(ctx, user, instance.DBName); err != nil {
		return nil, err
	}

	return &RegisterResult{
		User:   user,
		UserID: userID,
		DBName: instance.DBName,
	}, nil
}

func (u *registrationUsecase) checkAvailability(ctx context.Context, params RegisterParams) error {
	_, err := u.users.GetUserByEmail(ctx, params.Email)
	switch {
	case err == nil:
		return apperror.Conflict("email")
	case !errors.Is(err, mongo.ErrNoDocuments):
		return apperror.Persistence("find user by email", err)
	}

	if params.PhoneNumber == nil {
		return nil
	}

	_, err = u.users.GetUserByPhone(ctx, *params.PhoneNumber)
	switch {
	case err == nil:
		return apperror.Conflict("phone_number")
	case !errors.Is(err, mongo.ErrNoDocuments):
		return apperror.Persistence("find user by phone number", err)
	}

	return nil
}
