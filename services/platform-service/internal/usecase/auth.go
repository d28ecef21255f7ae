package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/apperror"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/config"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
	"github.com/vasapolrittideah/kinext-api/shared/auth"
	"github.com/vasapolrittideah/kinext-api/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// LoginResult carries the session token issued on login.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *model.User
}

var ErrInvalidCredentials = errors.New("invalid credentials")

type authUsecase struct {
	userRepo repository.UserRepository
	jwtAuth  auth.JWTAuthenticator
	tokenCfg config.TokenConfig
}

// NewAuthUsecase creates an AuthUsecase. userRepo must operate on the admin
// database, which is authoritative for credentials.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	tokenCfg config.TokenConfig,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		jwtAuth:  jwtAuth,
		tokenCfg: tokenCfg,
	}
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	if params.Email == "" || params.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}

		return nil, apperror.Persistence("find user by email", err)
	}

	// Accounts created through a third-party provider have no password.
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	role := user.Role
	if role == "" {
		role = model.DefaultRole
	}

	accessToken, expiresAt, err := u.jwtAuth.GenerateSessionToken(
		user.ID.Hex(),
		role,
		u.tokenCfg.AccessTokenSecret,
		u.tokenCfg.AccessTokenExpiresIn,
	)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}
