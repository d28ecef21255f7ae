package payload

import (
	"time"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/model"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserInfo  `json:"user"`
}

// RegisterRequest is validated by the registration usecase so that the HTTP
// endpoint and the CLI report the same field errors.
type RegisterRequest struct {
	Name                   string  `json:"name"`
	Email                  string  `json:"email"`
	Password               string  `json:"password"`
	PhoneNumber            *string `json:"phone_number,omitempty"`
	Image                  *string `json:"image,omitempty"`
	TermsAccepted          bool    `json:"terms_accepted"`
	NewsletterSubscription *bool   `json:"newsletter_subscription,omitempty"`
}

type RegisterResponse struct {
	Message string   `json:"message"`
	User    UserInfo `json:"user"`
}

type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func NewUserInfo(user *model.User) UserInfo {
	return UserInfo{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}
