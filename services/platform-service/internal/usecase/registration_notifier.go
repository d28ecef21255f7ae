package usecase

import (
	"context"
	"fmt"
	"html"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/kinext-api/shared/mailer"
)

// EmailSender delivers a single email.
type EmailSender interface {
	Send(email mailer.Email) error
}

// RegistrationNotifier sends a welcome email after a successful registration.
// Delivery failures are logged and never fail the registration.
type RegistrationNotifier struct {
	sender EmailSender
	logger *zerolog.Logger
	next   RegistrationUsecase
}

var _ RegistrationUsecase = (*RegistrationNotifier)(nil)

func NewRegistrationNotifier(
	sender EmailSender,
	logger *zerolog.Logger,
	next RegistrationUsecase,
) *RegistrationNotifier {
	return &RegistrationNotifier{sender: sender, logger: logger, next: next}
}

func (n *RegistrationNotifier) Register(ctx context.Context, params RegisterParams) (*RegisterResult, error) {
	res, err := n.next.Register(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := n.sender.Send(welcomeEmail(params)); err != nil {
		n.logger.Error().Err(err).Str("user_id", res.UserID).Msg("failed to send welcome email")
	}

	return res, nil
}

func welcomeEmail(params RegisterParams) mailer.Email {
	return mailer.Email{
		To:      []string{params.Email},
		Subject: "Welcome to Kinext",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour Kinext workspace is ready. Sign in with %s to get started.\n",
			params.Name,
			params.Email,
		),
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Your Kinext workspace is ready. Sign in with <b>%s</b> to get started.</p>",
			html.EscapeString(params.Name),
			html.EscapeString(params.Email),
		),
	}
}
