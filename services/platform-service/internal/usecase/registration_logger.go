package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RegistrationLogger logs every registration with its duration.
type RegistrationLogger struct {
	logger *zerolog.Logger
	next   RegistrationUsecase
}

var _ RegistrationUsecase = (*RegistrationLogger)(nil)

// NewRegistrationLogger returns a logging middleware for a RegistrationUsecase.
func NewRegistrationLogger(logger *zerolog.Logger, next RegistrationUsecase) *RegistrationLogger {
	return &RegistrationLogger{logger: logger, next: next}
}

func (l *RegistrationLogger) Register(ctx context.Context, params RegisterParams) (res *RegisterResult, err error) {
	defer func(start time.Time) {
		took := time.Since(start)
		if err != nil {
			l.logger.Debug().
				Err(err).
				Str("email", params.Email).
				Dur("took", took).
				Msg("failed to register user")
			return
		}
		l.logger.Info().
			Str("user_id", res.UserID).
			Str("db_name", res.DBName).
			Dur("took", took).
			Msg("registered user")
	}(time.Now())

	return l.next.Register(ctx, params)
}
