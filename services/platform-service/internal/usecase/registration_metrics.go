package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/apperror"
)

// RegistrationMetrics records rate, errors and duration of registrations.
type RegistrationMetrics struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
	next     RegistrationUsecase
}

var _ RegistrationUsecase = (*RegistrationMetrics)(nil)

// NewRegistrationMetrics returns a metrics middleware for a RegistrationUsecase.
func NewRegistrationMetrics(reg prometheus.Registerer, next RegistrationUsecase) *RegistrationMetrics {
	m := &RegistrationMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kinext",
			Subsystem: "registration",
			Name:      "requests_total",
			Help:      "Registrations by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kinext",
			Subsystem: "registration",
			Name:      "duration_seconds",
			Help:      "Time taken to provision an account.",
			Buckets:   prometheus.DefBuckets,
		}),
		next: next,
	}

	reg.MustRegister(m.requests, m.duration)

	return m
}

func (m *RegistrationMetrics) Register(ctx context.Context, params RegisterParams) (*RegisterResult, error) {
	start := time.Now()
	res, err := m.next.Register(ctx, params)

	m.duration.Observe(time.Since(start).Seconds())
	m.requests.WithLabelValues(registrationOutcome(err)).Inc()

	return res, err
}

func registrationOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, apperror.ErrValidation):
		return "validation"
	case errors.Is(err, apperror.ErrConflict):
		return "conflict"
	case errors.Is(err, apperror.ErrPersistence):
		return "persistence"
	default:
		return "error"
	}
}
