package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/tenancy"
	"github.com/vasapolrittideah/kinext-api/shared/auth"
)

const requestIDHeader = "X-Request-ID"

type contextKey int

const (
	requestIDKey contextKey = iota
	databaseKey
)

// DatabaseResolver selects the database of a request.
type DatabaseResolver interface {
	Resolve(ctx context.Context, session *tenancy.Session) (*mongo.Database, error)
}

// RequestID tags every request with an id, reusing the caller's X-Request-ID
// when present.
func RequestID(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	}
	return http.HandlerFunc(fn)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// RequestLogger logs one line per request with its status and duration.
func RequestLogger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func(start time.Time) {
				event := logger.Info()
				if ww.Status() >= http.StatusInternalServerError {
					event = logger.Error()
				}

				event.
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("took", time.Since(start)).
					Str("request_id", requestIDFrom(r.Context())).
					Msg("handled request")
			}(time.Now())

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

// HTTPMetrics records request counts and latencies by route pattern.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kinext",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "kinext",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latencies by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(m.requests, m.duration)

	return m
}

// Middleware must be installed on the router so that the route pattern is
// known once the request has been served.
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func(start time.Time) {
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			m.requests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		}(time.Now())

		next.ServeHTTP(ww, r)
	}
	return http.HandlerFunc(fn)
}

// Session turns a bearer token into a tenancy.Session on the request context.
// Requests without an Authorization header stay anonymous; a malformed or
// invalid token is rejected.
func (h *Handler) Session(jwtAuth auth.JWTAuthenticator, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				h.respondError(w, r, errInvalidToken)
				return
			}

			claims, err := jwtAuth.ValidateSessionToken(token, secret)
			if err != nil {
				h.logger.Debug().Err(err).Msg("rejected session token")
				h.respondError(w, r, errInvalidToken)
				return
			}

			session := &tenancy.Session{UserID: claims.Subject, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(tenancy.NewContext(r.Context(), session)))
		}
		return http.HandlerFunc(fn)
	}
}

// RequireSession rejects anonymous requests.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if tenancy.FromContext(r.Context()) == nil {
			h.respondError(w, r, errUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}

// TenantDatabase resolves the database of the request's session and stores
// it on the request context.
func (h *Handler) TenantDatabase(resolver DatabaseResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			db, err := resolver.Resolve(r.Context(), tenancy.FromContext(r.Context()))
			if err != nil {
				h.respondError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), databaseKey, db)))
		}
		return http.HandlerFunc(fn)
	}
}

// databaseFrom returns the database stored by TenantDatabase.
func databaseFrom(ctx context.Context) *mongo.Database {
	db, _ := ctx.Value(databaseKey).(*mongo.Database)
	return db
}
