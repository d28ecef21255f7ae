package interceptor

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/vasapolrittideah/kinext-api/shared/auth"
)

type contextKey struct{}

var sessionClaimsKey = contextKey{}

// NewJWTInterceptor rejects unary calls that do not carry a valid session
// token in their authorization metadata. Methods listed in exemptMethods are
// served without a token.
func NewJWTInterceptor(
	jwtAuth auth.JWTAuthenticator,
	secret string,
	exemptMethods []string,
) grpc.UnaryServerInterceptor {
	exemptMap := make(map[string]bool, len(exemptMethods))
	for _, method := range exemptMethods {
		exemptMap[method] = true
	}

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if exemptMap[info.FullMethod] {
			return handler(ctx, req)
		}

		claims, err := extractSessionClaims(ctx, jwtAuth, secret)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}

		return handler(context.WithValue(ctx, sessionClaimsKey, claims), req)
	}
}

// ClaimsFromContext returns the session claims stored by the interceptor, or
// nil for exempt methods.
func ClaimsFromContext(ctx context.Context) *auth.SessionClaims {
	claims, _ := ctx.Value(sessionClaimsKey).(*auth.SessionClaims)
	return claims
}

func extractSessionClaims(ctx context.Context, jwtAuth auth.JWTAuthenticator, secret string) (*auth.SessionClaims, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, errors.New("missing metadata")
	}

	authHeaders := md.Get("authorization")
	if len(authHeaders) == 0 {
		return nil, errors.New("missing authorization header")
	}

	scheme, token, ok := strings.Cut(authHeaders[0], " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return nil, errors.New("invalid authorization header format")
	}

	return jwtAuth.ValidateSessionToken(token, secret)
}
