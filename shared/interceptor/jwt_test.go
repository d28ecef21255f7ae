package interceptor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/vasapolrittideah/kinext-api/shared/auth"
)

const (
	secret       = "test-secret"
	exemptMethod = "/grpc.health.v1.Health/Check"
	guardedCall  = "/kinext.platform.v1.Tenants/Resolve"
)

func call(t *testing.T, ctx context.Context, method string) (*auth.SessionClaims, error) {
	t.Helper()

	jwtAuth := auth.NewJWTAuthenticator("kinext-api", "kinext")
	intercept := NewJWTInterceptor(jwtAuth, secret, []string{exemptMethod})

	var seen *auth.SessionClaims
	_, err := intercept(ctx, nil, &grpc.UnaryServerInfo{FullMethod: method}, func(ctx context.Context, _ any) (any, error) {
		seen = ClaimsFromContext(ctx)
		return nil, nil
	})
	return seen, err
}

func withToken(t *testing.T, header string) context.Context {
	t.Helper()
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", header))
}

func TestExemptMethodSkipsAuthentication(t *testing.T) {
	claims, err := call(t, context.Background(), exemptMethod)
	require.NoError(t, err)
	require.Nil(t, claims)
}

func TestValidTokenStoresClaims(t *testing.T) {
	jwtAuth := auth.NewJWTAuthenticator("kinext-api", "kinext")
	token, _, err := jwtAuth.GenerateSessionToken("507f1f77bcf86cd799439011", "user", secret, time.Minute)
	require.NoError(t, err)

	claims, err := call(t, withToken(t, "Bearer "+token), guardedCall)
	require.NoError(t, err)
	require.Equal(t, "507f1f77bcf86cd799439011", claims.Subject)
	require.Equal(t, "user", claims.Role)
}

func TestRejectedCalls(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{name: "no metadata", ctx: context.Background()},
		{name: "no header", ctx: metadata.NewIncomingContext(context.Background(), metadata.MD{})},
		{name: "wrong scheme", ctx: withToken(t, "Basic abc")},
		{name: "bad token", ctx: withToken(t, "Bearer not-a-token")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := call(t, tt.ctx, guardedCall)
			require.Equal(t, codes.Unauthenticated, status.Code(err))
		})
	}
}
