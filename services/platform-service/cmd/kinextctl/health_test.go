package main

import (
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/vasapolrittideah/kinext-api/shared/utilities"
)

func TestHealthTarget(t *testing.T) {
	require.Equal(t, "localhost:9090", healthTarget("", "platform-service", "localhost:9090"))
	require.Equal(t,
		"consul://127.0.0.1:8500/platform-service?healthy=true",
		healthTarget("127.0.0.1:8500", "platform-service", "localhost:9090"),
	)
}

func TestHealth(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := grpc.NewServer()
	healthServer := utilities.RegisterHealthServer(server)
	healthServer.SetServingStatus("platform-service", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("draining", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	out, err := execute(t, nil, "health", "--addr", lis.Addr().String())
	require.NoError(t, err)
	require.Equal(t, "SERVING", strings.TrimSpace(out))

	out, err = execute(t, nil, "health", "--addr", lis.Addr().String(), "--service", "draining")
	require.Error(t, err)
	require.Contains(t, out, "NOT_SERVING")
}
