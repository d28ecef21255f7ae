package main

import (
	"context"
	"fmt"
	"time"

	_ "github.com/mbobakov/grpc-consul-resolver"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// healthTarget builds the target of a service discovered through Consul, or
// of a fixed address when consulAddr is empty.
func healthTarget(consulAddr, service, addr string) string {
	if consulAddr == "" {
		return addr
	}
	return fmt.Sprintf("consul://%s/%s?healthy=true", consulAddr, service)
}

func newHealthCommand() *cobra.Command {
	var (
		consulAddr string
		service    string
		addr       string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the gRPC health of a running platform service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := grpc.NewClient(
				healthTarget(consulAddr, service, addr),
				grpc.WithTransportCredentials(insecure.NewCredentials()),
				grpc.WithDefaultServiceConfig(`{"loadBalancingPolicy":"round_robin"}`),
			)
			if err != nil {
				return fmt.Errorf("failed to create gRPC client: %w", err)
			}
			defer conn.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			res, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.GetStatus().String())
			if res.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
				return fmt.Errorf("%s is %s", service, res.GetStatus())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&consulAddr, "consul", "", "consul agent address used to discover the service")
	cmd.Flags().StringVar(&service, "service", "platform-service", "service name")
	cmd.Flags().StringVar(&addr, "addr", "localhost:9090", "gRPC health address when consul is not used")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "check timeout")

	return cmd
}
