package discovery

import (
	"fmt"
	"net"
	"strconv"

	"github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// ConsulConfig holds the settings used to register a service with Consul.
type ConsulConfig struct {
	Addr        string `env:"CONSUL_ADDR"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"platform-service"`
	ServiceHost string `env:"SERVICE_HOST" envDefault:"localhost"`
	ServicePort int    `env:"SERVICE_PORT" envDefault:"9090"`
}

// Enabled reports whether a Consul agent address was configured.
func (c ConsulConfig) Enabled() bool {
	return c.Addr != ""
}

// ServiceID is the id the instance registers under.
func (c ConsulConfig) ServiceID() string {
	return fmt.Sprintf("%s-%s-%d", c.ServiceName, c.ServiceHost, c.ServicePort)
}

// Registration builds the agent registration, checked over the gRPC health
// service exposed on ServiceHost:ServicePort.
func (c ConsulConfig) Registration() *api.AgentServiceRegistration {
	return &api.AgentServiceRegistration{
		ID:      c.ServiceID(),
		Name:    c.ServiceName,
		Address: c.ServiceHost,
		Port:    c.ServicePort,
		Check: &api.AgentServiceCheck{
			GRPC:                           net.JoinHostPort(c.ServiceHost, strconv.Itoa(c.ServicePort)),
			Interval:                       "10s",
			Timeout:                        "3s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}
}

// Register registers the service with the Consul agent and returns a function
// that deregisters it.
func Register(cfg ConsulConfig, logger *zerolog.Logger) (func() error, error) {
	consulCfg := api.DefaultConfig()
	consulCfg.Address = cfg.Addr

	client, err := api.NewClient(consulCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	if err := client.Agent().ServiceRegister(cfg.Registration()); err != nil {
		return nil, fmt.Errorf("failed to register service: %w", err)
	}

	logger.Info().
		Str("service_id", cfg.ServiceID()).
		Str("consul_addr", cfg.Addr).
		Msg("registered service with consul")

	return func() error {
		return client.Agent().ServiceDeregister(cfg.ServiceID())
	}, nil
}
