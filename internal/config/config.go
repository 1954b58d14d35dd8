package config

import (
	"fmt"

	"github.com/staynest/service-reservation/internal/common/config"
)

// ServiceConfig holds all runtime configuration for the reservation service.
type ServiceConfig struct {
	Port     string
	AppEnv   string
	DBConfig config.DatabaseConfig
	JWT      config.JWTConfig
	Kafka    config.KafkaConfig
}

// Load reads configuration from RESERVATION_-prefixed environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("RESERVATION")
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	v.SetDefault("DB_NAME", "staynest_reservations")

	return &ServiceConfig{
		Port:     config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:   config.GetAppEnv(v),
		DBConfig: config.LoadDatabaseConfig(v, "DB_NAME"),
		JWT:      config.LoadJWTConfig(v),
		Kafka:    config.LoadKafkaConfig(v),
	}, nil
}
