package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"dev"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPPort int    `envconfig:"HTTP_PORT" default:"8080"`

	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"storefront"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"storefront"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"storefront_db"`

	// Empty AMQP_URL disables order event publishing.
	AMQPURL          string `envconfig:"AMQP_URL" default:""`
	OrderEventsQueue string `envconfig:"ORDER_EVENTS_QUEUE" default:"order-events"`

	CheckoutMaxConcurrent int `envconfig:"CHECKOUT_MAX_CONCURRENT" default:"10"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
