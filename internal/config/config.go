package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `env:",prefix=SERVER_"`
	Database DatabaseConfig `env:",prefix=DB_"`
	RabbitMQ RabbitMQConfig `env:",prefix=RABBITMQ_"`
	App      AppConfig      `env:",prefix=APP_"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port         string `env:"PORT,default=8080"`
	Host         string `env:"HOST,default=0.0.0.0"`
	ReadTimeout  int    `env:"READ_TIMEOUT,default=30"`  // seconds
	WriteTimeout int    `env:"WRITE_TIMEOUT,default=30"` // seconds
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=postgres"`
	Password string `env:"PASSWORD,default=postgres"`
	Name     string `env:"NAME,default=crm_admin"`
	SSLMode  string `env:"SSL_MODE,default=disable"`
	MaxConns int    `env:"MAX_CONNS,default=100"`
	MinConns int    `env:"MIN_CONNS,default=10"`
}

// RabbitMQConfig holds the optional call-dispatch queue configuration.
// The service runs without a broker; payloads are then only logged.
type RabbitMQConfig struct {
	Enabled bool   `env:"ENABLED,default=false"`
	Host    string `env:"HOST,default=localhost"`
	Port    string `env:"PORT,default=5672"`
	User    string `env:"USER,default=guest"`
	Pass    string `env:"PASS,default=guest"`
	Queue   string `env:"QUEUE,default=call_dispatch"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Environment  string  `env:"ENVIRONMENT,default=development"`
	LogLevel     string  `env:"LOG_LEVEL,default=info"`
	TriggerRPS   float64 `env:"TRIGGER_RPS,default=10"`
	TriggerBurst int     `env:"TRIGGER_BURST,default=20"`
}

// DSN builds the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL builds the AMQP connection string
func (c *RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.User, c.Pass, c.Host, c.Port)
}

// Load reads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
