package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535
)

// Seed sources
const (
	SeedSourceFile     = "file"
	SeedSourcePostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Seed     SeedConfig     `yaml:"seed"`
	Database DatabaseConfig `yaml:"database"`
	Latency  LatencyConfig  `yaml:"latency"`
	Upload   UploadConfig   `yaml:"upload"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Worker   WorkerConfig   `yaml:"worker"`
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	Output       string `yaml:"output"`
	EnableCaller bool   `yaml:"enable_caller"`
}

// SeedConfig selects where the in-memory collections are loaded from
type SeedConfig struct {
	Source string `yaml:"source"`
	Path   string `yaml:"path"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
// Only used when the seed source is postgres.
type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// LatencyConfig holds the simulated delay of each service operation.
// Pointers distinguish an explicit zero from an unset value.
type LatencyConfig struct {
	GetAll  *time.Duration `yaml:"get_all"`
	GetByID *time.Duration `yaml:"get_by_id"`
	Create  *time.Duration `yaml:"create"`
	Update  *time.Duration `yaml:"update"`
	Delete  *time.Duration `yaml:"delete"`
}

// UploadConfig controls the simulated resume upload progress
type UploadConfig struct {
	ProgressStep int           `yaml:"progress_step"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

// RabbitMQConfig holds RabbitMQ connection and exchange/queue configuration
type RabbitMQConfig struct {
	Enabled    bool             `yaml:"enabled"`
	Host       string           `yaml:"host"`
	Port       int              `yaml:"port"`
	User       string           `yaml:"user"`
	Password   string           `yaml:"password"`
	VHost      string           `yaml:"vhost"`
	Exchange   ExchangeConfig   `yaml:"exchange"`
	Queue      QueueConfig      `yaml:"queue"`
	RoutingKey string           `yaml:"routing_key"`
	Connection ConnectionConfig `yaml:"connection"`
	Publish    PublishConfig    `yaml:"publish"`
}

// ExchangeConfig holds RabbitMQ exchange configuration
type ExchangeConfig struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	Durable    bool   `yaml:"durable"`
	AutoDelete bool   `yaml:"auto_delete"`
}

// QueueConfig holds RabbitMQ queue configuration
type QueueConfig struct {
	Name       string `yaml:"name"`
	Durable    bool   `yaml:"durable"`
	AutoDelete bool   `yaml:"auto_delete"`
	Exclusive  bool   `yaml:"exclusive"`
}

// ConnectionConfig holds RabbitMQ connection settings
type ConnectionConfig struct {
	RetryAttempts     int           `yaml:"retry_attempts"`
	RetryInterval     time.Duration `yaml:"retry_interval"`
	Heartbeat         time.Duration `yaml:"heartbeat"`
	ConnectionTimeout time.Duration `yaml:"connection_timeout"`
}

// PublishConfig holds RabbitMQ publish retry settings
type PublishConfig struct {
	RetryAttempts     int           `yaml:"retry_attempts"`
	RetryInterval     time.Duration `yaml:"retry_interval"`
	BackoffMultiplier float64       `yaml:"backoff_multiplier"`
}

// WorkerConfig holds the alert worker configuration
type WorkerConfig struct {
	Concurrency     int           `yaml:"concurrency"`
	PrefetchCount   int           `yaml:"prefetch_count"`
	JobTimeout      time.Duration `yaml:"job_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Load reads and parses the configuration file and fills in defaults
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.ApplyDefaults()
	return &config, nil
}

// ApplyDefaults fills every unset value that has a sensible default
func (c *Config) ApplyDefaults() {
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}

	if c.Seed.Source == "" {
		c.Seed.Source = SeedSourceFile
	}
	if c.Seed.Source == SeedSourceFile && c.Seed.Path == "" {
		c.Seed.Path = "configs/seed/seed.json"
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	setDuration(&c.Latency.GetAll, 300*time.Millisecond)
	setDuration(&c.Latency.GetByID, 200*time.Millisecond)
	setDuration(&c.Latency.Create, 250*time.Millisecond)
	setDuration(&c.Latency.Update, 250*time.Millisecond)
	setDuration(&c.Latency.Delete, 200*time.Millisecond)

	if c.Upload.ProgressStep <= 0 {
		c.Upload.ProgressStep = 10
	}
	if c.Upload.TickInterval <= 0 {
		c.Upload.TickInterval = 200 * time.Millisecond
	}

	if c.RabbitMQ.Exchange.Type == "" {
		c.RabbitMQ.Exchange.Type = "topic"
	}
	if c.RabbitMQ.Connection.RetryAttempts <= 0 {
		c.RabbitMQ.Connection.RetryAttempts = 1
	}

	if c.Worker.PrefetchCount <= 0 {
		c.Worker.PrefetchCount = c.Worker.Concurrency
	}
	if c.Worker.ShutdownTimeout <= 0 {
		c.Worker.ShutdownTimeout = c.Server.ShutdownTimeout
	}
}

func setDuration(dst **time.Duration, def time.Duration) {
	if *dst == nil {
		*dst = &def
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid server port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	switch c.Seed.Source {
	case SeedSourceFile:
		if c.Seed.Path == "" {
			return fmt.Errorf("seed path is required")
		}
	case SeedSourcePostgres:
		if err := c.validateDatabase(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid seed source: %q (must be %q or %q)", c.Seed.Source, SeedSourceFile, SeedSourcePostgres)
	}

	for name, d := range map[string]*time.Duration{
		"get_all":   c.Latency.GetAll,
		"get_by_id": c.Latency.GetByID,
		"create":    c.Latency.Create,
		"update":    c.Latency.Update,
		"delete":    c.Latency.Delete,
	} {
		if d != nil && *d < 0 {
			return fmt.Errorf("latency %s must not be negative", name)
		}
	}

	if c.Upload.ProgressStep > 100 {
		return fmt.Errorf("upload progress_step must not exceed 100")
	}

	if c.RabbitMQ.Enabled {
		if err := c.validateRabbitMQ(); err != nil {
			return err
		}
		if err := c.validateWorker(); err != nil {
			return err
		}
	}

	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < MinPort || c.Database.Port > MaxPort {
		return fmt.Errorf("invalid database port: %d (must be between %d and %d)", c.Database.Port, MinPort, MaxPort)
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	return nil
}

func (c *Config) validateRabbitMQ() error {
	if c.RabbitMQ.Host == "" {
		return fmt.Errorf("rabbitmq host is required")
	}

	if c.RabbitMQ.Port < MinPort || c.RabbitMQ.Port > MaxPort {
		return fmt.Errorf("invalid rabbitmq port: %d (must be between %d and %d)", c.RabbitMQ.Port, MinPort, MaxPort)
	}

	if c.RabbitMQ.Exchange.Name == "" {
		return fmt.Errorf("rabbitmq exchange name is required")
	}

	if c.RabbitMQ.Queue.Name == "" {
		return fmt.Errorf("rabbitmq queue name is required")
	}

	return nil
}

func (c *Config) validateWorker() error {
	if c.Worker.Concurrency <= 0 {
		return fmt.Errorf("worker concurrency must be greater than 0")
	}

	if c.Worker.JobTimeout <= 0 {
		return fmt.Errorf("worker job_timeout must be greater than 0")
	}

	return nil
}
