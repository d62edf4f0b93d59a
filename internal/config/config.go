package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Worker   WorkerConfig
	S3       S3Config
	Draft    DraftConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
	// MaxConcurrentRequests bounds in-flight repository operations, keeping
	// burst traffic from fanning out into unbounded store calls.
	MaxConcurrentRequests int64 `envconfig:"API_MAX_CONCURRENT_REQUESTS" default:"32"`
}

type WorkerConfig struct {
	MaxRetries      int           `envconfig:"WORKER_MAX_RETRIES" default:"3"`
	ShutdownTimeout time.Duration `envconfig:"WORKER_SHUTDOWN_TIMEOUT" default:"30s"`
}

type S3Config struct {
	Endpoint       string `envconfig:"S3_ENDPOINT" default:"localhost:9000"`
	PublicEndpoint string `envconfig:"S3_PUBLIC_ENDPOINT" default:""`
	AccessKey      string `envconfig:"S3_ACCESS_KEY" default:"minioadmin"`
	SecretKey      string `envconfig:"S3_SECRET_KEY" default:"minioadmin"`
	Bucket         string `envconfig:"S3_BUCKET" default:"wasfeines"`
	UseSSL         bool   `envconfig:"S3_USE_SSL" default:"false"`
	// BasePath is the key prefix under which all recipe objects live.
	BasePath string `envconfig:"S3_BASE_PATH" default:"recipes"`
}

type DraftConfig struct {
	// Folder is the reserved folder name for draft storage under BasePath.
	Folder string `envconfig:"DRAFT_FOLDER" default:"drafts"`
	// MaxSlots is the number of media upload slots per user.
	MaxSlots int `envconfig:"DRAFT_MAX_SLOTS" default:"5"`
}

type RedisConfig struct {
	// Addr is empty when the deployment runs without a listing cache.
	Addr     string        `envconfig:"REDIS_ADDR" default:""`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"REDIS_CACHE_TTL" default:"5m"`
}

type RabbitMQConfig struct {
	Host     string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	Port     int    `envconfig:"RABBITMQ_PORT" default:"5672"`
	User     string `envconfig:"RABBITMQ_USER" default:"wasfeines"`
	Password string `envconfig:"RABBITMQ_PASSWORD" default:"wasfeines"`
	VHost    string `envconfig:"RABBITMQ_VHOST" default:"/"`
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d%s",
		c.User, c.Password, c.Host, c.Port, c.VHost,
	)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
