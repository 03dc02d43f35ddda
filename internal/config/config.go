package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Port     string `env:"PORT" envDefault:"8080"`
	BodySize string `env:"HTTP_BODY_LIMIT" envDefault:"10M"`

	DatabaseURL string `env:"DATABASE_URL,required"`

	Redis RedisOptions
	Cache CacheOptions
	Queue QueueOptions
	JWT   JWTOptions
	Login LoginOptions

	Import  ImportOptions
	Storage StorageOptions
	Mail    MailOptions
	Log     LogOptions
}

type RedisOptions struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type CacheOptions struct {
	Driver string        `env:"CACHE_DRIVER" envDefault:"redis"` // redis, memory or none
	TTL    time.Duration `env:"CACHE_TTL" envDefault:"300s"`
}

type QueueOptions struct {
	Driver  string        `env:"QUEUE_DRIVER" envDefault:"redis"` // redis or memory
	Name    string        `env:"QUEUE_NAME" envDefault:"queue:tasks"`
	Size    int           `env:"QUEUE_MEMORY_SIZE" envDefault:"1024"`
	PollFor time.Duration `env:"QUEUE_POLL_TIMEOUT" envDefault:"2s"`
}

type JWTOptions struct {
	Secret string        `env:"JWT_SECRET,required"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"0s"`
}

type LoginOptions struct {
	RPS   float64 `env:"LOGIN_RATE_RPS" envDefault:"1"`
	Burst int     `env:"LOGIN_RATE_BURST" envDefault:"5"`
}

type ImportOptions struct {
	Workers     int `env:"IMPORT_WORKERS" envDefault:"4"`
	MaxAttempts int `env:"IMPORT_MAX_ATTEMPTS" envDefault:"3"`
}

type StorageOptions struct {
	Dir             string        `env:"STORAGE_DIR" envDefault:"./storage"`
	Retention       time.Duration `env:"UPLOAD_RETENTION" envDefault:"72h"`
	JanitorSchedule string        `env:"UPLOAD_JANITOR_SCHEDULE" envDefault:"@hourly"`
}

type MailOptions struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"MAIL_FROM" envDefault:"no-reply@collaborators.local"`
	TLS      bool   `env:"SMTP_TLS" envDefault:"true"`
}

type LogOptions struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // text or json
}

// Load reads the given dotenv files (missing ones are ignored) and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Cache.Driver {
	case "redis", "memory", "none":
	default:
		return fmt.Errorf("CACHE_DRIVER must be 'redis', 'memory' or 'none', got '%s'", c.Cache.Driver)
	}
	switch c.Queue.Driver {
	case "redis", "memory":
	default:
		return fmt.Errorf("QUEUE_DRIVER must be 'redis' or 'memory', got '%s'", c.Queue.Driver)
	}
	if c.Import.Workers <= 0 || c.Import.Workers > 10 {
		c.Import.Workers = 10
	}
	if c.Import.MaxAttempts <= 0 {
		return errors.New("IMPORT_MAX_ATTEMPTS must be positive")
	}
	if c.Cache.TTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}
	return nil
}

func (c *Config) UsesRedis() bool {
	return c.Cache.Driver == "redis" || c.Queue.Driver == "redis"
}
