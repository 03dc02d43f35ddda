package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/mohammadpnp/collaborators-api/internal/config"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/cache"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/db"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/file"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/mail"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/queue"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/repository"
	httpecho "github.com/mohammadpnp/collaborators-api/internal/interfaces/http/echo"
)

// Resources holds the live connections behind a Stores value.
type Resources struct {
	DB    *gorm.DB
	Pool  *pgxpool.Pool
	Redis *redis.Client
}

func (r *Resources) Close() {
	if r.Pool != nil {
		r.Pool.Close()
	}
	if r.Redis != nil {
		_ = r.Redis.Close()
	}
	if r.DB != nil {
		if sqlDB, err := r.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func OpenResources(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Resources, error) {
	res := &Resources{}

	gdb, err := db.Open(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}
	res.DB = gdb

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		res.Close()
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	res.Pool = pool

	if cfg.UsesRedis() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			res.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		res.Redis = rdb
	}

	return res, nil
}

func NewStores(cfg *config.Config, res *Resources, logger *logrus.Logger) (Stores, error) {
	stores := Stores{
		Collaborators: repository.NewCollaboratorRepository(res.DB),
		Imports:       repository.NewCollaboratorImportRepository(res.Pool),
		Users:         repository.NewUserRepository(res.DB),
		Uploads:       file.NewLocalStore(cfg.Storage.Dir),
		Source:        file.NewLocalSource(cfg.Storage.Dir),
	}

	switch cfg.Cache.Driver {
	case "redis":
		stores.Cache = cache.NewRedis(res.Redis)
	case "memory":
		stores.Cache = cache.NewMemory()
	default:
		stores.Cache = cache.Noop{}
	}

	switch cfg.Queue.Driver {
	case "redis":
		stores.Queue = queue.NewRedis(res.Redis, cfg.Queue.Name)
	default:
		stores.Queue = queue.NewMemory(cfg.Queue.Size)
	}

	if cfg.Mail.Host == "" {
		stores.Mail = mail.NewLogSender(logger)
	} else {
		sender, err := mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
			TLS:      cfg.Mail.TLS,
		})
		if err != nil {
			return Stores{}, err
		}
		stores.Mail = sender
	}

	return stores, nil
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		JWTSecret:   cfg.JWT.Secret,
		JWTTTL:      cfg.JWT.TTL,
		CacheTTL:    cfg.Cache.TTL,
		Workers:     cfg.Import.Workers,
		PollTimeout: cfg.Queue.PollFor,
		MaxAttempts: cfg.Import.MaxAttempts,
		Server: ServerConfig{
			BodyLimit: cfg.BodySize,
			Login: httpecho.RateLimitConfig{
				RequestsPerSecond: cfg.Login.RPS,
				Burst:             cfg.Login.Burst,
			},
		},
	}
}
