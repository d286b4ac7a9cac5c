// Package app assembles the API from configuration: it opens the stores,
// builds the services and returns a ready router.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/aether-dashboard/aether-api/internal/api"
	"github.com/aether-dashboard/aether-api/internal/api/handler"
	"github.com/aether-dashboard/aether-api/internal/core/ports"
	"github.com/aether-dashboard/aether-api/internal/core/service"
	"github.com/aether-dashboard/aether-api/internal/infrastructure/db/mongo"
	"github.com/aether-dashboard/aether-api/internal/infrastructure/db/postgres"
	"github.com/aether-dashboard/aether-api/internal/infrastructure/db/redis"
	"github.com/aether-dashboard/aether-api/internal/infrastructure/queue"
	"github.com/aether-dashboard/aether-api/internal/pkg/config"
	"github.com/aether-dashboard/aether-api/internal/pkg/token"
)

// App owns every long-lived resource of the API process.
type App struct {
	Echo *echo.Echo

	pool       *pgxpool.Pool
	rdb        *goredis.Client
	mongo      *gomongo.Client
	dispatcher *queue.Dispatcher
	cancel     context.CancelFunc
	log        zerolog.Logger
}

// New connects to Postgres (required) and to Redis and MongoDB when they are
// configured, applies migrations and wires the router.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{log: log}

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		return nil, err
	}
	a.pool = pool

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		_ = a.closeStores(ctx)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	checks := map[string]handler.Check{"postgres": pool.Ping}

	var statsCache ports.StatsCache
	if cfg.RedisEnabled() {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, PoolSize: cfg.Redis.PoolSize})
		if err != nil {
			_ = a.closeStores(ctx)
			return nil, err
		}
		a.rdb = rdb
		statsCache = redis.NewStatsCache(rdb, cfg.Redis.StatsTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("stats cache enabled")
	}

	var (
		events ports.OrderEventRepository
		audit  ports.AuditPublisher
	)
	if cfg.MongoEnabled() {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, MaxPoolSize: cfg.Mongo.MaxPoolSize})
		if err != nil {
			_ = a.closeStores(ctx)
			return nil, err
		}
		a.mongo = client

		repo := mongo.NewOrderEventRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("order event indexes not created")
		}

		workerCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		a.cancel = cancel
		a.dispatcher = queue.NewDispatcher(cfg.AuditWorkers, repo, log)
		a.dispatcher.Start(workerCtx)

		events, audit = repo, a.dispatcher
		checks["mongodb"] = func(ctx context.Context) error {
			return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("order audit trail enabled")
	}

	tokens := token.NewManager(cfg.JWTSecret, token.DefaultTTL)

	userRepo := postgres.NewUserRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	statsService := service.NewStatsService(postgres.NewStatsRepository(pool), statsCache, log)
	notifier := service.NewNotifier(notificationRepo, log)

	a.Echo = api.NewRouter(api.Config{
		Logger:      log,
		Verifier:    tokens,
		CORSOrigins: cfg.CORSOrigins,
	}, api.Handlers{
		Auth:      handler.NewAuthHandler(service.NewAuthService(userRepo, tokens, log)),
		Users:     handler.NewUserHandler(service.NewUserService(userRepo, log)),
		Customers: handler.NewCustomerHandler(service.NewCustomerService(postgres.NewCustomerRepository(pool), statsService, log)),
		Products:  handler.NewProductHandler(service.NewProductService(postgres.NewProductRepository(pool), statsService, log)),
		Orders: handler.NewOrderHandler(service.NewOrderService(
			postgres.NewOrderRepository(pool), events, notifier, audit, statsService, log,
		)),
		Notifications: handler.NewNotificationHandler(service.NewNotificationService(notificationRepo)),
		Stats:         handler.NewStatsHandler(statsService),
		Search:        handler.NewSearchHandler(service.NewSearchService(postgres.NewSearchRepository(pool))),
		Health:        handler.NewHealthHandler(checks),
	})

	return a, nil
}

// Close drains the audit queue and releases every store, in that order.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.dispatcher != nil {
		if err := a.dispatcher.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain audit queue: %w", err))
		}
	}
	if a.cancel != nil {
		a.cancel()
	}
	if err := a.closeStores(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeStores(ctx context.Context) error {
	var errs []error
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("mongo disconnect: %w", err))
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
	return errors.Join(errs...)
}
