package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/talentbridge/marketplace/docs"
	"github.com/talentbridge/marketplace/internal/api"
	"github.com/talentbridge/marketplace/internal/api/handler"
	"github.com/talentbridge/marketplace/internal/api/middleware"
	"github.com/talentbridge/marketplace/internal/core/ports"
	"github.com/talentbridge/marketplace/internal/core/service"
	"github.com/talentbridge/marketplace/internal/infrastructure/config"
	"github.com/talentbridge/marketplace/internal/infrastructure/db/mongo"
	"github.com/talentbridge/marketplace/internal/infrastructure/db/postgres"
	"github.com/talentbridge/marketplace/internal/infrastructure/db/redis"
	"github.com/talentbridge/marketplace/internal/infrastructure/queue"
	"github.com/talentbridge/marketplace/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// @title                       Marketplace API
// @version                     1.0
// @description                 Job marketplace backend: accounts, job postings and the application lifecycle.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		stderrLog := zerolog.New(os.Stderr)
		stderrLog.Warn().Err(err).Msg("could not load .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		stderrLog := zerolog.New(os.Stderr)
		stderrLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "marketplace-api",
	})

	codec, err := service.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token signing is not configured")
	}

	// --- Postgres (source of truth) ---
	db, err := postgres.Connect(ctx, postgres.Config{
		DSN:             cfg.Postgres.URL,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	if cfg.Postgres.AutoMigrate {
		if err := postgres.RunMigrations(cfg.Postgres.URL, log); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	health := map[string]handler.PingFunc{"postgres": db.PingContext}

	// --- Mongo (optional audit event store) ---
	var events ports.ApplicationEventRepository
	if cfg.Mongo.URI != "" {
		store, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		defer func() { _ = store.Close(context.Background()) }()

		repo := mongo.NewEventRepository(store.DB)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create audit indexes")
		}
		events = repo
		health["mongodb"] = store.Ping
	} else {
		log.Warn().Msg("MONGO_URI not set, application history is log only")
	}

	// --- Redis (optional shared limiter and audit dedup) ---
	var (
		limiter middleware.Limiter = middleware.NewLocalLimiter()
		dedup   queue.Deduper
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer rdb.Close()

		limiter = redis.NewLimiter(rdb, log)
		dedup = redis.NewDedupChecker(rdb)
		health["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		log.Warn().Msg("REDIS_ADDR not set, using in-process rate limiter")
	}

	// --- Audit trail ---
	recorder := service.NewAuditService(events, logger.Component("audit"))
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, recorder, dedup, logger.Component("dispatcher"))
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()
	dispatcher.Start(workerCtx)

	// --- Repositories and services ---
	userRepo := postgres.NewUserRepository(db)
	jobRepo := postgres.NewJobRepository(db)

	e := api.NewRouter(api.Deps{
		Log:          log,
		Resolver:     service.NewPrincipalResolver(userRepo, codec, log),
		Auth:         service.NewAuthService(userRepo, codec, cfg.Auth.BcryptCost, log),
		Users:        service.NewUserService(userRepo, log),
		Jobs:         service.NewJobService(jobRepo, log),
		Applications: service.NewApplicationService(postgres.NewApplicationRepository(db), jobRepo, events, dispatcher, cfg.PhoneRegion, log),
		Bookings:     service.NewBookingService(postgres.NewBookingRepository(db), userRepo, jobRepo, log),
		Profiles:     service.NewProfileService(postgres.NewProfileRepository(db), log),
		Likes:        service.NewLikeService(postgres.NewLikeRepository(db), jobRepo, log),
		Testimonials: service.NewTestimonialService(postgres.NewTestimonialRepository(db), log),
		Limiter:      limiter,
		RateLimit:    cfg.RateLimit.Limit,
		RateWindow:   cfg.RateLimit.Window,
		HealthChecks: health,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("audit queue not drained before deadline")
	}
	log.Info().Msg("server stopped")
}
