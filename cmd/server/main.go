// Command server runs the job portal API.
//
//	@title						Job Portal API
//	@version					1.0
//	@description				Sessions, profiles, companies, vendors, job seekers, jobs and uploads for the job portal.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
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
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/talentbridge/job-portal/internal/api"
	"github.com/talentbridge/job-portal/internal/core/ports"
	"github.com/talentbridge/job-portal/internal/core/service"
	"github.com/talentbridge/job-portal/internal/infrastructure/config"
	mongostore "github.com/talentbridge/job-portal/internal/infrastructure/db/mongo"
	redisstore "github.com/talentbridge/job-portal/internal/infrastructure/db/redis"
	"github.com/talentbridge/job-portal/internal/infrastructure/queue"
	"github.com/talentbridge/job-portal/internal/infrastructure/scheduler"
	"github.com/talentbridge/job-portal/internal/infrastructure/storage"
	"github.com/talentbridge/job-portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	// A missing .env is fine; the environment alone is enough.
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "job-portal",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── MongoDB ──────────────────────────────────────────────────────────────
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	store := mongostore.NewStore(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}
	if err := mongostore.MigrateLegacyRoles(ctx, db, logger.Component("migrations")); err != nil {
		log.Fatal().Err(err).Msg("legacy role migration failed")
	}

	// ── Redis ────────────────────────────────────────────────────────────────
	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// ── Object storage ───────────────────────────────────────────────────────
	objects, err := newObjectStorage(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("object storage setup failed")
	}

	// ── Services ─────────────────────────────────────────────────────────────
	repos := service.Repositories{
		Profiles:   store.Profiles,
		Companies:  store.Companies,
		Vendors:    store.Vendors,
		JobSeekers: store.JobSeekers,
		Jobs:       store.Jobs,
	}
	events := redisstore.NewSessionEvents(rdb, logger.Component("session-events"))

	identity := service.NewIdentityService(
		store.Identities,
		redisstore.NewTokenDenylist(rdb),
		events,
		service.LogNotifier{Log: logger.Component("identity")},
		service.IdentityOptions{
			JWTSecret:           cfg.Auth.JWTSecret,
			TokenTTL:            cfg.Auth.TokenTTL,
			RequireConfirmation: cfg.Auth.RequireEmailConfirmation,
		},
		logger.Component("identity"),
	)

	views := service.NewCachedResolver(
		service.NewResolver(repos, logger.Component("resolver")),
		redisstore.NewViewCache(rdb, cfg.Cache.Retention),
		cfg.Cache.Freshness,
		logger.Component("view-cache"),
	)

	dispatcher := queue.NewDispatcher(cfg.Cache.RevalidationWorkers, views, logger.Component("revalidation"))
	dispatcher.Start(ctx)

	sessions := service.NewSessionController(identity, events, views, dispatcher, repos, logger.Component("sessions"))
	if err := sessions.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("session controller start failed")
	}

	portal := service.NewPortalService(repos, objects, views, logger.Component("portal"))

	expiry := scheduler.NewJobExpiry(store.Jobs, cfg.Jobs.ExpirySpec, logger.Component("job-expiry"))
	if err := expiry.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("job expiry scheduler start failed")
	}

	// ── HTTP server ──────────────────────────────────────────────────────────
	e := api.NewRouter(api.Dependencies{
		DB:       db,
		Redis:    rdb,
		Tokens:   identity,
		Sessions: sessions,
		Portal:   portal,
		Storage:  objects,
		Log:      logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("job portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}
	expiry.Stop()
	cancel()
	log.Info().Msg("stopped")
}

func newObjectStorage(cfg *config.Config, db *mongo.Database) (ports.ObjectStorage, error) {
	switch cfg.Storage.Driver {
	case "supabase":
		return storage.NewSupabase(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseKey)
	default:
		return storage.NewGridFS(db, cfg.PublicURL), nil
	}
}
