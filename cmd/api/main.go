package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-habit-ledger/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-habit-ledger/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/adapters/notes"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/config"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-ledger/internal/core/services"
)

type application struct {
	router *gin.Engine
	db     *sqlx.DB
	redis  *redis.Client
}

func (a *application) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

func openStore(ctx context.Context, cfg *config.Config) (domain.HabitRepository, *sqlx.DB, error) {
	var dsn string
	switch cfg.DBDriver {
	case config.DriverMemory:
		log.Println("Using in-memory habit store, tracked habits are lost on restart.")
		return repository.NewInMemoryHabitRepository(), nil, nil
	case config.DriverSQLite:
		dsn = cfg.SQLitePath
	default:
		dsn = repository.PostgresDSN(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}

	log.Printf("Connecting to database (%s)...", cfg.DBDriver)

	db, err := repository.Connect(cfg.DBDriver, dsn)
	if err != nil {
		return nil, nil, err
	}

	repo := repository.NewSQLHabitRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	log.Println("Database connected successfully.")
	return repo, db, nil
}

// setup wires the whole server from a validated configuration.
func setup(ctx context.Context, cfg *config.Config) (*application, error) {
	app := &application{}

	store, db, err := openStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	app.db = db

	var habitRepo domain.HabitRepository = store
	if cfg.RedisHost != "" {
		rdb, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("Warning: Redis unavailable, running without cache: %v", err)
		} else {
			app.redis = rdb
			habitRepo = repository.NewCachedHabitRepository(store, rdb)
		}
	}

	settings := cfg.DateSettings()
	defaultSpan := cfg.DefaultTimeSpan
	habitService := services.NewHabitService(habitRepo)

	if cfg.HabitsFile != "" {
		f, err := config.LoadHabitsFile(cfg.HabitsFile)
		if err != nil {
			app.Close()
			return nil, err
		}
		settings = f.DateSettings(settings)
		if f.DefaultTimeSpan != "" {
			if _, err := domain.LookupTimeSpan(f.DefaultTimeSpan); err != nil {
				app.Close()
				return nil, fmt.Errorf("habits file: %w", err)
			}
			defaultSpan = f.DefaultTimeSpan
		}
		if _, err := habitService.Seed(ctx, f.TrackInputs()); err != nil {
			app.Close()
			return nil, err
		}
	}

	resolver := notes.NewFileResolver(cfg.VaultRoot)
	ledger := services.NewLedgerBuilder(resolver, services.WithLookupConcurrency(cfg.LookupConcurrency))

	deps := adapterHTTP.RouterDependencies{
		HabitHandler:      adapterHTTP.NewHabitHandler(habitService),
		StatsHandler:      adapterHTTP.NewStatsHandler(services.NewStatsService(habitRepo, ledger, settings), defaultSpan),
		NavigationHandler: adapterHTTP.NewNavigationHandler(services.NewNavigationService(resolver, settings)),
		DB:                db,
		Redis:             app.redis,
		CORSOrigins:       cfg.CORSOrigins,
		RateLimit:         cfg.RateLimit,
		StartTime:         time.Now(),
	}

	if cfg.AuthEnabled() {
		owner, err := domain.NewOwner(cfg.OwnerName, cfg.AuthPasswordHash)
		if err != nil {
			app.Close()
			return nil, err
		}
		tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, owner.Name, cfg.TokenTTL)
		deps.TokenService = tokens
		deps.AuthHandler = adapterHTTP.NewAuthHandler(services.NewAuthService(owner, tokens), tokens)
	} else {
		log.Println("Warning: AUTH_PASSWORD_HASH not set, the API is open to anyone who can reach it.")
	}

	app.router = adapterHTTP.NewRouter(deps)
	return app, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: invalid configuration: %v", err)
	}

	app, err := setup(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Critical: %v", err)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso Habit Ledger running on http://localhost:%s (vault: %s)", cfg.Port, cfg.VaultRoot)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
