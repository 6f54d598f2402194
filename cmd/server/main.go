package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/0xsonu/mlms/branding"
	"github.com/0xsonu/mlms/internal/config"
	"github.com/0xsonu/mlms/internal/metrics"
	"github.com/0xsonu/mlms/server"
	"github.com/0xsonu/mlms/session"
	"github.com/0xsonu/mlms/storage"
	"github.com/0xsonu/mlms/storage/memstore"
	"github.com/0xsonu/mlms/storage/redisstore"
	"github.com/0xsonu/mlms/tenants"
	tenantpg "github.com/0xsonu/mlms/tenants/postgresrepo"
	tenantfake "github.com/0xsonu/mlms/tenants/repofake"
	"github.com/0xsonu/mlms/users"
	userpg "github.com/0xsonu/mlms/users/postgresrepo"
	userfake "github.com/0xsonu/mlms/users/repofake"

	_ "github.com/lib/pq" // postgres driver
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}
	configureLogging(cfg)
	displayAppname(cfg.AppName)

	store, cleanup, err := newStore(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	userDir, tenantCat, dbCleanup, err := newDirectories(cfg)
	if err != nil {
		return err
	}
	defer dbCleanup()

	mx := metrics.New()

	sessions, err := session.NewManager(
		session.Deps{Users: userDir, Store: store},
		session.WithTTL(cfg.SessionTTL),
		session.WithCheckInterval(cfg.SessionCheckInterval),
		session.WithMetrics(mx),
	)
	if err != nil {
		return fmt.Errorf("session.NewManager: %w", err)
	}
	sessions.Start()
	defer func() { _ = sessions.Close() }()

	resolver, err := branding.NewResolver(
		branding.Deps{Tenants: tenantCat, Store: store, Applier: logApplier()},
		branding.WithMetrics(mx),
	)
	if err != nil {
		return fmt.Errorf("branding.NewResolver: %w", err)
	}

	srv, err := server.New(cfg, server.Deps{
		Sessions: sessions,
		Branding: resolver,
		Users:    userDir,
		Tenants:  tenantCat,
	})
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	// Tenant resolution happens after seeding so a fresh catalog has a
	// default tenant to fall back to.
	if err := resolver.Initialize(context.Background()); err != nil {
		return fmt.Errorf("resolver.Initialize: %w", err)
	}

	httpServer := &http.Server{Addr: cfg.Addr(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

func newStore(cfg *config.Config) (storage.Store, func(), error) {
	if cfg.RedisAddr == "" {
		return memstore.New(), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	return redisstore.New(client, cfg.RedisKeyPrefix), func() { _ = client.Close() }, nil
}

func newDirectories(cfg *config.Config) (users.Directory, tenants.Catalog, func(), error) {
	if cfg.PostgresURL == "" {
		return userfake.NewFakeUserDirectory(), tenantfake.NewFakeTenantCatalog(), func() {}, nil
	}
	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("postgres ping: %w", err)
	}
	return userpg.NewPostgresUserDirectory(db), tenantpg.NewPostgresTenantCatalog(db), func() { _ = db.Close() }, nil
}

// logApplier stands in for the dashboard's document root: theme changes
// are visible in the logs until a UI consumer pulls the tokens endpoint.
func logApplier() branding.Applier {
	return branding.ApplierFunc(func(tokens map[string]string, dark bool) {
		log.Info().Bool("dark", dark).Int("tokens", len(tokens)).Msg("Theme applied")
	})
}

func configureLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Env == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func listenAndServe(httpServer *http.Server) {
	log.Info().Str("addr", httpServer.Addr).Msg("Server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
