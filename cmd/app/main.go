package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/getsentry/sentry-go"
	"github.com/go-pg/pg/v10"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/municipal-portal/config"
	_ "github.com/daniilsolovey/municipal-portal/docs"
	"github.com/daniilsolovey/municipal-portal/internal/app"
	"github.com/daniilsolovey/municipal-portal/internal/db"
)

var (
	flConfig        = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug         = flag.Bool("debug", false, "enable debug mode")
	flMigrate       = flag.Bool("migrate", false, "apply database migrations before start")
	flAdminEmail    = flag.String("admin-email", "", "create this administrator when none exists (ADMIN_EMAIL)")
	flAdminPassword = flag.String("admin-password", "", "password of the initial administrator (ADMIN_PASSWORD)")
	cfg             config.Config
	lg              *slog.Logger
)

// @title Municipal Portal API
// @version 1.0
// @description Public content, back office and authentication API of the municipal government portal
// @host localhost:3000
// @BasePath /

func main() {
	flag.Parse()

	lg = newLogger(*flDebug)

	_, err := toml.DecodeFile(*flConfig, &cfg)
	exitOnError(err)
	exitOnError(cfg.Normalize())

	if cfg.Sentry.DSN != "" {
		exitOnError(sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}))
		defer sentry.Flush(2 * time.Second)
	}

	ctx := context.Background()

	if *flMigrate {
		exitOnError(db.RunMigrations(ctx, cfg.DatabaseURL()))
		lg.Info("migrations applied")
	}

	dbc := pg.Connect(&cfg.Database)
	if err := dbc.Ping(ctx); err != nil {
		dbc.Close()
		exitOnError(err)
	}

	service, err := app.New(ctx, &cfg, dbc, lg)
	exitOnError(err)

	if *flAdminEmail != "" {
		_, err := service.Manager.EnsureAdmin(ctx, *flAdminEmail, *flAdminPassword)
		exitOnError(err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := service.Run(ctx)
		if err != nil {
			lg.Error("service run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("service stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.App.ShutdownTimeout)
	defer cancel()

	err = service.GracefulShutdown(shutdownCtx)
	if err != nil {
		lg.Error("service graceful shutdown failed", "error", err)
	}
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("app init failed", "error", err)
		os.Exit(1)
	}
}
