package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/municipal-portal/config"
	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/cms"
	"github.com/daniilsolovey/municipal-portal/internal/db"
	"github.com/daniilsolovey/municipal-portal/internal/rest"
	"github.com/daniilsolovey/municipal-portal/internal/rpc"
	"github.com/daniilsolovey/municipal-portal/internal/storage"
)

type App struct {
	DB      *db.Repository
	Logger  *slog.Logger
	Echo    *echo.Echo
	Config  *config.Config
	Manager *cms.Manager
}

func New(ctx context.Context, cfg *config.Config, dbConnect *pg.DB, logger *slog.Logger) (*App, error) {
	if cfg.App.LogQueries {
		dbConnect.AddQueryHook(db.NewQueryHook(logger, 0))
	}
	repo := db.New(dbConnect)

	files, memFiles, err := newStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	cache := rest.NewResponseCache(cfg.Cache.TTL)
	manager := cms.NewManager(cms.NewStores(repo), cms.Options{
		Tokens: auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, cfg.Auth.Issuer),
		Files:  files,
		Limits: storage.Limits{
			MaxImageSize:    cfg.Upload.MaxImageSize,
			MaxDocumentSize: cfg.Upload.MaxDocumentSize,
		},
		Revalidator: cache,
		Logger:      logger,
	})

	server := rest.NewServer(manager, logger, rest.Config{
		CookieName:   cfg.Auth.CookieName,
		SecureCookie: cfg.Auth.SecureCookie,
		FrontendDir:  cfg.App.FrontendDir,
		Sentry:       cfg.Sentry.DSN != "",
	}, rest.Options{
		Cache: cache,
		RPC:   rpc.New(logger, manager),
		Files: memFiles,
	})

	return &App{
		DB:      repo,
		Logger:  logger,
		Echo:    server.RegisterRoutes(),
		Config:  cfg,
		Manager: manager,
	}, nil
}

// newStorage returns the configured object storage. The second result is set only for the
// in-memory driver, whose objects the HTTP server serves itself.
func newStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.ObjectStorage, *storage.MemoryStorage, error) {
	if cfg.Storage.Driver != config.StorageS3 {
		logger.Warn("using in-memory object storage, uploads are lost on restart")
		mem := storage.NewMemoryStorage(cfg.Storage.PublicURL)
		return mem, mem, nil
	}

	s3, err := storage.NewS3Storage(ctx, storage.S3Config{
		Endpoint:     cfg.Storage.Endpoint,
		Region:       cfg.Storage.Region,
		Bucket:       cfg.Storage.Bucket,
		AccessKey:    cfg.Storage.AccessKey,
		SecretKey:    cfg.Storage.SecretKey,
		UsePathStyle: cfg.Storage.UsePathStyle,
		PublicURL:    cfg.Storage.PublicURL,
	}, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init s3 storage: %w", err)
	}
	if err := s3.EnsureBucket(ctx); err != nil {
		return nil, nil, fmt.Errorf("init s3 storage: %w", err)
	}

	return s3, nil, nil
}

func (a *App) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", a.Config.App.Host, a.Config.App.Port)
	a.Logger.InfoContext(ctx, "starting http server", "addr", addr)

	if err := a.Echo.Start(addr); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	return errors.Join(err, a.DB.Close())
}
