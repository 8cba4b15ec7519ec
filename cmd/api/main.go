package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookconnect/internal/catalog"
	"bookconnect/internal/config"
	apphttp "bookconnect/internal/http"
	"bookconnect/internal/httpx"
	"bookconnect/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		os.Exit(exitWithError(log, err))
	}
	_ = log.Sync()
}

// exitWithError logs err and flushes the logger before the process exits.
func exitWithError(log *zap.Logger, err error) int {
	log.Error("server stopped", zap.Error(err))
	_ = log.Sync()
	return 1
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, ready, closeSource, err := openSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSource()

	store, err := catalog.NewService(src, cfg.BooksPerPage).Open(ctx)
	if err != nil {
		return err
	}
	log.Info("catalog loaded",
		zap.Int("books", store.Matches()),
		zap.Int("authors", store.Dataset().Authors.Len()),
		zap.Int("genres", store.Dataset().Genres.Len()),
		zap.Int("page_size", cfg.BooksPerPage),
	)

	browser, err := apphttp.NewBrowserHandler(store, cfg.DefaultTheme == "night", log)
	if err != nil {
		return err
	}

	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rateLimiter.Close()

	router := apphttp.NewRouter(browser, apphttp.RouterConfig{
		Logger:         log,
		RateLimiter:    rateLimiter,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		EnableHSTS:     cfg.EnableHSTS,
		Ready:          ready,
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// openSource picks the dataset source: Postgres when DB_DSN is set, then a
// YAML file, then the embedded catalog.
func openSource(ctx context.Context, cfg *config.Config, log *zap.Logger) (catalog.Source, apphttp.ReadyChecker, func(), error) {
	switch {
	case cfg.DatabaseDSN != "":
		pool, err := mustOpenDB(ctx, cfg.DatabaseDSN, log)
		if err != nil {
			return nil, nil, nil, err
		}
		repo := catalog.NewPostgresRepo(pool, cfg.DBTimeout)
		return repo, repo, pool.Close, nil
	case cfg.CatalogFile != "":
		log.Info("using catalog file", zap.String("path", cfg.CatalogFile))
		return catalog.NewFileSource(cfg.CatalogFile), nil, func() {}, nil
	default:
		log.Info("using embedded catalog")
		return catalog.NewEmbeddedSource(), nil, func() {}, nil
	}
}

func mustOpenDB(ctx context.Context, dsn string, log *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Error("cannot ping database", zap.String("dsn", config.RedactDSN(dsn)), zap.Error(err))
		return nil, err
	}
	log.Info("database connection OK", zap.String("dsn", config.RedactDSN(dsn)))
	return pool, nil
}
