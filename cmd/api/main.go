package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"category-api/internal/config"
	"category-api/internal/db"
	"category-api/internal/httpserver"
	categoryrepo "category-api/internal/repository/category"
	categorysvc "category-api/internal/service/category"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	ctx := context.Background()
	var dbpool *pgxpool.Pool
	if connErr := cfg.CheckConnection(); connErr != nil {
		logger.Printf("ignoring DefaultConnection: %v", connErr)
	} else if cfg.DefaultConnection != "" {
		dbpool, err = db.Connect(ctx, cfg.DefaultConnection)
		switch {
		case err != nil && cfg.DatabaseRequired():
			logger.Fatalf("connect to db: %v", err)
		case err != nil:
			logger.Printf("database unavailable, continuing without it: %v", err)
		default:
			defer dbpool.Close()
		}
	} else {
		logger.Printf("DefaultConnection not set, running without database")
	}

	var categoryRepo categoryrepo.Repository = categoryrepo.NewStatic()
	if cfg.CategorySource == config.SourcePostgres {
		categoryRepo = categoryrepo.NewPostgres(dbpool, logger)
	}
	categoryService := categorysvc.New(categoryRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		CategorySvc:        categoryService,
		DB:                 dbpool,
		DocsEnabled:        cfg.DocsEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}
	for _, r := range srv.Routes() {
		logger.Printf("route %s %s", r.Method, r.Path)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s (categories from %s)", cfg.HTTPAddr, cfg.CategorySource)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
