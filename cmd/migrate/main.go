package main

import (
	"context"
	"flag"
	"log"
	"os"

	"category-api/internal/config"
	"category-api/internal/db"
	"category-api/internal/migrate"
)

func main() {
	down := flag.Bool("down", false, "revert the most recent migration instead of applying all")
	flag.Parse()

	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if cfg.DefaultConnection == "" {
		logger.Fatalf("invalid config: %v", &config.Error{Key: "DefaultConnection", Reason: "required for migrations but not set"})
	}
	if err := cfg.CheckConnection(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DefaultConnection)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if *down {
		if err := migrate.Rollback(ctx, pool); err != nil {
			logger.Fatalf("rollback migration: %v", err)
		}
	} else if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	version, dirty, err := migrate.Version(ctx, pool)
	if err != nil {
		logger.Fatalf("read version: %v", err)
	}
	logger.Printf("migrations done, version=%d dirty=%t", version, dirty)
}
