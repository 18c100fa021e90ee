package main

import (
	"context"
	"log"
	"os"

	"category-api/internal/config"
	"category-api/internal/db"
	categoryrepo "category-api/internal/repository/category"
	"category-api/internal/seed"
)

func main() {
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if cfg.DefaultConnection == "" {
		logger.Fatalf("invalid config: %v", &config.Error{Key: "DefaultConnection", Reason: "required for seeding but not set"})
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

	n, err := seed.Apply(ctx, categoryrepo.NewPostgres(pool, logger))
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seeded %d categories", n)
}
