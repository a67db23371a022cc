package main

import (
	"bytes"
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pageza/tastemap/backend/config"
	"github.com/pageza/tastemap/backend/internal/database"
	"github.com/pageza/tastemap/backend/internal/logger"
)

//go:embed catalog.yaml
var defaultCatalog []byte

func main() {
	file := flag.String("file", "", "catalog YAML to load (defaults to the built-in sample catalog)")
	dryRun := flag.Bool("dry-run", false, "validate the catalog without writing it")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var src io.Reader = bytes.NewReader(defaultCatalog)
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			log.Fatal("failed to open catalog file", "file", *file, "error", err)
		}
		defer f.Close()
		src = f
	}

	seed, err := database.ParseCatalogSeed(src)
	if err != nil {
		log.Fatal("invalid catalog", "error", err)
	}
	if *dryRun {
		log.Info("catalog is valid", "restaurants", len(seed.Restaurants), "dishes", len(seed.Dishes))
		return
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to open database", "error", err)
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}

	restaurants, dishes, err := database.SeedCatalog(context.Background(), db, seed)
	if err != nil {
		log.Fatal("failed to seed catalog", "error", err)
	}
	log.Info("catalog seeded", "restaurants", restaurants, "dishes", dishes)
}
