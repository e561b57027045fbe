// Content import tool: validates a YAML content pack (or the built-in
// vanilla content) and replaces the PostgreSQL content store with it.
//
// Usage:
//
//	go run ./cmd/contentimport                      # import vanilla content
//	go run ./cmd/contentimport -path pack.yaml      # import a content pack
//	go run ./cmd/contentimport -check -path p.yaml  # validate only
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/udisondev/bronzestone/internal/config"
	"github.com/udisondev/bronzestone/internal/content"
	"github.com/udisondev/bronzestone/internal/db"
)

func main() {
	path := flag.String("path", "", "content pack to import (empty imports vanilla content)")
	dsn := flag.String("dsn", "", "database DSN (default from config)")
	check := flag.Bool("check", false, "validate the pack and exit without touching the database")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *path, *dsn, *check); err != nil {
		slog.Error("contentimport failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path, dsn string, check bool) error {
	reg, err := load(path)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	slog.Info("content pack valid",
		"path", path,
		"items", len(reg.Items()),
		"pieces", reg.PieceCount(),
		"recipes", len(reg.Recipes()),
		"digest", reg.Digest())
	if check {
		return nil
	}

	if dsn == "" {
		cfgPath := "config/bronzestone.yaml"
		if p := os.Getenv("BRONZESTONE_CONFIG"); p != "" {
			cfgPath = p
		}
		cfg, err := config.LoadBronzestone(cfgPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		dsn = cfg.Database.DSN()
	}

	database, err := db.New(ctx, dsn)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.Migrate(ctx, database.Pool()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if err := db.NewContentRepository(database.Pool()).Save(ctx, reg); err != nil {
		return fmt.Errorf("saving content: %w", err)
	}

	slog.Info("content imported", "digest", reg.Digest())
	return nil
}

func load(path string) (*content.Registry, error) {
	if path == "" {
		return content.Vanilla().Build()
	}
	return content.LoadFile(path)
}
