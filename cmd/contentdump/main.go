// Content dump tool: prints recipe, item and build menu dumps of a content
// registry, or writes them to a zstd-compressed file.
//
// Usage:
//
//	go run ./cmd/contentdump                                  # vanilla content to stdout
//	go run ./cmd/contentdump -source file -path pack.yaml     # content pack
//	go run ./cmd/contentdump -source postgres -out dump.zst   # database, compressed
//	go run ./cmd/contentdump -read dump.zst                   # print a compressed dump
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/udisondev/bronzestone/internal/config"
	"github.com/udisondev/bronzestone/internal/content"
	"github.com/udisondev/bronzestone/internal/db"
	"github.com/udisondev/bronzestone/internal/dump"
)

func main() {
	source := flag.String("source", config.SourceVanilla, "content source: vanilla, file or postgres")
	path := flag.String("path", "", "content pack for -source file")
	dsn := flag.String("dsn", "", "database DSN for -source postgres (default from config)")
	sections := flag.String("sections", "recipedump,itemdump,piecedump", "comma separated dump sections")
	out := flag.String("out", "", "write a zstd-compressed dump to this file instead of stdout")
	read := flag.String("read", "", "print a zstd-compressed dump file and exit")
	flag.Parse()

	if err := run(context.Background(), *source, *path, *dsn, *sections, *out, *read); err != nil {
		slog.Error("contentdump failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, source, path, dsn, sectionList, out, read string) error {
	if read != "" {
		raw, err := dump.ReadFile(read)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(raw)
		return err
	}

	sections, err := parseSections(sectionList)
	if err != nil {
		return err
	}

	reg, err := load(ctx, source, path, dsn)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	if out != "" {
		if err := dump.ToFile(out, reg, sections...); err != nil {
			return err
		}
		slog.Info("dump written", "path", out, "digest", reg.Digest())
		return nil
	}
	return dump.Write(os.Stdout, reg, sections...)
}

func parseSections(list string) ([]dump.Section, error) {
	var out []dump.Section
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		sec, err := dump.ParseSection(name)
		if err != nil {
			return nil, err
		}
		out = append(out, sec)
	}
	if len(out) == 0 {
		return dump.AllSections, nil
	}
	return out, nil
}

func load(ctx context.Context, source, path, dsn string) (*content.Registry, error) {
	switch source {
	case config.SourceVanilla:
		return content.Vanilla().Build()
	case config.SourceFile:
		if path == "" {
			return nil, fmt.Errorf("-path is required for -source file")
		}
		return content.LoadFile(path)
	case config.SourcePostgres:
		if dsn == "" {
			cfgPath := "config/bronzestone.yaml"
			if p := os.Getenv("BRONZESTONE_CONFIG"); p != "" {
				cfgPath = p
			}
			cfg, err := config.LoadBronzestone(cfgPath)
			if err != nil {
				return nil, fmt.Errorf("loading config: %w", err)
			}
			dsn = cfg.Database.DSN()
		}
		database, err := db.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		defer database.Close()
		return db.NewContentRepository(database.Pool()).Load(ctx)
	default:
		return nil, fmt.Errorf("unknown source %q", source)
	}
}
