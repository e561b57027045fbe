// Host simulator: loads the content registry, wakes the bronzestone plugin
// and replays world loads so the patch can be observed end to end.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/bronzestone/internal/config"
	"github.com/udisondev/bronzestone/internal/content"
	"github.com/udisondev/bronzestone/internal/db"
	"github.com/udisondev/bronzestone/internal/host"
	"github.com/udisondev/bronzestone/internal/metrics"
	"github.com/udisondev/bronzestone/internal/plugin"
)

const ConfigPath = "config/bronzestone.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("BRONZESTONE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadBronzestone(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("bronzestone host starting",
		"log_level", cfg.LogLevel,
		"host_version", cfg.HostVersion,
		"content_source", cfg.Content.Source)

	src, err := loadContent(ctx, cfg)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	slog.Info("content loaded",
		"items", len(src.Items()),
		"menus", src.MenuCount(),
		"pieces", src.PieceCount(),
		"recipes", len(src.Recipes()),
		"digest", src.Digest())

	rt := host.NewRuntime(cfg.HostVersion)

	var opts []plugin.Option
	promReg := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		m, err := metrics.NewPatch(promReg)
		if err != nil {
			return fmt.Errorf("registering metrics: %w", err)
		}
		opts = append(opts, plugin.WithObserver(m))
	}

	if cfg.Plugin.Enabled {
		p, err := plugin.Awake(rt, cfg, opts...)
		if err != nil {
			return fmt.Errorf("waking plugin: %w", err)
		}
		defer p.Close()
	} else {
		slog.Warn("plugin disabled, host runs unpatched")
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Metrics.Enabled {
		srv := &http.Server{
			Addr:              cfg.Metrics.Address,
			Handler:           metricsMux(promReg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			slog.Info("starting metrics server", "address", cfg.Metrics.Address)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		return simulate(gctx, rt, src, cfg.Simulation)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("host error: %w", err)
	}

	slog.Info("bronzestone host stopped")
	return nil
}

// simulate replays world loads against the runtime. Each load replaces the
// registry instance and fires the load hooks; repeat triggers fire the hooks
// again on the same instance.
func simulate(ctx context.Context, rt *host.Runtime, src *content.Registry, sim config.SimulationConfig) error {
	for i := range sim.WorldLoads {
		if err := ctx.Err(); err != nil {
			return nil
		}
		rt.CopyOtherDB(src, host.LabelCopyOtherDB)
		for range sim.RepeatTriggers {
			rt.Hooks().Fire(host.LabelCopyOtherDB)
		}
		slog.Debug("world load simulated", "load", i+1, "generation", rt.Instance().Generation())
	}
	slog.Info("simulation finished", "world_loads", sim.WorldLoads, "repeat_triggers", sim.RepeatTriggers)
	return nil
}

func metricsMux(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(g))
	return mux
}

func loadContent(ctx context.Context, cfg config.Bronzestone) (*content.Registry, error) {
	switch cfg.Content.Source {
	case config.SourceFile:
		return content.LoadFile(cfg.Content.Path)
	case config.SourcePostgres:
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, err
		}
		defer database.Close()
		return db.NewContentRepository(database.Pool()).Load(ctx)
	default:
		return content.Vanilla().Build()
	}
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
