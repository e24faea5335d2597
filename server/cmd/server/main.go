package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"syscall"
	"time"

	"github.com/launchdash/launchdash/server/internal/api"
	"github.com/launchdash/launchdash/server/internal/callback"
	"github.com/launchdash/launchdash/server/internal/config"
	"github.com/launchdash/launchdash/server/internal/dataset"
	"github.com/launchdash/launchdash/server/internal/handlers"
	"github.com/launchdash/launchdash/server/internal/metrics"
	"github.com/launchdash/launchdash/server/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to config file; empty uses defaults and environment overrides")
	flag.Parse()

	var level slog.LevelVar
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: &level})))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	level.Set(cfg.Log.SlogLevel())
	slog.SetDefault(slog.New(newHandler(os.Stdout, cfg.Log.Format, &level)))

	slog.Info("launchdash starting",
		"config", *configPath,
		"addr", cfg.Server.Addr(),
		"data", cfg.Data.Path,
		"auth_mode", cfg.Server.Auth.Mode,
	)

	ds, err := dataset.Load(cfg.Data.Path)
	if err != nil {
		slog.Error("failed to load dataset", "path", cfg.Data.Path, "err", err)
		os.Exit(1)
	}
	slog.Info("dataset loaded",
		"records", ds.Len(),
		"sites", len(ds.Sites()),
		"min_payload", ds.MinPayload(),
		"max_payload", ds.MaxPayload(),
	)
	fmt.Printf("[%d, %d]\n", ds.MinPayload(), ds.MaxPayload())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	m := metrics.New()
	reg := callback.NewRegistry()
	reg.Observe(m.ObserveCallback)
	reg.Observe(func(output string, elapsed time.Duration, err error) {
		if err != nil {
			slog.Debug("callback failed", "output", output, "elapsed", elapsed, "err", err)
			return
		}
		slog.Debug("callback", "output", output, "elapsed", elapsed)
	})

	h := handlers.New(ds)
	if err := h.Register(reg, cfg.UI.Marks); err != nil {
		slog.Error("failed to register callbacks", "err", err)
		os.Exit(1)
	}

	// WebSocket hub: answers callback requests streamed by the page.
	hub := ws.New(reg)
	go hub.Run(ctx)

	m.GaugeFunc(metrics.DatasetRecords, "Launch records loaded at startup.", func() float64 { return float64(ds.Len()) })
	m.GaugeFunc(metrics.WSClients, "Open callback websocket connections.", func() float64 { return float64(hub.Count()) })

	if *configPath != "" {
		go func() {
			err := config.Watch(ctx, *configPath, func(next *config.Config) {
				level.Set(next.Log.SlogLevel())
				slog.Info("log level applied", "level", next.Log.SlogLevel().String())
				if needsRestart(cfg, next) {
					slog.Warn("config changes outside log.level take effect after restart")
				}
			})
			if err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
		}()
	}

	httpSrv := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: api.New(api.Deps{
			Config:    cfg,
			Dataset:   ds,
			Handlers:  h,
			Callbacks: reg,
			Metrics:   m,
			Socket:    hub,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("HTTP server listening", "addr", cfg.Server.Addr())
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("launchdash shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadDefault()
	}
	return config.Load(path)
}

func newHandler(w io.Writer, format string, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// needsRestart reports whether next differs from cur outside the log level.
func needsRestart(cur, next *config.Config) bool {
	a, b := *cur, *next
	a.Log.Level, b.Log.Level = "", ""
	return !reflect.DeepEqual(a, b)
}
