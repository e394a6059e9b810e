package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/sushant-115/innopage/config"
	_ "github.com/sushant-115/innopage/core/page/index" // registers the INDEX decoder
	"github.com/sushant-115/innopage/core/tablespace"
	internaltelemetry "github.com/sushant-115/innopage/internal/telemetry"
	"github.com/sushant-115/innopage/pkg/logger"
	"github.com/sushant-115/innopage/pkg/telemetry"
	"go.uber.org/zap"
)

var (
	configPath  = flag.String("config", "", "Path to a YAML config file")
	filePath    = flag.String("file", "", "Tablespace file to inspect (overrides tablespace.path)")
	pageNo      = flag.Int64("page", -1, "Dump the header of a single page instead of summarizing the file")
	logLevel    = flag.String("log_level", "", "Log level (overrides logger.level)")
	logFormat   = flag.String("log_format", "", "Log format, json or console (overrides logger.format)")
	interactive = flag.Bool("interactive", false, "Start an interactive shell")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("CRITICAL: %v", err)
	}
	if *filePath != "" {
		cfg.Tablespace.Path = *filePath
	}
	if *logLevel != "" {
		cfg.Logger.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Logger.Format = *logFormat
	}

	zlogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("CRITICAL: Can't initialize zap logger: %v", err)
	}
	zlogger = zlogger.With(zap.String("session", uuid.NewString()))
	defer zlogger.Sync()

	if err := run(context.Background(), cfg, zlogger); err != nil {
		zlogger.Error("innopage failed", zap.Error(err))
		zlogger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, zlogger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	tel, shutdown, err := telemetry.New(cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			zlogger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	metrics, err := internaltelemetry.NewPageMetrics(tel.Meter)
	if err != nil {
		return fmt.Errorf("init page metrics: %w", err)
	}

	ts, err := tablespace.Open(cfg.Tablespace.Path,
		tablespace.WithLogger(zlogger),
		tablespace.WithMetrics(metrics),
		tablespace.WithTracer(tel.Tracer),
		tablespace.WithCacheSize(cfg.Tablespace.CachePages),
	)
	if err != nil {
		return err
	}
	defer ts.Close()

	zlogger.Info("Inspecting tablespace",
		zap.String("path", cfg.Tablespace.Path),
		zap.Uint64("pages", ts.PageCount()),
	)

	if *interactive {
		return runShell(ctx, ts, zlogger)
	}
	return runOnce(ctx, ts, os.Stdout, *pageNo, zlogger)
}
