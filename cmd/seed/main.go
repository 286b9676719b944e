package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsx-dev/intramural-league/internal/app"
	"github.com/jsx-dev/intramural-league/internal/config"
	"github.com/jsx-dev/intramural-league/internal/observability"
	"github.com/jsx-dev/intramural-league/internal/platform/logging"
	"github.com/jsx-dev/intramural-league/internal/seed"
)

func main() {
	os.Exit(run())
}

func run() int {
	file := flag.String("file", "", "path to the JSON seed file")
	flag.Parse()
	if *file == "" {
		fmt.Fprintf(os.Stderr, "usage: %s -file seed.json\n", os.Args[0])
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger, shutdownLogger, err := observability.InitBetterStackLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 1
	}
	logging.SetDefault(logger)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownLogger(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "shutdown logger: %v\n", err)
		}
	}()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("shutdown uptrace", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Warn("stop pyroscope", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("build container", "error", err)
		return 1
	}
	defer func() {
		if err := container.Close(); err != nil {
			logger.Warn("close container", "error", err)
		}
	}()

	f, err := os.Open(*file)
	if err != nil {
		logger.Error("open seed file", "path", *file, "error", err)
		return 1
	}
	data, err := seed.Decode(f)
	_ = f.Close()
	if err != nil {
		logger.Error("read seed file", "path", *file, "error", err)
		return 1
	}

	loader := seed.NewLoader(container.Registration, container.Statistics, cfg.SeedWorkers, logger)
	result, err := loader.Load(ctx, data)
	if err != nil {
		logger.Error("seed finished with failures", "failed", result.Failed, "error", err)
		return 1
	}

	logger.Info("seed complete", "path", *file, "records", data.Len())
	return 0
}
