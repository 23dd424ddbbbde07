package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tutor-proxy/api/internal/app"
	"tutor-proxy/api/internal/config"
	"tutor-proxy/api/internal/handle"
	"tutor-proxy/api/internal/httpserver"
	"tutor-proxy/api/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	tutors, err := app.Tutors(cfg, logger)
	if err != nil {
		logger.Fatal("build tutors", zap.Error(err))
	}

	mux := http.NewServeMux()
	handle.New(tutors, cfg.RequestTimeout, logger.Named("http")).Routes(mux)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, ":"+cfg.Port, mux, logger)
	})

	logger.Info("tutor-proxy started",
		zap.String("port", cfg.Port),
		zap.String("default_llm", tutors.Default()),
		zap.Strings("engines", tutors.Names()),
		zap.Strings("subjects", cfg.Subjects))

	if err := g.Wait(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("bye")
}
