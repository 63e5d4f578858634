package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-research-agent/internal/logger"
	"stock-research-agent/internal/server"
	"stock-research-agent/internal/trace"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	must(initializeSystem())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	must(err)

	compressOldLogs(ctx, cfg)

	gateway := initializeGateway(ctx, cfg)
	researchSvc, err := initializeResearch(cfg, gateway)
	must(err)

	srv := server.New(cfg, researchSvc)
	must(srv.Start(ctx))

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	logger.Info(ctx, "Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "HTTP server shutdown failed", err)
	}
	_ = trace.Shutdown(shutdownCtx)
}
