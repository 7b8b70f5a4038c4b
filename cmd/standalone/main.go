// Lightweight alternative to the full API server: same routes, plain
// net/http, one process per deployment.
package main

import (
	"context"
	"flag"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/balzmuri/cvgen/internal/config"
	"github.com/balzmuri/cvgen/internal/generator"
	"github.com/balzmuri/cvgen/internal/logger"
	"github.com/balzmuri/cvgen/internal/standalone"
)

func main() {
	var (
		host = flag.String("host", "0.0.0.0", "Host to bind to")
		port = flag.String("port", "5000", "Port to bind to")
	)
	flag.Parse()

	cfg := config.Load()
	log := logger.New(logger.FromConfig(cfg.LogLevel, cfg.LogFormat))

	service := generator.NewService(cfg, log)
	server := standalone.New(cfg, service, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := net.JoinHostPort(*host, *port)
	log.Info("starting CV generation server", "addr", addr)
	log.Info("endpoints: POST /generate-cv, GET /health, GET /available-templates")

	if err := server.ListenAndServe(ctx, addr); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
