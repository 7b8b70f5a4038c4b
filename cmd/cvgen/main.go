// CLI entrypoint. Generates a PDF CV directly, without running a server:
//
//	cvgen --template resume_balz --title "Senior Developer"
package main

import (
	"os"

	"github.com/balzmuri/cvgen/internal/cli"
	"github.com/balzmuri/cvgen/internal/config"
	"github.com/balzmuri/cvgen/internal/generator"
	"github.com/balzmuri/cvgen/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.FromConfig(cfg.LogLevel, cfg.LogFormat))

	deps := cli.Dependencies{
		Config:  cfg,
		Service: generator.NewService(cfg, log),
		Out:     os.Stdout,
		Err:     os.Stderr,
	}

	os.Exit(cli.Run(os.Args[1:], deps))
}
