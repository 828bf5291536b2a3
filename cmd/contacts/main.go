package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/contactbook/internal/client/cli"
	"github.com/dmitrijs2005/contactbook/internal/client/config"
	"github.com/dmitrijs2005/contactbook/internal/logging"
)

func main() {

	cfg := config.LoadConfig()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
	}()

	// the REPL blocks on stdin, so a signal ends the process without
	// waiting for the next line
	select {
	case err := <-done:
		if err != nil {
			logger.Error(ctx, "contact book stopped", "error", err)
		}
	case sig := <-sigs:
		logger.Info(ctx, "shutting down", "signal", sig.String())
		cancel()
	}
}
