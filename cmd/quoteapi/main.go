// Command quoteapi serves the fit and quotation pipeline as a stateless
// JSON API. Preset tables are read from the user's inventory file at start.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/piwi3910/PrintCost/internal/logging"
	"github.com/piwi3910/PrintCost/internal/project"
)

func main() {
	configPath := flag.String("config", project.DefaultConfigPath(), "path to config.json")
	addr := flag.String("addr", "", "listen address (overrides PRINTCOST_API_ADDR)")
	flag.Parse()

	cfg, err := project.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.APIAddr = *addr
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	inv, invPath, err := project.LoadOrCreateInventory()
	if err != nil {
		logger.Fatal("failed to load presets", zap.Error(err))
	}

	srv := newServer(logger, cfg, inv)
	httpServer := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening",
			zap.String("addr", cfg.APIAddr),
			zap.String("presets", invPath),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("stopped")
}
