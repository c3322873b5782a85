package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"txdash/internal/api"
	"txdash/internal/config"
	"txdash/internal/logging"
	"txdash/internal/pipeline"
	"txdash/internal/source"
	"txdash/internal/utils"
)

func main() {
	logger, err := logging.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx := context.Background()

	src, cleanup, err := buildSource(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("initialize record source", zap.Error(err))
	}
	defer cleanup()

	report, err := pipeline.Run(ctx, src, cfg.TopAccounts, logger)
	if err != nil {
		if errors.Is(err, source.ErrDataUnavailable) {
			logger.Fatal("no transaction records, refusing to start dashboard", zap.Error(err))
		}
		logger.Fatal("aggregation failed", zap.Error(err))
	}

	utils.DisplayReport(report, 20)

	server, err := api.NewServer(report, logger)
	if err != nil {
		logger.Fatal("initialize dashboard server", zap.Error(err))
	}
	httpSrv := server.HTTPServer(cfg.Addr)

	go func() {
		logger.Info("dashboard listening", zap.String("addr", cfg.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("dashboard server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("dashboard shutdown", zap.Error(err))
	}
	logger.Info("dashboard stopped")
}

// buildSource picks the record-source backend. The cleanup func closes
// any connection the backend holds.
func buildSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (source.Source, func(), error) {
	switch cfg.Backend {
	case config.BackendMinIO:
		src, err := source.NewBucketSource(ctx,
			cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey,
			cfg.MinIOBucket, cfg.MinIOPrefix, cfg.MinIOUseSSL, logger)
		return src, func() {}, err
	case config.BackendClickHouse:
		src, err := source.NewTableSource(ctx,
			cfg.ClickHouseAddr, cfg.ClickHouseDatabase, cfg.ClickHouseTable, logger)
		if err != nil {
			return nil, func() {}, err
		}
		return src, func() { _ = src.Close() }, nil
	default:
		return source.NewDirectorySource(cfg.DataDir, logger), func() {}, nil
	}
}
