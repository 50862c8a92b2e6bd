package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vaultaudit/internal/application"
	"vaultaudit/internal/config"
	"vaultaudit/internal/deployments"
	"vaultaudit/internal/infrastructure/ethrpc"
	"vaultaudit/internal/infrastructure/jsonfile"
	"vaultaudit/internal/infrastructure/kafka"
	"vaultaudit/internal/infrastructure/logging"
	"vaultaudit/internal/infrastructure/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("permissions collection failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logWriter, err := logging.Init(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		slog.Error("logger init error", "err", err)
	} else if logWriter != nil {
		defer logWriter.Close()
	}

	shutdownTracing, err := telemetry.InitTracer(context.Background(), "vaultaudit-permissions", cfg.OtelEndpoint)
	if err != nil {
		slog.Warn("tracing init error", "err", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			slog.Warn("tracing shutdown error", "err", err)
		}
	}()

	tables, err := deployments.Load(cfg.DeploymentsFile)
	if err != nil {
		return fmt.Errorf("deployments: %w", err)
	}

	store, err := jsonfile.NewStore(cfg.PermissionsOutputDir)
	if err != nil {
		return err
	}

	var publisher application.AddressPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(kafka.ProducerConfig{
			Brokers:     cfg.KafkaBrokers,
			TopicPrefix: cfg.KafkaTopicPrefix,
		})
		if err != nil {
			return fmt.Errorf("kafka: %w", err)
		}
		defer producer.Close()
		publisher = producer
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stats := application.NewStats()
	for _, chainID := range tables.PermissionChains() {
		if err := collectChain(ctx, cfg, tables, chainID, store, publisher, stats); err != nil {
			if errors.Is(err, context.Canceled) {
				return errors.New("interrupted")
			}
			return fmt.Errorf("chain %d: %w", chainID, err)
		}
	}
	snapshot := stats.Snapshot()
	slog.Info("permissions collection finished",
		"contracts", snapshot.Contracts,
		"windows", snapshot.Windows,
		"logs", snapshot.Logs,
		"elapsed", snapshot.Elapsed,
	)
	return nil
}

func collectChain(ctx context.Context, cfg config.Config, tables deployments.Tables, chainID uint64, store *jsonfile.Store, publisher application.AddressPublisher, stats *application.Stats) error {
	rpcKey, ok := tables.RPCEnvKey(chainID)
	if !ok {
		return errors.New("no rpc env key")
	}
	rpcURL, err := cfg.RPCURL(rpcKey)
	if err != nil {
		return err
	}

	client, err := ethrpc.NewClient(ctx, ethrpc.Config{URL: rpcURL})
	if err != nil {
		return fmt.Errorf("rpc: %w", err)
	}
	defer client.Close()

	collector, err := application.NewLogCollector(client, stats, application.CollectorConfig{WindowSize: cfg.WindowSize})
	if err != nil {
		return err
	}
	permissions, err := application.NewPermissionsCollector(client, collector, store, publisher, chainID)
	if err != nil {
		return err
	}

	targets := tables.Permissions[chainID]
	slog.Info("permissions collection started",
		"chain", chainID,
		"vaults", len(targets),
		"window", cfg.WindowSize,
		"output", store.Dir(),
	)
	reports, err := permissions.Run(ctx, targets)
	if err != nil {
		return err
	}
	for _, report := range reports {
		slog.Info("vault permissions collected", "vault", report.Vault, "addresses", len(report.Addresses), "path", report.Path)
	}
	return nil
}
