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
		slog.Error("events export failed", "err", err)
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

	shutdownTracing, err := telemetry.InitTracer(context.Background(), "vaultaudit-events", cfg.OtelEndpoint)
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
	rpcKey, ok := tables.RPCEnvKey(tables.EventsChainID)
	if !ok {
		return fmt.Errorf("no rpc env key for chain %d", tables.EventsChainID)
	}
	rpcURL, err := cfg.RPCURL(rpcKey)
	if err != nil {
		return err
	}

	store, err := jsonfile.NewStore(cfg.EventsOutputDir)
	if err != nil {
		return err
	}

	var publisher application.EventPublisher
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

	client, err := ethrpc.NewClient(ctx, ethrpc.Config{URL: rpcURL})
	if err != nil {
		return fmt.Errorf("rpc: %w", err)
	}
	defer client.Close()

	stats := application.NewStats()
	collector, err := application.NewLogCollector(client, stats, application.CollectorConfig{WindowSize: cfg.WindowSize})
	if err != nil {
		return err
	}
	exporter, err := application.NewEventsExporter(client, collector, store, publisher, application.EventsConfig{
		ChainID:         tables.EventsChainID,
		DataPrefixWords: cfg.EventsDataPrefixWords,
	})
	if err != nil {
		return err
	}

	slog.Info("events export started",
		"chain", tables.EventsChainID,
		"vaults", len(tables.Events),
		"window", cfg.WindowSize,
		"output", store.Dir(),
	)
	reports, err := exporter.Export(ctx, tables.Events)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New("interrupted")
		}
		return err
	}
	for _, report := range reports {
		slog.Info("vault exported", "vault", report.Vault, "events", report.Events, "path", report.Path)
	}
	snapshot := stats.Snapshot()
	slog.Info("events export finished",
		"contracts", snapshot.Contracts,
		"windows", snapshot.Windows,
		"logs", snapshot.Logs,
		"elapsed", snapshot.Elapsed,
	)
	return nil
}
