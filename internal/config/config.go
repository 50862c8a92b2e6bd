package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const maxDataPrefixWords = 64

type Config struct {
	env                   EnvSource
	WindowSize            uint64
	EventsOutputDir       string
	PermissionsOutputDir  string
	EventsDataPrefixWords int
	DeploymentsFile       string
	LogLevel              string
	LogFormat             string
	LogFile               string
	LogMaxSizeMB          int
	LogMaxBackups         int
	OtelEndpoint          string
	KafkaBrokers          []string
	KafkaTopicPrefix      string
}

type EnvSource interface {
	Lookup(key string) (string, bool)
}

type EnvMap map[string]string

func (e EnvMap) Lookup(key string) (string, bool) {
	value, ok := e[key]
	return value, ok
}

func FromEnviron() EnvSource {
	env := make(EnvMap)
	for _, entry := range os.Environ() {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		env[parts[0]] = parts[1]
	}
	return env
}

func Load(source EnvSource) (Config, error) {
	if source == nil {
		return Config{}, errors.New("env source is required")
	}

	windowSize, err := parseUintEnv(source, "LOG_WINDOW_SIZE", 10000)
	if err != nil {
		return Config{}, err
	}
	if windowSize == 0 {
		return Config{}, errors.New("LOG_WINDOW_SIZE must be positive")
	}
	prefixWords, err := parseUintEnv(source, "EVENTS_DATA_PREFIX_WORDS", 2)
	if err != nil {
		return Config{}, err
	}
	if prefixWords > maxDataPrefixWords {
		return Config{}, fmt.Errorf("EVENTS_DATA_PREFIX_WORDS must be at most %d", maxDataPrefixWords)
	}
	logMaxSize, err := parseUintEnv(source, "LOG_MAX_SIZE_MB", 100)
	if err != nil {
		return Config{}, err
	}
	logMaxBackups, err := parseUintEnv(source, "LOG_MAX_BACKUPS", 3)
	if err != nil {
		return Config{}, err
	}

	kafkaBrokers := parseList(source, "KAFKA_BROKERS")
	kafkaTopicPrefix, ok := source.Lookup("KAFKA_TOPIC_PREFIX")
	if !ok || strings.TrimSpace(kafkaTopicPrefix) == "" {
		kafkaTopicPrefix = "vaultaudit"
	}

	otelEndpoint, _ := source.Lookup("OTEL_EXPORTER_OTLP_ENDPOINT")
	deploymentsFile, _ := source.Lookup("DEPLOYMENTS_FILE")
	logLevel, _ := source.Lookup("LOG_LEVEL")
	logFormat, _ := source.Lookup("LOG_FORMAT")
	logFile, _ := source.Lookup("LOG_FILE")

	return Config{
		env:                   source,
		WindowSize:            windowSize,
		EventsOutputDir:       lookupDefault(source, "EVENTS_OUTPUT_DIR", "./output/events"),
		PermissionsOutputDir:  lookupDefault(source, "PERMISSIONS_OUTPUT_DIR", "./output/permissions"),
		EventsDataPrefixWords: int(prefixWords),
		DeploymentsFile:       strings.TrimSpace(deploymentsFile),
		LogLevel:              logLevel,
		LogFormat:             logFormat,
		LogFile:               strings.TrimSpace(logFile),
		LogMaxSizeMB:          int(logMaxSize),
		LogMaxBackups:         int(logMaxBackups),
		OtelEndpoint:          strings.TrimSpace(otelEndpoint),
		KafkaBrokers:          kafkaBrokers,
		KafkaTopicPrefix:      kafkaTopicPrefix,
	}, nil
}

// RPCURL looks up the endpoint stored under key, e.g. MAINNET_RPC. Keys come
// from the chain table, so any variable name is accepted.
func (c Config) RPCURL(key string) (string, error) {
	if c.env == nil {
		return "", fmt.Errorf("%s is required", key)
	}
	url, ok := c.env.Lookup(key)
	if !ok || strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return strings.TrimSpace(url), nil
}

func lookupDefault(source EnvSource, key, defaultValue string) string {
	raw, ok := source.Lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return defaultValue
	}
	return strings.TrimSpace(raw)
}

func parseUintEnv(source EnvSource, key string, defaultValue uint64) (uint64, error) {
	raw, ok := source.Lookup(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func parseList(source EnvSource, key string) []string {
	raw, ok := source.Lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	var values []string
	for _, item := range strings.Split(raw, ",") {
		value := strings.TrimSpace(item)
		if value == "" {
			continue
		}
		values = append(values, value)
	}
	return values
}
