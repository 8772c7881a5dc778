package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/skillcoder/computeinfo-api/internal/logic/inventory"
)

var (
	ErrInvalidValue              = errors.New("invalid value")
	ErrSnapshotNamespacesMissing = errors.New("snapshot namespaces required when schedule is set")
)

type Config struct {
	KubeConfig string
	KubeMaster string
	LogLevel   string
	LogFormat  string

	HTTPPort         string
	HTTPWriteTimeout time.Duration
	MetricsPort      string
	PingerInterval   time.Duration
	TerminationFile  string

	MaintainerLabel         string
	MaintainerFilterEnabled bool
	MaxConcurrentNamespaces int
	NamespaceQueryTimeout   time.Duration

	RateLimit      float64
	RateLimitBurst int

	SnapshotSchedule   string
	SnapshotTZ         string
	SnapshotNamespaces []string
}

func Load() (*Config, error) {
	cfg := &Config{
		KubeConfig:       getEnvWithFallback(envKeyKubeConfig, envKeyKubeConfigFallback),
		KubeMaster:       getEnvWithFallback(envKeyKubeMaster, envKeyKubeMasterFallback),
		LogLevel:         getEnvOrDefault(envKeyLogLevel, "info"),
		LogFormat:        getEnvOrDefault(envKeyLogFormat, "json"),
		HTTPPort:         getEnvOrDefault(envKeyHTTPPort, "3000"),
		MetricsPort:      getEnvOrDefault(envKeyMetricsPort, "9090"),
		MaintainerLabel:  getEnvOrDefault(envKeyMaintainerLabel, inventory.DefaultMaintainerLabelKey),
		SnapshotSchedule: strings.TrimSpace(os.Getenv(envKeySnapshotSchedule)),
		SnapshotTZ:       os.Getenv(envKeySnapshotTZ),
		TerminationFile:  getEnvOrDefault(envKeyTerminationFile, "/mnt/signal/terminating"),
	}

	cfg.SnapshotNamespaces = parseList(os.Getenv(envKeySnapshotNamespaces))

	var err error

	cfg.PingerInterval, err = parseDuration(envKeyPingerInterval, "10s", envMinPingerInterval)
	if err != nil {
		return nil, err
	}

	cfg.HTTPWriteTimeout, err = parseDuration(envKeyHTTPWriteTimeout, "60s", time.Second)
	if err != nil {
		return nil, err
	}

	cfg.NamespaceQueryTimeout, err = parseDuration(envKeyNamespaceQueryTimeout, "0s", 0)
	if err != nil {
		return nil, err
	}

	cfg.MaintainerFilterEnabled, err = parseBool(envKeyMaintainerFilterEnabled, "false")
	if err != nil {
		return nil, err
	}

	cfg.MaxConcurrentNamespaces, err = parseNonNegativeInt(envKeyMaxConcurrentNamespaces, "0")
	if err != nil {
		return nil, err
	}

	cfg.RateLimitBurst, err = parseNonNegativeInt(envKeyRateLimitBurst, "20")
	if err != nil {
		return nil, err
	}

	rateLimitStr := getEnvOrDefault(envKeyRateLimit, "10")

	cfg.RateLimit, err = strconv.ParseFloat(rateLimitStr, 64)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", envKeyRateLimit, err)
	}

	if cfg.RateLimit < 0 {
		return nil, fmt.Errorf("%s must be >= 0: %w", envKeyRateLimit, ErrInvalidValue)
	}

	if cfg.SnapshotSchedule != "" && len(cfg.SnapshotNamespaces) == 0 {
		return nil, fmt.Errorf("%s: %w", envKeySnapshotNamespaces, ErrSnapshotNamespacesMissing)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

func getEnvWithFallback(key, fallbackKey string) string {
	value := os.Getenv(key)
	if value == "" {
		return os.Getenv(fallbackKey)
	}

	return value
}

func parseDuration(key, defaultValue string, minValue time.Duration) (time.Duration, error) {
	value := getEnvOrDefault(key, defaultValue)

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	if d < minValue || d < 0 {
		return 0, fmt.Errorf("%s must be >= %s: %w", key, minValue, ErrInvalidValue)
	}

	return d, nil
}

func parseBool(key, defaultValue string) (bool, error) {
	b, err := strconv.ParseBool(getEnvOrDefault(key, defaultValue))
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}

	return b, nil
}

func parseNonNegativeInt(key, defaultValue string) (int, error) {
	n, err := strconv.Atoi(getEnvOrDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	if n < 0 {
		return 0, fmt.Errorf("%s must be >= 0: %w", key, ErrInvalidValue)
	}

	return n, nil
}

// parseList splits a comma-separated list, dropping blanks and duplicates.
func parseList(value string) []string {
	items := lo.Map(strings.Split(value, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})

	return lo.Uniq(lo.Compact(items))
}
