package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"traefikkv/adapters/myredis"
	"traefikkv/domain"

	"github.com/go-kit/log/level"
	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envDockerNetwork   = "DOCKER_NETWORK"
	envHostIP          = "HOST_IP"
	envRedisURL        = "REDIS_URL"
	envRedisTTL        = "REDIS_TTL"
	envRedisRootKey    = "REDIS_ROOT_KEY"
	envRefreshInterval = "REFRESH_INTERVAL"
	envHTTPPort        = "SERVICE_PORT_HTTP"
	envLogLevel        = "LOG_LEVEL"
	envConfigPath      = "CONFIG_PATH"
)

const (
	defaultTTL      = 60 * time.Second
	minTTL          = 2 * time.Second
	maxTTL          = 24 * time.Hour
	refreshLead     = 5 * time.Second
	defaultLogLevel = "info"
)

// Config holds the service configuration loaded by LoadConfig.
// HTTPPort is 0 when the status server is disabled.
type Config struct {
	Addressing domain.EligibilityContext
	Labels     domain.LabelScheme
	Redis      myredis.RedisConfig
	TTL        time.Duration
	Interval   time.Duration
	HTTPPort   int
	LogLevel   level.Option
}

// yamlConfig is the root of the optional CONFIG_PATH file.
type yamlConfig struct {
	Labels yamlLabels `yaml:"labels"`
}

// yamlLabels overrides label names; empty fields keep the defaults.
type yamlLabels struct {
	ProviderPrefix  string `yaml:"provider_prefix"`
	EnableLabel     string `yaml:"enable_label"`
	EnableValue     string `yaml:"enable_value"`
	ServiceLabel    string `yaml:"service_label"`
	ContainerNumber string `yaml:"container_number_label"`
}

func loadYAMLConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out yamlConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoadConfig builds the configuration from environment variables and the optional YAML file at CONFIG_PATH.
// REDIS_URL is only required when entries are written to Redis, i.e. when dryRun is false.
//
// Returns (nil, error) when REDIS_URL is missing, neither DOCKER_NETWORK nor HOST_IP is set, REDIS_TTL is not a
// number of seconds in 2..86400, REFRESH_INTERVAL is not a duration shorter than the TTL, SERVICE_PORT_HTTP is not a
// port, LOG_LEVEL is unknown, or the YAML file cannot be read.
func LoadConfig(dryRun bool) (*Config, error) {
	addressing := domain.EligibilityContext{
		Network: strings.TrimSpace(os.Getenv(envDockerNetwork)),
		HostIP:  strings.TrimSpace(os.Getenv(envHostIP)),
	}
	if err := addressing.Validate(); err != nil {
		return nil, fmt.Errorf("%s or %s is required: %w", envDockerNetwork, envHostIP, err)
	}

	redisURL := strings.TrimSpace(os.Getenv(envRedisURL))
	if redisURL == "" && !dryRun {
		return nil, fmt.Errorf("%s is required", envRedisURL)
	}
	rootKey := strings.Trim(strings.TrimSpace(os.Getenv(envRedisRootKey)), "/")
	if rootKey == "" {
		rootKey = myredis.DefaultRootKey
	}

	ttl, err := parseTTL(os.Getenv(envRedisTTL))
	if err != nil {
		return nil, err
	}
	interval, err := parseInterval(os.Getenv(envRefreshInterval), ttl)
	if err != nil {
		return nil, err
	}

	httpPort := 0
	if s := strings.TrimSpace(os.Getenv(envHTTPPort)); s != "" {
		httpPort, err = strconv.Atoi(s)
		if err != nil || httpPort <= 0 || httpPort > 65535 {
			return nil, fmt.Errorf("%s must be 1-65535, got %q", envHTTPPort, s)
		}
	}

	logLevel, err := parseLogLevel(os.Getenv(envLogLevel))
	if err != nil {
		return nil, err
	}

	labels := domain.DefaultLabelScheme()
	if configPath := strings.TrimSpace(os.Getenv(envConfigPath)); configPath != "" {
		if !filepath.IsAbs(configPath) {
			abs, absErr := filepath.Abs(configPath)
			if absErr != nil {
				return nil, absErr
			}
			configPath = abs
		}
		raw, err := loadYAMLConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
		labels = applyLabelOverrides(labels, raw.Labels)
	}

	return &Config{
		Addressing: addressing,
		Labels:     labels,
		Redis: myredis.RedisConfig{
			URL:     redisURL,
			RootKey: rootKey,
		},
		TTL:      ttl,
		Interval: interval,
		HTTPPort: httpPort,
		LogLevel: logLevel,
	}, nil
}

func parseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultTTL, nil
	}
	seconds, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", envRedisTTL, err)
	}
	if seconds < int(minTTL/time.Second) || seconds > int(maxTTL/time.Second) {
		return 0, fmt.Errorf("%s must be %d-%d seconds, got %d", envRedisTTL, int(minTTL/time.Second), int(maxTTL/time.Second), seconds)
	}
	return time.Duration(seconds) * time.Second, nil
}

// parseInterval defaults to refreshing 5s before entries expire, or at half the TTL when it is 10s or less.
func parseInterval(s string, ttl time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		if ttl <= 2*refreshLead {
			return ttl / 2, nil
		}
		return ttl - refreshLead, nil
	}
	interval, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", envRefreshInterval, err)
	}
	if interval <= 0 || interval >= ttl {
		return 0, fmt.Errorf("%s must be positive and shorter than %s (%s), got %s", envRefreshInterval, envRedisTTL, ttl, interval)
	}
	return interval, nil
}

func parseLogLevel(s string) (level.Option, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", defaultLogLevel:
		return level.AllowInfo(), nil
	case "debug":
		return level.AllowDebug(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	default:
		return nil, fmt.Errorf("%s must be one of debug, info, warn, error, got %q", envLogLevel, s)
	}
}

func applyLabelOverrides(labels domain.LabelScheme, raw yamlLabels) domain.LabelScheme {
	if raw.ProviderPrefix != "" {
		labels.ProviderPrefix = raw.ProviderPrefix
	}
	if raw.EnableLabel != "" {
		labels.EnableLabel = raw.EnableLabel
	}
	if raw.EnableValue != "" {
		labels.EnableValue = raw.EnableValue
	}
	if raw.ServiceLabel != "" {
		labels.ServiceLabel = raw.ServiceLabel
	}
	if raw.ContainerNumber != "" {
		labels.ContainerNumber = raw.ContainerNumber
	}
	return labels
}
