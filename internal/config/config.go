package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "automation-alert.yaml"

type Config struct {
	APIPort  string
	LogLevel string

	LLMProvider       string
	LLMModel          string
	LLMMaxTokens      int
	LLMTimeoutSeconds int
	AnthropicAPIKey   string
	GeminiAPIKey      string
	OllamaURL         string

	ONetBaseURL        string
	ONetUsername       string
	ONetPassword       string
	ONetRateLimitRPS   float64
	ONetTimeoutSeconds int

	NATSURL              string
	NATSRequestSubject   string
	NATSAlertSubject     string
	AlertsPublishEnabled bool

	APIRateLimitRPS   float64
	APIRateLimitBurst int
	APIMaxInFlight    int

	RetryMaxAttempts int
	BreakerEnabled   bool

	WorkerMetricsPort string
}

func (c Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLMTimeoutSeconds) * time.Second
}

func (c Config) ONetTimeout() time.Duration {
	return time.Duration(c.ONetTimeoutSeconds) * time.Second
}

// Load reads the optional YAML file named by CONFIG_PATH, then lets
// environment variables override it. A missing file is not an error.
func Load() (Config, error) {
	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}
	file, err := readFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			file = nil
		} else {
			return Config{}, err
		}
	}
	return load(source{file: file}), nil
}

func load(src source) Config {
	return Config{
		APIPort:  src.mustEnv("API_PORT", "8080"),
		LogLevel: src.mustEnv("LOG_LEVEL", "info"),

		LLMProvider:       strings.ToLower(src.mustEnv("LLM_PROVIDER", "gemini")),
		LLMModel:          src.mustEnv("LLM_MODEL", ""),
		LLMMaxTokens:      src.mustEnvInt("LLM_MAX_TOKENS", 8192),
		LLMTimeoutSeconds: src.mustEnvInt("LLM_TIMEOUT_SECONDS", 120),
		AnthropicAPIKey:   src.mustEnv("ANTHROPIC_API_KEY", ""),
		GeminiAPIKey:      src.mustEnv("GEMINI_API_KEY", ""),
		OllamaURL:         src.mustEnv("OLLAMA_URL", "http://localhost:11434"),

		ONetBaseURL:        src.mustEnv("ONET_BASE_URL", "https://services.onetcenter.org/ws"),
		ONetUsername:       src.mustEnv("ONET_USERNAME", ""),
		ONetPassword:       src.mustEnv("ONET_PASSWORD", ""),
		ONetRateLimitRPS:   src.mustEnvFloat("ONET_RATE_LIMIT_RPS", 5),
		ONetTimeoutSeconds: src.mustEnvInt("ONET_TIMEOUT_SECONDS", 30),

		NATSURL:              src.mustEnv("NATS_URL", "nats://localhost:4222"),
		NATSRequestSubject:   src.mustEnv("NATS_REQUEST_SUBJECT", "automation.score.requested"),
		NATSAlertSubject:     src.mustEnv("NATS_ALERT_SUBJECT", "automation.alert.scored"),
		AlertsPublishEnabled: src.mustEnvBool("ALERTS_PUBLISH_ENABLED", false),

		APIRateLimitRPS:   src.mustEnvFloat("API_RATE_LIMIT_RPS", 5),
		APIRateLimitBurst: src.mustEnvInt("API_RATE_LIMIT_BURST", 10),
		APIMaxInFlight:    src.mustEnvInt("API_MAX_IN_FLIGHT", 8),

		RetryMaxAttempts: src.mustEnvInt("RETRY_MAX_ATTEMPTS", 3),
		BreakerEnabled:   src.mustEnvBool("BREAKER_ENABLED", true),

		WorkerMetricsPort: src.mustEnv("WORKER_METRICS_PORT", "9090"),
	}
}

// readFile flattens the YAML file into upper-cased keys so that
// `llm_provider: anthropic` and LLM_PROVIDER name the same setting.
func readFile(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	out := make(map[string]string, len(doc))
	for key, value := range doc {
		if value == nil {
			continue
		}
		switch value.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("parse config file %s: key %q must be a scalar", path, key)
		}
		out[strings.ToUpper(strings.TrimSpace(key))] = fmt.Sprint(value)
	}
	return out, nil
}

type source struct {
	file map[string]string
}

func (s source) lookup(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return s.file[key]
}

func (s source) mustEnv(key, fallback string) string {
	v := s.lookup(key)
	if v == "" {
		return fallback
	}
	return v
}

func (s source) mustEnvInt(key string, fallback int) int {
	v := s.lookup(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (s source) mustEnvFloat(key string, fallback float64) float64 {
	v := s.lookup(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}

func (s source) mustEnvBool(key string, fallback bool) bool {
	v := s.lookup(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
