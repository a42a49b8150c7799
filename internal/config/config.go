package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	HTTPAddr          string
	UserID            string
	DBDSN             string
	ClassifierMode    string // "http" or "vader"
	ClassifierURL     string
	ClassifierTimeout time.Duration
	MaxBodyBytes      int64
	ArtifactDir       string
	LLMProvider       string
	LLMModel          string
	OpenAIBaseURL     string
	OpenAIAPIKey      string
	AnthropicBaseURL  string
	AnthropicAPIKey   string
	ChatHistoryLimit  int
	MQTTBrokerURL     string
	MQTTClientID      string
	MQTTUsername      string
	MQTTPassword      string
	MQTTTopicPrefix   string
}

// fileConfig mirrors ServerConfig for the optional YAML file. Pointer fields
// distinguish "absent" from "set to zero value".
type fileConfig struct {
	HTTPAddr                 *string `yaml:"http_addr"`
	UserID                   *string `yaml:"user_id"`
	DBDSN                    *string `yaml:"db_dsn"`
	ClassifierMode           *string `yaml:"classifier_mode"`
	ClassifierURL            *string `yaml:"classifier_url"`
	ClassifierTimeoutSeconds *int    `yaml:"classifier_timeout_seconds"`
	MaxBodyBytes             *int64  `yaml:"max_body_bytes"`
	ArtifactDir              *string `yaml:"artifact_dir"`
	LLMProvider              *string `yaml:"llm_provider"`
	LLMModel                 *string `yaml:"llm_model"`
	OpenAIBaseURL            *string `yaml:"openai_base_url"`
	AnthropicBaseURL         *string `yaml:"anthropic_base_url"`
	ChatHistoryLimit         *int    `yaml:"chat_history_limit"`
	MQTTBrokerURL            *string `yaml:"mqtt_broker_url"`
	MQTTClientID             *string `yaml:"mqtt_client_id"`
	MQTTTopicPrefix          *string `yaml:"mqtt_topic_prefix"`
}

// LoadServerConfig builds the config through the hierarchy
// defaults -> YAML file (optional) -> environment variables.
// Secrets (API keys, DSN, MQTT credentials) come from the environment only.
// Callers apply CLI flag overrides on top and then call Validate.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := defaultServerConfig()

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return ServerConfig{}, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func (c ServerConfig) Validate() error {
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	switch c.ClassifierMode {
	case "http":
		if c.ClassifierURL == "" {
			return fmt.Errorf("CLASSIFIER_URL is required when CLASSIFIER_MODE=http")
		}
	case "vader":
	default:
		return fmt.Errorf("unsupported classifier mode: %s", c.ClassifierMode)
	}
	return nil
}

// ChatEnabled reports whether the companion chat can be wired: a provider
// with its key present.
func (c ServerConfig) ChatEnabled() bool {
	switch c.LLMProvider {
	case "openai":
		return c.OpenAIAPIKey != ""
	case "claude":
		return c.AnthropicAPIKey != ""
	}
	return false
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{
		HTTPAddr:          ":5001",
		UserID:            "demo-user",
		ClassifierMode:    "vader",
		ClassifierTimeout: 30 * time.Second,
		MaxBodyBytes:      65536,
		ArtifactDir:       "out",
		LLMProvider:       "openai",
		LLMModel:          "gpt-4o-mini",
		OpenAIBaseURL:     "https://api.openai.com/v1",
		AnthropicBaseURL:  "https://api.anthropic.com",
		ChatHistoryLimit:  5,
		MQTTClientID:      "happyminds-server",
		MQTTTopicPrefix:   "happyminds",
	}
}

func applyFile(cfg *ServerConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setString(&cfg.HTTPAddr, fc.HTTPAddr)
	setString(&cfg.UserID, fc.UserID)
	setString(&cfg.DBDSN, fc.DBDSN)
	setString(&cfg.ClassifierMode, fc.ClassifierMode)
	setString(&cfg.ClassifierURL, fc.ClassifierURL)
	if fc.ClassifierTimeoutSeconds != nil {
		cfg.ClassifierTimeout = time.Duration(*fc.ClassifierTimeoutSeconds) * time.Second
	}
	if fc.MaxBodyBytes != nil {
		cfg.MaxBodyBytes = *fc.MaxBodyBytes
	}
	setString(&cfg.ArtifactDir, fc.ArtifactDir)
	setString(&cfg.LLMProvider, fc.LLMProvider)
	setString(&cfg.LLMModel, fc.LLMModel)
	setString(&cfg.OpenAIBaseURL, fc.OpenAIBaseURL)
	setString(&cfg.AnthropicBaseURL, fc.AnthropicBaseURL)
	if fc.ChatHistoryLimit != nil {
		cfg.ChatHistoryLimit = *fc.ChatHistoryLimit
	}
	setString(&cfg.MQTTBrokerURL, fc.MQTTBrokerURL)
	setString(&cfg.MQTTClientID, fc.MQTTClientID)
	setString(&cfg.MQTTTopicPrefix, fc.MQTTTopicPrefix)
	return nil
}

func applyEnv(cfg *ServerConfig) {
	cfg.HTTPAddr = getenvDefault("HTTP_ADDR", cfg.HTTPAddr)
	cfg.UserID = getenvDefault("USER_ID", cfg.UserID)
	cfg.DBDSN = getenvDefault("DB_DSN", cfg.DBDSN)
	cfg.ClassifierMode = strings.ToLower(getenvDefault("CLASSIFIER_MODE", cfg.ClassifierMode))
	cfg.ClassifierURL = getenvDefault("CLASSIFIER_URL", cfg.ClassifierURL)
	if v := os.Getenv("CLASSIFIER_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ClassifierTimeout = time.Duration(n) * time.Second
		}
	}
	cfg.MaxBodyBytes = int64(getenvIntDefault("MAX_BODY_BYTES", int(cfg.MaxBodyBytes)))
	cfg.ArtifactDir = getenvDefault("ARTIFACT_DIR", cfg.ArtifactDir)
	cfg.LLMProvider = strings.ToLower(getenvDefault("LLM_PROVIDER", cfg.LLMProvider))
	cfg.LLMModel = getenvDefault("LLM_MODEL", cfg.LLMModel)
	cfg.OpenAIBaseURL = getenvDefault("OPENAI_BASE_URL", cfg.OpenAIBaseURL)
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AnthropicBaseURL = getenvDefault("ANTHROPIC_BASE_URL", cfg.AnthropicBaseURL)
	cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.ChatHistoryLimit = getenvIntDefault("CHAT_HISTORY_LIMIT", cfg.ChatHistoryLimit)
	cfg.MQTTBrokerURL = getenvDefault("MQTT_BROKER_URL", cfg.MQTTBrokerURL)
	cfg.MQTTClientID = getenvDefault("MQTT_CLIENT_ID", cfg.MQTTClientID)
	cfg.MQTTUsername = os.Getenv("MQTT_USERNAME")
	cfg.MQTTPassword = os.Getenv("MQTT_PASSWORD")
	cfg.MQTTTopicPrefix = getenvDefault("MQTT_TOPIC_PREFIX", cfg.MQTTTopicPrefix)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func getenvDefault(key, val string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return val
}

func getenvIntDefault(key string, val int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return val
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return val
	}
	return n
}
