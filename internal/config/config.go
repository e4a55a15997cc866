package config

import (
	"fmt"
	"os"
	"strings"
)

// Fixed generation parameters for the OpenRouter upstream. These are part of
// the product behaviour rather than deployment knobs, so they are not
// environment-driven.
const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "openai/gpt-4o-mini"
	DefaultSiteURL = "https://ai-1-itlj.onrender.com"

	AppTitle    = "Healthcare Assistant"
	Temperature = 0.7
	MaxTokens   = 400
)

// Config aggregates all settings for the service.
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Store    StoreConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		Upstream: loadUpstreamConfig(),
		Store:    loadStoreConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// UpstreamConfig describes the OpenRouter chat-completion upstream.
type UpstreamConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	SiteURL string
}

// Enabled reports whether an API key is configured. Without one the service
// still runs, but chat replies degrade to the auth warning.
func (c UpstreamConfig) Enabled() bool {
	return c.APIKey != ""
}

// KeyPrefix returns a masked prefix of the API key for diagnostics, or ""
// when no key is set. The full secret is never exposed.
func (c UpstreamConfig) KeyPrefix() string {
	if c.APIKey == "" {
		return ""
	}
	if len(c.APIKey) <= 20 {
		return c.APIKey
	}
	return c.APIKey[:20]
}

func loadUpstreamConfig() UpstreamConfig {
	return UpstreamConfig{
		APIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		BaseURL: getEnvOrDefault("OPENROUTER_BASE_URL", DefaultBaseURL),
		Model:   DefaultModel,
		SiteURL: getEnvOrDefault("SITE_URL", DefaultSiteURL),
	}
}

// StoreConfig describes transcript persistence.
type StoreConfig struct {
	HistoryFile string
}

func loadStoreConfig() StoreConfig {
	return StoreConfig{
		HistoryFile: getEnvOrDefault("CHAT_HISTORY_FILE", "chat_history.json"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
