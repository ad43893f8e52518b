// Package config loads settings from .env files, the environment and command
// line flags, in increasing order of precedence.
package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hamzaessahbaoui/travel-planner/pkg/serpapi"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

// Setting keys. Each is also the environment variable name.
const (
	KeySerpAPIKey      = "SERPAPI_API_KEY"
	KeySerpAPIBaseURL  = "SERPAPI_BASE_URL"
	KeySerpAPITimeout  = "SERPAPI_TIMEOUT"
	KeyAnthropicAPIKey = "ANTHROPIC_API_KEY"
	KeyAnthropicModel  = "ANTHROPIC_MODEL"
	KeyAgentMaxTurns   = "AGENT_MAX_TURNS"
	KeyPlanTimeout     = "PLAN_TIMEOUT"
	KeyListenAddr      = "LISTEN_ADDR"
	KeyLogLevel        = "LOG_LEVEL"
	KeyLogFormat       = "LOG_FORMAT"
)

// Config holds every runtime setting.
type Config struct {
	SerpAPIKey      string
	SerpAPIBaseURL  string
	SerpAPITimeout  time.Duration
	AnthropicAPIKey string
	AnthropicModel  string
	AgentMaxTurns   int
	PlanTimeout     time.Duration
	ListenAddr      string
	LogLevel        string
	LogFormat       string
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeySerpAPIBaseURL, serpapi.DefaultBaseURL)
	v.SetDefault(KeySerpAPITimeout, serpapi.DefaultTimeout)
	v.SetDefault(KeyAgentMaxTurns, 15)
	v.SetDefault(KeyPlanTimeout, 5*time.Minute)
	v.SetDefault(KeyListenAddr, ":8080")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

// Load reads envFiles (missing files are ignored), binds the environment and
// returns the resolved Config. A missing SerpAPI key is a ConfigurationError.
func Load(v *viper.Viper, envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	SetDefaults(v)
	v.AutomaticEnv()

	cfg := Config{
		SerpAPIKey:      strings.TrimSpace(v.GetString(KeySerpAPIKey)),
		SerpAPIBaseURL:  v.GetString(KeySerpAPIBaseURL),
		SerpAPITimeout:  v.GetDuration(KeySerpAPITimeout),
		AnthropicAPIKey: strings.TrimSpace(v.GetString(KeyAnthropicAPIKey)),
		AnthropicModel:  v.GetString(KeyAnthropicModel),
		AgentMaxTurns:   v.GetInt(KeyAgentMaxTurns),
		PlanTimeout:     v.GetDuration(KeyPlanTimeout),
		ListenAddr:      v.GetString(KeyListenAddr),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFormat:       v.GetString(KeyLogFormat),
	}
	if cfg.SerpAPIKey == "" {
		return Config{}, &travel.ConfigurationError{Key: KeySerpAPIKey}
	}
	return cfg, nil
}

// RequireModel fails when the settings needed for chat are missing.
func (c Config) RequireModel() error {
	if c.AnthropicAPIKey == "" {
		return &travel.ConfigurationError{Key: KeyAnthropicAPIKey}
	}
	return nil
}

// Logger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
