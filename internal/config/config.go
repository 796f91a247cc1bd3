package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every setting the server reads at startup.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Session SessionConfig
	Drawing DrawingConfig
	Mood    MoodConfig
	AI      AIConfig
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	return load(env.Options{})
}

// LoadFrom reads configuration from the given variables only.
func LoadFrom(vars map[string]string) (*Config, error) {
	return load(env.Options{Environment: vars})
}

func load(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	addr, err := listenAddr(cfg.Server.Port)
	if err != nil {
		return nil, err
	}
	cfg.Server.Addr = addr

	if err := cfg.Log.validate(); err != nil {
		return nil, err
	}
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("invalid PLAYMATE_SESSION_TTL value %q: must be positive", cfg.Session.TTL)
	}
	if cfg.Drawing.MaxBytes <= 0 {
		return nil, fmt.Errorf("invalid PLAYMATE_DRAWING_MAX_BYTES value %d: must be positive", cfg.Drawing.MaxBytes)
	}
	if cfg.AI.HistoryLimit < 1 {
		cfg.AI.HistoryLimit = 1
	}

	return &cfg, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
	Addr string `env:"-"`
}

// listenAddr accepts "8080", ":8080" or "127.0.0.1:8080".
func listenAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}
	if strings.Contains(port, ":") {
		return port, nil
	}
	return ":" + port, nil
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `env:"PLAYMATE_LOG_LEVEL" envDefault:"info"`
	Dev   bool   `env:"PLAYMATE_LOG_DEV" envDefault:"false"`
}

func (c LogConfig) validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("invalid PLAYMATE_LOG_LEVEL value %q", c.Level)
	}
}

// SessionConfig bounds how long idle sessions live.
type SessionConfig struct {
	TTL time.Duration `env:"PLAYMATE_SESSION_TTL" envDefault:"2h"`
}

// DrawingConfig toggles the drawing canvas.
type DrawingConfig struct {
	Enabled  bool `env:"PLAYMATE_DRAWING_ENABLED" envDefault:"true"`
	MaxBytes int  `env:"PLAYMATE_DRAWING_MAX_BYTES" envDefault:"2097152"`
}

// MoodConfig points at an optional keyword rule file.
type MoodConfig struct {
	RulesFile string `env:"PLAYMATE_MOOD_RULES_FILE"`
}

// AIConfig describes the optional LLM companion.
type AIConfig struct {
	APIKey         string   `env:"ARK_API_KEY"`
	AccessKey      string   `env:"ARK_ACCESS_KEY"`
	SecretKey      string   `env:"ARK_SECRET_KEY"`
	Model          string   `env:"ARK_MODEL"`
	BaseURL        string   `env:"ARK_BASE_URL" envDefault:"https://ark.cn-beijing.volces.com/api/v3"`
	Region         string   `env:"ARK_REGION" envDefault:"cn-beijing"`
	Temperature    *float64 `env:"ARK_TEMPERATURE"`
	TopP           *float64 `env:"ARK_TOP_P"`
	MaxTokens      *int     `env:"ARK_MAX_TOKENS"`
	StreamResponse bool     `env:"ARK_STREAM" envDefault:"true"`
	HistoryLimit   int      `env:"ARK_HISTORY_LIMIT" envDefault:"10"`
}

// Enabled reports whether a model and credentials were supplied.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel creates an Ark chat model from the configuration.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: set ARK_MODEL with ARK_API_KEY or ARK_ACCESS_KEY/ARK_SECRET_KEY")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}
