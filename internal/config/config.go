package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type PostgresConfig struct {
	URL string `yaml:"url"`
}

type StorageConfig struct {
	// Backend selects where assistant state lives: file | redis | postgres | memory.
	Backend  string         `yaml:"backend"`
	Path     string         `yaml:"path"` // file backend: directory for state documents
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"` // per-request; explicit, not transport default
}

type ChatConfig struct {
	Identity    string        `yaml:"identity"` // logical user the transcript is scoped to
	Language    string        `yaml:"language"`
	UploadDelay time.Duration `yaml:"upload_delay"` // simulated attachment-processing delay
}

type CoachConfig struct {
	OllamaURL    string `yaml:"ollama_url"`
	OllamaModel  string `yaml:"ollama_model"`
	GeminiKey    string `yaml:"gemini_key"`
	GeminiURL    string `yaml:"gemini_url"`
	OpenAIKey    string `yaml:"openai_key"`
	OpenAIBase   string `yaml:"openai_base"`
	DefaultModel string `yaml:"default_model"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type NotifierConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

type Config struct {
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	API      APIConfig      `yaml:"api"`
	Chat     ChatConfig     `yaml:"chat"`
	Coach    CoachConfig    `yaml:"coach"`
	Server   ServerConfig   `yaml:"server"`
	Notifier NotifierConfig `yaml:"notifier"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "file"
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "./state"
	}
	if cfg.Storage.Redis.TTL <= 0 {
		cfg.Storage.Redis.TTL = 0 // persisted state does not expire by default
	}
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:5000"
	}
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.Chat.Identity == "" {
		cfg.Chat.Identity = "guest"
	}
	if cfg.Chat.Language == "" {
		cfg.Chat.Language = "en"
	}
	if cfg.Chat.UploadDelay <= 0 {
		cfg.Chat.UploadDelay = 2 * time.Second
	}
	if cfg.Coach.OllamaURL == "" {
		cfg.Coach.OllamaURL = "http://localhost:11434"
	}
	if cfg.Coach.OllamaModel == "" {
		cfg.Coach.OllamaModel = "llama3.2:3b"
	}
	if cfg.Coach.OpenAIBase == "" {
		cfg.Coach.OpenAIBase = "https://api.openai.com/v1"
	}
	if cfg.Coach.DefaultModel == "" {
		cfg.Coach.DefaultModel = "gpt-4o-mini"
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Notifier.Interval <= 0 {
		cfg.Notifier.Interval = 5 * time.Minute
	}
}

func (cfg *Config) validate() error {
	switch cfg.Storage.Backend {
	case "file", "memory":
	case "redis":
		if cfg.Storage.Redis.URL == "" {
			return errors.New("storage.redis.url is required for the redis backend")
		}
	case "postgres":
		if cfg.Storage.Postgres.URL == "" {
			return errors.New("storage.postgres.url is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	return nil
}
