package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Provider describes one OpenAI-compatible backend. Providers are tried in
// the order they appear in the config; the first one with a key configured
// serves admin and server-side requests.
type Provider struct {
	Name        string `yaml:"name"`
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	APIKey      string `yaml:"-"`
	ChatModel   string `yaml:"chat_model"`
	EmbedModel  string `yaml:"embed_model"`
	KeyPrefix   string `yaml:"key_prefix"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// IndexConfig selects and configures the vector index backend.
type IndexConfig struct {
	Backend     string `yaml:"backend"` // "sqlite" or "postgres"
	Path        string `yaml:"path"`
	PostgresDSN string `yaml:"-"`
}

// IngestConfig configures the three document origins and the splitter.
type IngestConfig struct {
	RepoURL      string `yaml:"repo_url"`
	CloneDir     string `yaml:"clone_dir"`
	ResumePath   string `yaml:"resume_path"`
	DataDir      string `yaml:"data_dir"`
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
}

// ChatConfig holds generation tunables shared by chat and document endpoints.
type ChatConfig struct {
	Temperature    float64 `yaml:"temperature"`
	TopK           int     `yaml:"top_k"`
	AllowNoContext bool    `yaml:"allow_no_context"`
}

// Config is the root configuration, passed explicitly to constructors.
type Config struct {
	Addr        string       `yaml:"addr"`
	ProfileName string       `yaml:"profile_name"`
	AdminSecret string       `yaml:"-"`
	Index       IndexConfig  `yaml:"index"`
	Ingest      IngestConfig `yaml:"ingest"`
	Chat        ChatConfig   `yaml:"chat"`
	Providers   []Provider   `yaml:"providers"`
}

// Load reads the optional YAML config at path and fills secrets from the
// environment. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyDefaults(cfg)

	cfg.AdminSecret = os.Getenv("ADMIN_SECRET")
	cfg.Index.PostgresDSN = os.Getenv("DATABASE_URL")
	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	for i := range cfg.Providers {
		p := &cfg.Providers[i]
		if p.APIKeyEnv != "" {
			p.APIKey = os.Getenv(p.APIKeyEnv)
		}
	}

	return cfg, nil
}

// FirstConfiguredProvider returns the highest-priority provider that has a
// key available, or nil when none does.
func (c *Config) FirstConfiguredProvider() *Provider {
	for i := range c.Providers {
		if c.Providers[i].APIKey != "" {
			return &c.Providers[i]
		}
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Addr:        ":8000",
		ProfileName: "Olajide",
		Index: IndexConfig{
			Backend: "sqlite",
			Path:    "./index.db",
		},
		Ingest: IngestConfig{
			RepoURL:      "https://github.com/Olajcodes/Olajcodes",
			CloneDir:     "./temp_repo",
			ResumePath:   "Profile.pdf",
			DataDir:      "./data",
			ChunkSize:    1000,
			ChunkOverlap: 200,
		},
		Chat: ChatConfig{
			Temperature: 0.3,
			TopK:        6,
		},
		Providers: []Provider{
			{
				Name:       "openai",
				BaseURL:    "https://api.openai.com/v1",
				APIKeyEnv:  "OPENAI_API_KEY",
				ChatModel:  "gpt-4o-mini",
				EmbedModel: "text-embedding-3-small",
				KeyPrefix:  "sk-",
			},
			{
				Name:       "groq",
				BaseURL:    "https://api.groq.com/openai/v1",
				APIKeyEnv:  "GROQ_API_KEY",
				ChatModel:  "llama-3.3-70b-versatile",
				KeyPrefix:  "gsk_",
			},
			{
				Name:       "openrouter",
				BaseURL:    "https://openrouter.ai/api/v1",
				APIKeyEnv:  "OPENROUTER_API_KEY",
				ChatModel:  "openai/gpt-4o-mini",
				KeyPrefix:  "sk-or-",
			},
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Ingest.ChunkSize <= 0 {
		cfg.Ingest.ChunkSize = 1000
	}
	if cfg.Ingest.ChunkOverlap < 0 {
		cfg.Ingest.ChunkOverlap = 200
	}
	if cfg.Chat.TopK <= 0 {
		cfg.Chat.TopK = 6
	}
	// An explicit temperature of zero is a valid setting; only negative
	// values fall back to the default.
	if cfg.Chat.Temperature < 0 {
		cfg.Chat.Temperature = 0.3
	}
	if cfg.Index.Backend == "" {
		cfg.Index.Backend = "sqlite"
	}
	for i := range cfg.Providers {
		p := &cfg.Providers[i]
		if p.TimeoutSecs <= 0 {
			p.TimeoutSecs = 60
		}
		if p.KeyPrefix == "" {
			p.KeyPrefix = "sk-"
		}
	}
}
