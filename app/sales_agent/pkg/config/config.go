package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Search      SearchConfig      `yaml:"search" json:"search"`
	SMTP        SMTPConfig        `yaml:"smtp" json:"smtp"`
	Storage     StorageConfig     `yaml:"storage" json:"storage"`
	Log         LogConfig         `yaml:"log" json:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Enrich      EnrichConfig      `yaml:"enrich" json:"enrich"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	APIKey  string `yaml:"api_key" json:"api_key"`
	Model   string `yaml:"model" json:"model"`
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Provider string        `yaml:"provider" json:"provider"`
	Tavily   TavilyConfig  `yaml:"tavily" json:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng" json:"searxng"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key" json:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	Timeout int    `yaml:"timeout" json:"timeout"`
}

// SMTPConfig holds the mail relay endpoint. Sender credentials are never
// read from the file, only from the environment.
type SMTPConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`

	SenderEmail    string `yaml:"-" json:"-"`
	SenderPassword string `yaml:"-" json:"-"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `yaml:"driver" json:"driver"` // file or postgres
	Dir    string `yaml:"dir" json:"dir"`
	DSN    string `yaml:"dsn" json:"dsn"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps" json:"qps"`
	RPM int `yaml:"rpm" json:"rpm"`
}

// EnrichConfig controls readability fetching of thin search snippets.
type EnrichConfig struct {
	Enabled    bool `yaml:"enabled" json:"enabled"`
	MinContent int  `yaml:"min_content" json:"min_content"`
	MaxContent int  `yaml:"max_content" json:"max_content"`
	Timeout    int  `yaml:"timeout" json:"timeout"`
}

const (
	DefaultLLMBaseURL = "https://api.groq.com/openai/v1"
	DefaultLLMModel   = "openai/gpt-oss-20b"
	DefaultSMTPHost   = "smtp.gmail.com"
	DefaultSMTPPort   = 587
)

// Environment variable names.
const (
	EnvSenderEmail    = "SENDER_EMAIL"
	EnvSenderPassword = "SENDER_PASSWORD"
	EnvTavilyAPIKey   = "TAVILY_API_KEY"
	EnvLLMAPIKey      = "LLM_API_KEY"
)

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// .env 文件可选
	_ = godotenv.Load()
	cfg.ApplyEnv()
	cfg.ApplyDefaults()

	return &cfg, nil
}

// ApplyEnv overlays secrets from the process environment.
func (c *Config) ApplyEnv() {
	c.SMTP.SenderEmail = os.Getenv(EnvSenderEmail)
	c.SMTP.SenderPassword = os.Getenv(EnvSenderPassword)
	if v := os.Getenv(EnvTavilyAPIKey); v != "" {
		c.Search.Tavily.APIKey = v
	}
	if v := os.Getenv(EnvLLMAPIKey); v != "" {
		c.LLM.APIKey = v
	}
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = DefaultLLMBaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultLLMModel
	}
	if c.Search.Provider == "" {
		c.Search.Provider = "tavily"
	}
	if c.SMTP.Host == "" {
		c.SMTP.Host = DefaultSMTPHost
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = DefaultSMTPPort
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "file"
	}
	if c.Storage.Dir == "" {
		c.Storage.Dir = "."
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Enrich.MinContent == 0 {
		c.Enrich.MinContent = 500
	}
	if c.Enrich.MaxContent == 0 {
		c.Enrich.MaxContent = 5000
	}
	if c.Enrich.Timeout == 0 {
		c.Enrich.Timeout = 30
	}
}
