package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 引擎配置结构体
type Config struct {
	LLM    LLMConfig    `yaml:"llm"`
	Places PlacesConfig `yaml:"places"`
	Log    LogConfig    `yaml:"log"`
	// Language 默认回复语言：ru 或 en
	Language string `yaml:"language"`
}

// LLMConfig LLM 相关配置（Gemini 的 OpenAI 兼容接口）
type LLMConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	Timeout   int    `yaml:"timeout"` // 秒
}

// PlacesConfig 附近门店搜索配置
type PlacesConfig struct {
	Provider string         `yaml:"provider"` // google 或 overpass
	Radius   int            `yaml:"radius"`   // 米
	Language string         `yaml:"language"` // 请求未指定语言时使用，默认 en
	Keywords []string       `yaml:"keywords"`
	Google   GoogleConfig   `yaml:"google"`
	Overpass OverpassConfig `yaml:"overpass"`
}

// GoogleConfig Google Places 配置
type GoogleConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// OverpassConfig OpenStreetMap Overpass 配置
type OverpassConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

const (
	DefaultBaseURL   = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultModel     = "gemini-1.5-flash"
	DefaultMaxTokens = 3000
	DefaultLanguage  = "ru"
	DefaultRadius    = 3000

	DefaultPlacesLanguage = "en"
)

// DefaultKeywords 默认搜索的地点类型，顺序决定去重时保留哪个关键词
var DefaultKeywords = []string{"shopping_mall", "clothing_store"}

// LoadConfig 从指定路径加载配置，文件中的 ${VAR} 会用环境变量替换
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// ApplyDefaults 填充未配置的字段
func (c *Config) ApplyDefaults() {
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = DefaultBaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
	}
	if c.LLM.MaxTokens <= 0 {
		c.LLM.MaxTokens = DefaultMaxTokens
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.Places.Provider == "" {
		c.Places.Provider = "google"
	}
	if c.Places.Radius <= 0 {
		c.Places.Radius = DefaultRadius
	}
	if c.Places.Language == "" {
		c.Places.Language = DefaultPlacesLanguage
	}
	if len(c.Places.Keywords) == 0 {
		c.Places.Keywords = append([]string(nil), DefaultKeywords...)
	}
	if c.Places.Google.APIKey == "" {
		// 部署通常只有一个 GOOGLE_API_KEY，同时用于 Gemini 和 Places
		c.Places.Google.APIKey = c.LLM.APIKey
	}
}

// Validate 检查必填项
func (c *Config) Validate() error {
	var errs []error
	if c.LLM.APIKey == "" {
		errs = append(errs, errors.New("llm.api_key is missing"))
	}
	switch c.Places.Provider {
	case "google":
		if c.Places.Google.APIKey == "" {
			errs = append(errs, errors.New("places.google.api_key is missing"))
		}
	case "overpass":
	default:
		errs = append(errs, fmt.Errorf("unknown places provider: %s", c.Places.Provider))
	}
	return errors.Join(errs...)
}
