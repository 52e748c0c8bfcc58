package server

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/outfit_radar/app/stylist/internal/conf"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/config"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/engine"
	stLogger "github.com/iWorld-y/outfit_radar/app/stylist/pkg/logger"
)

// NewStylistEngine 初始化穿搭引擎
func NewStylistEngine(c *conf.Stylist, logger log.Logger) (*engine.Engine, func(), error) {
	cfg := EngineConfig(c)
	helper := log.NewHelper(logger)

	// 初始化日志
	if err := stLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init stylist logger: %v", err)
		_ = stLogger.InitLogger("info", "") // 降级处理
	}

	if err := cfg.Validate(); err != nil {
		helper.Errorf("Invalid stylist config: %v", err)
		return nil, nil, err
	}

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		helper.Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("Cleaning up stylist engine")
	}
	return eng, cleanup, nil
}

// EngineConfig 将 internal/conf.Stylist 转换为 pkg/config.Config 并填充默认值
func EngineConfig(c *conf.Stylist) *config.Config {
	cfg := &config.Config{}
	if c == nil {
		cfg.ApplyDefaults()
		return cfg
	}

	cfg.Language = c.Language
	if c.Llm != nil {
		cfg.LLM = config.LLMConfig{
			BaseURL:   c.Llm.BaseUrl,
			APIKey:    c.Llm.ApiKey,
			Model:     c.Llm.Model,
			MaxTokens: int(c.Llm.MaxTokens),
			Timeout:   int(c.Llm.Timeout),
		}
	}
	if p := c.Places; p != nil {
		cfg.Places.Provider = p.Provider
		cfg.Places.Radius = int(p.Radius)
		cfg.Places.Language = p.Language
		cfg.Places.Keywords = p.Keywords
		if p.Google != nil {
			cfg.Places.Google = config.GoogleConfig{APIKey: p.Google.ApiKey, BaseURL: p.Google.BaseUrl}
		}
		if p.Overpass != nil {
			cfg.Places.Overpass = config.OverpassConfig{BaseURL: p.Overpass.BaseUrl, Timeout: int(p.Overpass.Timeout)}
		}
	}
	if c.Log != nil {
		cfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
	}

	cfg.ApplyDefaults()
	return cfg
}
