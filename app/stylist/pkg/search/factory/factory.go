package factory

import (
	"fmt"

	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/config"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/googleplaces"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/overpass"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/search"
)

// NewSearcher 根据配置创建附近地点搜索实例
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	switch cfg.Places.Provider {
	case "", "google":
		apiKey := cfg.Places.Google.APIKey
		if apiKey == "" {
			apiKey = cfg.LLM.APIKey // 兼容只配置了一个 GOOGLE_API_KEY 的部署
		}
		if apiKey == "" {
			return nil, fmt.Errorf("google places api key is missing")
		}
		return googleplaces.NewClient(apiKey, cfg.Places.Google.BaseURL), nil

	case "overpass":
		return overpass.NewClient(cfg.Places.Overpass.BaseURL, cfg.Places.Overpass.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown places provider: %s", cfg.Places.Provider)
	}
}
