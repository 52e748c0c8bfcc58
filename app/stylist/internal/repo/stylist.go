package repo

import (
	"context"

	"github.com/golang/geo/s2"

	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/engine"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/model"
)

// OutfitAnalyzer 穿搭分析接口，由 engine.Engine 实现
type OutfitAnalyzer interface {
	// AnalyzeOutfit 分析一张照片
	AnalyzeOutfit(ctx context.Context, photo engine.Photo, language string) (*model.OutfitAnalysis, error)
	// AskStylist 文字提问
	AskStylist(ctx context.Context, question, language string) (*model.OutfitAnalysis, error)
}

// StoreFinder 附近门店搜索接口，由 engine.Engine 实现
type StoreFinder interface {
	NearbyStores(ctx context.Context, center s2.LatLng, language string) ([]model.PlaceRecord, error)
}
