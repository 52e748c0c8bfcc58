package search

import (
	"context"

	"github.com/golang/geo/s2"

	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/places"
)

// Searcher 定义通用的附近地点搜索接口
type Searcher interface {
	// Name 返回提供方名称，用于日志和指标
	Name() string
	// Nearby 按单个关键词搜索 Location 周围 Radius 米内的地点
	Nearby(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Location s2.LatLng
	Radius   int    // 米
	Keyword  string // 地点类型，如 clothing_store
	Language string
}

// Response 通用搜索响应，Places 保持上游顺序
type Response struct {
	Places []places.RawPlace
}
