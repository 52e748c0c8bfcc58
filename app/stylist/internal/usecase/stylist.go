package usecase

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang/geo/s2"

	"github.com/iWorld-y/outfit_radar/app/stylist/internal/repo"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/engine"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/model"
)

const (
	ReasonInvalidArgument = "INVALID_ARGUMENT"
	ReasonUpstream        = "UPSTREAM_UNAVAILABLE"
	ReasonBadUpstream     = "BAD_UPSTREAM_RESPONSE"
	ReasonInternal        = "INTERNAL"
)

// 返回给客户端的固定错误信息
const (
	MsgUpstream    = "upstream service unavailable"
	MsgBadUpstream = "upstream service returned an empty response"
	MsgInternal    = "internal error"
)

// StylistUseCase 校验请求并调用引擎，把引擎错误转换成 Kratos 错误
type StylistUseCase struct {
	analyzer repo.OutfitAnalyzer
	finder   repo.StoreFinder
	log      *log.Helper
}

// NewStylistUseCase 创建穿搭业务逻辑实例
func NewStylistUseCase(analyzer repo.OutfitAnalyzer, finder repo.StoreFinder, logger log.Logger) *StylistUseCase {
	return &StylistUseCase{analyzer: analyzer, finder: finder, log: log.NewHelper(logger)}
}

// AnalyzeURL 按照片 URL 分析
func (uc *StylistUseCase) AnalyzeURL(ctx context.Context, photoURL, language string) (*model.OutfitAnalysis, error) {
	photoURL = strings.TrimSpace(photoURL)
	if photoURL == "" {
		return nil, errors.BadRequest(ReasonInvalidArgument, "photoUrl is required")
	}
	res, err := uc.analyzer.AnalyzeOutfit(ctx, engine.Photo{URL: photoURL}, language)
	if err != nil {
		return nil, uc.convert(err)
	}
	return res, nil
}

// AnalyzeUpload 分析上传的照片字节
func (uc *StylistUseCase) AnalyzeUpload(ctx context.Context, data []byte, mimeType, language string) (*model.OutfitAnalysis, error) {
	if len(data) == 0 {
		return nil, errors.BadRequest(ReasonInvalidArgument, "photo is required")
	}
	// 浏览器常把未知类型报成 octet-stream，交给引擎自己识别
	if mimeType == "application/octet-stream" {
		mimeType = ""
	}
	res, err := uc.analyzer.AnalyzeOutfit(ctx, engine.Photo{Data: data, MIMEType: mimeType}, language)
	if err != nil {
		return nil, uc.convert(err)
	}
	return res, nil
}

// Ask 文字提问
func (uc *StylistUseCase) Ask(ctx context.Context, question, language string) (*model.OutfitAnalysis, error) {
	res, err := uc.analyzer.AskStylist(ctx, question, language)
	if err != nil {
		return nil, uc.convert(err)
	}
	return res, nil
}

// NearbyStores 校验坐标后搜索附近门店
func (uc *StylistUseCase) NearbyStores(ctx context.Context, lat, lng *float64, language string) ([]model.PlaceRecord, error) {
	if lat == nil || lng == nil {
		return nil, errors.BadRequest(ReasonInvalidArgument, "Missing latitude or longitude")
	}
	center := s2.LatLngFromDegrees(*lat, *lng)
	if !center.IsValid() {
		return nil, errors.BadRequest(ReasonInvalidArgument, "Invalid latitude or longitude")
	}

	stores, err := uc.finder.NearbyStores(ctx, center, language)
	if err != nil {
		return nil, uc.convert(err)
	}
	return stores, nil
}

func (uc *StylistUseCase) convert(err error) error {
	switch {
	case stderrors.Is(err, engine.ErrInvalidPhoto),
		stderrors.Is(err, engine.ErrUnsupportedImage),
		stderrors.Is(err, engine.ErrEmptyQuery):
		return errors.BadRequest(ReasonInvalidArgument, err.Error())
	case stderrors.Is(err, engine.ErrEmptyResponse):
		uc.log.Warnf("empty model response: %v", err)
		return errors.New(502, ReasonBadUpstream, MsgBadUpstream)
	case stderrors.Is(err, engine.ErrUpstream),
		stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		// 上游错误里可能带有请求 URL 或响应体，只记录在服务端
		uc.log.Errorf("upstream failure: %v", err)
		return errors.ServiceUnavailable(ReasonUpstream, MsgUpstream)
	}
	uc.log.Errorf("unexpected error: %v", err)
	return errors.InternalServer(ReasonInternal, MsgInternal)
}
