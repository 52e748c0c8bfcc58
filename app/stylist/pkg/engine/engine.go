package engine

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gabriel-vasile/mimetype"
	"github.com/golang/geo/s2"
	"golang.org/x/sync/errgroup"

	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/config"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/logger"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/metrics"
	dm "github.com/iWorld-y/outfit_radar/app/stylist/pkg/model"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/places"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/search"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/search/factory"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/section"
)

var (
	// ErrInvalidPhoto 照片既没有 URL 也没有数据，或者两者都有
	ErrInvalidPhoto = errors.New("exactly one of photo url or photo data is required")
	// ErrUnsupportedImage 上传的数据不是图片
	ErrUnsupportedImage = errors.New("unsupported image type")
	// ErrEmptyQuery 文字提问为空
	ErrEmptyQuery = errors.New("question is required")
	// ErrUpstream LLM 或地点搜索调用失败
	ErrUpstream = errors.New("upstream call failed")
	// ErrEmptyResponse 模型返回了空内容
	ErrEmptyResponse = errors.New("empty model response")
)

// Engine 核心处理引擎：把请求转发给 LLM 和地点搜索，再整理结果
type Engine struct {
	cfg       *config.Config
	chatModel model.BaseChatModel
	searcher  search.Searcher
}

// NewEngine 按配置创建 LLM 和搜索客户端
func NewEngine(cfg *config.Config) (*Engine, error) {
	ctx := context.Background()

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		Timeout: time.Duration(cfg.LLM.Timeout) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	searcher, err := factory.NewSearcher(cfg)
	if err != nil {
		return nil, fmt.Errorf("搜索客户端初始化失败: %w", err)
	}

	return New(cfg, chatModel, searcher), nil
}

// New 使用给定的模型和搜索客户端创建引擎
func New(cfg *config.Config, chatModel model.BaseChatModel, searcher search.Searcher) *Engine {
	cfg.ApplyDefaults()
	return &Engine{
		cfg:       cfg,
		chatModel: chatModel,
		searcher:  searcher,
	}
}

// Photo 待分析的照片，URL 和 Data 二选一
type Photo struct {
	URL      string
	Data     []byte
	MIMEType string // 为空时根据 Data 自动识别
}

// AnalyzeOutfit 让模型分析照片中的穿搭，并把回复拆成段落
func (e *Engine) AnalyzeOutfit(ctx context.Context, photo Photo, language string) (*dm.OutfitAnalysis, error) {
	imageURL, err := photoURL(photo)
	if err != nil {
		return nil, err
	}

	messages := []*schema.Message{{
		Role: schema.User,
		MultiContent: []schema.ChatMessagePart{
			{Type: schema.ChatMessagePartTypeText, Text: pick(outfitPrompts, language, e.cfg.Language)},
			{Type: schema.ChatMessagePartTypeImageURL, ImageURL: &schema.ChatMessageImageURL{URL: imageURL}},
		},
	}}

	text, err := e.generate(ctx, messages)
	if err != nil {
		return nil, err
	}
	logger.Log.Debugf("Raw analysis received: %s", text)

	return &dm.OutfitAnalysis{Analysis: text, Sections: section.Parse(text)}, nil
}

// AskStylist 转发文字提问，回复同样拆成段落
func (e *Engine) AskStylist(ctx context.Context, question, language string) (*dm.OutfitAnalysis, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuery
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: pick(stylistPrompts, language, e.cfg.Language)},
		{Role: schema.User, Content: question},
	}

	text, err := e.generate(ctx, messages)
	if err != nil {
		return nil, err
	}
	return &dm.OutfitAnalysis{Analysis: text, Sections: section.Parse(text)}, nil
}

// NearbyStores 对每个关键词并发搜索，按配置中的关键词顺序合并去重。
// 任意一次搜索失败都直接返回错误，不会把部分结果交给聚合。
func (e *Engine) NearbyStores(ctx context.Context, center s2.LatLng, language string) ([]dm.PlaceRecord, error) {
	if language == "" {
		language = e.cfg.Places.Language
	}
	keywords := e.cfg.Places.Keywords
	batches := make([]places.Batch, len(keywords))

	g, gctx := errgroup.WithContext(ctx)
	for i, kw := range keywords {
		g.Go(func() error {
			resp, err := e.searcher.Nearby(gctx, &search.Request{
				Location: center,
				Radius:   e.cfg.Places.Radius,
				Keyword:  kw,
				Language: language,
			})
			if err != nil {
				return fmt.Errorf("%w: %s [%s]: %w", ErrUpstream, e.searcher.Name(), kw, err)
			}
			batches[i] = places.Batch{Keyword: kw, Places: resp.Places}
			logger.Log.Debugf("搜索关键词 [%s] 返回 %d 条结果", kw, len(resp.Places))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Log.Errorf("附近门店搜索失败: %v", err)
		return nil, err
	}

	records, err := places.Aggregate(center, batches)
	if err != nil {
		rejected := 1
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			rejected = len(joined.Unwrap())
		}
		metrics.PlacesRejectedTotal.Add(float64(rejected))
		logger.Log.Warnf("剔除了 %d 条缺少坐标的地点: %v", rejected, err)
	}
	return records, nil
}

func (e *Engine) generate(ctx context.Context, messages []*schema.Message) (string, error) {
	start := time.Now()
	resp, err := e.chatModel.Generate(ctx, messages, model.WithMaxTokens(e.cfg.LLM.MaxTokens))
	metrics.ObserveUpstream("llm", start, err)
	if err != nil {
		logger.Log.Errorf("LLM 调用失败: %v", err)
		return "", fmt.Errorf("%w: llm: %w", ErrUpstream, err)
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// photoURL 把照片转换成模型可以接受的 URL，二进制数据转成 data URL
func photoURL(photo Photo) (string, error) {
	hasURL, hasData := photo.URL != "", len(photo.Data) > 0
	if hasURL == hasData {
		return "", ErrInvalidPhoto
	}
	if hasURL {
		return photo.URL, nil
	}

	mime := photo.MIMEType
	if mime == "" {
		mime = mimetype.Detect(photo.Data).String()
	}
	mime, _, _ = strings.Cut(mime, ";")
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mime)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(photo.Data), nil
}
