package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang/geo/s2"

	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/logger"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/metrics"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/places"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/search"
)

const defaultBaseURL = "https://overpass-api.de/api/interpreter"

// shopTags 关键词到 OSM shop 标签的映射，未列出的关键词直接作为 shop 值
var shopTags = map[string]string{
	"clothing_store": "clothes",
	"shopping_mall":  "mall",
	"shoe_store":     "shoes",
	"jewelry_store":  "jewelry",
}

// Client OpenStreetMap Overpass API 客户端
type Client struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewClient 创建一个新的 Overpass 客户端
func NewClient(baseURL string, timeout int) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		timeout: t,
		client:  &http.Client{Timeout: t},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// Name implements search.Searcher
func (c *Client) Name() string { return "overpass" }

// Response Overpass 响应结构
type Response struct {
	Elements []Element `json:"elements"`
}

// Element 单个 OSM 元素，way/relation 的坐标在 Center 中
type Element struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    *float64          `json:"lat,omitempty"`
	Lon    *float64          `json:"lon,omitempty"`
	Center *Center           `json:"center,omitempty"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// Center way/relation 的中心点
type Center struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BuildQuery 生成按 shop 标签搜索周边的 Overpass QL
func BuildQuery(req *search.Request) string {
	shop, ok := shopTags[req.Keyword]
	if !ok {
		shop = req.Keyword
	}
	lat, lon := req.Location.Lat.Degrees(), req.Location.Lng.Degrees()
	return fmt.Sprintf(`[out:json][timeout:25];nwr["shop"=%q]["name"](around:%d,%f,%f);out center;`,
		shop, req.Radius, lat, lon)
}

// Nearby implements search.Searcher
func (c *Client) Nearby(ctx context.Context, req *search.Request) (resp *search.Response, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(c.Name(), start, err) }()

	form := url.Values{}
	form.Set("data", BuildQuery(req))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("User-Agent", "outfit-radar/1.0")

	logger.Log.Debugf("overpass nearby search: keyword=%s radius=%d", req.Keyword, req.Radius)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("overpass api error (status %d): %s", res.StatusCode, string(body))
	}

	var overpassResp Response
	if err := json.NewDecoder(res.Body).Decode(&overpassResp); err != nil {
		return nil, fmt.Errorf("decode response failed: %w", err)
	}

	out := make([]places.RawPlace, 0, len(overpassResp.Elements))
	for _, e := range overpassResp.Elements {
		out = append(out, e.toRawPlace())
	}
	return &search.Response{Places: out}, nil
}

func (e Element) toRawPlace() places.RawPlace {
	p := places.RawPlace{
		ID:   fmt.Sprintf("%s/%d", e.Type, e.ID),
		Name: e.Tags["name"],
	}

	street, house := e.Tags["addr:street"], e.Tags["addr:housenumber"]
	p.Address = strings.TrimSpace(street + " " + house)

	if oh := e.Tags["opening_hours"]; oh != "" {
		p.WeekdayText = []string{oh}
	}

	switch {
	case e.Lat != nil && e.Lon != nil:
		ll := s2.LatLngFromDegrees(*e.Lat, *e.Lon)
		p.Location = &ll
	case e.Center != nil:
		ll := s2.LatLngFromDegrees(e.Center.Lat, e.Center.Lon)
		p.Location = &ll
	}
	return p
}
