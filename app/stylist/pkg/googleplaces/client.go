package googleplaces

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/golang/geo/s2"

	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/logger"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/metrics"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/places"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/search"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"

// Client Google Places Nearby Search 客户端
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient 创建一个新的 Google Places 客户端，baseURL 为空时使用官方地址
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// Name implements search.Searcher
func (c *Client) Name() string { return "google_places" }

// NearbyResponse Nearby Search 响应
type NearbyResponse struct {
	Results      []PlaceResult `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// PlaceResult 单个地点
type PlaceResult struct {
	PlaceID      string        `json:"place_id"`
	Name         string        `json:"name"`
	Vicinity     *string       `json:"vicinity,omitempty"`
	Geometry     *Geometry     `json:"geometry,omitempty"`
	OpeningHours *OpeningHours `json:"opening_hours,omitempty"`
	Rating       *float64      `json:"rating,omitempty"`
}

// Geometry 地点几何信息
type Geometry struct {
	Location *Location `json:"location,omitempty"`
}

// Location 经纬度
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OpeningHours 营业时间
type OpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// Nearby implements search.Searcher
func (c *Client) Nearby(ctx context.Context, req *search.Request) (resp *search.Response, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(c.Name(), start, err) }()

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("location", fmt.Sprintf("%f,%f", req.Location.Lat.Degrees(), req.Location.Lng.Degrees()))
	q.Set("radius", strconv.Itoa(req.Radius))
	q.Set("type", req.Keyword)
	if req.Language != "" {
		q.Set("language", req.Language)
	}
	q.Set("key", c.apiKey)
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	logger.Log.Debugf("google places nearby search: type=%s radius=%d", req.Keyword, req.Radius)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", redact(err))
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google places api error (status %d): %s", res.StatusCode, string(body))
	}

	var nearby NearbyResponse
	if err := json.Unmarshal(body, &nearby); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}

	switch nearby.Status {
	case "OK", "ZERO_RESULTS":
	default:
		return nil, fmt.Errorf("google places api error (%s): %s", nearby.Status, nearby.ErrorMessage)
	}

	out := make([]places.RawPlace, 0, len(nearby.Results))
	for _, r := range nearby.Results {
		out = append(out, r.toRawPlace())
	}
	return &search.Response{Places: out}, nil
}

// redact 去掉 *url.Error 中 URL 的 key 参数
func redact(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	if u, perr := url.Parse(uerr.URL); perr == nil {
		q := u.Query()
		q.Del("key")
		u.RawQuery = q.Encode()
		uerr.URL = u.String()
	} else {
		uerr.URL = ""
	}
	return err
}

func (r PlaceResult) toRawPlace() places.RawPlace {
	p := places.RawPlace{
		ID:     r.PlaceID,
		Name:   r.Name,
		Rating: r.Rating,
	}
	if r.Vicinity != nil {
		p.Address = *r.Vicinity
	}
	if r.OpeningHours != nil {
		p.OpenNow = r.OpeningHours.OpenNow
		p.WeekdayText = r.OpeningHours.WeekdayText
	}
	if r.Geometry != nil && r.Geometry.Location != nil {
		ll := s2.LatLngFromDegrees(r.Geometry.Location.Lat, r.Geometry.Location.Lng)
		p.Location = &ll
	}
	return p
}
