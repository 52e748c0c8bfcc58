package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/outfit_radar/app/stylist/internal/conf"
	"github.com/iWorld-y/outfit_radar/app/stylist/internal/service"
	"github.com/iWorld-y/outfit_radar/app/stylist/internal/usecase"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/engine"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/model"
)

type mockEngine struct {
	photo engine.Photo
	lang  string
}

func (m *mockEngine) AnalyzeOutfit(ctx context.Context, photo engine.Photo, language string) (*model.OutfitAnalysis, error) {
	m.photo, m.lang = photo, language
	return &model.OutfitAnalysis{
		Analysis: "**Рекомендации:** * ремень",
		Sections: []model.AnalysisSection{
			{Title: "Рекомендации", Icon: "💡", Content: model.ListContent([]string{"ремень"})},
		},
	}, nil
}

func (m *mockEngine) AskStylist(ctx context.Context, question, language string) (*model.OutfitAnalysis, error) {
	return nil, engine.ErrEmptyQuery
}

func (m *mockEngine) NearbyStores(ctx context.Context, center s2.LatLng, language string) ([]model.PlaceRecord, error) {
	return []model.PlaceRecord{{ID: "p1", Name: "Store", DistanceMeters: 42, SearchKeyword: "clothing_store"}}, nil
}

func newTestServer(t *testing.T, m *mockEngine, c *conf.HTTP) nethttp.Handler {
	t.Helper()
	uc := usecase.NewStylistUseCase(m, m, log.DefaultLogger)
	svc := service.NewStylistService(uc, log.DefaultLogger)
	return NewHTTPServer(&conf.Server{Http: c}, svc, log.DefaultLogger)
}

func do(h nethttp.Handler, req *nethttp.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHTTP_AnalyzeStyle(t *testing.T) {
	m := &mockEngine{}
	h := newTestServer(t, m, &conf.HTTP{})

	req := httptest.NewRequest(nethttp.MethodPost, "/analyze-style",
		strings.NewReader(`{"photoUrl":"https://example.com/a.jpg","language":"en"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(h, req)

	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"analysis": "**Рекомендации:** * ремень",
		"structuredAnalysis": [{"title": "Рекомендации", "icon": "💡", "content": ["ремень"]}]
	}`, rec.Body.String())
	assert.Equal(t, "https://example.com/a.jpg", m.photo.URL)
	assert.Equal(t, "en", m.lang)
}

func TestHTTP_AnalyzeStyle_MissingURL(t *testing.T) {
	h := newTestServer(t, &mockEngine{}, &conf.HTTP{})

	req := httptest.NewRequest(nethttp.MethodPost, "/analyze-style", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(h, req)

	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"photoUrl is required","reason":"INVALID_ARGUMENT"}`, rec.Body.String())
}

func TestHTTP_UploadMultipart(t *testing.T) {
	m := &mockEngine{}
	h := newTestServer(t, m, &conf.HTTP{})

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("photo", "look.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("\x89PNG\r\n\x1a\n"))
	require.NoError(t, w.WriteField("language", "ru"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(nethttp.MethodPost, "/analyze-style/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := do(h, req)

	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), m.photo.Data)
	// CreateFormFile 写入的类型是 application/octet-stream，交给引擎识别
	assert.Equal(t, "", m.photo.MIMEType)
	assert.Equal(t, "ru", m.lang)
}

func TestHTTP_UploadTooLarge(t *testing.T) {
	h := newTestServer(t, &mockEngine{}, &conf.HTTP{MaxUploadBytes: 16})

	req := httptest.NewRequest(nethttp.MethodPost, "/analyze-style/upload",
		strings.NewReader(`{"photoBase64":"`+strings.Repeat("A", 64)+`"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(h, req)

	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
}

func TestHTTP_AskStylist_Error(t *testing.T) {
	h := newTestServer(t, &mockEngine{}, &conf.HTTP{})

	req := httptest.NewRequest(nethttp.MethodPost, "/ask-stylist", strings.NewReader(`{"question":""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(h, req)

	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, false, out["success"])
	assert.Equal(t, engine.ErrEmptyQuery.Error(), out["error"])
}

func TestHTTP_NearbyStores(t *testing.T) {
	h := newTestServer(t, &mockEngine{}, &conf.HTTP{})

	req := httptest.NewRequest(nethttp.MethodPost, "/nearby-stores",
		strings.NewReader(`{"latitude":55.75,"longitude":37.61}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(h, req)

	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"stores":[{
		"id":"p1","name":"Store","address":"","distance":42,
		"openingHoursText":"","placeID":"p1","searchKeyword":"clothing_store"
	}]}`, rec.Body.String())

	req = httptest.NewRequest(nethttp.MethodPost, "/nearby-stores", strings.NewReader(`{"latitude":55.75}`))
	req.Header.Set("Content-Type", "application/json")
	rec = do(h, req)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing latitude or longitude")
}

func TestHTTP_CORSPreflight(t *testing.T) {
	h := newTestServer(t, &mockEngine{}, &conf.HTTP{})

	req := httptest.NewRequest(nethttp.MethodOptions, "/nearby-stores", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := do(h, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHTTP_Healthz(t *testing.T) {
	h := newTestServer(t, &mockEngine{}, &conf.HTTP{})

	rec := do(h, httptest.NewRequest(nethttp.MethodGet, "/healthz", nil))
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestEncodeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{
			name: "kratos error",
			err:  errors.ServiceUnavailable("UPSTREAM_UNAVAILABLE", "upstream call failed"),
			code: 503,
			body: `{"success":false,"error":"upstream call failed","reason":"UPSTREAM_UNAVAILABLE"}`,
		},
		{
			name: "plain error",
			err:  context.Canceled,
			code: 500,
			body: `{"success":false,"error":"context canceled"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			encodeError(rec, httptest.NewRequest(nethttp.MethodGet, "/", nil), tt.err)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := EngineConfig(&conf.Stylist{
		Llm:    &conf.LLM{ApiKey: "k", MaxTokens: 1000},
		Places: &conf.Places{Provider: "overpass", Overpass: &conf.Overpass{BaseUrl: "http://osm"}},
	})
	assert.Equal(t, "k", cfg.LLM.APIKey)
	assert.Equal(t, 1000, cfg.LLM.MaxTokens)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Model)
	assert.Equal(t, "overpass", cfg.Places.Provider)
	assert.Equal(t, "http://osm", cfg.Places.Overpass.BaseURL)
	assert.Equal(t, []string{"shopping_mall", "clothing_store"}, cfg.Places.Keywords)
	assert.Equal(t, "en", cfg.Places.Language)
	assert.Equal(t, "k", cfg.Places.Google.APIKey)
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, "ru", EngineConfig(nil).Language)
}
