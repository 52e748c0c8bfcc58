package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/config"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/places"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/search"
)

type fakeChatModel struct {
	reply string
	err   error

	input []*schema.Message
	opts  *model.Options
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.input = input
	f.opts = model.GetCommonOptions(nil, opts...)
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]places.RawPlace
	fail    map[string]error
	reqs    []search.Request
}

func (f *fakeSearcher) Name() string { return "fake" }

func (f *fakeSearcher) Nearby(_ context.Context, req *search.Request) (*search.Response, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, *req)
	f.mu.Unlock()

	if err := f.fail[req.Keyword]; err != nil {
		return nil, err
	}
	return &search.Response{Places: f.results[req.Keyword]}, nil
}

func at(lat, lng float64) *s2.LatLng {
	ll := s2.LatLngFromDegrees(lat, lng)
	return &ll
}

const sampleReply = `Вот анализ:
**1. Верхняя одежда:** Бежевый тренч
**7. Цветовая палитра:** Основные цвета: бежевый, белый, синий
**8. Рекомендации по улучшению:**
* Добавить ремень
* Сменить кеды на лоферы`

func TestEngine_AnalyzeOutfit_URL(t *testing.T) {
	cm := &fakeChatModel{reply: sampleReply}
	e := New(&config.Config{}, cm, &fakeSearcher{})

	got, err := e.AnalyzeOutfit(context.Background(), Photo{URL: "https://example.com/look.jpg"}, "")
	require.NoError(t, err)

	assert.Equal(t, sampleReply, got.Analysis)
	require.Len(t, got.Sections, 3)
	assert.Equal(t, "1. Верхняя одежда", got.Sections[0].Title)
	assert.Equal(t, []string{"бежевый", "белый", "синий"}, got.Sections[1].Content.Items)
	assert.Equal(t, []string{"Добавить ремень", "Сменить кеды на лоферы"}, got.Sections[2].Content.Items)

	require.Len(t, cm.input, 1)
	parts := cm.input[0].MultiContent
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0].Text, "Детально проанализируй наряд")
	assert.Equal(t, "https://example.com/look.jpg", parts[1].ImageURL.URL)

	require.NotNil(t, cm.opts.MaxTokens)
	assert.Equal(t, config.DefaultMaxTokens, *cm.opts.MaxTokens)
}

func TestEngine_AnalyzeOutfit_Bytes(t *testing.T) {
	cm := &fakeChatModel{reply: "**Title**body"}
	e := New(&config.Config{}, cm, &fakeSearcher{})

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	_, err := e.AnalyzeOutfit(context.Background(), Photo{Data: png}, "en")
	require.NoError(t, err)

	parts := cm.input[0].MultiContent
	assert.Contains(t, parts[0].Text, "Analyze the outfit")
	assert.True(t, strings.HasPrefix(parts[1].ImageURL.URL, "data:image/png;base64,"))
}

func TestEngine_AnalyzeOutfit_InvalidPhoto(t *testing.T) {
	e := New(&config.Config{}, &fakeChatModel{}, &fakeSearcher{})

	_, err := e.AnalyzeOutfit(context.Background(), Photo{}, "")
	assert.ErrorIs(t, err, ErrInvalidPhoto)

	_, err = e.AnalyzeOutfit(context.Background(), Photo{URL: "u", Data: []byte{1}}, "")
	assert.ErrorIs(t, err, ErrInvalidPhoto)

	_, err = e.AnalyzeOutfit(context.Background(), Photo{Data: []byte("just some text")}, "")
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestEngine_AnalyzeOutfit_UpstreamErrors(t *testing.T) {
	e := New(&config.Config{}, &fakeChatModel{err: errors.New("429 quota")}, &fakeSearcher{})
	_, err := e.AnalyzeOutfit(context.Background(), Photo{URL: "u"}, "")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "429 quota")

	e = New(&config.Config{}, &fakeChatModel{reply: "  "}, &fakeSearcher{})
	_, err = e.AnalyzeOutfit(context.Background(), Photo{URL: "u"}, "")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestEngine_AskStylist(t *testing.T) {
	cm := &fakeChatModel{reply: "**Recommendations:** * navy blazer * white sneakers"}
	e := New(&config.Config{Language: "en"}, cm, &fakeSearcher{})

	got, err := e.AskStylist(context.Background(), "  what goes with grey chinos?  ", "")
	require.NoError(t, err)
	require.Len(t, got.Sections, 1)
	assert.Equal(t, []string{"navy blazer", "white sneakers"}, got.Sections[0].Content.Items)

	require.Len(t, cm.input, 2)
	assert.Equal(t, schema.System, cm.input[0].Role)
	assert.Contains(t, cm.input[0].Content, "personal stylist")
	assert.Equal(t, "what goes with grey chinos?", cm.input[1].Content)

	_, err = e.AskStylist(context.Background(), " ", "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestEngine_NearbyStores(t *testing.T) {
	fs := &fakeSearcher{results: map[string][]places.RawPlace{
		"shopping_mall": {
			{ID: "mall", Name: "Mall", Location: at(55.76, 37.62)},
			{ID: "both", Name: "Both (mall)", Location: at(55.75, 37.60)},
		},
		"clothing_store": {
			{ID: "both", Name: "Both (store)", Location: at(55.75, 37.60)},
			{ID: "lost", Name: "No location"},
			{ID: "store", Name: "Store", Location: at(55.7559, 37.6174)},
		},
	}}
	e := New(&config.Config{}, &fakeChatModel{}, fs)

	center := s2.LatLngFromDegrees(55.7558, 37.6173)
	got, err := e.NearbyStores(context.Background(), center, "en")
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"mall", "both", "store"}, ids)
	assert.Equal(t, "shopping_mall", got[1].SearchKeyword)
	assert.Equal(t, "Both (mall)", got[1].Name)
	assert.Less(t, got[2].DistanceMeters, 50)

	require.Len(t, fs.reqs, 2)
	for _, r := range fs.reqs {
		assert.Equal(t, config.DefaultRadius, r.Radius)
		assert.Equal(t, "en", r.Language)
	}
}

func TestEngine_NearbyStores_DefaultLanguage(t *testing.T) {
	fs := &fakeSearcher{}
	e := New(&config.Config{Language: "ru"}, &fakeChatModel{}, fs)

	got, err := e.NearbyStores(context.Background(), s2.LatLngFromDegrees(0, 0), "")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NotEmpty(t, fs.reqs)
	for _, r := range fs.reqs {
		assert.Equal(t, config.DefaultPlacesLanguage, r.Language)
	}
}

func TestEngine_NearbyStores_UpstreamFailure(t *testing.T) {
	fs := &fakeSearcher{
		results: map[string][]places.RawPlace{"shopping_mall": {{ID: "a", Location: at(0, 0)}}},
		fail:    map[string]error{"clothing_store": errors.New("OVER_QUERY_LIMIT")},
	}
	e := New(&config.Config{}, &fakeChatModel{}, fs)

	got, err := e.NearbyStores(context.Background(), s2.LatLngFromDegrees(0, 0), "")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "clothing_store")
}

func TestPick(t *testing.T) {
	assert.Equal(t, outfitPrompts["en"], pick(outfitPrompts, "en", "ru"))
	assert.Equal(t, outfitPrompts["en"], pick(outfitPrompts, "de", "en"))
	assert.Equal(t, outfitPrompts["ru"], pick(outfitPrompts, "de", "fr"))
}
