package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/config"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/googleplaces"
	"github.com/iWorld-y/outfit_radar/app/stylist/pkg/overpass"
)

func TestNewSearcher(t *testing.T) {
	s, err := NewSearcher(&config.Config{LLM: config.LLMConfig{APIKey: "shared"}})
	require.NoError(t, err)
	assert.IsType(t, &googleplaces.Client{}, s)

	s, err = NewSearcher(&config.Config{Places: config.PlacesConfig{Provider: "overpass"}})
	require.NoError(t, err)
	assert.IsType(t, &overpass.Client{}, s)

	_, err = NewSearcher(&config.Config{})
	assert.EqualError(t, err, "google places api key is missing")

	_, err = NewSearcher(&config.Config{Places: config.PlacesConfig{Provider: "yandex"}})
	assert.EqualError(t, err, "unknown places provider: yandex")
}
