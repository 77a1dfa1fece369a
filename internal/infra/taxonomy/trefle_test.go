package taxonomy

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SookX/Demeter/config"
)

func newTestClient(t *testing.T) *trefleClient {
	t.Helper()

	cfg := &config.Config{
		Taxonomy: &config.TaxonomyConfig{APIKey: "test-token"},
	}

	provider, err := NewTrefleProvider(cfg)
	require.NoError(t, err)

	client, ok := provider.(*trefleClient)
	require.True(t, ok)

	httpmock.ActivateNonDefault(client.client)
	t.Cleanup(httpmock.DeactivateAndReset)

	return client
}

func TestNewTrefleProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewTrefleProvider(&config.Config{})
	assert.Error(t, err)
}

func TestTrefleClient_Search(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", "https://trefle.io/api/v1/plants/search",
		httpmock.NewStringResponder(200, `{
			"data": [
				{
					"id": 190500,
					"common_name": "Garden tomato",
					"scientific_name": "Solanum lycopersicum",
					"family": "Solanaceae",
					"slug": "solanum-lycopersicum",
					"image_url": "https://example.com/tomato.jpg"
				},
				{
					"id": 190501,
					"common_name": "Currant tomato",
					"scientific_name": "Solanum pimpinellifolium",
					"family": "Solanaceae",
					"slug": "solanum-pimpinellifolium",
					"image_url": ""
				}
			]
		}`))

	results, err := client.Search(context.Background(), "tomato")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 190500, results[0].ID)
	assert.Equal(t, "Garden tomato", results[0].CommonName)
	assert.Equal(t, "Solanum lycopersicum", results[0].ScientificName)
	assert.Equal(t, "Solanaceae", results[0].Family)
	assert.Equal(t, "solanum-lycopersicum", results[0].Slug)
	assert.Equal(t, "https://example.com/tomato.jpg", results[0].ImageURL)
}

func TestTrefleClient_Search_Empty(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", "https://trefle.io/api/v1/plants/search",
		httpmock.NewStringResponder(200, `{"data": []}`))

	results, err := client.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestTrefleClient_Search_UpstreamError(t *testing.T) {
	client := newTestClient(t)

	httpmock.RegisterResponder("GET", "https://trefle.io/api/v1/plants/search",
		httpmock.NewStringResponder(401, `{"error": "Invalid token"}`))

	_, err := client.Search(context.Background(), "tomato")
	assert.Error(t, err)
}
