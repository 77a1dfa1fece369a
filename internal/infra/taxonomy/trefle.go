// Package taxonomy implements the plant species lookup against the Trefle API.
package taxonomy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/SookX/Demeter/config"
	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
	"github.com/SookX/Demeter/internal/domain/service"
)

const (
	defaultEndpoint = "https://trefle.io/api/v1"

	requestTimeout = 10 * time.Second
	userAgent      = "demeter/1.0"
)

// searchResponse mirrors the Trefle plant search payload.
type searchResponse struct {
	Data []struct {
		ID             int    `json:"id"`
		CommonName     string `json:"common_name"`
		ScientificName string `json:"scientific_name"`
		Family         string `json:"family"`
		Slug           string `json:"slug"`
		ImageURL       string `json:"image_url"`
	} `json:"data"`
}

// trefleClient implements service.TaxonomyProvider against the Trefle catalogue.
type trefleClient struct {
	token    string
	endpoint string
	client   *http.Client
}

// NewTrefleProvider is the constructor for trefleClient.
func NewTrefleProvider(cfg *config.Config) (service.TaxonomyProvider, error) {
	if cfg.Taxonomy == nil || cfg.Taxonomy.APIKey == "" {
		return nil, errors.New("taxonomy API key not configured")
	}

	endpoint := strings.TrimRight(cfg.Taxonomy.Endpoint, "/")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &trefleClient{
		token:    cfg.Taxonomy.APIKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: requestTimeout},
	}, nil
}

// Search queries the catalogue by common or scientific name.
func (c *trefleClient) Search(ctx context.Context, query string) ([]service.TaxonomyResult, error) {
	params := url.Values{}
	params.Set("token", c.token)
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/plants/search?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create taxonomy request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domainerrors.ErrUpstreamFailed.WrapMessage("taxonomy service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.ErrUpstreamFailed.WrapMessage(fmt.Sprintf("taxonomy service returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read taxonomy response")
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domainerrors.ErrUpstreamFailed.WrapMessage("malformed taxonomy response")
	}

	results := make([]service.TaxonomyResult, 0, len(payload.Data))
	for _, hit := range payload.Data {
		results = append(results, service.TaxonomyResult{
			ID:             hit.ID,
			CommonName:     hit.CommonName,
			ScientificName: hit.ScientificName,
			Family:         hit.Family,
			Slug:           hit.Slug,
			ImageURL:       hit.ImageURL,
		})
	}

	return results, nil
}
