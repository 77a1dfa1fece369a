// Package agro implements the soil and climate providers used to enrich a
// region profile.
package agro

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
	defaultSoilEndpoint = "https://api.openepi.io/soil/type"

	requestTimeout = 10 * time.Second
	userAgent      = "demeter/1.0"
)

// soilTypeResponse mirrors the OpenEPI soil type payload.
type soilTypeResponse struct {
	Properties struct {
		MostProbableSoilType string `json:"most_probable_soil_type"`
	} `json:"properties"`
}

// openEPISoilClient implements service.SoilProvider against the OpenEPI soil API.
type openEPISoilClient struct {
	endpoint string
	client   *http.Client
}

// NewOpenEPISoilProvider is the constructor for openEPISoilClient.
func NewOpenEPISoilProvider(cfg *config.Config) service.SoilProvider {
	endpoint := defaultSoilEndpoint
	if cfg.Soil != nil && cfg.Soil.Endpoint != "" {
		endpoint = strings.TrimRight(cfg.Soil.Endpoint, "/")
	}

	return &openEPISoilClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// SoilType returns the most probable soil classification for the coordinate pair.
func (c *openEPISoilClient) SoilType(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.6f", lat))
	params.Set("lon", fmt.Sprintf("%.6f", lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return "", errors.Wrap(err, "failed to create soil request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", domainerrors.ErrUpstreamFailed.WrapMessage("soil service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", domainerrors.ErrUpstreamFailed.WrapMessage(fmt.Sprintf("soil service returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read soil response")
	}

	var payload soilTypeResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", domainerrors.ErrUpstreamFailed.WrapMessage("malformed soil response")
	}

	return payload.Properties.MostProbableSoilType, nil
}
