package agro

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/SookX/Demeter/config"
	"github.com/SookX/Demeter/internal/domain/entity"
	domainerrors "github.com/SookX/Demeter/internal/domain/errors"
	"github.com/SookX/Demeter/internal/domain/service"
)

const defaultClimateEndpoint = "http://climateapi.scottpinkelman.com/api/v1/location"

// climateResponse mirrors the Köppen-Geiger classification payload.
type climateResponse struct {
	ReturnValues []struct {
		KoppenGeigerZone string `json:"koppen_geiger_zone"`
		ZoneDescription  string `json:"zone_description"`
	} `json:"return_values"`
}

// koppenClimateClient implements service.ClimateProvider against the
// Köppen-Geiger climate classification API.
type koppenClimateClient struct {
	endpoint string
	client   *http.Client
}

// NewKoppenClimateProvider is the constructor for koppenClimateClient.
func NewKoppenClimateProvider(cfg *config.Config) service.ClimateProvider {
	endpoint := defaultClimateEndpoint
	if cfg.Climate != nil && cfg.Climate.Endpoint != "" {
		endpoint = strings.TrimRight(cfg.Climate.Endpoint, "/")
	}

	return &koppenClimateClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// Classify returns the Köppen-Geiger classification for the coordinate pair.
// The upstream API takes the coordinates as path segments.
func (c *koppenClimateClient) Classify(ctx context.Context, lat, lon float64) (*entity.Climate, error) {
	reqURL := fmt.Sprintf("%s/%.6f/%.6f", c.endpoint, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create climate request")
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, domainerrors.ErrUpstreamFailed.WrapMessage("climate service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.ErrUpstreamFailed.WrapMessage(fmt.Sprintf("climate service returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read climate response")
	}

	var payload climateResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domainerrors.ErrUpstreamFailed.WrapMessage("malformed climate response")
	}

	if len(payload.ReturnValues) == 0 {
		return nil, domainerrors.ErrUpstreamFailed.WrapMessage("no climate classification returned")
	}

	return &entity.Climate{
		KoppenGeigerZone: payload.ReturnValues[0].KoppenGeigerZone,
		ZoneDescription:  payload.ReturnValues[0].ZoneDescription,
	}, nil
}
