package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gym-finder/internal/config"
	"github.com/gym-finder/internal/domain"
	"github.com/gym-finder/internal/domain/repository"
	"github.com/gym-finder/internal/pkg/errors"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	placeType  string
	logger     *zap.Logger
}

// NewClient creates a Nearby Search client for the configured place type.
func NewClient(cfg *config.PlacesConfig, logger *zap.Logger) repository.PlaceSearchClient {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		placeType: cfg.PlaceType,
		logger:    logger,
	}
}

// FetchNearby calls nearbysearch/json and normalizes the results.
func (c *client) FetchNearby(
	ctx context.Context,
	center domain.Coordinate,
	radiusMeters int,
) ([]domain.Place, error) {
	params := url.Values{}
	params.Set("location", formatCoordinate(center))
	params.Set("radius", strconv.Itoa(radiusMeters))
	params.Set("type", c.placeType)
	params.Set("key", c.apiKey)

	endpoint := c.baseURL + "/nearbysearch/json?" + params.Encode()

	c.logger.Debug("Calling Places Nearby Search",
		zap.Float64("lat", center.Latitude),
		zap.Float64("lng", center.Longitude),
		zap.Int("radius", radiusMeters),
		zap.String("type", c.placeType))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", errors.ErrNetworkError)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %v: %w", err, errors.ErrNetworkError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Places API returned HTTP error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("places API http status %d: %w", resp.StatusCode,
			errors.ErrNetworkError.WithDetails(map[string]interface{}{"status_code": resp.StatusCode}))
	}

	var searchResp nearbySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %v: %w", err, errors.ErrNetworkError)
	}

	switch searchResp.Status {
	case statusOK:
	case statusZeroResults:
		c.logger.Debug("Places API found nothing nearby")
		return []domain.Place{}, nil
	default:
		c.logger.Error("Places API returned non-OK status",
			zap.String("status", searchResp.Status),
			zap.String("error_message", searchResp.ErrorMessage))
		return nil, ProviderError(searchResp.Status, searchResp.ErrorMessage)
	}

	places := normalizeAll(searchResp.Results, c.logger)

	c.logger.Debug("Places Nearby Search successful", zap.Int("results", len(places)))

	return places, nil
}

func formatCoordinate(c domain.Coordinate) string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// ProviderError builds the error for a rejected request; the status ends
// up in the message and in Details["status"].
func ProviderError(status, providerMessage string) error {
	details := map[string]interface{}{"status": status}
	if providerMessage != "" {
		details["error_message"] = providerMessage
	}
	return errors.ErrProviderError.
		WithMessage(fmt.Sprintf("Google API Error: %s", status)).
		WithDetails(details)
}
