package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gym-finder/internal/config"
	delivery "github.com/gym-finder/internal/delivery/http"
	"github.com/gym-finder/internal/delivery/http/handler"
	"github.com/gym-finder/internal/domain"
	"github.com/gym-finder/internal/domain/repository"
	"github.com/gym-finder/internal/infrastructure/devicelocation"
	"github.com/gym-finder/internal/observability"
	"github.com/gym-finder/internal/pkg/links"
	"github.com/gym-finder/internal/usecase"
)

type stubPlaces struct{}

func (stubPlaces) FetchNearby(_ context.Context, center domain.Coordinate, _ int) ([]domain.Place, error) {
	return []domain.Place{{
		ID:         "iron-1",
		Name:       "Iron Gym",
		Address:    "1 Market St",
		Rating:     domain.RatingOf(4.5),
		OpenStatus: domain.OpenNow,
		Coordinate: domain.Coordinate{Latitude: center.Latitude + 0.001, Longitude: center.Longitude},
	}}, nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type screenPayload struct {
	ID   string `json:"id"`
	View struct {
		Phase   string `json:"phase"`
		Radius  int    `json:"radius"`
		Markers []struct {
			PlaceID     string `json:"place_id"`
			Highlighted bool   `json:"highlighted"`
		} `json:"markers"`
		List struct {
			Visible bool `json:"visible"`
		} `json:"list"`
		DetailSheet struct {
			Visible bool `json:"visible"`
		} `json:"detail_sheet"`
	} `json:"view"`
	RadiusInput struct {
		Text      string  `json:"text"`
		Warning   *string `json:"warning"`
		CanSubmit bool    `json:"can_submit"`
	} `json:"radius_input"`
}

func newTestServer(t *testing.T) *delivery.Server {
	t.Helper()
	logger := zap.NewNop()

	cfg := &config.Config{
		Server:  config.ServerConfig{Port: 0},
		Session: config.SessionConfig{SearchTimeout: 2 * time.Second},
	}

	metrics, err := observability.NewDiscoveryCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	registry := usecase.NewScreenRegistry(
		func() repository.DeviceLocationSource { return devicelocation.NewSource(logger) },
		stubPlaces{},
		links.NewBuilder("https://maps.example.com/maps/api/place", "key", 400),
		metrics,
		logger,
		usecase.WithSearchTimeout(cfg.Session.SearchTimeout),
	)
	t.Cleanup(registry.CloseAll)

	return delivery.NewServer(cfg, logger, handler.NewScreenHandler(registry, 2*time.Second, logger), metrics)
}

func do(t *testing.T, s *delivery.Server, method, path string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.App().Test(req, 5000)
	require.NoError(t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &env))
	}
	return resp, env
}

func openReadyScreen(t *testing.T, s *delivery.Server) screenPayload {
	t.Helper()
	resp, env := do(t, s, http.MethodPost, "/api/v1/screens?wait=true", map[string]any{
		"location": map[string]any{
			"permission": "granted",
			"latitude":   37.77,
			"longitude":  -122.41,
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var screen screenPayload
	require.NoError(t, json.Unmarshal(env.Data, &screen))
	require.Equal(t, "Ready", screen.View.Phase)
	assert.Equal(t, true, env.Meta["settled"])
	return screen
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	resp, _ := do(t, s, http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t)
	openReadyScreen(t, s)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := s.App().Test(req, 5000)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "discovery_searches_total")
}

func TestServer_OpenScreen(t *testing.T) {
	s := newTestServer(t)
	screen := openReadyScreen(t, s)

	assert.NotEmpty(t, screen.ID)
	assert.Equal(t, 5000, screen.View.Radius)
	require.Len(t, screen.View.Markers, 1)
	assert.Equal(t, "iron-1", screen.View.Markers[0].PlaceID)

	resp, env := do(t, s, http.MethodGet, "/api/v1/screens/"+screen.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got screenPayload
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, screen.ID, got.ID)
}

func TestServer_OpenScreenWithoutLocationWaitsForReport(t *testing.T) {
	s := newTestServer(t)

	resp, env := do(t, s, http.MethodPost, "/api/v1/screens", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var screen screenPayload
	require.NoError(t, json.Unmarshal(env.Data, &screen))
	assert.Equal(t, "Loading", screen.View.Phase)

	resp, _ = do(t, s, http.MethodPut, "/api/v1/screens/"+screen.ID+"/location", map[string]any{
		"permission": "denied",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = do(t, s, http.MethodPost, "/api/v1/screens/"+screen.ID+"/retry?wait=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &screen))
	assert.Equal(t, "Error", screen.View.Phase)
}

func TestServer_UnknownScreen(t *testing.T) {
	s := newTestServer(t)

	resp, env := do(t, s, http.MethodGet, "/api/v1/screens/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "SCREEN_NOT_FOUND", env.Error.Code)
}

func TestServer_RadiusFlow(t *testing.T) {
	s := newTestServer(t)
	screen := openReadyScreen(t, s)
	base := "/api/v1/screens/" + screen.ID

	resp, env := do(t, s, http.MethodPut, base+"/radius", map[string]any{"text": "99"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var input struct {
		Text      string  `json:"text"`
		Warning   *string `json:"warning"`
		CanSubmit bool    `json:"can_submit"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &input))
	assert.Equal(t, "99", input.Text)
	require.NotNil(t, input.Warning)
	assert.Equal(t, usecase.RadiusWarning, *input.Warning)
	assert.False(t, input.CanSubmit)

	resp, env = do(t, s, http.MethodPost, base+"/search", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	resp, _ = do(t, s, http.MethodPut, base+"/radius", map[string]any{"text": "9000"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, env = do(t, s, http.MethodPost, base+"/search?wait=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &screen))
	assert.Equal(t, "Ready", screen.View.Phase)
	assert.Equal(t, 9000, screen.View.Radius)
	assert.Equal(t, float64(2), env.Meta["seq"])
}

func TestServer_SelectionFlow(t *testing.T) {
	s := newTestServer(t)
	screen := openReadyScreen(t, s)
	base := "/api/v1/screens/" + screen.ID

	resp, env := do(t, s, http.MethodPost, base+"/selection", map[string]any{"place_id": "iron-1", "source": "map"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var selection struct {
		Region domain.Region `json:"region"`
		Screen screenPayload `json:"screen"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &selection))
	assert.InDelta(t, 0.02, selection.Region.LatitudeDelta, 1e-9)
	assert.True(t, selection.Screen.View.DetailSheet.Visible)
	assert.True(t, selection.Screen.View.Markers[0].Highlighted)

	resp, env = do(t, s, http.MethodGet, base+"/places/iron-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var details domain.PlaceDetails
	require.NoError(t, json.Unmarshal(env.Data, &details))
	assert.Equal(t, "Iron Gym", details.Place.Name)
	assert.Contains(t, details.DirectionsURL, "api=1")

	resp, env = do(t, s, http.MethodDelete, base+"/selection", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &screen))
	assert.False(t, screen.View.DetailSheet.Visible)

	resp, env = do(t, s, http.MethodGet, base+"/places/iron-1", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "PLACE_NOT_SELECTED", env.Error.Code)

	resp, env = do(t, s, http.MethodPost, base+"/selection", map[string]any{"place_id": "missing"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "PLACE_NOT_FOUND", env.Error.Code)

	resp, _ = do(t, s, http.MethodPost, base+"/selection", map[string]any{"place_id": "iron-1", "source": "sideways"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, env = do(t, s, http.MethodPost, base+"/list/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toggle struct {
		Visible bool `json:"visible"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &toggle))
	assert.True(t, toggle.Visible)
}

func TestServer_ValidateRadius(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		text   string
		status string
	}{
		{text: "", status: "Empty"},
		{text: "5000", status: "Accepted"},
		{text: "25000", status: "OutOfRange"},
		{text: "5k", status: "NonNumeric"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			resp, env := do(t, s, http.MethodGet, "/api/v1/radius/validate?text="+tt.text, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var result struct {
				Status string `json:"status"`
			}
			require.NoError(t, json.Unmarshal(env.Data, &result))
			assert.Equal(t, tt.status, result.Status)
		})
	}
}

func TestServer_CloseScreen(t *testing.T) {
	s := newTestServer(t)
	screen := openReadyScreen(t, s)

	resp, _ := do(t, s, http.MethodDelete, "/api/v1/screens/"+screen.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, s, http.MethodGet, "/api/v1/screens/"+screen.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
