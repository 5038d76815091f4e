package googleplaces

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gym-finder/internal/config"
	"github.com/gym-finder/internal/domain"
	"github.com/gym-finder/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL string) *config.PlacesConfig {
	return &config.PlacesConfig{
		APIKey:         "test_key",
		BaseURL:        baseURL,
		PlaceType:      "gym",
		RequestTimeout: 5 * time.Second,
	}
}

func serve(t *testing.T, status int, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_FetchNearby(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	center := domain.Coordinate{Latitude: 37.77, Longitude: -122.41}

	t.Run("successful request", func(t *testing.T) {
		body := `{
			"status": "OK",
			"results": [
				{
					"place_id": "iron-1",
					"name": "Iron Gym",
					"vicinity": "1 Market St",
					"rating": 4.5,
					"opening_hours": {"open_now": true},
					"geometry": {"location": {"lat": 37.771, "lng": -122.412}},
					"photos": [{"photo_reference": "ref-1"}, {"photo_reference": "ref-2"}]
				},
				{
					"place_id": "bare-2",
					"name": "Bare Gym",
					"geometry": {"location": {"lat": 37.78, "lng": -122.42}}
				},
				{
					"place_id": "shut-3",
					"name": "Shut Gym",
					"vicinity": "3 Mission St",
					"opening_hours": {"open_now": false},
					"geometry": {"location": {"lat": 37.79, "lng": -122.43}}
				}
			]
		}`

		server := serve(t, http.StatusOK, body, func(r *http.Request) {
			assert.Equal(t, "/nearbysearch/json", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "37.77,-122.41", q.Get("location"))
			assert.Equal(t, "5000", q.Get("radius"))
			assert.Equal(t, "gym", q.Get("type"))
			assert.Equal(t, "test_key", q.Get("key"))
		})

		places, err := NewClient(testConfig(server.URL), logger).FetchNearby(context.Background(), center, 5000)
		require.NoError(t, err)
		require.Len(t, places, 3)

		iron := places[0]
		assert.Equal(t, "iron-1", iron.ID)
		assert.Equal(t, "Iron Gym", iron.Name)
		assert.Equal(t, "1 Market St", iron.Address)
		assert.Equal(t, domain.RatingOf(4.5), iron.Rating)
		assert.Equal(t, domain.OpenNow, iron.OpenStatus)
		assert.Equal(t, domain.Coordinate{Latitude: 37.771, Longitude: -122.412}, iron.Coordinate)
		require.NotNil(t, iron.PhotoRef)
		assert.Equal(t, "ref-1", *iron.PhotoRef)
		assert.Nil(t, iron.Phone)
		assert.Nil(t, iron.Hours)

		bare := places[1]
		assert.Equal(t, "No address available", bare.Address)
		assert.False(t, bare.Rating.Rated)
		assert.Equal(t, domain.OpenStatusUnknown, bare.OpenStatus)
		assert.Nil(t, bare.PhotoRef)

		assert.Equal(t, domain.Closed, places[2].OpenStatus)
	})

	t.Run("location keeps full precision", func(t *testing.T) {
		precise := domain.Coordinate{Latitude: 37.774929512, Longitude: -122.419415877}
		server := serve(t, http.StatusOK, `{"status":"OK","results":[]}`, func(r *http.Request) {
			assert.Equal(t, "37.774929512,-122.419415877", r.URL.Query().Get("location"))
		})

		_, err := NewClient(testConfig(server.URL), logger).FetchNearby(context.Background(), precise, 5000)
		require.NoError(t, err)
	})

	t.Run("result without place_id is dropped", func(t *testing.T) {
		body := `{
			"status": "OK",
			"results": [
				{"name": "Ghost Gym", "geometry": {"location": {"lat": 37.77, "lng": -122.41}}},
				{"place_id": "iron-1", "name": "Iron Gym", "geometry": {"location": {"lat": 37.771, "lng": -122.412}}},
				{"place_id": "", "name": "Blank Gym", "geometry": {"location": {"lat": 37.772, "lng": -122.413}}}
			]
		}`
		server := serve(t, http.StatusOK, body, nil)

		places, err := NewClient(testConfig(server.URL), logger).FetchNearby(context.Background(), center, 5000)
		require.NoError(t, err)
		require.Len(t, places, 1)
		assert.Equal(t, "iron-1", places[0].ID)
	})

	t.Run("duplicate place_id keeps first", func(t *testing.T) {
		body := `{
			"status": "OK",
			"results": [
				{"place_id": "iron-1", "name": "Iron Gym", "geometry": {"location": {"lat": 37.771, "lng": -122.412}}},
				{"place_id": "steel-2", "name": "Steel Gym", "geometry": {"location": {"lat": 37.78, "lng": -122.42}}},
				{"place_id": "iron-1", "name": "Iron Gym Annex", "geometry": {"location": {"lat": 37.79, "lng": -122.43}}}
			]
		}`
		server := serve(t, http.StatusOK, body, nil)

		places, err := NewClient(testConfig(server.URL), logger).FetchNearby(context.Background(), center, 5000)
		require.NoError(t, err)
		require.Len(t, places, 2)
		assert.Equal(t, "iron-1", places[0].ID)
		assert.Equal(t, "Iron Gym", places[0].Name)
		assert.Equal(t, "steel-2", places[1].ID)
	})

	t.Run("ok with no results", func(t *testing.T) {
		server := serve(t, http.StatusOK, `{"status":"OK","results":[]}`, nil)

		places, err := NewClient(testConfig(server.URL), logger).FetchNearby(context.Background(), center, 1000)
		require.NoError(t, err)
		assert.NotNil(t, places)
		assert.Empty(t, places)
	})

	t.Run("zero results status is an empty success", func(t *testing.T) {
		server := serve(t, http.StatusOK, `{"status":"ZERO_RESULTS","results":[]}`, nil)

		places, err := NewClient(testConfig(server.URL), logger).FetchNearby(context.Background(), center, 1000)
		require.NoError(t, err)
		assert.Empty(t, places)
	})

	t.Run("non-OK status is a provider error", func(t *testing.T) {
		server := serve(t, http.StatusOK,
			`{"status":"OVER_QUERY_LIMIT","error_message":"You have exceeded your daily request quota","results":[]}`, nil)

		places, err := NewClient(testConfig(server.URL), logger).FetchNearby(context.Background(), center, 5000)
		assert.Nil(t, places)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrProviderError))
		assert.Contains(t, err.Error(), "OVER_QUERY_LIMIT")

		var appErr *errors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "OVER_QUERY_LIMIT", appErr.Details["status"])
	})

	t.Run("http error is a network error", func(t *testing.T) {
		server := serve(t, http.StatusInternalServerError, `oops`, nil)

		_, err := NewClient(testConfig(server.URL), logger).FetchNearby(context.Background(), center, 5000)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNetworkError))
	})

	t.Run("malformed body is a network error", func(t *testing.T) {
		server := serve(t, http.StatusOK, `{"status":`, nil)

		_, err := NewClient(testConfig(server.URL), logger).FetchNearby(context.Background(), center, 5000)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNetworkError))
	})

	t.Run("unreachable provider is a network error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		_, err := NewClient(testConfig(url), logger).FetchNearby(context.Background(), center, 5000)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNetworkError))
	})

	t.Run("cancelled context", func(t *testing.T) {
		server := serve(t, http.StatusOK, `{"status":"OK","results":[]}`, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewClient(testConfig(server.URL), logger).FetchNearby(ctx, center, 5000)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNetworkError))
	})
}
