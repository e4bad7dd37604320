package managers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodeAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1 Infinite Loop", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"37.3318","lon":"-122.0312"}]`))
	}))
	defer server.Close()

	geocodingMgr := NewGeocodingManager(server.URL)
	location, err := geocodingMgr.GeocodeAddress(context.Background(), "1 Infinite Loop")
	require.NoError(t, err)
	assert.InDelta(t, 37.3318, location.Latitude, 1e-9)
	assert.InDelta(t, -122.0312, location.Longitude, 1e-9)
}

func TestGeocodeAddressWithoutMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	geocodingMgr := NewGeocodingManager(server.URL)
	_, err := geocodingMgr.GeocodeAddress(context.Background(), "Nowhere At All 42")
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestGeocodeAddressUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	geocodingMgr := NewGeocodingManager(server.URL)
	_, err := geocodingMgr.GeocodeAddress(context.Background(), "1 Infinite Loop")
	assert.Error(t, err)
}
