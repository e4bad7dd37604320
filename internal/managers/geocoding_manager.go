package managers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/activity-atlas/server/internal/schemas"
)

// ErrAddressNotFound is returned when the geocoder resolves the request but
// finds no match for the address.
var ErrAddressNotFound = errors.New("no coordinates found for address")

// GeocodingMgr is the interface for the reverse-geocoding collaborator.
// It maps a free-text address to a coordinate pair or fails.
type GeocodingMgr interface {
	GeocodeAddress(ctx context.Context, address string) (schemas.LocationDTO, error)
}

// GeocodingManager resolves addresses against a Nominatim-compatible HTTP endpoint.
type GeocodingManager struct {
	baseURL string
	client  *http.Client
}

const defaultGeocoderURL = "https://nominatim.openstreetmap.org/search"

// NewGeocodingManager creates a GeocodingManager against the given endpoint,
// falling back to the public Nominatim instance when none is configured.
func NewGeocodingManager(baseURL string) GeocodingMgr {
	log.Info("Initializing geocoding manager")
	if baseURL == "" {
		baseURL = defaultGeocoderURL
	}

	return &GeocodingManager{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// GeocodeAddress resolves the address to a coordinate pair.
func (gm *GeocodingManager) GeocodeAddress(ctx context.Context, address string) (schemas.LocationDTO, error) {
	requestURL := gm.baseURL + "?format=json&limit=1&q=" + url.QueryEscape(address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return schemas.LocationDTO{}, err
	}
	req.Header.Set("User-Agent", "activity-atlas")

	resp, err := gm.client.Do(req)
	if err != nil {
		return schemas.LocationDTO{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return schemas.LocationDTO{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	// Nominatim returns coordinates as decimal strings
	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return schemas.LocationDTO{}, err
	}

	if len(results) == 0 {
		return schemas.LocationDTO{}, ErrAddressNotFound
	}

	latitude, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return schemas.LocationDTO{}, err
	}

	longitude, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return schemas.LocationDTO{}, err
	}

	return schemas.LocationDTO{Latitude: latitude, Longitude: longitude}, nil
}
