package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/activity-atlas/server/internal/schemas"
)

// MockGeocodingManager is a mock of the geocoding collaborator.
type MockGeocodingManager struct {
	mock.Mock
}

func (m *MockGeocodingManager) GeocodeAddress(ctx context.Context, address string) (schemas.LocationDTO, error) {
	args := m.Called(address)
	return args.Get(0).(schemas.LocationDTO), args.Error(1)
}
