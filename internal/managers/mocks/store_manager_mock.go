package mocks

import (
	"mime/multipart"

	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock of the image store collaborator.
type MockStoreManager struct {
	mock.Mock
}

func (m *MockStoreManager) Save(file *multipart.FileHeader) (string, error) {
	args := m.Called(file)
	return args.String(0), args.Error(1)
}

func (m *MockStoreManager) Remove(reference string) error {
	args := m.Called(reference)
	return args.Error(0)
}
