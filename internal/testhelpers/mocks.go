package testhelpers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/tastemap/backend/internal/types"
)

// MockTokenValidator is a mock implementation of middleware.TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// MockObjectStore is a mock implementation of service.ObjectStore. Expiry
// arguments are not matched.
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) PresignUpload(ctx context.Context, objectKey, contentType string, expiration time.Duration) (string, error) {
	args := m.Called(objectKey, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error) {
	args := m.Called(objectKey)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Exists(ctx context.Context, objectKey string) (bool, error) {
	args := m.Called(objectKey)
	return args.Bool(0), args.Error(1)
}
