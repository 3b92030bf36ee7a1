package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Supports(mimeType string) bool {
	args := m.Called(mimeType)
	return args.Bool(0)
}

func (m *MockExtractor) Extract(ctx context.Context, mimeType string, r io.Reader) (string, error) {
	args := m.Called(ctx, mimeType, r)
	return args.String(0), args.Error(1)
}
