package mocks

import (
	"context"
	"time"

	"jobassist/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockManager struct {
	mock.Mock
}

func (m *MockManager) Create(ctx context.Context, u *model.User) (string, *model.Session, error) {
	args := m.Called(ctx, u)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.Session), args.Error(2)
}

func (m *MockManager) Resolve(ctx context.Context, token string) (*model.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockManager) Destroy(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockManager) TTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}
