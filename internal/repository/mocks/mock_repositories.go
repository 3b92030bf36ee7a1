package mocks

import (
	"context"

	"jobassist/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, u *model.User, profile *model.CV) (*model.User, error) {
	args := m.Called(ctx, u, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockCVRepository struct {
	mock.Mock
}

func (m *MockCVRepository) Upsert(ctx context.Context, cv *model.CV) (*model.CV, string, error) {
	args := m.Called(ctx, cv)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.CV), args.String(1), args.Error(2)
}

func (m *MockCVRepository) ListByUser(ctx context.Context, userID string) ([]model.CV, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CV), args.Error(1)
}

func (m *MockCVRepository) FindByIDForUser(ctx context.Context, id, userID string) (*model.CV, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CV), args.Error(1)
}

type MockJobOfferRepository struct {
	mock.Mock
}

func (m *MockJobOfferRepository) Create(ctx context.Context, o *model.JobOffer) (*model.JobOffer, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JobOffer), args.Error(1)
}

func (m *MockJobOfferRepository) ListByUser(ctx context.Context, userID string) ([]model.JobOffer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JobOffer), args.Error(1)
}

func (m *MockJobOfferRepository) FindByIDForUser(ctx context.Context, id, userID string) (*model.JobOffer, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JobOffer), args.Error(1)
}
