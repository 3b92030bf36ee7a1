package mocks

import (
	"context"

	"jobassist/internal/jobsearch"
	"jobassist/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Search(ctx context.Context, q jobsearch.Query) ([]model.SearchOffer, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SearchOffer), args.Error(1)
}
