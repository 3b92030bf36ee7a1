package mocks

import (
	"context"

	"jobassist/internal/appstate"
	"jobassist/internal/jobsearch"
	"jobassist/internal/model"
	"jobassist/internal/service"
	"jobassist/internal/validation"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in validation.RegistrationInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sess *model.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

type MockCVService struct {
	mock.Mock
}

func (m *MockCVService) List(ctx context.Context, userID string) ([]model.CV, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CV), args.Error(1)
}

func (m *MockCVService) Upload(ctx context.Context, in service.UploadInput) (*model.CV, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CV), args.Error(1)
}

func (m *MockCVService) DownloadURL(ctx context.Context, userID, cvID string) (string, error) {
	args := m.Called(ctx, userID, cvID)
	return args.String(0), args.Error(1)
}

type MockOfferService struct {
	mock.Mock
}

func (m *MockOfferService) Search(ctx context.Context, q jobsearch.Query) ([]model.SearchOffer, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SearchOffer), args.Error(1)
}

func (m *MockOfferService) Import(ctx context.Context, userID string, in service.ImportInput) (*model.JobOffer, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JobOffer), args.Error(1)
}

func (m *MockOfferService) ListImported(ctx context.Context, userID string) ([]model.JobOffer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JobOffer), args.Error(1)
}

func (m *MockOfferService) Get(ctx context.Context, userID, offerID string) (*model.JobOffer, error) {
	args := m.Called(ctx, userID, offerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.JobOffer), args.Error(1)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Update(ctx context.Context, userID string, in service.ProfileInput) (*model.User, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockPreferencesService struct {
	mock.Mock
}

func (m *MockPreferencesService) Get(ctx context.Context, userID string) (appstate.Persisted, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(appstate.Persisted), args.Error(1)
}

func (m *MockPreferencesService) Update(ctx context.Context, userID string, p appstate.Persisted) (appstate.Persisted, error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).(appstate.Persisted), args.Error(1)
}

func (m *MockPreferencesService) SignedIn(ctx context.Context, u model.PublicUser) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockPreferencesService) SignedOut(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
