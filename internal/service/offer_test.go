package service

import (
	"context"
	"errors"
	"testing"

	"jobassist/internal/jobsearch"
	searchMocks "jobassist/internal/jobsearch/mocks"
	"jobassist/internal/model"
	"jobassist/internal/repository"
	repoMocks "jobassist/internal/repository/mocks"
	"jobassist/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestOfferService_Search(t *testing.T) {
	ctx := context.Background()
	mSrc := new(searchMocks.MockSource)
	svc := NewOfferService(mSrc, nil)

	q := jobsearch.Query{Text: "go", Location: "Paris"}
	mSrc.On("Search", ctx, q).Return([]model.SearchOffer{{ID: "1", Title: "Développeur Go"}}, nil)

	res, err := svc.Search(ctx, q)
	require.NoError(t, err)
	assert.Len(t, res, 1)
	mSrc.AssertExpectations(t)
}

func TestOfferService_Import(t *testing.T) {
	ctx := context.Background()

	valid := ImportInput{
		Title:       "Développeur Go",
		Description: "Conception de services backend.",
		Company:     "Acme",
		Location:    "Lyon",
	}

	tests := []struct {
		name       string
		in         func() ImportInput
		setupMocks func(mRepo *repoMocks.MockJobOfferRepository)
		wantErr    error
		wantField  string
	}{
		{
			name: "happy path",
			in: func() ImportInput {
				in := valid
				in.ContractType = strPtr(" CDI ")
				in.URL = strPtr("https://example.com/offre/1")
				return in
			},
			setupMocks: func(mRepo *repoMocks.MockJobOfferRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(o *model.JobOffer) bool {
					return o.UserID == "u1" && o.ID != "" && o.ContractType != nil && *o.ContractType == "CDI" &&
						o.URL != nil && !o.ImportedAt.IsZero()
				})).Return(&model.JobOffer{ID: "o1"}, nil)
			},
		},
		{
			name: "blank optional fields are stored as null",
			in: func() ImportInput {
				in := valid
				in.URL = strPtr("  ")
				return in
			},
			setupMocks: func(mRepo *repoMocks.MockJobOfferRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(o *model.JobOffer) bool {
					return o.URL == nil && o.ContractType == nil
				})).Return(&model.JobOffer{ID: "o1"}, nil)
			},
		},
		{
			name: "missing company",
			in: func() ImportInput {
				in := valid
				in.Company = " "
				return in
			},
			setupMocks: func(*repoMocks.MockJobOfferRepository) {},
			wantErr:    ErrMissingOfferFields,
		},
		{
			name: "title too short",
			in: func() ImportInput {
				in := valid
				in.Title = "Dev"
				return in
			},
			setupMocks: func(*repoMocks.MockJobOfferRepository) {},
			wantField:  "title",
		},
		{
			name: "invalid url",
			in: func() ImportInput {
				in := valid
				in.URL = strPtr("not a url")
				return in
			},
			setupMocks: func(*repoMocks.MockJobOfferRepository) {},
			wantField:  "url",
		},
		{
			name: "repository error",
			in:   func() ImportInput { return valid },
			setupMocks: func(mRepo *repoMocks.MockJobOfferRepository) {
				mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockJobOfferRepository)
			svc := NewOfferService(nil, mRepo)

			tt.setupMocks(mRepo)

			o, err := svc.Import(ctx, "u1", tt.in())

			switch {
			case tt.wantField != "":
				res, ok := validation.AsResult(err)
				require.True(t, ok)
				require.NotEmpty(t, res.Errors)
				assert.Equal(t, tt.wantField, res.Errors[0].Field)
			case errors.Is(tt.wantErr, ErrMissingOfferFields):
				assert.ErrorIs(t, err, ErrMissingOfferFields)
			case tt.wantErr != nil:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
				assert.NotNil(t, o)
			}

			mRepo.AssertExpectations(t)
		})
	}
}

func TestOfferService_ListImported(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockJobOfferRepository)
	svc := NewOfferService(nil, mRepo)

	mRepo.On("ListByUser", ctx, "u1").Return([]model.JobOffer{{ID: "o1"}}, nil)

	offers, err := svc.ListImported(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, offers, 1)
	mRepo.AssertExpectations(t)
}

func TestOfferService_Get(t *testing.T) {
	ctx := context.Background()
	const id = "0b8e3c4e-5f7a-4c1b-8f0e-1a2b3c4d5e6f"

	tests := []struct {
		name       string
		id         string
		setupMocks func(mRepo *repoMocks.MockJobOfferRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   id,
			setupMocks: func(mRepo *repoMocks.MockJobOfferRepository) {
				mRepo.On("FindByIDForUser", ctx, id, "u1").Return(&model.JobOffer{ID: id, UserID: "u1"}, nil)
			},
		},
		{
			name:       "malformed id",
			id:         "42",
			setupMocks: func(*repoMocks.MockJobOfferRepository) {},
			wantErr:    ErrNotFound,
		},
		{
			name: "not owned",
			id:   id,
			setupMocks: func(mRepo *repoMocks.MockJobOfferRepository) {
				mRepo.On("FindByIDForUser", ctx, id, "u1").Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockJobOfferRepository)
			svc := NewOfferService(nil, mRepo)

			tt.setupMocks(mRepo)

			o, err := svc.Get(ctx, "u1", tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, id, o.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}
}
