package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobassist/internal/jobsearch"
	"jobassist/internal/model"
	"jobassist/internal/repository"
	"jobassist/internal/validation"
)

// ImportInput is an offer the user chose to keep.
type ImportInput struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Company      string  `json:"company"`
	Location     string  `json:"location"`
	ContractType *string `json:"contractType"`
	URL          *string `json:"url"`
}

// OfferService searches the catalogue and manages imported offers.
type OfferService interface {
	Search(ctx context.Context, q jobsearch.Query) ([]model.SearchOffer, error)
	// Import returns ErrMissingOfferFields when title, description, company or
	// location is blank.
	Import(ctx context.Context, userID string, in ImportInput) (*model.JobOffer, error)
	ListImported(ctx context.Context, userID string) ([]model.JobOffer, error)
	// Get returns ErrNotFound for unknown ids and for offers of other users.
	Get(ctx context.Context, userID, offerID string) (*model.JobOffer, error)
}

type offerService struct {
	source jobsearch.Source
	repo   repository.JobOfferRepository
	now    func() time.Time
}

func NewOfferService(source jobsearch.Source, repo repository.JobOfferRepository) OfferService {
	return &offerService{source: source, repo: repo, now: time.Now}
}

func (s *offerService) Search(ctx context.Context, q jobsearch.Query) ([]model.SearchOffer, error) {
	return s.source.Search(ctx, q)
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func optional(p *string) *string {
	if p == nil || blank(*p) {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (s *offerService) Import(ctx context.Context, userID string, in ImportInput) (*model.JobOffer, error) {
	if blank(in.Title) || blank(in.Description) || blank(in.Company) || blank(in.Location) {
		return nil, ErrMissingOfferFields
	}

	contractType, url := optional(in.ContractType), optional(in.URL)
	if err := validation.JobOffer(validation.JobOfferInput{
		UserID:       userID,
		Title:        in.Title,
		Description:  in.Description,
		Company:      in.Company,
		Location:     in.Location,
		ContractType: deref(contractType),
		URL:          deref(url),
	}).Err(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	return s.repo.Create(ctx, &model.JobOffer{
		ID:           uuid.NewString(),
		UserID:       userID,
		Title:        in.Title,
		Description:  in.Description,
		Company:      in.Company,
		Location:     in.Location,
		ContractType: contractType,
		URL:          url,
		ImportedAt:   now,
		UpdatedAt:    now,
	})
}

func (s *offerService) ListImported(ctx context.Context, userID string) ([]model.JobOffer, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *offerService) Get(ctx context.Context, userID, offerID string) (*model.JobOffer, error) {
	if _, err := uuid.Parse(offerID); err != nil {
		return nil, ErrNotFound
	}
	o, err := s.repo.FindByIDForUser(ctx, offerID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}
