package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobassist/internal/model"
	"jobassist/internal/repository"
	"jobassist/internal/validation"
)

// ProfileInput is the editable profile: identity fields plus a free-text bio.
type ProfileInput struct {
	validation.UserInput
	Bio string `json:"bio"`
}

// ProfileService edits the signed-in user's profile.
type ProfileService interface {
	// Update writes the identity fields and stores Bio as the user's manual
	// profile CV, both or neither.
	Update(ctx context.Context, userID string, in ProfileInput) (*model.User, error)
}

type profileService struct {
	users repository.UserRepository
	now   func() time.Time
}

func NewProfileService(users repository.UserRepository) ProfileService {
	return &profileService{users: users, now: time.Now}
}

func (s *profileService) Update(ctx context.Context, userID string, in ProfileInput) (*model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.User(in.UserInput).Err(); err != nil {
		return nil, err
	}

	other, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && other.ID != userID:
		return nil, ErrEmailTaken
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	now := s.now().UTC()
	updated, err := s.users.UpdateProfile(ctx,
		&model.User{
			ID:        userID,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			UpdatedAt: now,
		},
		&model.CV{
			ID:         uuid.NewString(),
			UserID:     userID,
			FileName:   model.ManualProfileFileName,
			FileType:   model.FileTypeText,
			Content:    in.Bio,
			UploadedAt: now,
			UpdatedAt:  now,
		},
	)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return nil, ErrEmailTaken
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}
	return updated, nil
}
