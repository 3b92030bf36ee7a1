// Package repository declares the persistence contracts used by services.
// Implementations live in subpackages (postgres). No business logic here.
package repository

import (
	"context"
	"errors"

	"jobassist/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository persists accounts.
type UserRepository interface {
	// Create inserts u. A taken email yields ErrDuplicate.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// UpdateProfile writes the user's identity fields and upserts the
	// manual-profile CV in one transaction.
	UpdateProfile(ctx context.Context, u *model.User, profile *model.CV) (*model.User, error)
}

// CVRepository persists extracted CVs.
type CVRepository interface {
	// Upsert inserts cv or, when (UserID, FileName) already exists, replaces
	// its type, content and storage path. It returns the stored row and the
	// storage path it replaced (empty on insert).
	Upsert(ctx context.Context, cv *model.CV) (*model.CV, string, error)
	// ListByUser returns the user's CVs, newest first.
	ListByUser(ctx context.Context, userID string) ([]model.CV, error)
	// FindByIDForUser returns ErrNotFound when the CV is missing or owned by someone else.
	FindByIDForUser(ctx context.Context, id, userID string) (*model.CV, error)
}

// JobOfferRepository persists imported offers.
type JobOfferRepository interface {
	Create(ctx context.Context, o *model.JobOffer) (*model.JobOffer, error)
	// ListByUser returns the user's offers, most recently imported first.
	ListByUser(ctx context.Context, userID string) ([]model.JobOffer, error)
	// FindByIDForUser returns ErrNotFound when the offer is missing or owned by someone else.
	FindByIDForUser(ctx context.Context, id, userID string) (*model.JobOffer, error)
}
