package postgres

import (
	"context"
	"database/sql"

	"jobassist/internal/model"
	"jobassist/internal/repository"
)

const jobOfferColumns = `id, user_id, title, description, company, location, contract_type, url, imported_at, updated_at`

// JobOfferPostgres implements repository.JobOfferRepository.
type JobOfferPostgres struct {
	db *sql.DB
}

func NewJobOfferPostgres(db *sql.DB) *JobOfferPostgres {
	return &JobOfferPostgres{db: db}
}

var _ repository.JobOfferRepository = (*JobOfferPostgres)(nil)

func scanJobOffer(s scanner) (*model.JobOffer, error) {
	var o model.JobOffer
	if err := s.Scan(
		&o.ID,
		&o.UserID,
		&o.Title,
		&o.Description,
		&o.Company,
		&o.Location,
		&o.ContractType,
		&o.URL,
		&o.ImportedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &o, nil
}

func (r *JobOfferPostgres) Create(ctx context.Context, o *model.JobOffer) (*model.JobOffer, error) {
	const q = `
		INSERT INTO job_offers (id, user_id, title, description, company, location, contract_type, url, imported_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + jobOfferColumns
	return scanJobOffer(r.db.QueryRowContext(ctx, q,
		o.ID,
		o.UserID,
		o.Title,
		o.Description,
		o.Company,
		o.Location,
		o.ContractType,
		o.URL,
		o.ImportedAt,
		o.UpdatedAt,
	))
}

func (r *JobOfferPostgres) ListByUser(ctx context.Context, userID string) ([]model.JobOffer, error) {
	const q = `
		SELECT ` + jobOfferColumns + `
		FROM job_offers
		WHERE user_id = $1
		ORDER BY imported_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.JobOffer, 0)
	for rows.Next() {
		o, err := scanJobOffer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *JobOfferPostgres) FindByIDForUser(ctx context.Context, id, userID string) (*model.JobOffer, error) {
	const q = `SELECT ` + jobOfferColumns + ` FROM job_offers WHERE id = $1 AND user_id = $2`
	return scanJobOffer(r.db.QueryRowContext(ctx, q, id, userID))
}
