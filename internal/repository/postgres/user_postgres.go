package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"jobassist/internal/model"
	"jobassist/internal/repository"
)

const userColumns = `id, first_name, last_name, email, password_hash, created_at, updated_at`

// UserPostgres implements repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

func scanUser(s scanner) (*model.User, error) {
	var u model.User
	if err := s.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, mapError(err)
	}
	return &u, nil
}

func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, first_name, last_name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		u.PasswordHash,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return scanUser(row)
}

func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, email))
}

func (r *UserPostgres) UpdateProfile(ctx context.Context, u *model.User, profile *model.CV) (*model.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin profile update: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	const qUser = `
		UPDATE users
		SET first_name = $2, last_name = $3, email = $4, updated_at = $5
		WHERE id = $1
		RETURNING ` + userColumns
	updated, err := scanUser(tx.QueryRowContext(ctx, qUser,
		u.ID,
		u.FirstName,
		u.LastName,
		u.Email,
		u.UpdatedAt,
	))
	if err != nil {
		return nil, err
	}

	const qProfile = `
		INSERT INTO cvs (id, user_id, file_name, file_type, content, storage_path, uploaded_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, '', $6, $6)
		ON CONFLICT (user_id, file_name) DO UPDATE
		SET content = EXCLUDED.content, updated_at = EXCLUDED.updated_at`
	if _, err := tx.ExecContext(ctx, qProfile,
		profile.ID,
		u.ID,
		profile.FileName,
		profile.FileType,
		profile.Content,
		profile.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("upsert manual profile: %w", mapError(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit profile update: %w", err)
	}
	return updated, nil
}
