package postgres

import (
	"context"
	"database/sql"

	"jobassist/internal/model"
	"jobassist/internal/repository"
)

const cvColumns = `id, user_id, file_name, file_type, content, storage_path, uploaded_at, updated_at`

// CVPostgres implements repository.CVRepository.
type CVPostgres struct {
	db *sql.DB
}

func NewCVPostgres(db *sql.DB) *CVPostgres {
	return &CVPostgres{db: db}
}

var _ repository.CVRepository = (*CVPostgres)(nil)

func scanCV(s scanner, extra ...any) (*model.CV, error) {
	var c model.CV
	dest := []any{
		&c.ID,
		&c.UserID,
		&c.FileName,
		&c.FileType,
		&c.Content,
		&c.StoragePath,
		&c.UploadedAt,
		&c.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// Upsert reads the previous storage path from the pre-statement snapshot, so
// the returned path is the one the write replaced.
func (r *CVPostgres) Upsert(ctx context.Context, cv *model.CV) (*model.CV, string, error) {
	const q = `
		WITH prev AS (
			SELECT storage_path FROM cvs WHERE user_id = $2 AND file_name = $3
		)
		INSERT INTO cvs (id, user_id, file_name, file_type, content, storage_path, uploaded_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, file_name) DO UPDATE
		SET file_type = EXCLUDED.file_type,
			content = EXCLUDED.content,
			storage_path = EXCLUDED.storage_path,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + cvColumns + `, COALESCE((SELECT storage_path FROM prev), '')`
	var replaced string
	out, err := scanCV(r.db.QueryRowContext(ctx, q,
		cv.ID,
		cv.UserID,
		cv.FileName,
		cv.FileType,
		cv.Content,
		cv.StoragePath,
		cv.UploadedAt,
		cv.UpdatedAt,
	), &replaced)
	if err != nil {
		return nil, "", err
	}
	return out, replaced, nil
}

func (r *CVPostgres) ListByUser(ctx context.Context, userID string) ([]model.CV, error) {
	const q = `
		SELECT ` + cvColumns + `
		FROM cvs
		WHERE user_id = $1
		ORDER BY uploaded_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CV, 0)
	for rows.Next() {
		c, err := scanCV(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CVPostgres) FindByIDForUser(ctx context.Context, id, userID string) (*model.CV, error) {
	const q = `SELECT ` + cvColumns + ` FROM cvs WHERE id = $1 AND user_id = $2`
	return scanCV(r.db.QueryRowContext(ctx, q, id, userID))
}
