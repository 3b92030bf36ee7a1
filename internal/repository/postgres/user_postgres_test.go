package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobassist/internal/model"
	"jobassist/internal/repository"
)

var userCols = []string{"id", "first_name", "last_name", "email", "password_hash", "created_at", "updated_at"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func sampleUser(now time.Time) *model.User {
	return &model.User{
		ID:           "user-1",
		FirstName:    "Marie",
		LastName:     "Curie",
		Email:        "marie@example.fr",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func userRow(u *model.User) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).
		AddRow(u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
}

func TestUserPostgres_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)
	u := sampleUser(time.Now().UTC())

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt).
			WillReturnRows(userRow(u))

		got, err := repo.Create(context.Background(), u)

		require.NoError(t, err)
		assert.Equal(t, u, got)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		got, err := repo.Create(context.Background(), u)

		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)
	u := sampleUser(time.Now().UTC())

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ").
			WithArgs(u.Email).
			WillReturnRows(userRow(u))

		got, err := repo.FindByEmail(context.Background(), u.Email)

		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, u.PasswordHash, got.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ").
			WithArgs("nobody@example.fr").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.FindByEmail(context.Background(), "nobody@example.fr")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.True(t, isNoRowsError(err))
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserPostgres(db)
	u := sampleUser(time.Now().UTC())

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ").
		WithArgs(u.ID).
		WillReturnRows(userRow(u))

	got, err := repo.FindByID(context.Background(), u.ID)

	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_UpdateProfile(t *testing.T) {
	now := time.Now().UTC()
	u := sampleUser(now)
	u.Email = "marie.curie@example.fr"
	profile := &model.CV{
		ID:        "cv-profile",
		FileName:  model.ManualProfileFileName,
		FileType:  model.FileTypeText,
		Content:   "Physicienne et chimiste.",
		UpdatedAt: now,
	}

	t.Run("commits both writes", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewUserPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE users").
			WithArgs(u.ID, u.FirstName, u.LastName, u.Email, u.UpdatedAt).
			WillReturnRows(userRow(u))
		mock.ExpectExec("INSERT INTO cvs").
			WithArgs(profile.ID, u.ID, model.ManualProfileFileName, model.FileTypeText, profile.Content, now).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		got, err := repo.UpdateProfile(context.Background(), u, profile)

		require.NoError(t, err)
		assert.Equal(t, "marie.curie@example.fr", got.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("email taken rolls back", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewUserPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE users").
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()

		got, err := repo.UpdateProfile(context.Background(), u, profile)

		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing user rolls back", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewUserPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE users").
			WillReturnRows(sqlmock.NewRows(userCols))
		mock.ExpectRollback()

		_, err := repo.UpdateProfile(context.Background(), u, profile)

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("profile write failure rolls back", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewUserPostgres(db)

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE users").WillReturnRows(userRow(u))
		mock.ExpectExec("INSERT INTO cvs").WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		_, err := repo.UpdateProfile(context.Background(), u, profile)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func isNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, repository.ErrNotFound)
}
