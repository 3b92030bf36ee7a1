package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobassist/internal/model"
	"jobassist/internal/repository"
)

var cvCols = []string{"id", "user_id", "file_name", "file_type", "content", "storage_path", "uploaded_at", "updated_at"}

func TestCVPostgres_Upsert(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCVPostgres(db)
	now := time.Now().UTC()
	cv := &model.CV{
		ID:          "cv-new",
		UserID:      "user-1",
		FileName:    "cv.pdf",
		FileType:    model.FileTypePDF,
		Content:     "Jean Dupont",
		StoragePath: "cvs/user-1/b.pdf",
		UploadedAt:  now,
		UpdatedAt:   now,
	}

	t.Run("insert", func(t *testing.T) {
		rows := sqlmock.NewRows(append(cvCols, "coalesce")).
			AddRow(cv.ID, cv.UserID, cv.FileName, cv.FileType, cv.Content, cv.StoragePath, now, now, "")
		mock.ExpectQuery("INSERT INTO cvs (.+) ON CONFLICT \\(user_id, file_name\\) DO UPDATE").
			WithArgs(cv.ID, cv.UserID, cv.FileName, cv.FileType, cv.Content, cv.StoragePath, now, now).
			WillReturnRows(rows)

		got, replaced, err := repo.Upsert(context.Background(), cv)

		require.NoError(t, err)
		assert.Equal(t, cv, got)
		assert.Empty(t, replaced)
	})

	t.Run("replace keeps original id", func(t *testing.T) {
		earlier := now.Add(-time.Hour)
		rows := sqlmock.NewRows(append(cvCols, "coalesce")).
			AddRow("cv-old", cv.UserID, cv.FileName, cv.FileType, cv.Content, cv.StoragePath, earlier, now, "cvs/user-1/a.pdf")
		mock.ExpectQuery("INSERT INTO cvs").WillReturnRows(rows)

		got, replaced, err := repo.Upsert(context.Background(), cv)

		require.NoError(t, err)
		assert.Equal(t, "cv-old", got.ID)
		assert.Equal(t, earlier, got.UploadedAt)
		assert.Equal(t, "Jean Dupont", got.Content)
		assert.Equal(t, "cvs/user-1/a.pdf", replaced)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCVPostgres_ListByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCVPostgres(db)
	now := time.Now().UTC()

	t.Run("newest first", func(t *testing.T) {
		rows := sqlmock.NewRows(cvCols).
			AddRow("cv-2", "user-1", "b.docx", "docx", "B", "", now, now).
			AddRow("cv-1", "user-1", "a.pdf", "pdf", "A", "", now.Add(-time.Hour), now)
		mock.ExpectQuery("SELECT (.+) FROM cvs WHERE user_id = (.+) ORDER BY uploaded_at DESC").
			WithArgs("user-1").
			WillReturnRows(rows)

		got, err := repo.ListByUser(context.Background(), "user-1")

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "cv-2", got[0].ID)
		assert.Equal(t, "cv-1", got[1].ID)
	})

	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM cvs").
			WithArgs("user-2").
			WillReturnRows(sqlmock.NewRows(cvCols))

		got, err := repo.ListByUser(context.Background(), "user-2")

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCVPostgres_FindByIDForUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCVPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM cvs WHERE id = (.+) AND user_id = ").
		WithArgs("cv-1", "intruder").
		WillReturnError(sql.ErrNoRows)

	got, err := repo.FindByIDForUser(context.Background(), "cv-1", "intruder")

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
