package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"jobassist/internal/extract"
	"jobassist/internal/model"
	"jobassist/internal/repository"
	"jobassist/internal/storage"
	"jobassist/internal/validation"
)

const downloadURLExpiry = 15 * time.Minute

// UploadInput is one uploaded CV file. Size is the size the client declared,
// or -1 when unknown.
type UploadInput struct {
	UserID      string
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// CVService covers the CV upload pipeline and CV listing.
type CVService interface {
	// List returns the user's CVs, newest first.
	List(ctx context.Context, userID string) ([]model.CV, error)

	// Upload accepts only the declared PDF and DOCX types, rejects bytes that
	// contradict the declared type, extracts the text, archives the original in
	// object storage when configured, and upserts the CV on (user, file name).
	// A failed database write removes the archived object again.
	Upload(ctx context.Context, in UploadInput) (*model.CV, error)

	// DownloadURL returns a short-lived link to the archived original.
	DownloadURL(ctx context.Context, userID, cvID string) (string, error)
}

type cvService struct {
	repo      repository.CVRepository
	extractor extract.Extractor
	store     storage.Storage
	maxBytes  int64
	metrics   *UploadMetrics
	log       logrus.FieldLogger
	now       func() time.Time
}

// NewCVService builds the pipeline. store may be nil to skip archiving;
// metrics may be nil.
func NewCVService(repo repository.CVRepository, extractor extract.Extractor, store storage.Storage, maxBytes int64, metrics *UploadMetrics, log logrus.FieldLogger) CVService {
	return &cvService{
		repo:      repo,
		extractor: extractor,
		store:     store,
		maxBytes:  maxBytes,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

func (s *cvService) List(ctx context.Context, userID string) ([]model.CV, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *cvService) Upload(ctx context.Context, in UploadInput) (*model.CV, error) {
	if in.Content == nil {
		return nil, ErrNoFile
	}
	if s.maxBytes > 0 && in.Size > s.maxBytes {
		s.metrics.observe("", uploadStatusRejected)
		return nil, ErrFileTooLarge
	}

	data, err := s.read(in.Content)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			s.metrics.observe("", uploadStatusRejected)
		}
		return nil, err
	}

	contentType := extract.ContentType(in.ContentType)
	fileType := extract.FileType(contentType)
	if !s.extractor.Supports(contentType) {
		s.metrics.observe(fileType, uploadStatusRejected)
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	if !extract.Matches(contentType, data) {
		s.metrics.observe(fileType, uploadStatusRejected)
		return nil, fmt.Errorf("%w: content is not %s", ErrUnsupportedType, fileType)
	}

	text, err := s.extractor.Extract(ctx, contentType, bytes.NewReader(data))
	if err != nil {
		s.metrics.observe(fileType, uploadStatusFailed)
		return nil, err
	}

	if err := validation.CV(validation.CVInput{
		UserID:   in.UserID,
		FileName: in.FileName,
		FileType: fileType,
	}).Err(); err != nil {
		s.metrics.observe(fileType, uploadStatusRejected)
		return nil, err
	}

	var key string
	if s.store != nil {
		key = storage.CVKey(in.UserID, in.FileName)
		if _, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
			Size:        int64(len(data)),
			ContentType: contentType,
			Metadata:    map[string]string{"original-filename": in.FileName},
		}); err != nil {
			s.metrics.observe(fileType, uploadStatusFailed)
			return nil, fmt.Errorf("archive cv: %w", err)
		}
	}

	now := s.now().UTC()
	saved, replaced, err := s.repo.Upsert(ctx, &model.CV{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		FileName:    in.FileName,
		FileType:    fileType,
		Content:     text,
		StoragePath: key,
		UploadedAt:  now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.metrics.observe(fileType, uploadStatusFailed)
		if key != "" {
			if delErr := s.store.Delete(ctx, key); delErr != nil {
				return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
			}
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	if replaced != "" && replaced != key && s.store != nil {
		if err := s.store.Delete(ctx, replaced); err != nil {
			s.log.WithError(err).WithField("key", replaced).Warn("delete replaced cv object")
		}
	}

	s.metrics.observe(fileType, uploadStatusOK)
	return saved, nil
}

func (s *cvService) read(r io.Reader) ([]byte, error) {
	if s.maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

func (s *cvService) DownloadURL(ctx context.Context, userID, cvID string) (string, error) {
	if _, err := uuid.Parse(cvID); err != nil {
		return "", ErrNotFound
	}
	cv, err := s.repo.FindByIDForUser(ctx, cvID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if cv.StoragePath == "" || s.store == nil {
		return "", ErrNotFound
	}
	return s.store.PresignGet(ctx, cv.StoragePath, downloadURLExpiry)
}
