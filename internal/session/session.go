// Package session issues and resolves login sessions: a Redis record per
// session, referenced by an HS256-signed cookie token.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"jobassist/internal/config"
	"jobassist/internal/model"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrInvalidToken = errors.New("invalid session token")
)

// Manager creates, resolves and destroys sessions.
type Manager interface {
	// Create opens a session for u and returns the signed cookie token.
	Create(ctx context.Context, u *model.User) (string, *model.Session, error)
	// Resolve verifies token and loads its session.
	// It returns ErrInvalidToken or ErrNotFound when the caller is not signed in.
	Resolve(ctx context.Context, token string) (*model.Session, error)
	Destroy(ctx context.Context, id string) error
	TTL() time.Duration
}

type claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager fails when no signing secret is configured.
func NewManager(store Store, cfg config.SessionConfig) (Manager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &manager{store: store, secret: []byte(cfg.Secret), ttl: ttl, now: time.Now}, nil
}

func (m *manager) TTL() time.Duration { return m.ttl }

func (m *manager) Create(ctx context.Context, u *model.User) (string, *model.Session, error) {
	now := m.now().UTC()
	sess := &model.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.FullName(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, sess, m.ttl); err != nil {
		return "", nil, err
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: sess.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}).SignedString(m.secret)
	if err != nil {
		_ = m.store.Delete(ctx, sess.ID)
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, sess, nil
}

func (m *manager) Resolve(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || c.SessionID == "" || c.Subject == "" {
		return nil, ErrInvalidToken
	}

	sess, err := m.store.Get(ctx, c.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != c.Subject {
		return nil, ErrInvalidToken
	}
	return sess, nil
}

func (m *manager) Destroy(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}
