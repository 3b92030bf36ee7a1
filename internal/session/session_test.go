package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobassist/internal/config"
	"jobassist/internal/model"
)

func newTestManager(t *testing.T) (*manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	m, err := NewManager(NewRedisStore(rdb), config.SessionConfig{Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)
	return m.(*manager), mr
}

var marie = &model.User{ID: "user-1", FirstName: "Marie", LastName: "Curie", Email: "marie@example.fr"}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager(nil, config.SessionConfig{})
	assert.Error(t, err)

	m, err := NewManager(nil, config.SessionConfig{Secret: "s"})
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, m.TTL())
}

func TestManager_CreateResolve(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	token, sess, err := m.Create(ctx, marie)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Marie Curie", sess.Name)
	assert.True(t, mr.Exists("session:"+sess.ID))
	assert.Equal(t, time.Hour, mr.TTL("session:"+sess.ID))

	got, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "marie@example.fr", got.Email)
}

func TestManager_Resolve_Rejects(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()
	token, sess, err := m.Create(ctx, marie)
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := m.Resolve(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Resolve(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
			SessionID:        sess.ID,
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		}).SignedString([]byte("other"))
		require.NoError(t, err)

		_, err = m.Resolve(ctx, forged)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		orig := m.now
		m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { m.now = orig }()

		_, err := m.Resolve(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("session expired in redis", func(t *testing.T) {
		tok, s, err := m.Create(ctx, marie)
		require.NoError(t, err)
		mr.Del("session:" + s.ID)

		_, err = m.Resolve(ctx, tok)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestManager_Destroy(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()
	token, sess, err := m.Create(ctx, marie)
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, sess.ID))
	assert.False(t, mr.Exists("session:"+sess.ID))

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_CorruptRecord(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	store := NewRedisStore(rdb)

	require.NoError(t, mr.Set("session:bad", "{not json"))

	_, err := store.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, mr.Exists("session:bad"))
}
