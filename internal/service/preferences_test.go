package service

import (
	"context"
	"testing"

	"jobassist/internal/appstate"
	"jobassist/internal/model"
	"jobassist/internal/validation"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesService_Defaults(t *testing.T) {
	log, _ := test.NewNullLogger()
	svc := NewPreferencesService(appstate.NewMemoryStorage(), log)

	p, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, appstate.ThemeSystem, p.UI.Theme)
	assert.True(t, p.UI.SidebarOpen)
	assert.False(t, p.IsAuthenticated)
}

func TestPreferencesService_Update(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log, _ := test.NewNullLogger()
	svc := NewPreferencesService(appstate.NewRedisStorage(rdb), log)
	require.NoError(t, svc.SignedIn(ctx, model.PublicUser{ID: "u1", Email: "jean@example.com"}))

	q := "golang"
	got, err := svc.Update(ctx, "u1", appstate.Persisted{
		User:            &model.PublicUser{ID: "intruder"},
		IsAuthenticated: false,
		UI:              appstate.PersistedUI{Theme: appstate.ThemeDark},
		Filters: appstate.Filters{
			JobOffers: appstate.JobOfferFilters{SearchQuery: &q, Locations: []string{"Paris"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, appstate.ThemeDark, got.UI.Theme)
	assert.False(t, got.UI.SidebarOpen)
	assert.True(t, got.IsAuthenticated)
	require.NotNil(t, got.User)
	assert.Equal(t, "u1", got.User.ID)

	assert.True(t, mr.Exists(appstate.Key("u1")))

	reloaded, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, got, reloaded)
}

func TestPreferencesService_Update_InvalidTheme(t *testing.T) {
	log, _ := test.NewNullLogger()
	svc := NewPreferencesService(appstate.NewMemoryStorage(), log)

	_, err := svc.Update(context.Background(), "u1", appstate.Persisted{
		UI: appstate.PersistedUI{Theme: "sepia"},
	})
	res, ok := validation.AsResult(err)
	require.True(t, ok)
	assert.Equal(t, "ui.theme", res.Errors[0].Field)
}
