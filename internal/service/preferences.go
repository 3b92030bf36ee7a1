package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"jobassist/internal/appstate"
	"jobassist/internal/model"
	"jobassist/internal/validation"
)

// PreferencesService reads and writes a user's persisted application state.
type PreferencesService interface {
	Get(ctx context.Context, userID string) (appstate.Persisted, error)
	// Update replaces the persisted subset. The user identity always comes from
	// the account, never from the payload.
	Update(ctx context.Context, userID string, p appstate.Persisted) (appstate.Persisted, error)
	// SignedIn records u as the authenticated user.
	SignedIn(ctx context.Context, u model.PublicUser) error
	// SignedOut clears identity and collections.
	SignedOut(ctx context.Context, userID string) error
}

type preferencesService struct {
	storage appstate.Storage
	log     logrus.FieldLogger
}

func NewPreferencesService(storage appstate.Storage, log logrus.FieldLogger) PreferencesService {
	return &preferencesService{storage: storage, log: log}
}

func (s *preferencesService) open(ctx context.Context, userID string) (*appstate.Store, error) {
	return appstate.Open(ctx, s.storage, appstate.Key(userID), appstate.WithLogger(s.log))
}

func (s *preferencesService) Get(ctx context.Context, userID string) (appstate.Persisted, error) {
	st, err := s.open(ctx, userID)
	if err != nil {
		return appstate.Persisted{}, err
	}
	defer st.Close()
	return st.Persisted(), nil
}

func (s *preferencesService) Update(ctx context.Context, userID string, p appstate.Persisted) (appstate.Persisted, error) {
	if p.UI.Theme == "" {
		p.UI.Theme = appstate.ThemeSystem
	}
	if !p.UI.Theme.Valid() {
		res := validation.Success()
		res.AddError("ui.theme", "Le thème doit être light, dark ou system")
		return appstate.Persisted{}, res
	}

	st, err := s.open(ctx, userID)
	if err != nil {
		return appstate.Persisted{}, err
	}
	defer st.Close()

	current := st.Persisted()
	p.User = current.User
	p.IsAuthenticated = current.IsAuthenticated

	next, err := st.Dispatch(ctx, appstate.ApplyPersisted(p))
	if err != nil {
		return appstate.Persisted{}, err
	}
	return next.Persisted(), nil
}

func (s *preferencesService) SignedIn(ctx context.Context, u model.PublicUser) error {
	st, err := s.open(ctx, u.ID)
	if err != nil {
		return err
	}
	defer st.Close()
	_, err = st.Dispatch(ctx, appstate.Login(u))
	return err
}

func (s *preferencesService) SignedOut(ctx context.Context, userID string) error {
	st, err := s.open(ctx, userID)
	if err != nil {
		return err
	}
	defer st.Close()
	_, err = st.Dispatch(ctx, appstate.Logout())
	return err
}
