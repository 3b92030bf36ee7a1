package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"jobassist/internal/model"
	"jobassist/internal/repository"
	"jobassist/internal/session"
	"jobassist/internal/validation"
)

// LoginResult is a successful sign-in.
type LoginResult struct {
	Token   string
	User    *model.User
	Session *model.Session
}

// AuthService registers accounts and opens and closes sessions.
type AuthService interface {
	Register(ctx context.Context, in validation.RegistrationInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sess *model.Session) error
}

type authService struct {
	users    repository.UserRepository
	sessions session.Manager
	prefs    PreferencesService
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewAuthService(users repository.UserRepository, sessions session.Manager, prefs PreferencesService, log logrus.FieldLogger) AuthService {
	return &authService{users: users, sessions: sessions, prefs: prefs, log: log, now: time.Now}
}

func (s *authService) Register(ctx context.Context, in validation.RegistrationInput) (*model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Registration(in).Err(); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &model.User{
		ID:           uuid.NewString(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	res := validation.Success()
	if email == "" {
		res.AddError("email", "email est requis")
	}
	if password == "" {
		res.AddError("password", "mot de passe est requis")
	}
	if err := res.Err(); err != nil {
		return nil, err
	}

	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, sess, err := s.sessions.Create(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if err := s.prefs.SignedIn(ctx, u.Public()); err != nil {
		s.log.WithError(err).WithField("user_id", u.ID).Warn("record sign-in in app state")
	}
	return &LoginResult{Token: token, User: u, Session: sess}, nil
}

func (s *authService) Logout(ctx context.Context, sess *model.Session) error {
	if err := s.sessions.Destroy(ctx, sess.ID); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	if err := s.prefs.SignedOut(ctx, sess.UserID); err != nil {
		s.log.WithError(err).WithField("user_id", sess.UserID).Warn("record sign-out in app state")
	}
	return nil
}
