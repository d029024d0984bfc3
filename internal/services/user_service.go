package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/baharkarakas/bloglist-backend/internal/api/validate"
	"github.com/baharkarakas/bloglist-backend/internal/auth"
	"github.com/baharkarakas/bloglist-backend/internal/metrics"
	"github.com/baharkarakas/bloglist-backend/internal/models"
	repo "github.com/baharkarakas/bloglist-backend/internal/repository"
)

const minPasswordLen = 3

type UserService struct {
	store  repo.Store
	hasher *auth.Hasher
	tokens *auth.TokenManager

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(s repo.Store, h *auth.Hasher, tm *auth.TokenManager) *UserService {
	return &UserService{store: s, hasher: h, tokens: tm}
}

type RegisterInput struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register checks the password before the username; the first failure wins.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	if f := validate.First(
		validate.NotEmpty("password", in.Password),
		validate.MinLen("password", in.Password, minPasswordLen),
		validate.Required("username", in.Username),
	); f != nil {
		return models.User{}, invalid(f)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, err
	}
	u := models.User{
		Username:     strings.TrimSpace(in.Username),
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
	}
	if err := s.store.Users().Create(ctx, &u); err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, err
	}
	slog.DebugContext(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.store.Users().List(ctx)
}

type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Login answers ErrInvalidCredentials for both an unknown username and a wrong
// password, and spends one bcrypt comparison either way.
func (s *UserService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	u, err := s.store.Users().GetByUsername(ctx, username)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		s.hasher.Check(password, s.dummy())
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return LoginResult{}, ErrInvalidCredentials
	case err != nil:
		return LoginResult{}, err
	}

	if !s.hasher.Check(password, u.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return LoginResult{}, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return LoginResult{}, err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return LoginResult{Token: tok, Username: u.Username, Name: u.Name}, nil
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("bloglist-dummy-password")
	})
	return s.dummyHash
}
