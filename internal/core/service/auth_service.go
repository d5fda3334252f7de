package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/openblog/blog-api/internal/core/domain"
	"github.com/openblog/blog-api/internal/core/ports"
)

// AuthService implements registration and credential login.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// Register creates a local account with the default role. It returns
// false when the username is taken. The exists check and insert are not
// atomic; a concurrent registration that wins the race surfaces as
// ErrUserExists from the store and is folded into the same false result.
func (s *AuthService) Register(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, domain.ErrInvalidCredentials
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	_, err = s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrUserExists) {
		s.logger.Warn().Str("username", username).Msg("lost registration race, username taken")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Login verifies credentials and issues a token. Unknown usernames and
// wrong passwords produce the same error so the response does not
// reveal which half failed. Federated accounts have an empty hash and
// always fail the password comparison.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Str("username", username).Msg("login failed: unknown user")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn().Str("username", username).Msg("login failed: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &ports.LoginResult{Token: token, Username: user.Username, Role: user.Role}, nil
}

// RegisterExternalIfAbsent creates an empty-password account for a
// federated identity unless one already exists. Safe to call on every
// federated login; concurrent calls converge on the single stored record.
func (s *AuthService) RegisterExternalIfAbsent(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: "",
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrUserExists) {
		return s.users.FindByUsername(ctx, username)
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// IsExternal reports whether the named account is a federated identity.
func (s *AuthService) IsExternal(ctx context.Context, username string) (bool, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return user.External(), nil
}
