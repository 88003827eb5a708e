package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// Mode определяет, участвует ли пароль в регистрации и входе
type Mode int

const (
	// IdentityOnly - пользователь определяется только внешним идентификатором
	IdentityOnly Mode = iota
	// WithPassword - при регистрации хранится bcrypt-хэш, при входе он проверяется
	WithPassword
)

type Servicer interface {
	Register(ctx context.Context, creds Credentials) (User, error)
	Authenticate(ctx context.Context, creds Credentials) (User, error)
	FindByIdentity(ctx context.Context, identity string) (User, error)
}

type Service struct {
	repo      Repository
	validator Validator
	mode      Mode
	log       *slog.Logger
}

func NewService(repo Repository, validator Validator, mode Mode, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
		mode:      mode,
		log:       log.With("component", "user_service"),
	}
}

func (s *Service) Register(ctx context.Context, creds Credentials) (User, error) {
	identity := creds.Identity()

	if err := s.validator.ValidateIdentity(identity); err != nil {
		s.log.Debug("validation failed", "identity", identity, "error", err)
		return User{}, fmt.Errorf("%w: identity validation failed: %v", ErrInvalidInput, err)
	}

	// занятый identity важнее ошибок в пароле: повторная регистрация всегда 409
	_, err := s.repo.FindByIdentity(ctx, identity)
	switch {
	case err == nil:
		return User{}, ErrAlreadyExists
	case !errors.Is(err, ErrNotFound):
		return User{}, fmt.Errorf("find user: %w", err)
	}

	var hash string
	if s.mode == WithPassword {
		if err := s.validator.ValidatePassword(creds.Password); err != nil {
			s.log.Debug("validation failed", "identity", identity, "error", err)
			return User{}, fmt.Errorf("%w: password validation failed: %v", ErrInvalidInput, err)
		}

		b, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
		if err != nil {
			return User{}, fmt.Errorf("hash password: %w", err)
		}
		hash = string(b)
	}

	id, err := s.repo.Create(ctx, identity, hash)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return User{}, ErrAlreadyExists
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", "user_id", id)

	return User{ID: id, Identity: identity, PasswordHash: hash}, nil
}

func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	identity := creds.Identity()
	if identity == "" {
		return User{}, fmt.Errorf("%w: identity is required", ErrInvalidInput)
	}

	u, err := s.repo.FindByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}

	if s.mode == WithPassword {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)); err != nil {
			return User{}, ErrInvalidCredentials
		}
	}

	return u, nil
}

func (s *Service) FindByIdentity(ctx context.Context, identity string) (User, error) {
	u, err := s.repo.FindByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}
