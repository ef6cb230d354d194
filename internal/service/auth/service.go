package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"

	"github.com/you-humble/computer-shop/internal/model"
	"github.com/you-humble/computer-shop/platform/logger"
)

type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	Append(ctx context.Context, u model.User) error
}

type service struct {
	repo           UserRepository
	minPasswordLen int
	hashCost       int
	validate       *validator.Validate

	mu       sync.Mutex
	loggedIn map[string]struct{}
}

type Option func(*service)

// WithHashCost overrides the bcrypt cost, mostly to keep tests fast.
func WithHashCost(cost int) Option {
	return func(s *service) { s.hashCost = cost }
}

func NewAuthService(repo UserRepository, minPasswordLen int, opts ...Option) *service {
	s := &service{
		repo:           repo,
		minPasswordLen: minPasswordLen,
		hashCost:       bcrypt.DefaultCost,
		validate:       validator.New(),
		loggedIn:       make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register stores a new user and logs them in.
func (s *service) Register(ctx context.Context, username, email, password string) error {
	const op = "auth.service.Register"
	log := logger.With(
		logger.String("username", username),
	)

	if err := model.ValidateUsername(username); err != nil {
		log.Warn(ctx, "validation: username", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.ValidatePassword(password); err != nil {
		log.Warn(ctx, "validation: password", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	email = strings.TrimSpace(email)
	if err := s.ValidateEmail(email); err != nil {
		log.Warn(ctx, "validation: email", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		log.Error(ctx, "repository list users", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if lo.ContainsBy(users, func(u model.User) bool { return u.Username == username }) {
		return fmt.Errorf("%s: %w: %s", op, model.ErrUsernameAlreadyExists, username)
	}
	if lo.ContainsBy(users, func(u model.User) bool { return strings.EqualFold(u.Email, email) }) {
		return fmt.Errorf("%s: %w: %s", op, model.ErrEmailAlreadyExists, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		log.Warn(ctx, "hash password", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, errors.Join(model.ErrInvalidPassword, err))
	}

	if err := s.repo.Append(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}); err != nil {
		log.Error(ctx, "repository append user", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.markLoggedIn(username)
	log.Info(ctx, "user registered")
	return nil
}

// Login checks the password of an existing user.
func (s *service) Login(ctx context.Context, username, password string) error {
	const op = "auth.service.Login"
	log := logger.With(
		logger.String("username", username),
	)

	u, err := s.user(ctx, username)
	if err != nil {
		log.Warn(ctx, "lookup user", logger.ErrorF(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		log.Warn(ctx, "wrong password")
		return fmt.Errorf("%s: %w", op, model.ErrInvalidPassword)
	}

	s.markLoggedIn(username)
	return nil
}

// VerifyEmail checks that email is the one registered for username.
func (s *service) VerifyEmail(ctx context.Context, username, email string) error {
	const op = "auth.service.VerifyEmail"

	u, err := s.user(ctx, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !strings.EqualFold(u.Email, strings.TrimSpace(email)) {
		return fmt.Errorf("%s: %w: does not match %s", op, model.ErrInvalidEmail, username)
	}
	return nil
}

func (s *service) Logout(ctx context.Context, username string) {
	s.mu.Lock()
	delete(s.loggedIn, username)
	s.mu.Unlock()

	logger.Debug(ctx, "user logged out", logger.String("username", username))
}

func (s *service) IsLoggedIn(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.loggedIn[username]
	return ok
}

func (s *service) ValidatePassword(password string) error {
	if len(password) < s.minPasswordLen {
		return fmt.Errorf("%w: at least %d characters required", model.ErrPasswordTooShort, s.minPasswordLen)
	}
	return nil
}

func (s *service) ValidateEmail(email string) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: %q", model.ErrInvalidEmail, email)
	}
	return nil
}

func (s *service) user(ctx context.Context, username string) (model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return model.User{}, err
	}

	u, ok := lo.Find(users, func(u model.User) bool { return u.Username == username })
	if !ok {
		return model.User{}, fmt.Errorf("%w: unknown user %s", model.ErrInvalidUsername, username)
	}
	return u, nil
}

func (s *service) markLoggedIn(username string) {
	s.mu.Lock()
	s.loggedIn[username] = struct{}{}
	s.mu.Unlock()
}
