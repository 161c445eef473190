package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/L968/trecco-api/internal/users/models"
	id "github.com/L968/trecco-api/pkg/domain"
	dErrors "github.com/L968/trecco-api/pkg/domain-errors"
	"github.com/L968/trecco-api/pkg/email"
	"github.com/L968/trecco-api/pkg/platform/sentinel"
	"github.com/L968/trecco-api/pkg/requestcontext"
)

const minPasswordLength = 8

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type TokenIssuer interface {
	GenerateAccessToken(userID id.UserID) (string, error)
}

// Service handles account registration and login.
type Service struct {
	users  UserStore
	tokens TokenIssuer
	logger *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a Service.
func New(users UserStore, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		users:  users,
		tokens: tokens,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a new account. An empty display name is derived from the
// email's local part.
func (s *Service) Register(ctx context.Context, name, emailAddr, password string) (*models.User, error) {
	if len(password) < minPasswordLength {
		return nil, dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters")
	}

	if strings.TrimSpace(name) == "" {
		first, last := email.DeriveNameFromEmail(emailAddr)
		name = first + " " + last
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user, err := models.NewUser(name, emailAddr, string(hash), requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(models.CodeUserEmailTaken, "an account with this email already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies the credentials and issues an access token. Wrong email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", nil, dErrors.New(models.CodeUserInvalidCredentials, "invalid email or password")
		}
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, dErrors.New(models.CodeUserInvalidCredentials, "invalid email or password")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return "", nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}
	return token, user, nil
}

// GetByID loads a user account.
func (s *Service) GetByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(models.CodeUserNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}
