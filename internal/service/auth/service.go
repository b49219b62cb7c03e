// Package auth handles registration, login and session token verification.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/dairy/internal/apperr"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository"
	"github.com/mamadbah2/dairy/internal/validation"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgEmailTaken         = "Email already registered"
	msgBlocked            = "Account is blocked"
	msgUnauthorized       = "Not authorized"
	msgPasswordTooLong    = "password must be at most 72 bytes"
)

// Service implements the account workflows.
type Service struct {
	accounts repository.AccountStore
	hasher   PasswordHasher
	tokens   *TokenService
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new auth service instance.
func NewService(accounts repository.AccountStore, hasher PasswordHasher, tokens *TokenService, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates a farmer account and returns a session for it.
func (s *Service) Register(ctx context.Context, in models.RegisterInput) (models.Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return models.Session{}, err
	}

	if _, err := s.accounts.FindByEmail(ctx, in.Email); err == nil {
		return models.Session{}, apperr.Conflict(msgEmailTaken)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return models.Session{}, apperr.Internal("lookup account", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return models.Session{}, apperr.Validation(msgPasswordTooLong)
	}
	if err != nil {
		return models.Session{}, apperr.Internal("hash password", err)
	}

	account := models.Account{
		ID:           primitive.NewObjectID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		FarmName:     in.FarmName,
		Location:     in.Location,
		Role:         models.RoleFarmer,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.Session{}, apperr.Conflict(msgEmailTaken)
		}
		return models.Session{}, apperr.Internal("create account", err)
	}

	s.logger.Info("farmer registered", zap.String("account_id", account.ID.Hex()))
	return s.session(account)
}

// Login checks credentials and returns a session. Unknown email and wrong
// password fail identically.
func (s *Service) Login(ctx context.Context, in models.LoginInput) (models.Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return models.Session{}, err
	}

	account, err := s.accounts.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Session{}, apperr.Credentials(msgInvalidCredentials)
		}
		return models.Session{}, apperr.Internal("lookup account", err)
	}

	if !s.hasher.Check(in.Password, account.PasswordHash) {
		return models.Session{}, apperr.Credentials(msgInvalidCredentials)
	}

	if account.Blocked {
		return models.Session{}, apperr.Forbidden(msgBlocked)
	}

	return s.session(account)
}

// Me returns the account behind an authenticated identity.
func (s *Service) Me(ctx context.Context, id models.Identity) (models.Account, error) {
	account, err := s.accounts.FindByID(ctx, id.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Account{}, apperr.NotFound("User not found")
		}
		return models.Account{}, apperr.Internal("lookup account", err)
	}
	return account, nil
}

// Authenticate resolves a raw session token to the caller. The role comes
// from the stored account so demotions and blocks apply immediately.
func (s *Service) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	id, _, err := s.tokens.Verify(token)
	if err != nil {
		return models.Identity{}, apperr.Unauthorized(msgUnauthorized, err)
	}

	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Identity{}, apperr.Unauthorized(msgUnauthorized, err)
		}
		return models.Identity{}, apperr.Internal("lookup account", err)
	}

	if account.Blocked {
		return models.Identity{}, apperr.Forbidden(msgBlocked)
	}

	return models.Identity{ID: account.ID, Role: account.Role, Blocked: account.Blocked}, nil
}

// EnsureAdmin creates the administrator account when no account uses email.
// It reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, errors.New("admin email and password must be provided")
	}

	existing, err := s.accounts.FindByEmail(ctx, email)
	if err == nil {
		if existing.Role != models.RoleAdmin {
			s.logger.Warn("admin email belongs to a non-admin account", zap.String("account_id", existing.ID.Hex()))
		}
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return false, apperr.Validation(msgPasswordTooLong)
	}
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.Account{
		ID:           primitive.NewObjectID(),
		Name:         "System Admin",
		Email:        email,
		PasswordHash: hash,
		FarmName:     "System",
		Location:     "System",
		Role:         models.RoleAdmin,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.accounts.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, fmt.Errorf("create admin: %w", err)
	}

	s.logger.Info("admin account created", zap.String("email", email))
	return true, nil
}

func (s *Service) session(account models.Account) (models.Session, error) {
	token, err := s.tokens.Issue(account.ID, account.Role)
	if err != nil {
		return models.Session{}, apperr.Internal("issue token", err)
	}
	return models.Session{Token: token, User: account}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
