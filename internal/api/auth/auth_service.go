package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/kitchenbuddy/kitchenbuddy/config"
	"github.com/kitchenbuddy/kitchenbuddy/internal/api"
)

// Conflict reasons for registration. Both unwrap to api.ErrConflict; handlers
// pick the wire message off the specific sentinel.
var (
	ErrEmailTaken    = fmt.Errorf("%w: user with this email already exists", api.ErrConflict)
	ErrUsernameTaken = fmt.Errorf("%w: username is already taken", api.ErrConflict)
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService is the credential and session-token component consumed by the
// HTTP boundary.
type AuthService interface {
	Login(ctx context.Context, identifier, password string) (*AuthPayload, error)
	Register(ctx context.Context, req SignUpRequest) (*AuthPayload, error)
}

// ValidationError carries the full, ordered list of violated rules.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, ", ")
}

func (e *ValidationError) Unwrap() error { return api.ErrValidation }

// prehash compresses the password to a fixed 44 bytes before bcrypt.
// bcrypt only reads the first 72 bytes of its input, so without this step
// passwords in the 73-128 range would fail to hash and any two passwords
// sharing a 72-byte prefix would collide.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// HashPassword derives a salted bcrypt hash over the pre-hashed password.
// The salt is generated per call, so hashing the same password twice yields
// different outputs.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(prehash(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword reports whether candidate matches the stored hash. Any
// malformed or foreign-format hash is a mismatch, never a request failure.
func VerifyPassword(passwordHash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), prehash(candidate)) == nil
}

type AuthServiceImpl struct {
	repo   AuthRepo
	cfg    *config.Config
	logger *slog.Logger
}

func NewAuthService(repo AuthRepo, cfg *config.Config, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Login authenticates by username or email. Unknown identifier and wrong
// password both surface as api.ErrUnauthenticated so the response cannot
// reveal which one failed.
func (s *AuthServiceImpl) Login(ctx context.Context, identifier, password string) (*AuthPayload, error) {
	l := s.logger.With(slog.String("method", "Login"))

	user, err := s.repo.GetUserByIdentifier(ctx, strings.ToLower(strings.TrimSpace(identifier)))
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			l.WarnContext(ctx, "Login attempt with unknown identifier")
			return nil, fmt.Errorf("%w: invalid credentials", api.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !VerifyPassword(user.PasswordHash, password) {
		l.WarnContext(ctx, "Login attempt with invalid password", slog.String("username", user.Username))
		return nil, fmt.Errorf("%w: invalid credentials", api.ErrUnauthenticated)
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Not fatal: the credentials checked out, only bookkeeping failed.
		l.WarnContext(ctx, "Failed to update last login time",
			slog.String("user_id", user.ID), slog.Any("error", err))
	}

	token, err := IssueToken(user.Username, user.Usertype, s.cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	l.InfoContext(ctx, "User logged in successfully", slog.String("username", user.Username))
	return s.payload(user, token), nil
}

// Register validates the sign-up request, checks for conflicts, persists the
// new credential and returns an auto-login payload. Validation accumulates
// every violated rule before reporting.
func (s *AuthServiceImpl) Register(ctx context.Context, req SignUpRequest) (*AuthPayload, error) {
	l := s.logger.With(slog.String("method", "Register"))

	if errs := ValidateSignUp(req); len(errs) > 0 {
		l.WarnContext(ctx, "Sign-up validation failed", slog.Int("violations", len(errs)))
		return nil, &ValidationError{Errors: errs}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))

	emailTaken, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if emailTaken {
		l.WarnContext(ctx, "Sign-up attempt with existing email")
		return nil, ErrEmailTaken
	}

	usernameTaken, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if usernameTaken {
		l.WarnContext(ctx, "Sign-up attempt with existing username", slog.String("username", username))
		return nil, ErrUsernameTaken
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, CreateUserParams{
		Name:         strings.TrimSpace(req.Name),
		Surname:      strings.TrimSpace(req.Surname),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Usertype:     RoleCustomer,
	})
	if err != nil {
		// The uniqueness constraint is the arbiter for concurrent sign-ups
		// with the same identifier; the earlier exists checks only give
		// nicer messages for the common case.
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := IssueToken(user.Username, user.Usertype, s.cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	l.InfoContext(ctx, "User registered successfully", slog.String("username", user.Username))
	return s.payload(user, token), nil
}

func (s *AuthServiceImpl) payload(user *UserAuth, token string) *AuthPayload {
	return &AuthPayload{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Name:     user.Name,
		Surname:  user.Surname,
		Usertype: user.Usertype,
		Token:    token,
	}
}
