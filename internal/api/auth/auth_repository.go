package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/kitchenbuddy/kitchenbuddy/internal/api"
)

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// AuthRepo is the user directory: it owns persisted credential records.
type AuthRepo interface {
	// GetUserByIdentifier looks a user up by username or email.
	// Returns api.ErrNotFound when no account matches.
	GetUserByIdentifier(ctx context.Context, identifier string) (*UserAuth, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// CreateUser inserts a new credential record. A unique violation on
	// email or username surfaces as api.ErrConflict.
	CreateUser(ctx context.Context, params CreateUserParams) (*UserAuth, error)
	UpdateLastLogin(ctx context.Context, userID string) error
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	pgpool *pgxpool.Pool
}

func NewPostgresAuthRepo(pgpool *pgxpool.Pool, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const userColumns = `id, name, surname, email, username, password_hash, usertype, is_email_verified, created_at, last_login_at`

func scanUser(row pgx.Row) (*UserAuth, error) {
	var user UserAuth
	err := row.Scan(&user.ID, &user.Name, &user.Surname, &user.Email,
		&user.Username, &user.PasswordHash, &user.Usertype,
		&user.IsEmailVerified, &user.CreatedAt, &user.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}

func (r *PostgresAuthRepo) GetUserByIdentifier(ctx context.Context, identifier string) (*UserAuth, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "GetUserByIdentifier", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1 OR email = $1`, userColumns)
	return scanUser(r.pgpool.QueryRow(ctx, query, identifier))
}

func (r *PostgresAuthRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pgpool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by email: %w", err)
	}
	return exists, nil
}

func (r *PostgresAuthRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.pgpool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists by username: %w", err)
	}
	return exists, nil
}

func (r *PostgresAuthRepo) CreateUser(ctx context.Context, params CreateUserParams) (*UserAuth, error) {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "CreateUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	query := fmt.Sprintf(`
		INSERT INTO users (name, surname, email, username, password_hash, usertype)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, userColumns)

	user, err := scanUser(r.pgpool.QueryRow(ctx, query,
		params.Name, params.Surname, params.Email, params.Username,
		params.PasswordHash, params.Usertype))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// The unique index serializes concurrent registrations for the
			// same identifier.
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *PostgresAuthRepo) UpdateLastLogin(ctx context.Context, userID string) error {
	tag, err := r.pgpool.Exec(ctx,
		`UPDATE users SET last_login_at = $1 WHERE id = $2`, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}
