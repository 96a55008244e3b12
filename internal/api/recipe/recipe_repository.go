package recipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/kitchenbuddy/kitchenbuddy/internal/api"
)

var _ RecipeRepo = (*PostgresRecipeRepo)(nil)

// RecipeRepo persists recipes. Every read and write is scoped to the owning
// user; a recipe belonging to someone else behaves exactly like a missing
// one.
type RecipeRepo interface {
	GetUserIDByUsername(ctx context.Context, username string) (string, error)
	ListByUser(ctx context.Context, userID string) ([]Recipe, error)
	GetByID(ctx context.Context, recipeID, userID string) (*Recipe, error)
	Create(ctx context.Context, userID string, params UpsertRecipeRequest) (*Recipe, error)
	Replace(ctx context.Context, recipeID, userID string, params UpsertRecipeRequest) (*Recipe, error)
	Patch(ctx context.Context, recipeID, userID string, patch PatchRecipeRequest) error
	Delete(ctx context.Context, recipeID, userID string) error
}

// Querier is the subset of pgxpool.Pool the repository uses; both
// *pgxpool.Pool and pgxmock satisfy it.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresRecipeRepo struct {
	logger *slog.Logger
	pgpool Querier
}

func NewPostgresRecipeRepo(pgpool Querier, logger *slog.Logger) *PostgresRecipeRepo {
	return &PostgresRecipeRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const recipeColumns = `id, user_id, ingredients, directions, nutritional_benefits, created_at, updated_at`

func scanRecipe(row pgx.Row) (*Recipe, error) {
	var rec Recipe
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Ingredients, &rec.Directions,
		&rec.NutritionalBenefits, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, api.ErrNotFound
		}
		return nil, fmt.Errorf("scan recipe: %w", err)
	}
	return &rec, nil
}

func (r *PostgresRecipeRepo) GetUserIDByUsername(ctx context.Context, username string) (string, error) {
	var userID string
	err := r.pgpool.QueryRow(ctx,
		`SELECT id FROM users WHERE username = $1`, username).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", api.ErrNotFound
		}
		return "", fmt.Errorf("get user id: %w", err)
	}
	return userID, nil
}

func (r *PostgresRecipeRepo) ListByUser(ctx context.Context, userID string) ([]Recipe, error) {
	ctx, span := otel.Tracer("RecipeRepo").Start(ctx, "ListByUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "recipes"),
	))
	defer span.End()

	query := fmt.Sprintf(`SELECT %s FROM recipes WHERE user_id = $1 ORDER BY created_at DESC`, recipeColumns)
	rows, err := r.pgpool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	recipes := []Recipe{}
	for rows.Next() {
		var rec Recipe
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Ingredients, &rec.Directions,
			&rec.NutritionalBenefits, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe row: %w", err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}
	return recipes, nil
}

func (r *PostgresRecipeRepo) GetByID(ctx context.Context, recipeID, userID string) (*Recipe, error) {
	query := fmt.Sprintf(`SELECT %s FROM recipes WHERE id = $1 AND user_id = $2`, recipeColumns)
	return scanRecipe(r.pgpool.QueryRow(ctx, query, recipeID, userID))
}

func (r *PostgresRecipeRepo) Create(ctx context.Context, userID string, params UpsertRecipeRequest) (*Recipe, error) {
	ctx, span := otel.Tracer("RecipeRepo").Start(ctx, "Create", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "recipes"),
	))
	defer span.End()

	query := fmt.Sprintf(`
		INSERT INTO recipes (user_id, ingredients, directions, nutritional_benefits)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`, recipeColumns)
	return scanRecipe(r.pgpool.QueryRow(ctx, query,
		userID, params.Ingredients, params.Directions, params.NutritionalBenefits))
}

func (r *PostgresRecipeRepo) Replace(ctx context.Context, recipeID, userID string, params UpsertRecipeRequest) (*Recipe, error) {
	query := fmt.Sprintf(`
		UPDATE recipes
		SET ingredients = $1, directions = $2, nutritional_benefits = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
		RETURNING %s`, recipeColumns)
	return scanRecipe(r.pgpool.QueryRow(ctx, query,
		params.Ingredients, params.Directions, params.NutritionalBenefits,
		time.Now(), recipeID, userID))
}

// Patch builds the SET clause dynamically from the non-nil fields.
func (r *PostgresRecipeRepo) Patch(ctx context.Context, recipeID, userID string, patch PatchRecipeRequest) error {
	ctx, span := otel.Tracer("RecipeRepo").Start(ctx, "Patch", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPDATE"),
		attribute.String("db.sql.table", "recipes"),
	))
	defer span.End()

	var setClauses []string
	var args []interface{}
	argID := 1

	if patch.Ingredients != nil {
		setClauses = append(setClauses, fmt.Sprintf("ingredients = $%d", argID))
		args = append(args, *patch.Ingredients)
		argID++
	}
	if patch.Directions != nil {
		setClauses = append(setClauses, fmt.Sprintf("directions = $%d", argID))
		args = append(args, *patch.Directions)
		argID++
	}
	if patch.NutritionalBenefits != nil {
		setClauses = append(setClauses, fmt.Sprintf("nutritional_benefits = $%d", argID))
		args = append(args, *patch.NutritionalBenefits)
		argID++
	}

	if len(setClauses) == 0 {
		r.logger.WarnContext(ctx, "Patch called with no fields to update",
			slog.String("recipe_id", recipeID))
		return nil
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now())
	argID++

	args = append(args, recipeID, userID)
	query := fmt.Sprintf("UPDATE recipes SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(setClauses, ", "), argID, argID+1)

	tag, err := r.pgpool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("patch recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}

func (r *PostgresRecipeRepo) Delete(ctx context.Context, recipeID, userID string) error {
	tag, err := r.pgpool.Exec(ctx,
		`DELETE FROM recipes WHERE id = $1 AND user_id = $2`, recipeID, userID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return api.ErrNotFound
	}
	return nil
}
