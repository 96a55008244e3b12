package recipe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kitchenbuddy/kitchenbuddy/internal/api"
)

var _ RecipeService = (*RecipeServiceImpl)(nil)

// RecipeService exposes owner-scoped recipe CRUD to the HTTP boundary.
// Callers are identified by the username from the session token.
type RecipeService interface {
	List(ctx context.Context, username string) ([]Recipe, error)
	Get(ctx context.Context, username, recipeID string) (*Recipe, error)
	Create(ctx context.Context, username string, req UpsertRecipeRequest) (*Recipe, error)
	Replace(ctx context.Context, username, recipeID string, req UpsertRecipeRequest) (*Recipe, error)
	Patch(ctx context.Context, username, recipeID string, req PatchRecipeRequest) error
	Delete(ctx context.Context, username, recipeID string) error
}

type RecipeServiceImpl struct {
	repo   RecipeRepo
	logger *slog.Logger
}

func NewRecipeService(repo RecipeRepo, logger *slog.Logger) *RecipeServiceImpl {
	return &RecipeServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *RecipeServiceImpl) ownerID(ctx context.Context, username string) (string, error) {
	userID, err := s.repo.GetUserIDByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("resolve owner %q: %w", username, err)
	}
	return userID, nil
}

func (s *RecipeServiceImpl) List(ctx context.Context, username string) ([]Recipe, error) {
	userID, err := s.ownerID(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *RecipeServiceImpl) Get(ctx context.Context, username, recipeID string) (*Recipe, error) {
	userID, err := s.ownerID(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, recipeID, userID)
}

func (s *RecipeServiceImpl) Create(ctx context.Context, username string, req UpsertRecipeRequest) (*Recipe, error) {
	if err := validateUpsert(req); err != nil {
		return nil, err
	}
	userID, err := s.ownerID(ctx, username)
	if err != nil {
		return nil, err
	}
	rec, err := s.repo.Create(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Recipe created",
		slog.String("recipe_id", rec.ID), slog.String("username", username))
	return rec, nil
}

func (s *RecipeServiceImpl) Replace(ctx context.Context, username, recipeID string, req UpsertRecipeRequest) (*Recipe, error) {
	if err := validateUpsert(req); err != nil {
		return nil, err
	}
	userID, err := s.ownerID(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.repo.Replace(ctx, recipeID, userID, req)
}

func (s *RecipeServiceImpl) Patch(ctx context.Context, username, recipeID string, req PatchRecipeRequest) error {
	userID, err := s.ownerID(ctx, username)
	if err != nil {
		return err
	}
	return s.repo.Patch(ctx, recipeID, userID, req)
}

func (s *RecipeServiceImpl) Delete(ctx context.Context, username, recipeID string) error {
	userID, err := s.ownerID(ctx, username)
	if err != nil {
		return err
	}
	err = s.repo.Delete(ctx, recipeID, userID)
	if err == nil {
		s.logger.InfoContext(ctx, "Recipe deleted",
			slog.String("recipe_id", recipeID), slog.String("username", username))
	}
	return err
}

func validateUpsert(req UpsertRecipeRequest) error {
	if strings.TrimSpace(req.Ingredients) == "" || strings.TrimSpace(req.Directions) == "" {
		return fmt.Errorf("%w: ingredients and directions are required", api.ErrValidation)
	}
	return nil
}
