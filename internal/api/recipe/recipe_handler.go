package recipe

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kitchenbuddy/kitchenbuddy/internal/api"
	"github.com/kitchenbuddy/kitchenbuddy/internal/api/auth"
)

// RecipeHandler exposes recipe CRUD over HTTP. All routes are mounted
// behind the Authenticate middleware.
type RecipeHandler struct {
	recipeService RecipeService
	logger        *slog.Logger
}

func NewRecipeHandler(recipeService RecipeService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		logger:        logger,
	}
}

func (h *RecipeHandler) caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, ok := auth.GetUsernameFromContext(r.Context())
	if !ok {
		h.logger.ErrorContext(r.Context(), "Missing username in authenticated request context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	return username, true
}

func recipeIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "recipeID")
	if _, err := uuid.Parse(id); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid recipe ID format")
		return "", false
	}
	return id, true
}

func (h *RecipeHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, api.ErrNotFound):
		api.ErrorResponse(w, r, http.StatusNotFound, "Recipe not found")
	case errors.Is(err, api.ErrValidation):
		api.ErrorResponse(w, r, http.StatusBadRequest, "Ingredients and directions are required.")
	default:
		h.logger.ErrorContext(r.Context(), "Recipe operation failed", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "An internal error occurred")
	}
}

// List handles GET /recipes.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	username, ok := h.caller(w, r)
	if !ok {
		return
	}

	recipes, err := h.recipeService.List(r.Context(), username)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, api.SuccessResult(recipes, ""))
}

// Get handles GET /recipes/{recipeID}.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	username, ok := h.caller(w, r)
	if !ok {
		return
	}
	recipeID, ok := recipeIDParam(w, r)
	if !ok {
		return
	}

	rec, err := h.recipeService.Get(r.Context(), username, recipeID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, api.SuccessResult(rec, ""))
}

// Create handles POST /recipes.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	username, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req UpsertRecipeRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.recipeService.Create(r.Context(), username, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusCreated, api.SuccessResult(rec, "Recipe created"))
}

// Replace handles PUT /recipes/{recipeID}.
func (h *RecipeHandler) Replace(w http.ResponseWriter, r *http.Request) {
	username, ok := h.caller(w, r)
	if !ok {
		return
	}
	recipeID, ok := recipeIDParam(w, r)
	if !ok {
		return
	}

	var req UpsertRecipeRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.recipeService.Replace(r.Context(), username, recipeID, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, api.SuccessResult(rec, "Recipe updated"))
}

// Patch handles PATCH /recipes/{recipeID}.
func (h *RecipeHandler) Patch(w http.ResponseWriter, r *http.Request) {
	username, ok := h.caller(w, r)
	if !ok {
		return
	}
	recipeID, ok := recipeIDParam(w, r)
	if !ok {
		return
	}

	var req PatchRecipeRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.recipeService.Patch(r.Context(), username, recipeID, req); err != nil {
		h.respondError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, api.SuccessResult(nil, "Recipe updated"))
}

// Delete handles DELETE /recipes/{recipeID}.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username, ok := h.caller(w, r)
	if !ok {
		return
	}
	recipeID, ok := recipeIDParam(w, r)
	if !ok {
		return
	}

	if err := h.recipeService.Delete(r.Context(), username, recipeID); err != nil {
		h.respondError(w, r, err)
		return
	}
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}
