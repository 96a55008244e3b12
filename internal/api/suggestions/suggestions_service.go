package suggestions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"google.golang.org/genai"

	"github.com/kitchenbuddy/kitchenbuddy/app/observability/metrics"
	"github.com/kitchenbuddy/kitchenbuddy/config"
	"github.com/kitchenbuddy/kitchenbuddy/internal/api"
)

const (
	maxIngredients      = 25
	maxIngredientLength = 80
)

var _ SuggestionService = (*SuggestionServiceImpl)(nil)

// SuggestionService turns an ingredient list into model-generated recipe
// ideas.
type SuggestionService interface {
	Suggest(ctx context.Context, ingredients []string) ([]RecipeSuggestion, error)
}

type SuggestionServiceImpl struct {
	aiClient AIClient
	cfg      config.GeminiConfig
	logger   *slog.Logger
	cache    *cache.Cache
}

func NewSuggestionService(aiClient AIClient, cfg config.GeminiConfig, logger *slog.Logger) *SuggestionServiceImpl {
	return &SuggestionServiceImpl{
		aiClient: aiClient,
		cfg:      cfg,
		logger:   logger,
		cache:    cache.New(1*time.Hour, 10*time.Minute),
	}
}

func (s *SuggestionServiceImpl) Suggest(ctx context.Context, ingredients []string) ([]RecipeSuggestion, error) {
	normalized, err := normalizeIngredients(ingredients)
	if err != nil {
		return nil, err
	}

	cacheKey := strings.Join(normalized, "|")
	if cached, found := s.cache.Get(cacheKey); found {
		metrics.Get().SuggestionCacheHitsTotal.Add(ctx, 1)
		if suggestions, ok := cached.([]RecipeSuggestion); ok {
			s.logger.DebugContext(ctx, "Suggestions served from cache",
				slog.Int("ingredient_count", len(normalized)))
			return suggestions, nil
		}
	}

	prompt := buildSuggestionPrompt(normalized)
	genCfg := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](s.cfg.Temperature)}

	start := time.Now()
	raw, err := s.aiClient.GenerateResponse(ctx, prompt, genCfg)
	metrics.Get().LLMDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("generate suggestions: %w", err)
	}

	suggestions, err := parseSuggestions(raw)
	if err != nil {
		s.logger.ErrorContext(ctx, "Model returned unparseable suggestions",
			slog.Any("error", err), slog.Int("response_length", len(raw)))
		return nil, fmt.Errorf("%w: model response was not valid JSON", api.ErrInternal)
	}

	s.cache.Set(cacheKey, suggestions, cache.DefaultExpiration)
	return suggestions, nil
}

// normalizeIngredients trims, lowercases, drops duplicates, and sorts the
// list so equivalent requests share a cache entry.
func normalizeIngredients(ingredients []string) ([]string, error) {
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("%w: at least one ingredient is required", api.ErrValidation)
	}
	if len(ingredients) > maxIngredients {
		return nil, fmt.Errorf("%w: at most %d ingredients are allowed", api.ErrValidation, maxIngredients)
	}

	seen := make(map[string]struct{}, len(ingredients))
	normalized := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		ing = strings.ToLower(strings.TrimSpace(ing))
		if ing == "" {
			return nil, fmt.Errorf("%w: ingredients cannot be blank", api.ErrValidation)
		}
		if len(ing) > maxIngredientLength {
			return nil, fmt.Errorf("%w: ingredient names cannot exceed %d characters", api.ErrValidation, maxIngredientLength)
		}
		if _, dup := seen[ing]; dup {
			continue
		}
		seen[ing] = struct{}{}
		normalized = append(normalized, ing)
	}
	sort.Strings(normalized)
	return normalized, nil
}

func buildSuggestionPrompt(ingredients []string) string {
	var b strings.Builder
	b.WriteString("You are a helpful cooking assistant. Suggest up to 3 recipes that can be made primarily with these ingredients: ")
	b.WriteString(strings.Join(ingredients, ", "))
	b.WriteString(`.
Respond with ONLY a valid JSON array, no markdown and no commentary, where each element has this shape:
{
  "title": "Recipe name",
  "ingredients": ["ingredient with quantity", "..."],
  "directions": "Numbered step-by-step directions as a single string",
  "nutritionalBenefits": "One or two sentences on the main nutritional benefits"
}`)
	return b.String()
}

func parseSuggestions(raw string) ([]RecipeSuggestion, error) {
	clean := cleanJSONResponse(raw)
	var suggestions []RecipeSuggestion
	if err := json.Unmarshal([]byte(clean), &suggestions); err != nil {
		return nil, fmt.Errorf("unmarshal suggestions: %w", err)
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("model returned an empty suggestion list")
	}
	return suggestions, nil
}

// cleanJSONResponse strips the markdown code fences models tend to wrap
// JSON in despite instructions.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}

	return strings.TrimSpace(response)
}
