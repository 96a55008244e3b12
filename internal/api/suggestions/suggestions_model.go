package suggestions

// SuggestionRequest is the body for POST /recipes/suggestions.
type SuggestionRequest struct {
	Ingredients []string `json:"ingredients"`
}

// RecipeSuggestion is one model-generated recipe idea.
type RecipeSuggestion struct {
	Title               string   `json:"title"`
	Ingredients         []string `json:"ingredients"`
	Directions          string   `json:"directions"`
	NutritionalBenefits string   `json:"nutritionalBenefits"`
}
