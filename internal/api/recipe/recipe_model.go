package recipe

import "time"

// Recipe is a stored recipe owned by a single user.
type Recipe struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	Ingredients         string    `json:"ingredients"`
	Directions          string    `json:"directions"`
	NutritionalBenefits string    `json:"nutritionalBenefits"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// UpsertRecipeRequest is the body for create and full replace.
type UpsertRecipeRequest struct {
	Ingredients         string `json:"ingredients"`
	Directions          string `json:"directions"`
	NutritionalBenefits string `json:"nutritionalBenefits"`
}

// PatchRecipeRequest carries partial updates; nil fields are left untouched.
type PatchRecipeRequest struct {
	Ingredients         *string `json:"ingredients,omitempty"`
	Directions          *string `json:"directions,omitempty"`
	NutritionalBenefits *string `json:"nutritionalBenefits,omitempty"`
}
