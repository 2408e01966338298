package models

// RecipeIngredient is one line of a recipe. Quantity is the amount needed for
// the recipe's full declared yield, not per portion.
type RecipeIngredient struct {
	IngredientID string  `json:"ingredientId"`
	Quantity     float64 `json:"quantity"`
}

// Recipe composes ingredients into a batch producing Yield portions.
type Recipe struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Yield       float64            `json:"yield"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	ManualCost  *float64           `json:"manualCost,omitempty"`
	Image       string             `json:"image,omitempty"`
	Note        string             `json:"note,omitempty"`
}
