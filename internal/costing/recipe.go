// Package costing prices recipes and expands orders into consolidated
// ingredient requirements. Every function is pure and recomputes from its
// inputs on each call.
package costing

import "foodcost/models"

// UnknownIngredientName labels aggregated entries whose ingredient no longer
// exists in the master list.
const UnknownIngredientName = "Unknown"

// IngredientLookup resolves an ingredient by id.
type IngredientLookup func(id string) (models.Ingredient, bool)

// RecipeLookup resolves a recipe by id.
type RecipeLookup func(id string) (models.Recipe, bool)

// IngredientsByID builds an IngredientLookup over a fixed slice.
func IngredientsByID(ingredients []models.Ingredient) IngredientLookup {
	index := make(map[string]models.Ingredient, len(ingredients))
	for _, ingredient := range ingredients {
		index[ingredient.ID] = ingredient
	}
	return func(id string) (models.Ingredient, bool) {
		ingredient, ok := index[id]
		return ingredient, ok
	}
}

// RecipesByID builds a RecipeLookup over a fixed slice.
func RecipesByID(recipes []models.Recipe) RecipeLookup {
	index := make(map[string]models.Recipe, len(recipes))
	for _, recipe := range recipes {
		index[recipe.ID] = recipe
	}
	return func(id string) (models.Recipe, bool) {
		recipe, ok := index[id]
		return recipe, ok
	}
}

// BatchCost sums price × quantity over the recipe's ingredient list, giving
// the cost of one full batch. Missing ingredients contribute nothing.
func BatchCost(recipe models.Recipe, ingredients IngredientLookup) float64 {
	total := 0.0
	for _, line := range recipe.Ingredients {
		total += unitPrice(line.IngredientID, ingredients) * line.Quantity
	}
	return total
}

// RecipeCost returns the manual cost when one is set, otherwise the batch
// cost divided by the yield.
func RecipeCost(recipe models.Recipe, ingredients IngredientLookup) float64 {
	if recipe.ManualCost != nil {
		return *recipe.ManualCost
	}
	return BatchCost(recipe, ingredients) / effectiveYield(recipe.Yield)
}

func unitPrice(id string, ingredients IngredientLookup) float64 {
	if ingredients == nil {
		return 0
	}
	if ingredient, ok := ingredients(id); ok {
		return ingredient.Price
	}
	return 0
}

// guards against a zero or negative yield reaching a divisor
func effectiveYield(yield float64) float64 {
	if yield < 1 {
		return 1
	}
	return yield
}
