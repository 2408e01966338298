package costing

import (
	"sort"
	"strings"

	"foodcost/models"
)

// Origin records how many ordered portions of a recipe drew on an ingredient.
type Origin struct {
	RecipeName string  `json:"recipeName"`
	Portions   float64 `json:"portions"`
}

// AggregatedIngredient is one consolidated line of an order's ingredient list.
type AggregatedIngredient struct {
	IngredientID  string   `json:"ingredientId"`
	Name          string   `json:"name"`
	Unit          string   `json:"unit"`
	Quantity      float64  `json:"quantity"`
	CurrentPrice  float64  `json:"currentPrice"`
	IsOverridden  bool     `json:"isOverridden"`
	Total         float64  `json:"total"`
	OriginRecipes []Origin `json:"originRecipes"`
}

// Aggregation is the expanded ingredient view of a set of order items.
type Aggregation struct {
	Ingredients []AggregatedIngredient `json:"ingredients"`
	TotalCost   float64                `json:"totalCost"`
}

type ingredientTotal struct {
	quantity float64
	origins  []Origin
}

// Aggregate expands every order item into its recipe's ingredient
// requirements, merges them per ingredient and prices the result. Items
// referencing unknown recipes are skipped. Quantities are not validated;
// callers are expected to clamp portions to at least one.
//
// Items are walked in recipe id order and the total is summed in ingredient
// id order, so any permutation of items yields bit-identical results.
func Aggregate(items []models.OrderItem, recipes RecipeLookup, ingredients IngredientLookup, overrides []models.IngredientOverride) Aggregation {
	accumulator := make(map[string]*ingredientTotal)
	var sequence []string

	for _, item := range canonicalItems(items) {
		if recipes == nil {
			break
		}
		recipe, ok := recipes(item.RecipeID)
		if !ok {
			continue
		}
		yield := effectiveYield(recipe.Yield)
		for _, line := range recipe.Ingredients {
			total, ok := accumulator[line.IngredientID]
			if !ok {
				total = &ingredientTotal{}
				accumulator[line.IngredientID] = total
				sequence = append(sequence, line.IngredientID)
			}
			total.quantity += line.Quantity * item.Quantity / yield
			total.origins = mergeOrigin(total.origins, recipe.Name, item.Quantity)
		}
	}

	overridePrices := make(map[string]float64, len(overrides))
	for _, override := range overrides {
		overridePrices[override.IngredientID] = override.CustomPrice
	}

	result := Aggregation{Ingredients: make([]AggregatedIngredient, 0, len(sequence))}
	for _, id := range sequence {
		total := accumulator[id]
		entry := AggregatedIngredient{
			IngredientID:  id,
			Name:          UnknownIngredientName,
			Quantity:      total.quantity,
			OriginRecipes: total.origins,
		}

		if ingredients != nil {
			if ingredient, ok := ingredients(id); ok {
				entry.Name = ingredient.Name
				entry.Unit = string(ingredient.Unit)
				entry.CurrentPrice = ingredient.Price
			}
		}
		if price, ok := overridePrices[id]; ok {
			entry.CurrentPrice = price
			entry.IsOverridden = true
		}

		entry.Total = entry.CurrentPrice * entry.Quantity
		result.Ingredients = append(result.Ingredients, entry)
	}
	result.TotalCost = sumByIngredientID(result.Ingredients)

	return result
}

func canonicalItems(items []models.OrderItem) []models.OrderItem {
	sorted := append([]models.OrderItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RecipeID != sorted[j].RecipeID {
			return sorted[i].RecipeID < sorted[j].RecipeID
		}
		return sorted[i].Quantity < sorted[j].Quantity
	})
	return sorted
}

func sumByIngredientID(entries []AggregatedIngredient) float64 {
	ordered := make([]int, len(entries))
	for idx := range ordered {
		ordered[idx] = idx
	}
	sort.Slice(ordered, func(i, j int) bool {
		return entries[ordered[i]].IngredientID < entries[ordered[j]].IngredientID
	})
	total := 0.0
	for _, idx := range ordered {
		total += entries[idx].Total
	}
	return total
}

func mergeOrigin(origins []Origin, recipeName string, portions float64) []Origin {
	for idx := range origins {
		if origins[idx].RecipeName == recipeName {
			origins[idx].Portions += portions
			return origins
		}
	}
	return append(origins, Origin{RecipeName: recipeName, Portions: portions})
}

// SortByName orders aggregated entries alphabetically, breaking ties by id.
func SortByName(entries []AggregatedIngredient) {
	sort.SliceStable(entries, func(i, j int) bool {
		left := strings.ToLower(entries[i].Name)
		right := strings.ToLower(entries[j].Name)
		if left != right {
			return left < right
		}
		return entries[i].IngredientID < entries[j].IngredientID
	})
}

// RecipeLine is the per-recipe cost of one order item.
type RecipeLine struct {
	RecipeID    string   `json:"recipeId"`
	Name        string   `json:"name"`
	Quantity    float64  `json:"quantity"`
	UnitCost    float64  `json:"unitCost"`
	CustomPrice *float64 `json:"customPrice,omitempty"`
	LineTotal   float64  `json:"lineTotal"`
}

// RecipeLines prices each order item at its custom price or the recipe's
// per-portion cost. Ingredient overrides are not applied here,
// so the sum of these lines may differ from Aggregation.TotalCost.
func RecipeLines(items []models.OrderItem, recipes RecipeLookup, ingredients IngredientLookup) []RecipeLine {
	lines := make([]RecipeLine, 0, len(items))
	for _, item := range items {
		line := RecipeLine{
			RecipeID:    item.RecipeID,
			Name:        "Unknown recipe",
			Quantity:    item.Quantity,
			CustomPrice: item.CustomPrice,
		}
		if recipes != nil {
			if recipe, ok := recipes(item.RecipeID); ok {
				line.Name = recipe.Name
				line.UnitCost = RecipeCost(recipe, ingredients)
			}
		}
		if item.CustomPrice != nil {
			line.UnitCost = *item.CustomPrice
		}
		line.LineTotal = line.UnitCost * item.Quantity
		lines = append(lines, line)
	}
	return lines
}

// RecipeLinesTotal sums LineTotal across lines.
func RecipeLinesTotal(lines []RecipeLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += line.LineTotal
	}
	return total
}
