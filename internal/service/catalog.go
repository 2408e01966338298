// Package service implements the application operations on top of the
// stores: validated CRUD, costing, order saving and backups.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"foodcost/internal/costing"
	applog "foodcost/internal/log"
	"foodcost/internal/store"
	"foodcost/models"
)

// Catalog manages the master ingredient and recipe lists.
type Catalog struct {
	store *store.Store
}

// NewCatalog returns a Catalog over s.
func NewCatalog(s *store.Store) *Catalog {
	return &Catalog{store: s}
}

// RecipeCostSummary reports the costing of a single recipe.
type RecipeCostSummary struct {
	RecipeID       string  `json:"recipeId"`
	BatchCost      float64 `json:"batchCost"`
	CostPerPortion float64 `json:"costPerPortion"`
	Yield          float64 `json:"yield"`
	Manual         bool    `json:"manual"`
}

func (c *Catalog) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	ingredients, err := c.store.Ingredients.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(ingredients, func(i, j int) bool {
		return strings.ToLower(ingredients[i].Name) < strings.ToLower(ingredients[j].Name)
	})
	return ingredients, nil
}

func (c *Catalog) GetIngredient(ctx context.Context, id string) (models.Ingredient, error) {
	return c.store.Ingredients.Get(ctx, id)
}

// CreateIngredient validates and stores a new ingredient, assigning an id
// when none is supplied.
func (c *Catalog) CreateIngredient(ctx context.Context, ingredient models.Ingredient) (models.Ingredient, error) {
	ingredient = normalizeIngredient(ingredient)
	if err := validateIngredient(ingredient); err != nil {
		return models.Ingredient{}, err
	}
	if ingredient.ID == "" {
		ingredient.ID = uuid.NewString()
	}
	if err := c.store.Ingredients.Put(ctx, ingredient); err != nil {
		return models.Ingredient{}, fmt.Errorf("create ingredient: %w", err)
	}
	applog.Debug(ctx, "ingredient created", "id", ingredient.ID, "name", ingredient.Name)
	return ingredient, nil
}

func (c *Catalog) UpdateIngredient(ctx context.Context, id string, ingredient models.Ingredient) (models.Ingredient, error) {
	if _, err := c.store.Ingredients.Get(ctx, id); err != nil {
		return models.Ingredient{}, err
	}
	ingredient.ID = id
	ingredient = normalizeIngredient(ingredient)
	if err := validateIngredient(ingredient); err != nil {
		return models.Ingredient{}, err
	}
	if err := c.store.Ingredients.Put(ctx, ingredient); err != nil {
		return models.Ingredient{}, fmt.Errorf("update ingredient: %w", err)
	}
	return ingredient, nil
}

// DeleteIngredient removes an ingredient. Recipes and orders referencing it
// are left as they are and cost the ingredient at zero from then on.
func (c *Catalog) DeleteIngredient(ctx context.Context, id string) error {
	if err := c.store.Ingredients.Delete(ctx, id); err != nil {
		return err
	}
	applog.Debug(ctx, "ingredient deleted", "id", id)
	return nil
}

func (c *Catalog) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	recipes, err := c.store.Recipes.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(recipes, func(i, j int) bool {
		return strings.ToLower(recipes[i].Name) < strings.ToLower(recipes[j].Name)
	})
	return recipes, nil
}

func (c *Catalog) GetRecipe(ctx context.Context, id string) (models.Recipe, error) {
	return c.store.Recipes.Get(ctx, id)
}

func (c *Catalog) CreateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	recipe = normalizeRecipe(recipe)
	if err := validateRecipe(recipe); err != nil {
		return models.Recipe{}, err
	}
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	if err := c.store.Recipes.Put(ctx, recipe); err != nil {
		return models.Recipe{}, fmt.Errorf("create recipe: %w", err)
	}
	applog.Debug(ctx, "recipe created", "id", recipe.ID, "name", recipe.Name)
	return recipe, nil
}

func (c *Catalog) UpdateRecipe(ctx context.Context, id string, recipe models.Recipe) (models.Recipe, error) {
	if _, err := c.store.Recipes.Get(ctx, id); err != nil {
		return models.Recipe{}, err
	}
	recipe.ID = id
	recipe = normalizeRecipe(recipe)
	if err := validateRecipe(recipe); err != nil {
		return models.Recipe{}, err
	}
	if err := c.store.Recipes.Put(ctx, recipe); err != nil {
		return models.Recipe{}, fmt.Errorf("update recipe: %w", err)
	}
	return recipe, nil
}

func (c *Catalog) DeleteRecipe(ctx context.Context, id string) error {
	return c.store.Recipes.Delete(ctx, id)
}

// RecipeCost computes the batch and per-portion cost of a stored recipe
// against the current ingredient prices.
func (c *Catalog) RecipeCost(ctx context.Context, id string) (RecipeCostSummary, error) {
	recipe, err := c.store.Recipes.Get(ctx, id)
	if err != nil {
		return RecipeCostSummary{}, err
	}
	ingredients, err := c.store.Ingredients.List(ctx)
	if err != nil {
		return RecipeCostSummary{}, fmt.Errorf("list ingredients: %w", err)
	}
	lookup := costing.IngredientsByID(ingredients)
	return RecipeCostSummary{
		RecipeID:       recipe.ID,
		BatchCost:      costing.BatchCost(recipe, lookup),
		CostPerPortion: costing.RecipeCost(recipe, lookup),
		Yield:          recipe.Yield,
		Manual:         recipe.ManualCost != nil,
	}, nil
}

func normalizeIngredient(ingredient models.Ingredient) models.Ingredient {
	ingredient.ID = strings.TrimSpace(ingredient.ID)
	ingredient.Name = strings.TrimSpace(ingredient.Name)
	if unit, ok := models.NormalizeUnit(string(ingredient.Unit)); ok {
		ingredient.Unit = unit
	}
	return ingredient
}

func validateIngredient(ingredient models.Ingredient) error {
	var v validator
	v.check(ingredient.Name != "", "name", "name is required")
	v.check(models.ValidUnit(string(ingredient.Unit)), "unit", "unit must be one of kg, gr, ltr, ml, pcs, pack, can, btl")
	v.check(ingredient.Price >= 0, "price", "price must not be negative")
	return v.err()
}

func normalizeRecipe(recipe models.Recipe) models.Recipe {
	recipe.ID = strings.TrimSpace(recipe.ID)
	recipe.Name = strings.TrimSpace(recipe.Name)
	lines := make([]models.RecipeIngredient, 0, len(recipe.Ingredients))
	for _, line := range recipe.Ingredients {
		line.IngredientID = strings.TrimSpace(line.IngredientID)
		lines = append(lines, line)
	}
	recipe.Ingredients = lines
	return recipe
}

func validateRecipe(recipe models.Recipe) error {
	var v validator
	v.check(recipe.Name != "", "name", "name is required")
	v.check(recipe.Yield >= 1, "yield", "yield must be at least 1")
	if recipe.ManualCost != nil {
		v.check(*recipe.ManualCost >= 0, "manualCost", "manual cost must not be negative")
	}
	for idx, line := range recipe.Ingredients {
		field := fmt.Sprintf("ingredients[%d]", idx)
		v.check(line.IngredientID != "", field+".ingredientId", "ingredient is required")
		v.check(line.Quantity > 0, field+".quantity", "quantity must be greater than zero")
	}
	return v.err()
}
