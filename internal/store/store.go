// Package store exposes repositories for the master data and order
// collections. Every collection is persisted independently under its own
// key of a kv.Backend as a JSON snapshot.
package store

import (
	"context"
	"errors"
	"fmt"

	"foodcost/internal/costing"
	"foodcost/internal/kv"
	"foodcost/models"
)

// Keys under which each collection is persisted.
const (
	KeyIngredients = "ingredients"
	KeyRecipes     = "recipes"
	KeyOrders      = "orders"
	KeyProfile     = "profile"
	KeyConfig      = "config"
)

var (
	// ErrNotFound is returned by Get and Delete when no record has the id.
	ErrNotFound = errors.New("store: record not found")
	// ErrMissingID is returned when a record without an id is written.
	ErrMissingID = errors.New("store: record id must not be empty")
)

// Repository is the common CRUD contract of a collection.
type Repository[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	List(ctx context.Context) ([]T, error)
	Put(ctx context.Context, record T) error
	Delete(ctx context.Context, id string) error
	// ReplaceAll overwrites the collection with records in a single write.
	ReplaceAll(ctx context.Context, records []T) error
}

type IngredientRepository interface {
	Repository[models.Ingredient]
}

type RecipeRepository interface {
	Repository[models.Recipe]
}

type OrderRepository interface {
	Repository[models.Order]
}

// ProfileRepository persists the single-record profile and preference stores.
type ProfileRepository interface {
	Profile(ctx context.Context) (models.Profile, error)
	SaveProfile(ctx context.Context, profile models.Profile) error
	Preferences(ctx context.Context) (models.Preferences, error)
	SavePreferences(ctx context.Context, prefs models.Preferences) error
}

// Store bundles the repositories sharing one backend.
type Store struct {
	Ingredients IngredientRepository
	Recipes     RecipeRepository
	Orders      OrderRepository
	Profiles    ProfileRepository
}

// New builds a Store whose repositories persist through backend.
func New(backend kv.Backend) *Store {
	return &Store{
		Ingredients: newCollection(backend, KeyIngredients, func(i models.Ingredient) string { return i.ID }),
		Recipes:     newCollection(backend, KeyRecipes, func(r models.Recipe) string { return r.ID }),
		Orders:      newCollection(backend, KeyOrders, func(o models.Order) string { return o.ID }),
		Profiles:    &profileStore{backend: backend},
	}
}

// Lookups loads the current master data and returns lookup functions over
// that snapshot for the costing engine.
func (s *Store) Lookups(ctx context.Context) (costing.RecipeLookup, costing.IngredientLookup, error) {
	recipes, err := s.Recipes.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list recipes: %w", err)
	}
	ingredients, err := s.Ingredients.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list ingredients: %w", err)
	}
	return costing.RecipesByID(recipes), costing.IngredientsByID(ingredients), nil
}
