package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	applog "foodcost/internal/log"
	"foodcost/internal/store"
	"foodcost/models"
)

// BackupVersion is written into every exported snapshot.
const BackupVersion = "1.0"

// Snapshot is the backup document holding every master and order record.
type Snapshot struct {
	Ingredients []models.Ingredient `json:"ingredients"`
	Recipes     []models.Recipe     `json:"recipes"`
	Orders      []models.Order      `json:"orders"`
	Version     string              `json:"version"`
	Timestamp   string              `json:"timestamp"`
}

// ImportSummary counts the records restored by an import.
type ImportSummary struct {
	Ingredients int    `json:"ingredients"`
	Recipes     int    `json:"recipes"`
	Orders      int    `json:"orders"`
	Version     string `json:"version"`
}

// Backup exports and restores the whole data set.
type Backup struct {
	store *store.Store
}

// NewBackup returns a Backup over s.
func NewBackup(s *store.Store) *Backup {
	return &Backup{store: s}
}

// BackupFileName returns the download name for a backup taken at t.
func BackupFileName(t time.Time) string {
	return fmt.Sprintf("food_cost_backup_%s.json", t.Format(models.DateLayout))
}

func (b *Backup) Export(ctx context.Context) (Snapshot, error) {
	ingredients, err := b.store.Ingredients.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("export ingredients: %w", err)
	}
	recipes, err := b.store.Recipes.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("export recipes: %w", err)
	}
	orders, err := b.store.Orders.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("export orders: %w", err)
	}
	return Snapshot{
		Ingredients: ingredients,
		Recipes:     recipes,
		Orders:      orders,
		Version:     BackupVersion,
		Timestamp:   nowFunc().UTC().Format(time.RFC3339),
	}, nil
}

type backupDocument struct {
	Ingredients *[]models.Ingredient `json:"ingredients"`
	Recipes     *[]models.Recipe     `json:"recipes"`
	Orders      *[]models.Order      `json:"orders"`
	Version     string               `json:"version"`
}

// Import parses a backup document and replaces all ingredients, recipes and
// orders with its contents. The document is fully decoded and checked before
// any store is touched, so a rejected file leaves the data unchanged. When a
// write fails midway the collections already replaced are restored.
func (b *Backup) Import(ctx context.Context, r io.Reader) (ImportSummary, error) {
	var doc backupDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		applog.Debug(ctx, "backup decode failed", "error", err)
		return ImportSummary{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if doc.Ingredients == nil || doc.Recipes == nil || doc.Orders == nil {
		return ImportSummary{}, fmt.Errorf("%w: ingredients, recipes and orders are required", ErrInvalidBackup)
	}
	if err := checkBackupIDs(*doc.Ingredients, *doc.Recipes, *doc.Orders); err != nil {
		return ImportSummary{}, err
	}

	previous, err := b.Export(ctx)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("snapshot before import: %w", err)
	}
	if err := b.replace(ctx, *doc.Ingredients, *doc.Recipes, *doc.Orders); err != nil {
		if restoreErr := b.replace(ctx, previous.Ingredients, previous.Recipes, previous.Orders); restoreErr != nil {
			applog.Error(ctx, "failed to restore data after import error", "error", restoreErr)
			return ImportSummary{}, errors.Join(err, fmt.Errorf("restore: %w", restoreErr))
		}
		return ImportSummary{}, err
	}

	summary := ImportSummary{
		Ingredients: len(*doc.Ingredients),
		Recipes:     len(*doc.Recipes),
		Orders:      len(*doc.Orders),
		Version:     doc.Version,
	}
	applog.Info(ctx, "backup imported", "ingredients", summary.Ingredients, "recipes", summary.Recipes, "orders", summary.Orders)
	return summary, nil
}

func (b *Backup) replace(ctx context.Context, ingredients []models.Ingredient, recipes []models.Recipe, orders []models.Order) error {
	if err := b.store.Ingredients.ReplaceAll(ctx, ingredients); err != nil {
		return fmt.Errorf("import ingredients: %w", err)
	}
	if err := b.store.Recipes.ReplaceAll(ctx, recipes); err != nil {
		return fmt.Errorf("import recipes: %w", err)
	}
	if err := b.store.Orders.ReplaceAll(ctx, orders); err != nil {
		return fmt.Errorf("import orders: %w", err)
	}
	return nil
}

func checkBackupIDs(ingredients []models.Ingredient, recipes []models.Recipe, orders []models.Order) error {
	for idx, ingredient := range ingredients {
		if strings.TrimSpace(ingredient.ID) == "" {
			return fmt.Errorf("%w: ingredient %d has no id", ErrInvalidBackup, idx)
		}
	}
	for idx, recipe := range recipes {
		if strings.TrimSpace(recipe.ID) == "" {
			return fmt.Errorf("%w: recipe %d has no id", ErrInvalidBackup, idx)
		}
	}
	for idx, order := range orders {
		if strings.TrimSpace(order.ID) == "" {
			return fmt.Errorf("%w: order %d has no id", ErrInvalidBackup, idx)
		}
	}
	return nil
}
