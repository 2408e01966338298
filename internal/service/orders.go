package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"foodcost/internal/costing"
	"foodcost/internal/draft"
	applog "foodcost/internal/log"
	"foodcost/internal/store"
	"foodcost/models"
)

var nowFunc = time.Now

// Today returns the current date in models.DateLayout.
func Today() string {
	return nowFunc().Format(models.DateLayout)
}

// Orders saves drafts into orders and keeps their cost snapshots.
type Orders struct {
	store *store.Store
}

// NewOrders returns an Orders service over s.
func NewOrders(s *store.Store) *Orders {
	return &Orders{store: s}
}

// Breakdown is the live cost view of a set of order items.
type Breakdown struct {
	costing.Aggregation
	Recipes      []costing.RecipeLine `json:"recipes"`
	RecipesTotal float64              `json:"recipesTotal"`
}

// Aggregate expands items against the current master data.
func (o *Orders) Aggregate(ctx context.Context, items []models.OrderItem, overrides []models.IngredientOverride) (costing.Aggregation, error) {
	recipes, ingredients, err := o.store.Lookups(ctx)
	if err != nil {
		return costing.Aggregation{}, err
	}
	return costing.Aggregate(items, recipes, ingredients, overrides), nil
}

// Breakdown returns the aggregated ingredient list together with the
// per-recipe lines. Ingredients are sorted by name.
func (o *Orders) Breakdown(ctx context.Context, items []models.OrderItem, overrides []models.IngredientOverride) (Breakdown, error) {
	recipes, ingredients, err := o.store.Lookups(ctx)
	if err != nil {
		return Breakdown{}, err
	}
	aggregation := costing.Aggregate(items, recipes, ingredients, overrides)
	costing.SortByName(aggregation.Ingredients)
	lines := costing.RecipeLines(items, recipes, ingredients)
	return Breakdown{
		Aggregation:  aggregation,
		Recipes:      lines,
		RecipesTotal: costing.RecipeLinesTotal(lines),
	}, nil
}

func (o *Orders) List(ctx context.Context) ([]models.Order, error) {
	orders, err := o.store.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Date > orders[j].Date
	})
	return orders, nil
}

func (o *Orders) Get(ctx context.Context, id string) (models.Order, error) {
	return o.store.Orders.Get(ctx, id)
}

func (o *Orders) Delete(ctx context.Context, id string) error {
	return o.store.Orders.Delete(ctx, id)
}

// SaveDraft validates d, snapshots its aggregated total and creates or
// updates the order. Nothing is written when validation fails.
func (o *Orders) SaveDraft(ctx context.Context, d draft.Draft) (models.Order, error) {
	current := d.Current
	current.Name = strings.TrimSpace(current.Name)
	current.Notes = strings.TrimSpace(current.Notes)
	if err := validateSnapshot(current); err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		ID:     uuid.NewString(),
		Status: models.OrderStatusPending,
	}
	if !d.IsNew() {
		existing, err := o.store.Orders.Get(ctx, d.EditingID)
		if err != nil {
			return models.Order{}, err
		}
		order = existing
	}

	aggregation, err := o.Aggregate(ctx, current.Items, current.Overrides)
	if err != nil {
		return models.Order{}, err
	}

	order.Name = current.Name
	order.Date = current.Date
	order.Notes = current.Notes
	order.Items = append([]models.OrderItem(nil), current.Items...)
	order.IngredientOverrides = append([]models.IngredientOverride(nil), current.Overrides...)
	order.TotalCost = aggregation.TotalCost

	if err := o.store.Orders.Put(ctx, order); err != nil {
		return models.Order{}, fmt.Errorf("save order: %w", err)
	}
	applog.Info(ctx, "order saved", "id", order.ID, "created", d.IsNew(), "totalCost", order.TotalCost)
	return order, nil
}

// Recalculate refreshes a saved order's total against current prices.
func (o *Orders) Recalculate(ctx context.Context, id string) (models.Order, error) {
	order, err := o.store.Orders.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	aggregation, err := o.Aggregate(ctx, order.Items, order.IngredientOverrides)
	if err != nil {
		return models.Order{}, err
	}
	previous := order.TotalCost
	order.TotalCost = aggregation.TotalCost
	if err := o.store.Orders.Put(ctx, order); err != nil {
		return models.Order{}, fmt.Errorf("save order: %w", err)
	}
	applog.Debug(ctx, "order recalculated", "id", id, "previous", previous, "totalCost", order.TotalCost)
	return order, nil
}

func (o *Orders) SetStatus(ctx context.Context, id, status string) (models.Order, error) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if !models.ValidStatus(normalized) {
		return models.Order{}, ErrInvalidStatus
	}
	order, err := o.store.Orders.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	order.Status = models.OrderStatus(normalized)
	if err := o.store.Orders.Put(ctx, order); err != nil {
		return models.Order{}, fmt.Errorf("save order: %w", err)
	}
	return order, nil
}

// Duplicate copies an order into a new draft-status order dated today.
func (o *Orders) Duplicate(ctx context.Context, id string) (models.Order, error) {
	source, err := o.store.Orders.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	d := draft.FromOrder(source)
	copyOrder := models.Order{
		ID:                  uuid.NewString(),
		Name:                source.Name + " (copy)",
		Date:                Today(),
		Items:               d.Current.Items,
		Notes:               source.Notes,
		Status:              models.OrderStatusDraft,
		TotalCost:           source.TotalCost,
		IngredientOverrides: d.Current.Overrides,
	}
	if err := o.store.Orders.Put(ctx, copyOrder); err != nil {
		return models.Order{}, fmt.Errorf("save order: %w", err)
	}
	return copyOrder, nil
}

func validateSnapshot(s draft.Snapshot) error {
	var v validator
	v.check(s.Name != "", "name", "name is required")
	_, dateErr := time.Parse(models.DateLayout, s.Date)
	v.check(dateErr == nil, "date", "date must use the yyyy-MM-dd format")
	v.check(len(s.Items) > 0, "items", "at least one recipe is required")
	for idx, item := range s.Items {
		field := fmt.Sprintf("items[%d]", idx)
		v.check(strings.TrimSpace(item.RecipeID) != "", field+".recipeId", "recipe is required")
		v.check(item.Quantity > 0, field+".quantity", "quantity must be greater than zero")
	}
	return v.err()
}
