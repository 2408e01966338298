// Package draft holds the in-progress state of an order while it is being
// edited, and decides whether it differs from its last saved form.
package draft

import (
	"strings"

	"foodcost/models"
)

// Session keys under which drafts are kept.
const (
	KeyNewOrder  = "order-draft"
	KeyEditOrder = "order-edit"
)

// MinQuantity and MinOverridePrice are the floors applied by the mutators.
const (
	MinQuantity      = 1.0
	MinOverridePrice = 1.0
)

// State describes where a draft is in its lifecycle.
type State string

const (
	StateEmpty   State = "empty"
	StateEditing State = "editing"
)

// Snapshot is the editable content of an order.
type Snapshot struct {
	Name      string                      `json:"name"`
	Date      string                      `json:"date"`
	Notes     string                      `json:"notes"`
	Items     []models.OrderItem          `json:"items"`
	Overrides []models.IngredientOverride `json:"overrides"`
}

// Draft pairs the current content with the baseline it is compared to.
// EditingID is set when the draft edits an existing order.
type Draft struct {
	EditingID string   `json:"editingId,omitempty"`
	Current   Snapshot `json:"current"`
	Saved     Snapshot `json:"saved"`
}

// New starts an empty draft for a new order dated today.
func New(today string) Draft {
	baseline := Snapshot{Date: today}
	return Draft{Current: baseline.clone(), Saved: baseline}
}

// FromOrder starts a draft editing order; the order itself is the baseline.
func FromOrder(order models.Order) Draft {
	baseline := Snapshot{
		Name:      order.Name,
		Date:      order.Date,
		Notes:     order.Notes,
		Items:     order.Items,
		Overrides: order.IngredientOverrides,
	}.clone()
	return Draft{EditingID: order.ID, Current: baseline.clone(), Saved: baseline}
}

// Reset discards everything and returns an empty draft for today.
func (d *Draft) Reset(today string) {
	*d = New(today)
}

// IsNew reports whether saving the draft creates a new order.
func (d Draft) IsNew() bool {
	return d.EditingID == ""
}

// SessionKey returns the key the draft is stored under.
func (d Draft) SessionKey() string {
	if d.IsNew() {
		return KeyNewOrder
	}
	return KeyEditOrder
}

// Dirty reports whether any field differs from the baseline.
func (d Draft) Dirty() bool {
	return d.Current.Name != d.Saved.Name ||
		d.Current.Date != d.Saved.Date ||
		!itemsEqual(d.Current.Items, d.Saved.Items) ||
		d.Current.Notes != d.Saved.Notes ||
		!overridesEqual(d.Current.Overrides, d.Saved.Overrides)
}

// State returns StateEmpty when no items, name or notes are set.
func (d Draft) State() State {
	if len(d.Current.Items) == 0 && strings.TrimSpace(d.Current.Name) == "" && strings.TrimSpace(d.Current.Notes) == "" {
		return StateEmpty
	}
	return StateEditing
}

func (d *Draft) SetName(name string)   { d.Current.Name = name }
func (d *Draft) SetDate(date string)   { d.Current.Date = date }
func (d *Draft) SetNotes(notes string) { d.Current.Notes = notes }

// AddRecipe adds quantity portions of a recipe, merging into an existing
// line for the same recipe.
func (d *Draft) AddRecipe(recipeID string, quantity float64) {
	quantity = clamp(quantity, MinQuantity)
	for idx := range d.Current.Items {
		if d.Current.Items[idx].RecipeID == recipeID {
			d.Current.Items[idx].Quantity += quantity
			return
		}
	}
	d.Current.Items = append(d.Current.Items, models.OrderItem{RecipeID: recipeID, Quantity: quantity})
}

// SetQuantity sets the portions of a recipe line. It reports false when the
// recipe is not part of the draft.
func (d *Draft) SetQuantity(recipeID string, quantity float64) bool {
	for idx := range d.Current.Items {
		if d.Current.Items[idx].RecipeID == recipeID {
			d.Current.Items[idx].Quantity = clamp(quantity, MinQuantity)
			return true
		}
	}
	return false
}

// SetCustomPrice sets or, with nil, clears the per-portion price of a line.
func (d *Draft) SetCustomPrice(recipeID string, price *float64) bool {
	for idx := range d.Current.Items {
		if d.Current.Items[idx].RecipeID == recipeID {
			if price == nil {
				d.Current.Items[idx].CustomPrice = nil
			} else {
				value := *price
				d.Current.Items[idx].CustomPrice = &value
			}
			return true
		}
	}
	return false
}

// RemoveRecipe drops a recipe line.
func (d *Draft) RemoveRecipe(recipeID string) bool {
	for idx := range d.Current.Items {
		if d.Current.Items[idx].RecipeID == recipeID {
			d.Current.Items = append(d.Current.Items[:idx], d.Current.Items[idx+1:]...)
			return true
		}
	}
	return false
}

// SetOverride sets the order-scoped price of an ingredient, clamped to
// MinOverridePrice.
func (d *Draft) SetOverride(ingredientID string, price float64) {
	price = clamp(price, MinOverridePrice)
	for idx := range d.Current.Overrides {
		if d.Current.Overrides[idx].IngredientID == ingredientID {
			d.Current.Overrides[idx].CustomPrice = price
			return
		}
	}
	d.Current.Overrides = append(d.Current.Overrides, models.IngredientOverride{IngredientID: ingredientID, CustomPrice: price})
}

// ClearOverride removes the override for an ingredient.
func (d *Draft) ClearOverride(ingredientID string) bool {
	for idx := range d.Current.Overrides {
		if d.Current.Overrides[idx].IngredientID == ingredientID {
			d.Current.Overrides = append(d.Current.Overrides[:idx], d.Current.Overrides[idx+1:]...)
			return true
		}
	}
	return false
}

func clamp(value, floor float64) float64 {
	if value < floor {
		return floor
	}
	return value
}

func (s Snapshot) clone() Snapshot {
	clone := s
	clone.Items = nil
	for _, item := range s.Items {
		if item.CustomPrice != nil {
			price := *item.CustomPrice
			item.CustomPrice = &price
		}
		clone.Items = append(clone.Items, item)
	}
	clone.Overrides = append([]models.IngredientOverride(nil), s.Overrides...)
	return clone
}

// A nil and an empty slice compare equal.
func itemsEqual(a, b []models.OrderItem) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if a[idx].RecipeID != b[idx].RecipeID || a[idx].Quantity != b[idx].Quantity {
			return false
		}
		left, right := a[idx].CustomPrice, b[idx].CustomPrice
		if (left == nil) != (right == nil) {
			return false
		}
		if left != nil && *left != *right {
			return false
		}
	}
	return true
}

func overridesEqual(a, b []models.IngredientOverride) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if a[idx] != b[idx] {
			return false
		}
	}
	return true
}
