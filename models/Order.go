package models

import "strings"

// OrderStatus tracks where an order is in its lifecycle.
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// DateLayout is the layout used for Order.Date.
const DateLayout = "2006-01-02"

// OrderItem selects a number of portions of one recipe. CustomPrice, when
// set, replaces the per-portion cost of this line.
type OrderItem struct {
	RecipeID    string   `json:"recipeId"`
	Quantity    float64  `json:"quantity"`
	CustomPrice *float64 `json:"customPrice,omitempty"`
}

// IngredientOverride replaces an ingredient's unit price within one order.
type IngredientOverride struct {
	IngredientID string  `json:"ingredientId"`
	CustomPrice  float64 `json:"customPrice"`
}

// Order is a saved catering order. TotalCost is a snapshot taken at save
// time and is only refreshed by an explicit recalculation.
type Order struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name"`
	Date                string               `json:"date"`
	Items               []OrderItem          `json:"items"`
	Notes               string               `json:"notes,omitempty"`
	Status              OrderStatus          `json:"status"`
	TotalCost           float64              `json:"totalCost"`
	IngredientOverrides []IngredientOverride `json:"ingredientOverrides,omitempty"`
}

// ValidStatus reports whether value is a known order status.
func ValidStatus(value string) bool {
	switch OrderStatus(value) {
	case OrderStatusDraft, OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// NormalizeStatus returns the canonical status for value, falling back to
// pending when value is unknown.
func NormalizeStatus(value string) OrderStatus {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if ValidStatus(normalized) {
		return OrderStatus(normalized)
	}
	return OrderStatusPending
}
