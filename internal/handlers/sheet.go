package handlers

import (
	"errors"
	"net/http"

	applog "foodcost/internal/log"
	"foodcost/internal/store"
	"foodcost/internal/views/pages"
)

// OrderSheet renders a printable HTML sheet for a saved order. Lines and the
// total are priced live; the saved snapshot total is shown alongside when the
// two differ.
func OrderSheet(w http.ResponseWriter, r *http.Request) {
	if catalog == nil {
		http.Error(w, "Order sheets are unavailable because no store is configured.", http.StatusServiceUnavailable)
		return
	}

	order, err := orders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "The order no longer exists.", http.StatusNotFound)
			return
		}
		applog.Error(r.Context(), "failed to load order for sheet", "error", err)
		http.Error(w, "We were unable to load the order. Please try again.", http.StatusInternalServerError)
		return
	}

	breakdown, err := orders.Breakdown(r.Context(), order.Items, order.IngredientOverrides)
	if err != nil {
		applog.Error(r.Context(), "failed to build order breakdown", "error", err, "orderID", order.ID)
		http.Error(w, "We were unable to cost the order. Please try again.", http.StatusInternalServerError)
		return
	}
	profile, err := profiles.Profile(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to load profile", "error", err)
	}
	prefs, err := profiles.Preferences(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to load preferences", "error", err)
	}

	data := pages.OrderSheetData{
		Business:    profile,
		Currency:    prefs.Currency,
		Order:       order,
		Ingredients: breakdown.Ingredients,
		Recipes:     breakdown.Recipes,
		TotalCost:   breakdown.TotalCost,
		SavedTotal:  order.TotalCost,
		PrintedAt:   nowFunc(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.OrderSheet(data).Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render order sheet", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
