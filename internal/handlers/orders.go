package handlers

import (
	"net/http"

	"foodcost/internal/draft"
)

func ListOrders(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	list, err := orders.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func ShowOrder(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	order, err := orders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	if err := orders.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OrderAggregate returns the live ingredient breakdown of a saved order.
// Its total may differ from the order's stored snapshot.
func OrderAggregate(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	order, err := orders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	breakdown, err := orders.Breakdown(r.Context(), order.Items, order.IngredientOverrides)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

func RecalculateOrder(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	order, err := orders.Recalculate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type statusRequest struct {
	Status string `json:"status"`
}

func UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	var payload statusRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	order, err := orders.SetStatus(r.Context(), r.PathValue("id"), payload.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func DuplicateOrder(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	order, err := orders.Duplicate(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// EditOrder loads a saved order into the session's edit draft, replacing
// any edit already in progress.
func EditOrder(w http.ResponseWriter, r *http.Request) {
	if !sessionReady(w) {
		return
	}
	order, err := orders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	current := draft.FromOrder(order)
	if err := drafts.Save(r.Context(), current); err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondDraft(w, r, current)
}
