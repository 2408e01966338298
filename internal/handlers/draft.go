package handlers

import (
	"net/http"
	"strings"

	"foodcost/internal/draft"
	applog "foodcost/internal/log"
	"foodcost/internal/service"
	"foodcost/models"
)

type draftResponse struct {
	EditingID string                      `json:"editingId,omitempty"`
	Name      string                      `json:"name"`
	Date      string                      `json:"date"`
	Notes     string                      `json:"notes"`
	Items     []models.OrderItem          `json:"items"`
	Overrides []models.IngredientOverride `json:"overrides"`
	State     draft.State                 `json:"state"`
	Dirty     bool                        `json:"dirty"`
	Breakdown service.Breakdown           `json:"breakdown"`
}

func respondDraft(w http.ResponseWriter, r *http.Request, current draft.Draft) {
	breakdown, err := orders.Breakdown(r.Context(), current.Current.Items, current.Current.Overrides)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	items := current.Current.Items
	if items == nil {
		items = []models.OrderItem{}
	}
	overrides := current.Current.Overrides
	if overrides == nil {
		overrides = []models.IngredientOverride{}
	}
	writeJSON(w, http.StatusOK, draftResponse{
		EditingID: current.EditingID,
		Name:      current.Current.Name,
		Date:      current.Current.Date,
		Notes:     current.Current.Notes,
		Items:     items,
		Overrides: overrides,
		State:     current.State(),
		Dirty:     current.Dirty(),
		Breakdown: breakdown,
	})
}

func activeDraft(w http.ResponseWriter, r *http.Request) (draft.Draft, bool) {
	current, err := drafts.Active(r.Context(), nowFunc().Format(models.DateLayout))
	if err != nil {
		writeServiceError(w, r, err)
		return draft.Draft{}, false
	}
	return current, true
}

func storeDraft(w http.ResponseWriter, r *http.Request, current draft.Draft) {
	if err := drafts.Save(r.Context(), current); err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondDraft(w, r, current)
}

func ShowDraft(w http.ResponseWriter, r *http.Request) {
	if !sessionReady(w) {
		return
	}
	current, ok := activeDraft(w, r)
	if !ok {
		return
	}
	respondDraft(w, r, current)
}

type draftHeaderRequest struct {
	Name  *string `json:"name"`
	Date  *string `json:"date"`
	Notes *string `json:"notes"`
}

// UpdateDraft patches the header fields that are present in the body.
func UpdateDraft(w http.ResponseWriter, r *http.Request) {
	if !sessionReady(w) {
		return
	}
	var payload draftHeaderRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	current, ok := activeDraft(w, r)
	if !ok {
		return
	}
	if payload.Name != nil {
		current.SetName(*payload.Name)
	}
	if payload.Date != nil {
		current.SetDate(strings.TrimSpace(*payload.Date))
	}
	if payload.Notes != nil {
		current.SetNotes(*payload.Notes)
	}
	storeDraft(w, r, current)
}

// DiscardDraft drops the active draft and responds with whichever draft
// becomes active next.
func DiscardDraft(w http.ResponseWriter, r *http.Request) {
	if !sessionReady(w) {
		return
	}
	current, ok := activeDraft(w, r)
	if !ok {
		return
	}
	drafts.Discard(r.Context(), current)
	applog.Debug(r.Context(), "draft discarded", "editingId", current.EditingID)
	next, ok := activeDraft(w, r)
	if !ok {
		return
	}
	respondDraft(w, r, next)
}

type draftItemRequest struct {
	RecipeID         string   `json:"recipeId"`
	Quantity         *float64 `json:"quantity"`
	CustomPrice      *float64 `json:"customPrice"`
	ClearCustomPrice bool     `json:"clearCustomPrice"`
}

func AddDraftItem(w http.ResponseWriter, r *http.Request) {
	if !sessionReady(w) {
		return
	}
	var payload draftItemRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	recipeID := strings.TrimSpace(payload.RecipeID)
	if recipeID == "" {
		writeJSONError(w, http.StatusBadRequest, "recipeId is required")
		return
	}
	if _, err := catalog.GetRecipe(r.Context(), recipeID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	current, ok := activeDraft(w, r)
	if !ok {
		return
	}
	quantity := draft.MinQuantity
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}
	current.AddRecipe(recipeID, quantity)
	if payload.CustomPrice != nil {
		current.SetCustomPrice(recipeID, payload.CustomPrice)
	}
	storeDraft(w, r, current)
}

func UpdateDraftItem(w http.ResponseWriter, r *http.Request) {
	if !sessionReady(w) {
		return
	}
	var payload draftItemRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	current, ok := activeDraft(w, r)
	if !ok {
		return
	}
	recipeID := r.PathValue("recipeId")
	found := true
	if payload.Quantity != nil {
		found = current.SetQuantity(recipeID, *payload.Quantity)
	}
	switch {
	case payload.ClearCustomPrice:
		found = current.SetCustomPrice(recipeID, nil) && found
	case payload.CustomPrice != nil:
		found = current.SetCustomPrice(recipeID, payload.CustomPrice) && found
	}
	if !found || !hasItem(current, recipeID) {
		writeJSONError(w, http.StatusNotFound, "recipe is not part of the draft")
		return
	}
	storeDraft(w, r, current)
}

func RemoveDraftItem(w http.ResponseWriter, r *http.Request) {
	if !sessionReady(w) {
		return
	}
	current, ok := activeDraft(w, r)
	if !ok {
		return
	}
	if !current.RemoveRecipe(r.PathValue("recipeId")) {
		writeJSONError(w, http.StatusNotFound, "recipe is not part of the draft")
		return
	}
	storeDraft(w, r, current)
}

type overrideRequest struct {
	CustomPrice float64 `json:"customPrice"`
}

func SetDraftOverride(w http.ResponseWriter, r *http.Request) {
	if !sessionReady(w) {
		return
	}
	var payload overrideRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	current, ok := activeDraft(w, r)
	if !ok {
		return
	}
	current.SetOverride(r.PathValue("ingredientId"), payload.CustomPrice)
	storeDraft(w, r, current)
}

func ClearDraftOverride(w http.ResponseWriter, r *http.Request) {
	if !sessionReady(w) {
		return
	}
	current, ok := activeDraft(w, r)
	if !ok {
		return
	}
	if !current.ClearOverride(r.PathValue("ingredientId")) {
		writeJSONError(w, http.StatusNotFound, "ingredient has no override")
		return
	}
	storeDraft(w, r, current)
}

// SaveDraft persists the active draft as an order and clears it from the
// session. The draft is kept when validation fails.
func SaveDraft(w http.ResponseWriter, r *http.Request) {
	if !sessionReady(w) {
		return
	}
	current, ok := activeDraft(w, r)
	if !ok {
		return
	}
	order, err := orders.SaveDraft(r.Context(), current)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	drafts.Discard(r.Context(), current)
	status := http.StatusOK
	if current.IsNew() {
		status = http.StatusCreated
	}
	writeJSON(w, status, order)
}

// DraftShoppingList downloads the active draft's aggregated ingredients as
// a spreadsheet.
func DraftShoppingList(w http.ResponseWriter, r *http.Request) {
	if !sessionReady(w) {
		return
	}
	current, ok := activeDraft(w, r)
	if !ok {
		return
	}
	breakdown, err := orders.Breakdown(r.Context(), current.Current.Items, current.Current.Overrides)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.ShoppingListFileName(current.Current.Name)+`"`)
	if err := service.ShoppingList(r.Context(), w, breakdown.Aggregation); err != nil {
		applog.Error(r.Context(), "failed to write shopping list", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func hasItem(current draft.Draft, recipeID string) bool {
	for _, item := range current.Current.Items {
		if item.RecipeID == recipeID {
			return true
		}
	}
	return false
}
