package handlers

import (
	"net/http"

	"foodcost/models"
)

func ListRecipes(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	recipes, err := catalog.ListRecipes(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

func CreateRecipe(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	var payload models.Recipe
	if !decodeJSON(w, r, &payload) {
		return
	}
	created, err := catalog.CreateRecipe(r.Context(), payload)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func ShowRecipe(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	recipe, err := catalog.GetRecipe(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

func UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	var payload models.Recipe
	if !decodeJSON(w, r, &payload) {
		return
	}
	updated, err := catalog.UpdateRecipe(r.Context(), r.PathValue("id"), payload)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	if err := catalog.DeleteRecipe(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecipeCost reports the batch and per-portion cost at current prices.
func RecipeCost(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	summary, err := catalog.RecipeCost(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
