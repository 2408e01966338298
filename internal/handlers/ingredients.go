package handlers

import (
	"net/http"

	"foodcost/models"
)

func ListIngredients(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	ingredients, err := catalog.ListIngredients(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ingredients)
}

func CreateIngredient(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	var payload models.Ingredient
	if !decodeJSON(w, r, &payload) {
		return
	}
	created, err := catalog.CreateIngredient(r.Context(), payload)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func ShowIngredient(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	ingredient, err := catalog.GetIngredient(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ingredient)
}

func UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	var payload models.Ingredient
	if !decodeJSON(w, r, &payload) {
		return
	}
	updated, err := catalog.UpdateIngredient(r.Context(), r.PathValue("id"), payload)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	if err := catalog.DeleteIngredient(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
