package handlers

import (
	"net/http"
	"strings"

	applog "foodcost/internal/log"
	"foodcost/models"
)

func ShowProfile(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	profile, err := profiles.Profile(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	var payload models.Profile
	if !decodeJSON(w, r, &payload) {
		return
	}
	payload.BusinessName = strings.TrimSpace(payload.BusinessName)
	payload.OwnerName = strings.TrimSpace(payload.OwnerName)
	payload.Phone = strings.TrimSpace(payload.Phone)
	payload.Address = strings.TrimSpace(payload.Address)
	if err := profiles.SaveProfile(r.Context(), payload); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func ShowPreferences(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	prefs, err := profiles.Preferences(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// UpdatePreferences stores display preferences; blank fields fall back to
// the defaults.
func UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	var payload models.Preferences
	if !decodeJSON(w, r, &payload) {
		return
	}
	defaults := models.DefaultPreferences
	payload.Currency = strings.ToUpper(strings.TrimSpace(payload.Currency))
	if payload.Currency == "" {
		payload.Currency = defaults.Currency
	}
	payload.Locale = strings.TrimSpace(payload.Locale)
	if payload.Locale == "" {
		payload.Locale = defaults.Locale
	}
	if err := profiles.SavePreferences(r.Context(), payload); err != nil {
		writeServiceError(w, r, err)
		return
	}
	applog.Debug(r.Context(), "preferences updated", "currency", payload.Currency, "locale", payload.Locale)
	writeJSON(w, http.StatusOK, payload)
}
