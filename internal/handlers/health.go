package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	applog "foodcost/internal/log"
)

type healthResponse struct {
	Status   string    `json:"status"`
	Storage  bool      `json:"storage"`
	Sessions bool      `json:"sessions"`
	Time     time.Time `json:"time"`
}

// Health reports liveness plus whether the store and session-backed drafts
// are wired. It always answers 200 so probes can tell a running process
// from a misconfigured one by the body.
func Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "ok",
		Storage:  catalog != nil,
		Sessions: drafts != nil,
		Time:     nowFunc().UTC(),
	}
	if !resp.Storage {
		resp.Status = "degraded"
	}
	applog.Debug(r.Context(), "health check", "status", resp.Status, "sessions", resp.Sessions)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(r.Context(), "failed to encode health response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
