package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	applog "foodcost/internal/log"
	"foodcost/internal/service"
	"foodcost/internal/session"
	"foodcost/internal/store"
)

const maxBodyBytes = 10 << 20

var (
	errServiceUnavailable = errors.New("handlers: store is not configured")
	nowFunc               = time.Now
)

var (
	sessionManager *scs.SessionManager
	profiles       store.ProfileRepository
	catalog        *service.Catalog
	orders         *service.Orders
	backups        *service.Backup
	drafts         *session.Drafts
)

// Configure installs the shared dependencies used by the HTTP handlers.
// Passing a nil store clears them.
func Configure(sm *scs.SessionManager, s *store.Store) {
	sessionManager = sm
	if s == nil {
		profiles, catalog, orders, backups, drafts = nil, nil, nil, nil, nil
		return
	}
	profiles = s.Profiles
	catalog = service.NewCatalog(s)
	orders = service.NewOrders(s)
	backups = service.NewBackup(s)
	drafts = nil
	if sm != nil {
		drafts = session.NewDrafts(sm)
	}
}

func ready(w http.ResponseWriter) bool {
	if catalog == nil {
		writeJSONError(w, http.StatusServiceUnavailable, errServiceUnavailable.Error())
		return false
	}
	return true
}

func sessionReady(w http.ResponseWriter) bool {
	if !ready(w) {
		return false
	}
	if drafts == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "sessions are not configured")
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			writeJSONError(w, http.StatusBadRequest, "request body must not be empty")
			return false
		}
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// writeServiceError maps service and store errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusUnprocessableEntity, validation)
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrInvalidBackup), errors.Is(err, service.ErrInvalidStatus):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		applog.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
