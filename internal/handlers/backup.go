package handlers

import (
	"io"
	"mime"
	"net/http"

	"foodcost/internal/service"
)

// ExportBackup downloads every ingredient, recipe and order as JSON.
func ExportBackup(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	snapshot, err := backups.Export(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.BackupFileName(nowFunc())+`"`)
	writeJSON(w, http.StatusOK, snapshot)
}

// ImportBackup replaces all data with an uploaded backup. The file may be
// sent as the raw body or as the "file" field of a multipart form.
func ImportBackup(w http.ResponseWriter, r *http.Request) {
	if !ready(w) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var source io.Reader = r.Body
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		file, _, err := r.FormFile("file")
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "multipart upload must carry a file field")
			return
		}
		defer file.Close()
		source = file
	}

	summary, err := backups.Import(r.Context(), source)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
