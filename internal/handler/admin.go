package handler

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"benefitdesk/internal/service"
)

// ImportHandler runs the master data import on demand and returns the
// per-set counts. Re-running is always safe: existing keys are skipped.
func ImportHandler(importSvc *service.ImportService, customerFile, benefitFile string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		report, err := importSvc.ImportFiles(r.Context(), customerFile, benefitFile)
		if err != nil {
			slog.Error("master data import failed", "error", err)
			http.Error(w, "import failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func HealthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
