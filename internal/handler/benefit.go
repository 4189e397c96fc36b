package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"benefitdesk/internal/service"
)

// ListBenefitsHandler returns the benefit catalog, optionally narrowed to
// a code prefix via ?prefix=, ascending by code.
func ListBenefitsHandler(resolverSvc *service.ResolverService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		benefits, err := resolverSvc.ListBenefits(r.Context(), r.URL.Query().Get("prefix"))
		if err != nil {
			slog.Error("list benefits failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(benefits) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(benefits); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

func GetBenefitHandler(resolverSvc *service.ResolverService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		benefit, err := resolverSvc.ResolveBenefit(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrBenefitNotFound):
				http.Error(w, "invalid benefit code", http.StatusNotFound)
			default:
				slog.Error("benefit lookup failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(benefit); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
