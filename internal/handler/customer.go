package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"benefitdesk/internal/service"
)

type checkCustomerRequest struct {
	CardCode string `json:"card_code"`
}

// CheckCustomerHandler verifies a card code and returns the customer with
// the benefit packages their payment tier entitles them to.
func CheckCustomerHandler(resolverSvc *service.ResolverService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req checkCustomerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.CardCode) == "" {
			http.Error(w, "card_code required", http.StatusBadRequest)
			return
		}

		entitlement, err := resolverSvc.ResolveCustomerBenefits(r.Context(), req.CardCode)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrCustomerNotFound):
				http.Error(w, "customer doesn't exist", http.StatusNotFound)
			case errors.Is(err, service.ErrInvalidPaymentTier):
				http.Error(w, "no benefit tier matches the paid amount", http.StatusUnprocessableEntity)
			default:
				slog.Error("customer check failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entitlement); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
