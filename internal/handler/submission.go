package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"benefitdesk/internal/model"
	"benefitdesk/internal/service"
)

type claimRequest struct {
	Phone       string `json:"phone"`
	CardCode    string `json:"card_code"`
	BenefitCode string `json:"benefit_code"`
}

type claimResponse struct {
	Submission model.Submission `json:"submission"`
	Benefit    model.Benefit    `json:"benefit"`
}

// RecordClaimHandler validates the benefit code and records the claim.
// An unknown code returns 404 and writes nothing.
func RecordClaimHandler(ledgerSvc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req claimRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Phone) == "" ||
			strings.TrimSpace(req.CardCode) == "" ||
			strings.TrimSpace(req.BenefitCode) == "" {
			http.Error(w, "phone, card_code and benefit_code required", http.StatusBadRequest)
			return
		}

		sub, benefit, err := ledgerSvc.RecordClaim(r.Context(), req.Phone, req.CardCode, req.BenefitCode)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrBenefitNotFound):
				http.Error(w, "invalid benefit code", http.StatusNotFound)
			default:
				slog.Error("record claim failed", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(claimResponse{Submission: *sub, Benefit: *benefit}); err != nil {
			slog.Error("encode claim response failed", "error", err)
		}
	}
}

func ListClaimsHandler(ledgerSvc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		claims, err := ledgerSvc.ListClaims(r.Context())
		if err != nil {
			slog.Error("list claims failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(claims) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(claims); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}

type deleteClaimResponse struct {
	Removed bool `json:"removed"`
}

// DeleteClaimHandler revokes a claim. Deleting an already-deleted id still
// returns 200; the body says whether a row was removed.
func DeleteClaimHandler(ledgerSvc *service.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid claim id", http.StatusBadRequest)
			return
		}

		removed, err := ledgerSvc.DeleteClaim(r.Context(), id)
		if err != nil {
			slog.Error("delete claim failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(deleteClaimResponse{Removed: removed}); err != nil {
			http.Error(w, "encode error", http.StatusInternalServerError)
		}
	}
}
