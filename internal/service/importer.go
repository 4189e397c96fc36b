package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"benefitdesk/internal/model"
	"benefitdesk/internal/store"
	"benefitdesk/internal/tabular"
)

// Columns a benefit row may carry besides the open commodity set.
var benefitReservedColumns = map[string]bool{
	"benefit code":       true,
	"vessel type":        true,
	"vessel description": true,
	"vessel weight":      true,
}

type SetReport struct {
	Processed int `json:"processed"`
	Inserted  int `json:"inserted"`
	Skipped   int `json:"skipped"`
	Malformed int `json:"malformed"`
}

type ImportReport struct {
	Customers SetReport `json:"customers"`
	Benefits  SetReport `json:"benefits"`
}

type ImportService struct {
	store *store.Store
}

func NewImportService(st *store.Store) *ImportService {
	return &ImportService{store: st}
}

// ImportFiles reads both master files and imports them. Used at startup,
// by the refresh worker and by the admin import endpoint.
func (s *ImportService) ImportFiles(ctx context.Context, customerFile, benefitFile string) (*ImportReport, error) {
	customerRows, err := tabular.ReadFile(customerFile)
	if err != nil {
		return nil, fmt.Errorf("read customer file: %w", err)
	}

	benefitRows, err := tabular.ReadFile(benefitFile)
	if err != nil {
		return nil, fmt.Errorf("read benefit file: %w", err)
	}

	return s.ImportMasterData(ctx, customerRows, benefitRows)
}

// ImportMasterData upserts customer and benefit rows into the store.
// Import is a monotonic union: existing keys are never overwritten,
// re-running with the same or an extended source only adds new keys.
// A malformed row is logged, counted and skipped; it never aborts the
// batch and never partially applies.
func (s *ImportService) ImportMasterData(ctx context.Context, customerRows, benefitRows []tabular.Row) (*ImportReport, error) {
	report := &ImportReport{}

	for _, row := range customerRows {
		report.Customers.Processed++

		c, ok := customerFromRow(row)
		if !ok {
			report.Customers.Malformed++
			continue
		}

		inserted, err := s.store.UpsertCustomer(ctx, c)
		if err != nil {
			return report, fmt.Errorf("upsert customer %q: %w", c.CardCode, err)
		}
		if inserted {
			report.Customers.Inserted++
		} else {
			report.Customers.Skipped++
		}
	}

	for _, row := range benefitRows {
		report.Benefits.Processed++

		b, ok := benefitFromRow(row)
		if !ok {
			report.Benefits.Malformed++
			continue
		}

		inserted, err := s.store.UpsertBenefit(ctx, b)
		if err != nil {
			return report, fmt.Errorf("upsert benefit %q: %w", b.Code, err)
		}
		if inserted {
			report.Benefits.Inserted++
		} else {
			report.Benefits.Skipped++
		}
	}

	return report, nil
}

func customerFromRow(row tabular.Row) (model.Customer, bool) {
	cardCode := row["card code"]
	if cardCode == "" {
		slog.Warn("skipping customer row without card code")
		return model.Customer{}, false
	}

	amount, err := strconv.Atoi(row["amount paid"])
	if err != nil {
		slog.Warn("skipping customer row with non-numeric amount",
			"card_code", cardCode, "amount_paid", row["amount paid"])
		return model.Customer{}, false
	}

	return model.Customer{
		CardCode:   cardCode,
		Name:       row["name"],
		AmountPaid: amount,
		Status:     row["status"],
	}, true
}

func benefitFromRow(row tabular.Row) (model.Benefit, bool) {
	code := row["benefit code"]
	if code == "" {
		slog.Warn("skipping benefit row without benefit code")
		return model.Benefit{}, false
	}

	// Every non-reserved column is a commodity; the set is open because
	// the scheme files gain columns between seasons.
	commodities := map[string]string{}
	for name, value := range row {
		if benefitReservedColumns[name] {
			continue
		}
		commodities[name] = value
	}

	return model.Benefit{
		Code:              code,
		VesselType:        row["vessel type"],
		VesselDescription: row["vessel description"],
		VesselWeight:      row["vessel weight"],
		Commodities:       commodities,
	}, true
}
