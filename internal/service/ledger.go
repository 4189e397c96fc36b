package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"benefitdesk/internal/model"
	"benefitdesk/internal/store"
)

type LedgerService struct {
	store *store.Store
}

func NewLedgerService(st *store.Store) *LedgerService {
	return &LedgerService{store: st}
}

// RecordClaim validates the benefit code and appends a submission in one
// store transaction; an unknown code leaves the ledger untouched. Repeat
// claims for the same card and benefit are allowed: the ledger records
// every redemption that validated.
func (s *LedgerService) RecordClaim(ctx context.Context, phone, cardCode, benefitCode string) (*model.Submission, *model.Benefit, error) {
	phone = strings.TrimSpace(phone)
	cardCode = strings.TrimSpace(cardCode)
	benefitCode = strings.TrimSpace(benefitCode)

	sub, benefit, err := s.store.InsertSubmission(ctx, phone, cardCode, benefitCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrBenefitNotFound
		}
		return nil, nil, fmt.Errorf("record claim: %w", err)
	}

	return sub, benefit, nil
}

// ListClaims returns all recorded claims, most recent first, including the
// assigned ids staff use for revocation.
func (s *LedgerService) ListClaims(ctx context.Context) ([]model.Submission, error) {
	subs, err := s.store.ListSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list claims: %w", err)
	}
	return subs, nil
}

// DeleteClaim revokes a claim by id. Always succeeds from the caller's
// perspective; the flag says whether a row was actually removed.
func (s *LedgerService) DeleteClaim(ctx context.Context, id int64) (bool, error) {
	removed, err := s.store.DeleteSubmission(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete claim: %w", err)
	}
	if !removed {
		slog.Info("delete claim matched no submission", "id", id)
	}
	return removed, nil
}
