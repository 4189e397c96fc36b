package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"benefitdesk/internal/model"
	"benefitdesk/internal/store"
)

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrBenefitNotFound    = errors.New("benefit not found")
	ErrInvalidPaymentTier = errors.New("no benefit tier for paid amount")
)

// tierPrefixes maps a customer's paid amount to the benefit-code prefix of
// the tier it buys. A customer is entitled to exactly the catalog codes
// carrying that prefix; this table is the single source of truth for
// eligibility.
var tierPrefixes = map[int]string{
	1000: "261k",
	2000: "262k",
	3000: "263k",
	4000: "264k",
}

// TierPrefix returns the benefit-code prefix for a paid amount, or
// ErrInvalidPaymentTier for amounts outside the scheme.
func TierPrefix(amountPaid int) (string, error) {
	prefix, ok := tierPrefixes[amountPaid]
	if !ok {
		return "", ErrInvalidPaymentTier
	}
	return prefix, nil
}

// Entitlement is a verified customer together with the benefit packages
// their payment tier entitles them to, ascending by code.
type Entitlement struct {
	Customer   model.Customer  `json:"customer"`
	TierPrefix string          `json:"tier_prefix"`
	Benefits   []model.Benefit `json:"benefits"`
}

type ResolverService struct {
	store *store.Store
}

func NewResolverService(st *store.Store) *ResolverService {
	return &ResolverService{store: st}
}

func (s *ResolverService) ResolveCustomerBenefits(ctx context.Context, cardCode string) (*Entitlement, error) {
	cardCode = strings.TrimSpace(cardCode)

	c, err := s.store.GetCustomer(ctx, cardCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	prefix, err := TierPrefix(c.AmountPaid)
	if err != nil {
		return nil, err
	}

	benefits, err := s.store.ListBenefitsByPrefix(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list benefits: %w", err)
	}

	return &Entitlement{Customer: *c, TierPrefix: prefix, Benefits: benefits}, nil
}

func (s *ResolverService) ResolveBenefit(ctx context.Context, benefitCode string) (*model.Benefit, error) {
	benefitCode = strings.TrimSpace(benefitCode)

	b, err := s.store.GetBenefit(ctx, benefitCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrBenefitNotFound
		}
		return nil, fmt.Errorf("get benefit: %w", err)
	}
	return b, nil
}

// ListBenefits returns the catalog, optionally narrowed to a code prefix,
// ascending by code.
func (s *ResolverService) ListBenefits(ctx context.Context, prefix string) ([]model.Benefit, error) {
	benefits, err := s.store.ListBenefitsByPrefix(ctx, strings.TrimSpace(prefix))
	if err != nil {
		return nil, fmt.Errorf("list benefits: %w", err)
	}
	return benefits, nil
}
