package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"benefitdesk/internal/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Store owns the durable representation of the three record sets:
// customers, benefits and submissions. Works against PostgreSQL and SQLite
// through the same SQL.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// UpsertCustomer inserts the customer if its card code is not present yet.
// An existing row is left untouched, never overwritten. The returned flag
// says whether a row was inserted.
func (s *Store) UpsertCustomer(ctx context.Context, c model.Customer) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (card_code, name, amount_paid, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
	`, c.CardCode, c.Name, c.AmountPaid, c.Status, time.Now())
	if err != nil {
		return false, fmt.Errorf("insert customer: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

// UpsertBenefit inserts the benefit if its code is not present yet.
// Same skip-on-conflict semantics as UpsertCustomer.
func (s *Store) UpsertBenefit(ctx context.Context, b model.Benefit) (bool, error) {
	commodities := b.Commodities
	if commodities == nil {
		commodities = map[string]string{}
	}
	blob, err := json.Marshal(commodities)
	if err != nil {
		return false, fmt.Errorf("encode commodities: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO benefits (benefit_code, vessel_type, vessel_description, vessel_weight, commodities_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT DO NOTHING
	`, b.Code, b.VesselType, b.VesselDescription, b.VesselWeight, string(blob), time.Now())
	if err != nil {
		return false, fmt.Errorf("insert benefit: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}

func (s *Store) GetCustomer(ctx context.Context, cardCode string) (*model.Customer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT card_code, name, amount_paid, status, created_at FROM customers WHERE card_code = $1`,
		cardCode,
	)

	var c model.Customer
	if err := row.Scan(&c.CardCode, &c.Name, &c.AmountPaid, &c.Status, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

const selectBenefit = `SELECT benefit_code, vessel_type, vessel_description, vessel_weight, commodities_json, created_at FROM benefits`

func scanBenefit(scan func(dest ...any) error) (*model.Benefit, error) {
	var b model.Benefit
	var blob string
	if err := scan(&b.Code, &b.VesselType, &b.VesselDescription, &b.VesselWeight, &blob, &b.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(blob), &b.Commodities); err != nil {
		return nil, fmt.Errorf("decode commodities: %w", err)
	}
	return &b, nil
}

func (s *Store) GetBenefit(ctx context.Context, benefitCode string) (*model.Benefit, error) {
	row := s.db.QueryRowContext(ctx, selectBenefit+` WHERE benefit_code = $1`, benefitCode)

	b, err := scanBenefit(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get benefit: %w", err)
	}
	return b, nil
}

// ListBenefitsByPrefix returns every benefit whose code starts with prefix,
// ascending by code. An empty prefix lists the whole catalog. Callers
// present the result in this order; it is part of the contract.
func (s *Store) ListBenefitsByPrefix(ctx context.Context, prefix string) ([]model.Benefit, error) {
	rows, err := s.db.QueryContext(ctx,
		selectBenefit+` WHERE benefit_code LIKE $1 || '%' ORDER BY benefit_code ASC`,
		prefix,
	)
	if err != nil {
		return nil, fmt.Errorf("query benefits: %w", err)
	}
	defer rows.Close()

	var benefits []model.Benefit
	for rows.Next() {
		b, err := scanBenefit(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan benefit: %w", err)
		}
		benefits = append(benefits, *b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return benefits, nil
}

// InsertSubmission records a claim. The benefit existence check and the
// insert run in one transaction so a claim can never be recorded against a
// code that failed validation. Returns ErrNotFound, with no row written,
// when the benefit code is unknown.
func (s *Store) InsertSubmission(ctx context.Context, phone, cardCode, benefitCode string) (*model.Submission, *model.Benefit, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, selectBenefit+` WHERE benefit_code = $1`, benefitCode)
	b, err := scanBenefit(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("check benefit: %w", err)
	}

	sub := model.Submission{
		Phone:       phone,
		CardCode:    cardCode,
		BenefitCode: benefitCode,
		CreatedAt:   time.Now(),
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO submissions (phone, card_code, benefit_code, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, sub.Phone, sub.CardCode, sub.BenefitCode, sub.CreatedAt).Scan(&sub.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("insert submission: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit tx: %w", err)
	}

	return &sub, b, nil
}

// ListSubmissions returns all submissions, most recent first.
func (s *Store) ListSubmissions(ctx context.Context) ([]model.Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, phone, card_code, benefit_code, created_at
		FROM submissions
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var sub model.Submission
		if err := rows.Scan(&sub.ID, &sub.Phone, &sub.CardCode, &sub.BenefitCode, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		subs = append(subs, sub)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return subs, nil
}

// DeleteSubmission removes a submission by id. Deleting an absent id is
// not an error; the returned flag says whether a row actually went away.
func (s *Store) DeleteSubmission(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete submission: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n > 0, nil
}
