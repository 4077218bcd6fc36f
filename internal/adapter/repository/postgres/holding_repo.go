package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/slinghq/sling-backend/internal/domain"
)

// holdingRepository implements domain.HoldingRepository
type holdingRepository struct {
	db *DB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *DB) domain.HoldingRepository {
	return &holdingRepository{db: db}
}

// GetByInstrument retrieves the account's position for one instrument
func (r *holdingRepository) GetByInstrument(ctx context.Context, accountID uuid.UUID, instrumentID string) (*domain.Holding, error) {
	query := `
		SELECT id, account_id, instrument_id, shares, cost_basis, cost_currency
		FROM holdings
		WHERE account_id = $1 AND instrument_id = $2
	`

	row := r.db.QueryRowContext(ctx, query, accountID, instrumentID)
	holding, err := scanHolding(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHoldingNotFound
		}
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}
	return holding, nil
}

// List retrieves all positions for an account, ordered by instrument ID
func (r *holdingRepository) List(ctx context.Context, accountID uuid.UUID) ([]*domain.Holding, error) {
	query := `
		SELECT id, account_id, instrument_id, shares, cost_basis, cost_currency
		FROM holdings
		WHERE account_id = $1
		ORDER BY instrument_id
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	holdings := make([]*domain.Holding, 0)
	for rows.Next() {
		holding, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, holding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holdings: %w", err)
	}

	return holdings, nil
}

// Upsert creates or replaces a position
func (r *holdingRepository) Upsert(ctx context.Context, holding *domain.Holding) error {
	query := `
		INSERT INTO holdings (id, account_id, instrument_id, shares, cost_basis, cost_currency)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (account_id, instrument_id)
		DO UPDATE SET shares = $4, cost_basis = $5, cost_currency = $6
	`

	_, err := r.db.ExecContext(ctx, query,
		holding.ID,
		holding.AccountID,
		holding.InstrumentID,
		holding.Shares.String(),
		holding.CostBasis.Amount.String(),
		holding.CostBasis.Currency,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert holding: %w", err)
	}

	return nil
}

// Delete removes a position
func (r *holdingRepository) Delete(ctx context.Context, accountID uuid.UUID, instrumentID string) error {
	query := `
		DELETE FROM holdings
		WHERE account_id = $1 AND instrument_id = $2
	`

	if _, err := r.db.ExecContext(ctx, query, accountID, instrumentID); err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// scanHolding maps one row onto a domain.Holding
func scanHolding(s scanner) (*domain.Holding, error) {
	var holding domain.Holding
	var sharesStr, costStr, currency string

	if err := s.Scan(
		&holding.ID,
		&holding.AccountID,
		&holding.InstrumentID,
		&sharesStr,
		&costStr,
		&currency,
	); err != nil {
		return nil, err
	}

	shares, err := decimal.NewFromString(sharesStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse shares: %w", err)
	}
	holding.Shares = shares

	cost, err := decimal.NewFromString(costStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cost_basis: %w", err)
	}
	holding.CostBasis = domain.NewMoney(cost, currency)

	return &holding, nil
}
