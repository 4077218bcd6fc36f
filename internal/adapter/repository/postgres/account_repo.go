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

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, display_name, cash_balance, base_currency
		FROM accounts
		WHERE id = $1
	`

	var account domain.Account
	var balanceStr, currency string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.DisplayName,
		&balanceStr,
		&currency,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}

	// Parse cash_balance (DECIMAL)
	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cash_balance: %w", err)
	}
	account.CashBalance = domain.NewMoney(balance, currency)

	return &account, nil
}

// Create creates a new account
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, display_name, cash_balance, base_currency)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.DisplayName,
		account.CashBalance.Amount.String(),
		account.CashBalance.Currency,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// UpdateBalance replaces the account's cash balance
func (r *accountRepository) UpdateBalance(ctx context.Context, id uuid.UUID, balance domain.Money) error {
	query := `
		UPDATE accounts
		SET cash_balance = $2, base_currency = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, balance.Amount.String(), balance.Currency)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}
