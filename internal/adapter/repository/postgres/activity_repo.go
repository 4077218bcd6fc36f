package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/slinghq/sling-backend/internal/domain"
)

// activityRepository implements domain.ActivityRepository
type activityRepository struct {
	db *DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *DB) domain.ActivityRepository {
	return &activityRepository{db: db}
}

// Append adds a record to the log. Rows are insert-only; there is no update path.
func (r *activityRepository) Append(ctx context.Context, record *domain.ActivityRecord) error {
	query := `
		INSERT INTO activity_records
			(id, account_id, avatar, title_left, subtitle_left, title_right, subtitle_right,
			 amount, currency, direction, payee_kind, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.AccountID,
		record.Avatar,
		record.TitleLeft,
		record.SubtitleLeft,
		record.TitleRight,
		record.SubtitleRight,
		record.Amount.Amount.String(),
		record.Amount.Currency,
		string(record.Direction),
		string(record.PayeeKind),
		record.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to append activity record: %w", err)
	}

	return nil
}

// List retrieves all records for an account in time order
func (r *activityRepository) List(ctx context.Context, accountID uuid.UUID) ([]*domain.ActivityRecord, error) {
	query := `
		SELECT id, account_id, avatar, title_left, subtitle_left, title_right, subtitle_right,
		       amount, currency, direction, payee_kind, date
		FROM activity_records
		WHERE account_id = $1
		ORDER BY date ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity records: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.ActivityRecord, 0)
	for rows.Next() {
		var record domain.ActivityRecord
		var amountStr, currency string

		if err := rows.Scan(
			&record.ID,
			&record.AccountID,
			&record.Avatar,
			&record.TitleLeft,
			&record.SubtitleLeft,
			&record.TitleRight,
			&record.SubtitleRight,
			&amountStr,
			&currency,
			&record.Direction,
			&record.PayeeKind,
			&record.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity record: %w", err)
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse activity amount: %w", err)
		}
		record.Amount = domain.NewMoney(amount, currency)

		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity records: %w", err)
	}

	return records, nil
}

// Count returns the number of records for an account
func (r *activityRepository) Count(ctx context.Context, accountID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM activity_records
		WHERE account_id = $1
	`

	var count int
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count activity records: %w", err)
	}

	return count, nil
}
