package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
	"github.com/aliskhannn/daycue-bot/internal/infra/postgres"
)

// PeriodRepository stores the history of logged periods.
type PeriodRepository struct {
	db postgres.DBTX
}

func NewPeriodRepository(db postgres.DBTX) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// LogPeriod appends a period for the chat.
func (r *PeriodRepository) LogPeriod(ctx context.Context, rec entities.PeriodRecord) error {
	query := `INSERT INTO periods (chat_id, start_date, end_date, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, rec.ChatID, toPgDate(&rec.Start), toPgDate(rec.End), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("log period: %w", err)
	}

	return nil
}

// Periods returns the chat's history, oldest first.
func (r *PeriodRepository) Periods(ctx context.Context, chatID int64) ([]entities.PeriodRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT chat_id, start_date, end_date, created_at
		FROM periods
		WHERE chat_id = $1
		ORDER BY id
	`, chatID)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	defer rows.Close()

	var out []entities.PeriodRecord
	for rows.Next() {
		var (
			rec        entities.PeriodRecord
			start, end pgtype.Date
		)
		if err := rows.Scan(&rec.ChatID, &start, &end, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		if d := fromPgDate(start); d != nil {
			rec.Start = *d
		}
		rec.End = fromPgDate(end)
		out = append(out, rec)
	}

	return out, rows.Err()
}
