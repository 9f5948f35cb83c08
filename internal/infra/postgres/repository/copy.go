package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/daycue-bot/internal/infra/postgres"
)

// CopyRepository reads editable texts from the copy_strings table.
type CopyRepository struct {
	db postgres.DBTX
}

func NewCopyRepository(db postgres.DBTX) *CopyRepository {
	return &CopyRepository{db: db}
}

// Enabled returns key -> text for all enabled strings of the locale.
func (r *CopyRepository) Enabled(ctx context.Context, locale string) (map[string]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT key, text
		FROM copy_strings
		WHERE enabled = TRUE AND locale = $1
	`, locale)
	if err != nil {
		return nil, fmt.Errorf("list copy strings: %w", err)
	}
	defer rows.Close()

	texts := make(map[string]string)
	for rows.Next() {
		var key, text string
		if err := rows.Scan(&key, &text); err != nil {
			return nil, fmt.Errorf("scan copy string: %w", err)
		}
		texts[key] = text
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate copy strings: %w", err)
	}

	return texts, nil
}
