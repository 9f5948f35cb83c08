package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
	"github.com/aliskhannn/daycue-bot/internal/infra/postgres"
)

const profileColumns = `
	chat_id, partner_name, partner_dob, period_start, period_end,
	cycle_length, notify_time, timezone, paused, last_notified_date,
	created_at, updated_at
`

// ProfileRepository provides access to profiles in the database.
type ProfileRepository struct {
	db postgres.DBTX
	tr *postgres.Transactor
}

// NewProfileRepository creates a new ProfileRepository. tr is used by Update
// to lock the row; it may be nil for a repository already bound to a transaction.
func NewProfileRepository(db postgres.DBTX, tr *postgres.Transactor) *ProfileRepository {
	return &ProfileRepository{db: db, tr: tr}
}

// Get retrieves a profile by chat ID.
func (r *ProfileRepository) Get(ctx context.Context, chatID int64) (*entities.Profile, error) {
	return r.get(ctx, chatID, false)
}

func (r *ProfileRepository) get(ctx context.Context, chatID int64, forUpdate bool) (*entities.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE chat_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	p, err := scanProfile(r.db.QueryRow(ctx, query, chatID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return p, nil
}

// Put inserts a new profile or replaces an existing one.
func (r *ProfileRepository) Put(ctx context.Context, p *entities.Profile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (chat_id) DO UPDATE SET
			partner_name = EXCLUDED.partner_name,
			partner_dob = EXCLUDED.partner_dob,
			period_start = EXCLUDED.period_start,
			period_end = EXCLUDED.period_end,
			cycle_length = EXCLUDED.cycle_length,
			notify_time = EXCLUDED.notify_time,
			timezone = EXCLUDED.timezone,
			paused = EXCLUDED.paused,
			last_notified_date = EXCLUDED.last_notified_date,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(
		ctx,
		query,
		p.ChatID,
		p.PartnerName,
		toPgDate(p.PartnerDOB),
		toPgDate(&p.PeriodStart),
		toPgDate(p.PeriodEnd),
		p.CycleLength,
		p.NotifyTime.String(),
		p.Timezone,
		p.Paused,
		toPgDate(p.LastNotifiedDate),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("put profile: %w", err)
	}

	return nil
}

// Delete removes a profile; its periods are removed by cascade.
func (r *ProfileRepository) Delete(ctx context.Context, chatID int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE chat_id = $1`, chatID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// List returns all profiles ordered by chat ID.
func (r *ProfileRepository) List(ctx context.Context) ([]*entities.Profile, error) {
	rows, err := r.db.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY chat_id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*entities.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	return profiles, nil
}

// Update locks the profile row, applies fn and writes the result in one transaction.
func (r *ProfileRepository) Update(
	ctx context.Context,
	chatID int64,
	fn func(p *entities.Profile) error,
) (*entities.Profile, error) {
	if r.tr == nil {
		return nil, errors.New("update profile: transactor not configured")
	}

	var updated *entities.Profile
	err := r.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		txRepo := NewProfileRepository(tx, nil)

		p, err := txRepo.get(ctx, chatID, true)
		if err != nil {
			return err
		}

		if err := fn(p); err != nil {
			return err
		}

		if err := txRepo.Put(ctx, p); err != nil {
			return err
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func scanProfile(row pgx.Row) (*entities.Profile, error) {
	var (
		p            entities.Profile
		dob          pgtype.Date
		start        pgtype.Date
		end          pgtype.Date
		lastNotified pgtype.Date
		notifyTime   string
	)

	err := row.Scan(
		&p.ChatID,
		&p.PartnerName,
		&dob,
		&start,
		&end,
		&p.CycleLength,
		&notifyTime,
		&p.Timezone,
		&p.Paused,
		&lastNotified,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	clock, err := entities.ParseClock(notifyTime)
	if err != nil {
		return nil, fmt.Errorf("profile %d: %w", p.ChatID, err)
	}

	p.NotifyTime = clock
	p.PartnerDOB = fromPgDate(dob)
	p.PeriodEnd = fromPgDate(end)
	p.LastNotifiedDate = fromPgDate(lastNotified)
	if d := fromPgDate(start); d != nil {
		p.PeriodStart = *d
	}

	return &p, nil
}

func toPgDate(d *entities.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.Time(), Valid: true}
}

func fromPgDate(d pgtype.Date) *entities.Date {
	if !d.Valid {
		return nil
	}
	v := entities.DateOf(d.Time)
	return &v
}
