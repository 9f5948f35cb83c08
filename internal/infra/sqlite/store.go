package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const profileColumns = `
	chat_id, partner_name, partner_dob, period_start, period_end,
	cycle_length, notify_time, timezone, paused, last_notified_date,
	created_at, updated_at
`

// querier is implemented by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store is a SQLite-backed profile store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) daycue.db in dataDir and runs pending migrations.
// Pass ":memory:" as dataDir for an in-memory database (used by tests).
func Open(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "daycue.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection serializes writers, which also makes Update atomic.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TEXT DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		prefix, _, _ := strings.Cut(name, "_")
		version, err := strconv.Atoi(prefix)
		if err != nil {
			return fmt.Errorf("invalid migration filename %q: %w", name, err)
		}

		var applied int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&applied); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if applied > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}

	return nil
}

// Get retrieves a profile by chat ID.
func (s *Store) Get(ctx context.Context, chatID int64) (*entities.Profile, error) {
	return getProfile(ctx, s.db, chatID)
}

// Put inserts or replaces a profile.
func (s *Store) Put(ctx context.Context, p *entities.Profile) error {
	return putProfile(ctx, s.db, p)
}

// Delete removes a profile and its period history.
func (s *Store) Delete(ctx context.Context, chatID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM periods WHERE chat_id = ?`, chatID); err != nil {
		return fmt.Errorf("delete periods: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE chat_id = ?`, chatID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	return tx.Commit()
}

// List returns all profiles ordered by chat ID.
func (s *Store) List(ctx context.Context) ([]*entities.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY chat_id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []*entities.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

// Update applies fn to the stored profile inside a transaction.
func (s *Store) Update(
	ctx context.Context,
	chatID int64,
	fn func(p *entities.Profile) error,
) (*entities.Profile, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback()

	p, err := getProfile(ctx, tx, chatID)
	if err != nil {
		return nil, err
	}

	if err := fn(p); err != nil {
		return nil, err
	}

	if err := putProfile(ctx, tx, p); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}

	return p, nil
}

// LogPeriod appends a period to the chat's history.
func (s *Store) LogPeriod(ctx context.Context, rec entities.PeriodRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO periods (chat_id, start_date, end_date, created_at) VALUES (?, ?, ?, ?)`,
		rec.ChatID, rec.Start.String(), nullDate(rec.End), formatTime(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("log period: %w", err)
	}
	return nil
}

// Periods returns the chat's history, oldest first.
func (s *Store) Periods(ctx context.Context, chatID int64) ([]entities.PeriodRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT chat_id, start_date, end_date, created_at FROM periods WHERE chat_id = ? ORDER BY id`, chatID)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	defer rows.Close()

	var out []entities.PeriodRecord
	for rows.Next() {
		var (
			rec              entities.PeriodRecord
			start, createdAt string
			end              sql.NullString
		)
		if err := rows.Scan(&rec.ChatID, &start, &end, &createdAt); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		if rec.Start, err = entities.ParseDate(start); err != nil {
			return nil, err
		}
		if rec.End, err = parseNullDate(end); err != nil {
			return nil, err
		}
		if rec.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

func getProfile(ctx context.Context, q querier, chatID int64) (*entities.Profile, error) {
	row := q.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE chat_id = ?`, chatID)

	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func putProfile(ctx context.Context, q querier, p *entities.Profile) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (chat_id) DO UPDATE SET
			partner_name = excluded.partner_name,
			partner_dob = excluded.partner_dob,
			period_start = excluded.period_start,
			period_end = excluded.period_end,
			cycle_length = excluded.cycle_length,
			notify_time = excluded.notify_time,
			timezone = excluded.timezone,
			paused = excluded.paused,
			last_notified_date = excluded.last_notified_date,
			updated_at = excluded.updated_at
	`,
		p.ChatID,
		p.PartnerName,
		nullDate(p.PartnerDOB),
		p.PeriodStart.String(),
		nullDate(p.PeriodEnd),
		p.CycleLength,
		p.NotifyTime.String(),
		p.Timezone,
		p.Paused,
		nullDate(p.LastNotifiedDate),
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*entities.Profile, error) {
	var (
		p                    entities.Profile
		dob, end, notified   sql.NullString
		start, notifyTime    string
		createdAt, updatedAt string
	)

	if err := row.Scan(
		&p.ChatID,
		&p.PartnerName,
		&dob,
		&start,
		&end,
		&p.CycleLength,
		&notifyTime,
		&p.Timezone,
		&p.Paused,
		&notified,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if p.PeriodStart, err = entities.ParseDate(start); err != nil {
		return nil, err
	}
	if p.PartnerDOB, err = parseNullDate(dob); err != nil {
		return nil, err
	}
	if p.PeriodEnd, err = parseNullDate(end); err != nil {
		return nil, err
	}
	if p.LastNotifiedDate, err = parseNullDate(notified); err != nil {
		return nil, err
	}
	if p.NotifyTime, err = entities.ParseClock(notifyTime); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &p, nil
}

func nullDate(d *entities.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func parseNullDate(s sql.NullString) (*entities.Date, error) {
	if !s.Valid {
		return nil, nil
	}
	d, err := entities.ParseDate(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
