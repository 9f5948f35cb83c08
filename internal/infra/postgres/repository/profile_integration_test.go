package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
	"github.com/aliskhannn/daycue-bot/internal/infra/postgres"
)

// Set DAYCUE_TEST_DATABASE_URL to a disposable database to run these tests.
func openTestDB(t *testing.T) (*ProfileRepository, *PeriodRepository, *CopyRepository) {
	t.Helper()

	dsn := os.Getenv("DAYCUE_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("DAYCUE_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE profiles, periods, copy_strings`)
	require.NoError(t, err)

	return NewProfileRepository(pool, postgres.NewTransactor(pool)),
		NewPeriodRepository(pool),
		NewCopyRepository(pool)
}

func TestProfileRepositoryIntegration(t *testing.T) {
	profiles, periods, _ := openTestDB(t)
	ctx := context.Background()

	end := entities.NewDate(2025, time.January, 5)
	p := &entities.Profile{
		ChatID:      1,
		PartnerName: "Anna",
		PeriodStart: entities.NewDate(2025, time.January, 1),
		PeriodEnd:   &end,
		CycleLength: 28,
		NotifyTime:  entities.Clock{Hour: 9},
		Timezone:    "Europe/Stockholm",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		UpdatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, profiles.Put(ctx, p))

	got, err := profiles.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, p.PartnerName, got.PartnerName)
	assert.Equal(t, p.PeriodStart, got.PeriodStart)
	assert.Equal(t, *p.PeriodEnd, *got.PeriodEnd)
	assert.Equal(t, p.NotifyTime, got.NotifyTime)
	assert.Nil(t, got.PartnerDOB)
	assert.Nil(t, got.LastNotifiedDate)

	day := entities.NewDate(2025, time.January, 2)
	_, err = profiles.Update(ctx, 1, func(p *entities.Profile) error {
		p.LastNotifiedDate = &day
		return nil
	})
	require.NoError(t, err)

	got, err = profiles.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.NotifiedOn(day))

	require.NoError(t, periods.LogPeriod(ctx, entities.PeriodRecord{ChatID: 1, Start: p.PeriodStart, End: p.PeriodEnd, CreatedAt: time.Now()}))
	history, err := periods.Periods(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)

	require.NoError(t, profiles.Delete(ctx, 1))
	_, err = profiles.Get(ctx, 1)
	require.ErrorIs(t, err, entities.ErrProfileNotFound)

	history, err = periods.Periods(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCopyRepositoryIntegration(t *testing.T) {
	_, _, copies := openTestDB(t)
	ctx := context.Background()

	pool := copies.db
	_, err := pool.Exec(ctx, `
		INSERT INTO copy_strings (key, locale, phase, text, enabled) VALUES
		('help_luteal', 'en', 'luteal', 'Bring snacks.', TRUE),
		('help_ovulatory', 'en', 'ovulatory', 'Hidden.', FALSE)
	`)
	require.NoError(t, err)

	texts, err := copies.Enabled(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"help_luteal": "Bring snacks."}, texts)
}

func TestPgDateConversion(t *testing.T) {
	assert.False(t, toPgDate(nil).Valid)
	assert.Nil(t, fromPgDate(toPgDate(nil)))

	d := entities.NewDate(2024, time.February, 29)
	back := fromPgDate(toPgDate(&d))
	require.NotNil(t, back)
	assert.Equal(t, d, *back)
}
