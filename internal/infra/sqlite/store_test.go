package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func testProfile(chatID int64) *entities.Profile {
	end := entities.NewDate(2025, time.January, 5)
	return &entities.Profile{
		ChatID:      chatID,
		PartnerName: "Anna",
		PeriodStart: entities.NewDate(2025, time.January, 1),
		PeriodEnd:   &end,
		CycleLength: 28,
		NotifyTime:  entities.Clock{Hour: 9, Minute: 30},
		Timezone:    "Europe/Stockholm",
		CreatedAt:   time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC),
	}
}

func TestStoreProfiles(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, 1)
	require.ErrorIs(t, err, entities.ErrProfileNotFound)

	require.NoError(t, s.Put(ctx, testProfile(2)))
	require.NoError(t, s.Put(ctx, testProfile(1)))

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, testProfile(1), got)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ChatID)
	assert.Equal(t, int64(2), list[1].ChatID)

	replaced := testProfile(1)
	replaced.PartnerName = "Maria"
	replaced.PeriodEnd = nil
	require.NoError(t, s.Put(ctx, replaced))

	got, err = s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Maria", got.PartnerName)
	assert.Nil(t, got.PeriodEnd)
}

func TestStoreUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testProfile(1)))

	day := entities.NewDate(2025, time.January, 2)
	updated, err := s.Update(ctx, 1, func(p *entities.Profile) error {
		p.LastNotifiedDate = &day
		p.Paused = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.NotifiedOn(day))

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.NotifiedOn(day))
	assert.True(t, got.Paused)

	errBoom := errors.New("boom")
	_, err = s.Update(ctx, 1, func(p *entities.Profile) error {
		p.Paused = false
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	got, err = s.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, got.Paused)

	_, err = s.Update(ctx, 42, func(p *entities.Profile) error { return nil })
	require.ErrorIs(t, err, entities.ErrProfileNotFound)
}

func TestStorePeriods(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, testProfile(1)))

	end := entities.NewDate(2025, time.January, 5)
	createdAt := time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.LogPeriod(ctx, entities.PeriodRecord{
		ChatID:    1,
		Start:     entities.NewDate(2025, time.January, 1),
		End:       &end,
		CreatedAt: createdAt,
	}))
	require.NoError(t, s.LogPeriod(ctx, entities.PeriodRecord{
		ChatID:    1,
		Start:     entities.NewDate(2025, time.January, 29),
		CreatedAt: createdAt,
	}))

	history, err := s.Periods(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, end, *history[0].End)
	assert.Nil(t, history[1].End)
	assert.Equal(t, createdAt, history[0].CreatedAt)

	require.NoError(t, s.Delete(ctx, 1))
	require.NoError(t, s.Delete(ctx, 1))

	history, err = s.Periods(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestOpenReappliesNothing(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), testProfile(1)))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.PartnerName)
}
