package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

// ProfileRepository is a process-memory profile store.
// All reads and writes hand out copies, so callers never share state with the store.
type ProfileRepository struct {
	mu       sync.Mutex
	profiles map[int64]entities.Profile
	periods  []entities.PeriodRecord

	// onChange runs under mu after every successful mutation.
	onChange func() error
}

// NewProfileRepository creates an empty in-memory ProfileRepository.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		profiles: make(map[int64]entities.Profile),
	}
}

// Get returns the profile for chatID or entities.ErrProfileNotFound.
func (r *ProfileRepository) Get(_ context.Context, chatID int64) (*entities.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[chatID]
	if !ok {
		return nil, entities.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

// Put inserts or replaces a profile.
func (r *ProfileRepository) Put(_ context.Context, profile *entities.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[profile.ChatID] = *cloneProfile(*profile)
	return r.changed()
}

// Delete removes the profile and its period history. Unknown chats are ignored.
func (r *ProfileRepository) Delete(_ context.Context, chatID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.profiles, chatID)
	r.periods = slices.DeleteFunc(r.periods, func(rec entities.PeriodRecord) bool {
		return rec.ChatID == chatID
	})
	return r.changed()
}

// List returns all profiles ordered by chat ID.
func (r *ProfileRepository) List(_ context.Context) ([]*entities.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entities.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, cloneProfile(p))
	}
	slices.SortFunc(out, func(a, b *entities.Profile) int {
		switch {
		case a.ChatID < b.ChatID:
			return -1
		case a.ChatID > b.ChatID:
			return 1
		}
		return 0
	})
	return out, nil
}

// Update applies fn to the stored profile atomically. If fn fails nothing is written.
func (r *ProfileRepository) Update(
	_ context.Context,
	chatID int64,
	fn func(p *entities.Profile) error,
) (*entities.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.profiles[chatID]
	if !ok {
		return nil, entities.ErrProfileNotFound
	}

	p := cloneProfile(stored)
	if err := fn(p); err != nil {
		return nil, err
	}

	r.profiles[chatID] = *cloneProfile(*p)
	return p, r.changed()
}

// LogPeriod appends a period to the chat's history.
func (r *ProfileRepository) LogPeriod(_ context.Context, rec entities.PeriodRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.periods = append(r.periods, rec)
	return r.changed()
}

// Periods returns the chat's logged periods in insertion order.
func (r *ProfileRepository) Periods(_ context.Context, chatID int64) ([]entities.PeriodRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entities.PeriodRecord
	for _, rec := range r.periods {
		if rec.ChatID == chatID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *ProfileRepository) changed() error {
	if r.onChange == nil {
		return nil
	}
	return r.onChange()
}

func cloneProfile(p entities.Profile) *entities.Profile {
	p.PartnerDOB = cloneDate(p.PartnerDOB)
	p.PeriodEnd = cloneDate(p.PeriodEnd)
	p.LastNotifiedDate = cloneDate(p.LastNotifiedDate)
	return &p
}

func cloneDate(d *entities.Date) *entities.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
