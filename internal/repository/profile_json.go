package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

// snapshot is the on-disk layout of the profiles file.
type snapshot struct {
	Profiles []entities.Profile     `json:"profiles"`
	Periods  []entities.PeriodRecord `json:"periods,omitempty"`
}

// JSONProfileRepository is a ProfileRepository persisted to a single JSON file.
// The whole file is rewritten after every mutation. On write failure the
// in-memory state is kept and the error is returned for logging.
type JSONProfileRepository struct {
	*ProfileRepository
	path string
}

// NewJSONProfileRepository loads profiles from path, creating the parent directory if needed.
// A missing file yields an empty store.
func NewJSONProfileRepository(path string) (*JSONProfileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	r := &JSONProfileRepository{
		ProfileRepository: NewProfileRepository(),
		path:              path,
	}

	if err := r.load(); err != nil {
		return nil, err
	}

	r.onChange = r.flush
	return r, nil
}

func (r *JSONProfileRepository) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read profiles file: %w", err)
	}

	if len(data) == 0 {
		return nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode profiles file: %w", err)
	}

	for _, p := range snap.Profiles {
		r.profiles[p.ChatID] = p
	}
	r.periods = snap.Periods

	return nil
}

// flush writes the snapshot to a temp file and renames it over the target,
// so a crash mid-write never leaves a truncated file. Called with mu held.
func (r *JSONProfileRepository) flush() error {
	snap := snapshot{
		Profiles: make([]entities.Profile, 0, len(r.profiles)),
		Periods:  r.periods,
	}
	for _, p := range r.profiles {
		snap.Profiles = append(snap.Profiles, p)
	}
	slices.SortFunc(snap.Profiles, func(a, b entities.Profile) int {
		switch {
		case a.ChatID < b.ChatID:
			return -1
		case a.ChatID > b.ChatID:
			return 1
		}
		return 0
	})

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write profiles: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace profiles file: %w", err)
	}

	return nil
}
