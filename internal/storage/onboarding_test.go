package storage

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

func TestOnboardingStorage(t *testing.T) {
	s := NewOnboardingStorage()

	_, ok := s.Get(1)
	assert.False(t, ok)

	session := entities.NewOnboardingSession(1, time.Now())
	s.Store(session)

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, entities.StepNickname, got.Step)

	// Mutating the returned copy does not leak into storage until stored.
	got.Step = entities.StepDOB
	again, _ := s.Get(1)
	assert.Equal(t, entities.StepNickname, again.Step)

	s.Store(got)
	again, _ = s.Get(1)
	assert.Equal(t, entities.StepDOB, again.Step)

	s.Delete(1)
	_, ok = s.Get(1)
	assert.False(t, ok)
}

func TestOnboardingStorageConcurrentAccess(t *testing.T) {
	s := NewOnboardingStorage()

	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Store(entities.NewOnboardingSession(i, time.Now()))
			_, _ = s.Get(i)
			s.Delete(i)
		}()
	}
	wg.Wait()
}
