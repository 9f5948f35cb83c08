package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/daycue-bot/internal/domain/entities"
)

const defaultLocale = "en"

// CopyService caches editable texts from the copy backend.
type CopyService struct {
	repo   CopyRepository
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	cached   entities.Copy
	loadedAt time.Time
	loaded   bool
}

// NewCopyService creates a copy cache. repo may be nil, in which case only built-in texts are used.
func NewCopyService(repo CopyRepository, ttl time.Duration, logger *zap.Logger) *CopyService {
	return &CopyService{
		repo:   repo,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
		cached: entities.NewCopy(nil),
	}
}

// Snapshot returns the current texts, reloading them once the cache is older than ttl.
// On a load error the previous snapshot is kept.
func (s *CopyService) Snapshot(ctx context.Context) entities.Copy {
	if s.repo == nil {
		return s.cached
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.loaded && now.Sub(s.loadedAt) < s.ttl {
		return s.cached
	}

	texts, err := s.repo.Enabled(ctx, defaultLocale)
	if err != nil {
		s.logger.Warn("failed to load copy strings, using cached texts", zap.Error(err))
		return s.cached
	}

	s.cached = entities.NewCopy(texts)
	s.loadedAt = now
	s.loaded = true

	return s.cached
}
