package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ResetService forgets everything the bot knows about a chat.
type ResetService struct {
	profiles ProfileRepository
	sessions SessionStorage
	logger   *zap.Logger
}

func NewResetService(
	profiles ProfileRepository,
	sessions SessionStorage,
	logger *zap.Logger,
) *ResetService {
	return &ResetService{
		profiles: profiles,
		sessions: sessions,
		logger:   logger,
	}
}

// ResetUser deletes the profile with its period history and any open session.
func (s *ResetService) ResetUser(ctx context.Context, chatID int64) error {
	s.sessions.Delete(chatID)

	if err := s.profiles.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	s.logger.Info("profile reset", zap.Int64("chat_id", chatID))

	return nil
}
