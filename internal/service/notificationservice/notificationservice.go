package notificationservice

import (
	"context"

	"go.uber.org/zap"

	"github.com/revibe-delhi/revibe/internal/domain"
)

// defaultLimit caps a notification page; the feed is recent-first.
const defaultLimit = 50

type Repo interface {
	FindByUserID(ctx context.Context, userID int, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id int) error
	MarkAllRead(ctx context.Context, userID int) error
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetNotifications(ctx context.Context, userID int) ([]domain.Notification, error) {
	notifications, err := s.repo.FindByUserID(ctx, userID, defaultLimit)
	if err != nil {
		zap.L().Error("failed to get notifications", zap.Error(err))
		return nil, err
	}
	return notifications, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, id int) error {
	if err := s.repo.MarkRead(ctx, userID, id); err != nil {
		zap.L().Error("can't mark notification read", zap.Int("notificationID", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID int) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		zap.L().Error("can't mark notifications read", zap.Int("userID", userID), zap.Error(err))
		return err
	}
	return nil
}
