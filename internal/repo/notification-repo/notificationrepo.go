package notificationrepo

import (
	"context"

	"github.com/revibe-delhi/revibe/internal/domain"
	"github.com/revibe-delhi/revibe/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	query := `
		INSERT INTO notifications (user_id, title, message, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, n.UserID, n.Title, n.Message, n.Type).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		zap.L().Error("can't save notification", zap.Error(err))
		return nil, err
	}
	return n, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int, limit int) ([]domain.Notification, error) {
	query := `
        SELECT id, user_id, title, message, type, is_read, created_at
        FROM notifications
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		zap.L().Error("failed to fetch notifications", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan notification row", zap.Error(err))
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

func (r *Repository) MarkRead(ctx context.Context, userID, id int) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND user_id = $2
	`
	_, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		zap.L().Error("failed to mark notification read", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) MarkAllRead(ctx context.Context, userID int) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE user_id = $1 AND is_read = FALSE
	`
	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to mark notifications read", zap.Error(err))
		return err
	}
	return nil
}
