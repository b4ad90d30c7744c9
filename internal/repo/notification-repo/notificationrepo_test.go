package notificationrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/revibe-delhi/revibe/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	now := time.Now()

	tests := []struct {
		name         string
		notification *domain.Notification
		mockSetup    func()
		expectErr    bool
	}{
		{
			name: "Successfully creates notification",
			notification: &domain.Notification{
				UserID:  1,
				Title:   "Points earned!",
				Message: "Your report was resolved. +10 points added to your balance.",
				Type:    "points",
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO notifications (user_id, title, message, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`)).
					WithArgs(1, "Points earned!", "Your report was resolved. +10 points added to your balance.", "points").
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(12, now))
			},
		},
		{
			name: "Database error",
			notification: &domain.Notification{
				UserID: 1,
				Title:  "Points earned!",
				Type:   "points",
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO notifications`)).
					WithArgs(1, "Points earned!", "", "points").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := repo.Create(context.Background(), tt.notification)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 12, result.ID)
				assert.Equal(t, now, result.CreatedAt)
			}
		})
	}
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)

	now := time.Now()

	t.Run("Returns notifications newest first", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "user_id", "title", "message", "type", "is_read", "created_at"}).
			AddRow(13, 1, "Payout completed", "Your ₹5 payout has been sent.", "success", false, now).
			AddRow(12, 1, "Points earned!", "+10 points", "points", true, now.Add(-time.Hour))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, title, message, type, is_read, created_at
        FROM notifications
        WHERE user_id = $1
        ORDER BY created_at DESC
        LIMIT $2`)).
			WithArgs(1, 50).
			WillReturnRows(rows)

		notifications, err := repo.FindByUserID(context.Background(), 1, 50)

		assert.NoError(t, err)
		assert.Len(t, notifications, 2)
		assert.Equal(t, 13, notifications[0].ID)
		assert.True(t, notifications[1].IsRead)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, title, message, type, is_read, created_at`)).
			WithArgs(1, 50).
			WillReturnError(errors.New("database error"))

		notifications, err := repo.FindByUserID(context.Background(), 1, 50)

		assert.Error(t, err)
		assert.Nil(t, notifications)
	})
}

func TestRepository_MarkRead(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("Marks own notification read", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND user_id = $2`)).
			WithArgs(12, 1).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.MarkRead(context.Background(), 1, 12)

		assert.NoError(t, err)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE notifications`)).
			WithArgs(12, 1).
			WillReturnError(errors.New("database error"))

		err := repo.MarkRead(context.Background(), 1, 12)

		assert.Error(t, err)
	})
}

func TestRepository_MarkAllRead(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("Marks all unread notifications read", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE notifications
		SET is_read = TRUE
		WHERE user_id = $1 AND is_read = FALSE`)).
			WithArgs(1).
			WillReturnResult(pgxmock.NewResult("UPDATE", 3))

		err := repo.MarkAllRead(context.Background(), 1)

		assert.NoError(t, err)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE notifications`)).
			WithArgs(1).
			WillReturnError(errors.New("database error"))

		err := repo.MarkAllRead(context.Background(), 1)

		assert.Error(t, err)
	})
}
