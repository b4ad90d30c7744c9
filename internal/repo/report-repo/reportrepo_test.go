package reportrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/revibe-delhi/revibe/internal/domain"
	"github.com/revibe-delhi/revibe/internal/pg"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func TestRepository_Save(t *testing.T) {
	repo, mock, _ := NewMock(t)

	now := time.Now()

	tests := []struct {
		name      string
		report    *domain.Report
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully saves report",
			report: &domain.Report{
				UserID:      1,
				Title:       "Overflowing bin",
				Description: "Bin at the market corner has not been cleared for a week",
				Location:    "Lajpat Nagar II, New Delhi",
				Status:      "pending",
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
        INSERT INTO reports (user_id, title, description, location, image_url, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`)).
					WithArgs(1, "Overflowing bin", "Bin at the market corner has not been cleared for a week", "Lajpat Nagar II, New Delhi", "", "pending").
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(42, now))
			},
		},
		{
			name: "Database error",
			report: &domain.Report{
				UserID: 1,
				Title:  "Overflowing bin",
				Status: "pending",
			},
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO reports`)).
					WithArgs(1, "Overflowing bin", "", "", "", "pending").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			err := repo.Save(context.Background(), tt.report)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 42, tt.report.ID)
				assert.Equal(t, now, tt.report.CreatedAt)
			}
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock, _ := NewMock(t)

	now := time.Now()

	tests := []struct {
		name      string
		id        int
		mockSetup func()
		expectErr bool
		result    *domain.Report
	}{
		{
			name: "Existing report",
			id:   42,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "title", "description", "location", "image_url", "status", "points_awarded", "created_at", "resolved_at"}).
					AddRow(42, 1, "Overflowing bin", "Not cleared for a week", "Lajpat Nagar II", "", "pending", int64(0), now, (*time.Time)(nil))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, title, description, location, image_url, status, points_awarded, created_at, resolved_at
        FROM reports
        WHERE id = $1`)).
					WithArgs(42).
					WillReturnRows(rows)
			},
			result: &domain.Report{
				ID:          42,
				UserID:      1,
				Title:       "Overflowing bin",
				Description: "Not cleared for a week",
				Location:    "Lajpat Nagar II",
				Status:      "pending",
				CreatedAt:   now,
			},
		},
		{
			name: "Unknown report returns nil",
			id:   99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, title, description, location, image_url, status, points_awarded, created_at, resolved_at`)).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			id:   42,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, title, description, location, image_url, status, points_awarded, created_at, resolved_at`)).
					WithArgs(42).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := repo.FindByID(context.Background(), tt.id)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_FindReportsByUserID(t *testing.T) {
	repo, mock, _ := NewMock(t)

	now := time.Now()

	t.Run("Returns reports newest first", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "user_id", "title", "description", "location", "image_url", "status", "points_awarded", "created_at", "resolved_at"}).
			AddRow(43, 1, "Broken dustbin", "Lid missing", "Saket", "", "resolved", int64(10), now, &now).
			AddRow(42, 1, "Overflowing bin", "Not cleared", "Lajpat Nagar II", "", "pending", int64(0), now.Add(-time.Hour), (*time.Time)(nil))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, title, description, location, image_url, status, points_awarded, created_at, resolved_at
        FROM reports
        WHERE user_id = $1
        ORDER BY created_at DESC`)).
			WithArgs(1).
			WillReturnRows(rows)

		reports, err := repo.FindReportsByUserID(context.Background(), 1)

		assert.NoError(t, err)
		assert.Len(t, reports, 2)
		assert.Equal(t, 43, reports[0].ID)
		assert.Equal(t, int64(10), reports[0].PointsAwarded)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, title, description, location, image_url, status, points_awarded, created_at, resolved_at`)).
			WithArgs(1).
			WillReturnError(errors.New("database error"))

		reports, err := repo.FindReportsByUserID(context.Background(), 1)

		assert.Error(t, err)
		assert.Nil(t, reports)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock, tx := NewMock(t)

	now := time.Now()

	tests := []struct {
		name       string
		status     string
		resolvedAt *time.Time
		mockSetup  func()
		expectErr  bool
	}{
		{
			name:       "Resolves report",
			status:     "resolved",
			resolvedAt: &now,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectExec(regexp.QuoteMeta(`
        UPDATE reports
        SET status = $1, resolved_at = COALESCE(resolved_at, $2)
        WHERE id = $3`)).
						WithArgs("resolved", &now, 42).
						WillReturnResult(pgxmock.NewResult("UPDATE", 1))
					return fn(ctx)
				})
			},
		},
		{
			name:       "Keeps earlier resolution timestamp",
			status:     "pending",
			resolvedAt: nil,
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectExec(regexp.QuoteMeta(`SET status = $1, resolved_at = COALESCE(resolved_at, $2)`)).
						WithArgs("pending", (*time.Time)(nil), 42).
						WillReturnResult(pgxmock.NewResult("UPDATE", 1))
					return fn(ctx)
				})
			},
		},
		{
			name:   "Database error",
			status: "in-progress",
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectExec(regexp.QuoteMeta(`UPDATE reports`)).
						WithArgs("in-progress", (*time.Time)(nil), 42).
						WillReturnError(errors.New("database error"))
					return fn(ctx)
				})
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			err := repo.UpdateStatus(context.Background(), 42, tt.status, tt.resolvedAt)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_MarkAwarded(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name        string
		mockSetup   func()
		expectedErr error
	}{
		{
			name: "First award succeeds",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`
        UPDATE reports
        SET points_awarded = $1
        WHERE id = $2 AND points_awarded = 0`)).
					WithArgs(int64(10), 42).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Second award returns ErrAlreadyAwarded",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE reports`)).
					WithArgs(int64(10), 42).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectedErr: domain.ErrAlreadyAwarded,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE reports`)).
					WithArgs(int64(10), 42).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			err := repo.MarkAwarded(context.Background(), 42, 10)

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedErr.Error(), err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_SummaryByUserID(t *testing.T) {
	repo, mock, _ := NewMock(t)

	t.Run("Returns totals", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*), COALESCE(SUM(points_awarded), 0)
        FROM reports
        WHERE user_id = $1`)).
			WithArgs(1).
			WillReturnRows(pgxmock.NewRows([]string{"count", "sum"}).AddRow(7, int64(30)))

		count, points, err := repo.SummaryByUserID(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, 7, count)
		assert.Equal(t, int64(30), points)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*), COALESCE(SUM(points_awarded), 0)`)).
			WithArgs(1).
			WillReturnError(errors.New("database error"))

		count, points, err := repo.SummaryByUserID(context.Background(), 1)

		assert.Error(t, err)
		assert.Zero(t, count)
		assert.Zero(t, points)
	})
}
