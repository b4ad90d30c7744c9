package ledgerrepo

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

func TestRepository_CreateBalance(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    *domain.Balance
	}{
		{
			name:   "Successfully creates balance",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`
        INSERT INTO balances (user_id, points, redeemed_total, version)
        VALUES ($1, 0, 0, 0)
        RETURNING id, user_id, points, redeemed_total, version`)).
					WithArgs(1).
					WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "points", "redeemed_total", "version"}).
						AddRow(1, 1, int64(0), int64(0), int64(0)),
					)
			},
			expectErr: false,
			result: &domain.Balance{
				ID:            1,
				UserID:        1,
				Points:        0,
				RedeemedTotal: 0,
				Version:       0,
			},
		},
		{
			name:   "Database error",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO balances`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := repo.CreateBalance(context.Background(), tt.userID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_GetBalance(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name        string
		userID      int
		mockSetup   func()
		expectedErr error
		result      *domain.Balance
	}{
		{
			name:   "Valid userID returns balance",
			userID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "points", "redeemed_total", "version"}).
					AddRow(1, 1, int64(600), int64(500), int64(4))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, points, redeemed_total, version
        FROM balances
        WHERE user_id = $1`)).
					WithArgs(1).
					WillReturnRows(rows)
			},
			result: &domain.Balance{
				ID:            1,
				UserID:        1,
				Points:        600,
				RedeemedTotal: 500,
				Version:       4,
			},
		},
		{
			name:   "Non-existing userID returns ErrBalanceNotFound",
			userID: 99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, points, redeemed_total, version`)).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
			expectedErr: domain.ErrBalanceNotFound,
		},
		{
			name:   "Database error",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, points, redeemed_total, version`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			result, err := repo.GetBalance(context.Background(), tt.userID)

			if tt.expectedErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedErr.Error(), err.Error())
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_Apply(t *testing.T) {
	repo, mock, tx := NewMock(t)

	reportID := 42
	redemptionID := 7
	now := time.Now()

	balanceRows := func(points, redeemed, version int64) *pgxmock.Rows {
		return pgxmock.NewRows([]string{"id", "user_id", "points", "redeemed_total", "version"}).
			AddRow(1, 1, points, redeemed, version)
	}

	tests := []struct {
		name        string
		event       *domain.LedgerEvent
		mockSetup   func()
		expectedErr error
		expected    int64
	}{
		{
			name:  "Award applies and appends event",
			event: &domain.LedgerEvent{UserID: 1, Delta: 10, Reason: "report-resolved", ReportID: &reportID},
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, points, redeemed_total, version`)).
						WithArgs(1).
						WillReturnRows(balanceRows(600, 0, 4))
					mock.ExpectExec(regexp.QuoteMeta(`UPDATE balances
			SET points = $1, redeemed_total = redeemed_total + $2, version = version + 1
			WHERE user_id = $3 AND version = $4`)).
						WithArgs(int64(610), int64(0), 1, int64(4)).
						WillReturnResult(pgxmock.NewResult("UPDATE", 1))
					mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ledger_events (user_id, delta, reason, balance, report_id, redemption_id)`)).
						WithArgs(1, int64(10), "report-resolved", int64(610), &reportID, (*int)(nil)).
						WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(100), now))
					return fn(ctx)
				})
			},
			expected: 610,
		},
		{
			name:  "Redemption moves redeemed total",
			event: &domain.LedgerEvent{UserID: 1, Delta: -500, Reason: "redemption", RedemptionID: &redemptionID},
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, points, redeemed_total, version`)).
						WithArgs(1).
						WillReturnRows(balanceRows(600, 0, 4))
					mock.ExpectExec(regexp.QuoteMeta(`UPDATE balances`)).
						WithArgs(int64(100), int64(500), 1, int64(4)).
						WillReturnResult(pgxmock.NewResult("UPDATE", 1))
					mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ledger_events`)).
						WithArgs(1, int64(-500), "redemption", int64(100), (*int)(nil), &redemptionID).
						WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(101), now))
					return fn(ctx)
				})
			},
			expected: 100,
		},
		{
			name:  "Lost version swap returns ErrConcurrentModification",
			event: &domain.LedgerEvent{UserID: 1, Delta: 10, Reason: "report-resolved", ReportID: &reportID},
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, points, redeemed_total, version`)).
						WithArgs(1).
						WillReturnRows(balanceRows(600, 0, 4))
					mock.ExpectExec(regexp.QuoteMeta(`UPDATE balances`)).
						WithArgs(int64(610), int64(0), 1, int64(4)).
						WillReturnResult(pgxmock.NewResult("UPDATE", 0))
					return fn(ctx)
				})
			},
			expectedErr: domain.ErrConcurrentModification,
		},
		{
			name:  "Overdraw returns ErrInsufficientBalance",
			event: &domain.LedgerEvent{UserID: 1, Delta: -1000, Reason: "redemption", RedemptionID: &redemptionID},
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, points, redeemed_total, version`)).
						WithArgs(1).
						WillReturnRows(balanceRows(600, 0, 4))
					return fn(ctx)
				})
			},
			expectedErr: domain.ErrInsufficientBalance,
		},
		{
			name:  "Failed write surfaces ErrPersistenceFailure",
			event: &domain.LedgerEvent{UserID: 1, Delta: 10, Reason: "report-resolved", ReportID: &reportID},
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, points, redeemed_total, version`)).
						WithArgs(1).
						WillReturnRows(balanceRows(600, 0, 4))
					mock.ExpectExec(regexp.QuoteMeta(`UPDATE balances`)).
						WithArgs(int64(610), int64(0), 1, int64(4)).
						WillReturnError(errors.New("connection reset"))
					return fn(ctx)
				})
			},
			expectedErr: domain.ErrPersistenceFailure,
		},
		{
			name:  "Missing balance row",
			event: &domain.LedgerEvent{UserID: 99, Delta: 10, Reason: "report-resolved"},
			mockSetup: func() {
				tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error {
					mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, points, redeemed_total, version`)).
						WithArgs(99).
						WillReturnError(pgx.ErrNoRows)
					return fn(ctx)
				})
			},
			expectedErr: domain.ErrBalanceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			newBalance, err := repo.Apply(context.Background(), tt.event)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, newBalance)
				assert.Equal(t, tt.expected, tt.event.Balance)
				assert.NotZero(t, tt.event.ID)
			}
		})
	}
}

func TestRepository_EventsByUserID(t *testing.T) {
	repo, mock, _ := NewMock(t)

	now := time.Now()
	reportID := 42

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		expected  []domain.LedgerEvent
	}{
		{
			name:   "Returns events newest first",
			userID: 1,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "delta", "reason", "balance", "report_id", "redemption_id", "created_at"}).
					AddRow(int64(101), 1, int64(10), "report-resolved", int64(610), &reportID, (*int)(nil), now).
					AddRow(int64(100), 1, int64(600), "adjustment", int64(600), (*int)(nil), (*int)(nil), now.Add(-time.Hour))
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, delta, reason, balance, report_id, redemption_id, created_at
        FROM ledger_events
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC`)).
					WithArgs(1).
					WillReturnRows(rows)
			},
			expected: []domain.LedgerEvent{
				{ID: 101, UserID: 1, Delta: 10, Reason: "report-resolved", Balance: 610, ReportID: &reportID, CreatedAt: now},
				{ID: 100, UserID: 1, Delta: 600, Reason: "adjustment", Balance: 600, CreatedAt: now.Add(-time.Hour)},
			},
		},
		{
			name:   "No events returns empty",
			userID: 2,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, delta, reason, balance, report_id, redemption_id, created_at`)).
					WithArgs(2).
					WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "delta", "reason", "balance", "report_id", "redemption_id", "created_at"}))
			},
			expected: nil,
		},
		{
			name:   "Database error",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, delta, reason, balance, report_id, redemption_id, created_at`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			events, err := repo.EventsByUserID(context.Background(), tt.userID)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, events)
			}
		})
	}
}
