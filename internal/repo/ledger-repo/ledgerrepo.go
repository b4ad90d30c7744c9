package ledgerrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/revibe-delhi/revibe/internal/domain"
	"github.com/revibe-delhi/revibe/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func (r *Repository) CreateBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        INSERT INTO balances (user_id, points, redeemed_total, version)
        VALUES ($1, 0, 0, 0)
        RETURNING id, user_id, points, redeemed_total, version
    `
	row := r.db.QueryRow(ctx, query, userID)
	var balance domain.Balance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.Points, &balance.RedeemedTotal, &balance.Version)
	if err != nil {
		zap.L().Error("failed to create balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

func (r *Repository) GetBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        SELECT id, user_id, points, redeemed_total, version
        FROM balances
        WHERE user_id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)
	var balance domain.Balance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.Points, &balance.RedeemedTotal, &balance.Version)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBalanceNotFound
		}
		zap.L().Error("failed to get balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

// Apply atomically applies a single ledger event to the account balance: the
// balance row is updated with a versioned compare-and-swap and the event is
// appended with the resulting balance, all in one transaction. A lost swap
// returns ErrConcurrentModification and nothing is applied; a failed write
// rolls back and surfaces as ErrPersistenceFailure.
func (r *Repository) Apply(ctx context.Context, event *domain.LedgerEvent) (int64, error) {
	var newBalance int64

	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		balance, err := r.GetBalance(ctx, event.UserID)
		if err != nil {
			return err
		}

		newBalance = balance.Points + event.Delta
		if newBalance < 0 {
			return domain.ErrInsufficientBalance
		}

		// Redemption ledger entries also move the redeemed running total;
		// a compensating event moves it back.
		var redeemedDelta int64
		if event.RedemptionID != nil {
			redeemedDelta = -event.Delta
		}

		updateQuery := `
			UPDATE balances
			SET points = $1, redeemed_total = redeemed_total + $2, version = version + 1
			WHERE user_id = $3 AND version = $4
		`
		tag, err := r.db.Exec(ctx, updateQuery, newBalance, redeemedDelta, event.UserID, balance.Version)
		if err != nil {
			zap.L().Error("failed to update balance", zap.Error(err))
			return fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrConcurrentModification
		}

		insertQuery := `
			INSERT INTO ledger_events (user_id, delta, reason, balance, report_id, redemption_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`
		row := r.db.QueryRow(ctx, insertQuery, event.UserID, event.Delta, event.Reason, newBalance, event.ReportID, event.RedemptionID)
		if err := row.Scan(&event.ID, &event.CreatedAt); err != nil {
			zap.L().Error("failed to append ledger event", zap.Error(err))
			return fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
		}
		event.Balance = newBalance
		return nil
	})

	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (r *Repository) EventsByUserID(ctx context.Context, userID int) ([]domain.LedgerEvent, error) {
	query := `
        SELECT id, user_id, delta, reason, balance, report_id, redemption_id, created_at
        FROM ledger_events
        WHERE user_id = $1
        ORDER BY created_at DESC, id DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch ledger events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []domain.LedgerEvent
	for rows.Next() {
		var event domain.LedgerEvent
		err := rows.Scan(&event.ID, &event.UserID, &event.Delta, &event.Reason, &event.Balance, &event.ReportID, &event.RedemptionID, &event.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan ledger event row", zap.Error(err))
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}
