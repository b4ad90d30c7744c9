package redemptionrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

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

func (r *Repository) Create(ctx context.Context, req *domain.RedemptionRequest) (*domain.RedemptionRequest, error) {
	query := `
		INSERT INTO redemption_requests (user_id, points, amount, upi_id, reference, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, req.UserID, req.Points, req.Amount, req.UPIID, req.Reference, req.Status).
		Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		zap.L().Error("can't save redemption request", zap.Error(err))
		return nil, err
	}
	return req, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.RedemptionRequest, error) {
	query := `
        SELECT id, user_id, points, amount, upi_id, reference, status, created_at, processed_at
        FROM redemption_requests
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var req domain.RedemptionRequest
	err := row.Scan(&req.ID, &req.UserID, &req.Points, &req.Amount, &req.UPIID, &req.Reference, &req.Status, &req.CreatedAt, &req.ProcessedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find redemption request", zap.Error(err))
		return nil, err
	}
	return &req, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.RedemptionRequest, error) {
	query := `
        SELECT id, user_id, points, amount, upi_id, reference, status, created_at, processed_at
        FROM redemption_requests
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch redemption requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var requests []domain.RedemptionRequest
	for rows.Next() {
		var req domain.RedemptionRequest
		err := rows.Scan(&req.ID, &req.UserID, &req.Points, &req.Amount, &req.UPIID, &req.Reference, &req.Status, &req.CreatedAt, &req.ProcessedAt)
		if err != nil {
			zap.L().Error("failed to scan redemption request row", zap.Error(err))
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

func (r *Repository) FindForProcessing(ctx context.Context, limit uint32) ([]domain.RedemptionRequest, error) {
	query := `
        SELECT id, user_id, points, amount, upi_id, reference, status, created_at, processed_at
        FROM redemption_requests
        WHERE status IN ('pending', 'processing')
        ORDER BY created_at
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("failed to fetch redemption requests for processing", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var requests []domain.RedemptionRequest
	for rows.Next() {
		var req domain.RedemptionRequest
		err := rows.Scan(&req.ID, &req.UserID, &req.Points, &req.Amount, &req.UPIID, &req.Reference, &req.Status, &req.CreatedAt, &req.ProcessedAt)
		if err != nil {
			zap.L().Error("failed to scan redemption request row", zap.Error(err))
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

// UpdateStatus transitions a request from one status to another. The guard on
// the current status keeps terminal transitions from being applied twice.
func (r *Repository) UpdateStatus(ctx context.Context, id int, from, to string) (bool, error) {
	query := `
		UPDATE redemption_requests
		SET status = $1, processed_at = CASE WHEN $1 IN ('completed', 'failed') THEN now() ELSE processed_at END
		WHERE id = $2 AND status = $3
	`
	tag, err := r.db.Exec(ctx, query, to, id, from)
	if err != nil {
		zap.L().Error("failed to update redemption request status", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
