package reportrepo

import (
	"context"
	"time"

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

func (r *Repository) Save(ctx context.Context, report *domain.Report) error {
	query := `
        INSERT INTO reports (user_id, title, description, location, image_url, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, report.UserID, report.Title, report.Description, report.Location, report.ImageURL, report.Status).
		Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		zap.L().Error("can't save report", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Report, error) {
	query := `
        SELECT id, user_id, title, description, location, image_url, status, points_awarded, created_at, resolved_at
        FROM reports
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var report domain.Report
	err := row.Scan(&report.ID, &report.UserID, &report.Title, &report.Description, &report.Location,
		&report.ImageURL, &report.Status, &report.PointsAwarded, &report.CreatedAt, &report.ResolvedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find report", zap.Error(err))
		return nil, err
	}
	return &report, nil
}

func (r *Repository) FindReportsByUserID(ctx context.Context, userID int) ([]domain.Report, error) {
	query := `
        SELECT id, user_id, title, description, location, image_url, status, points_awarded, created_at, resolved_at
        FROM reports
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("can't get reports", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var report domain.Report
		err := rows.Scan(&report.ID, &report.UserID, &report.Title, &report.Description, &report.Location,
			&report.ImageURL, &report.Status, &report.PointsAwarded, &report.CreatedAt, &report.ResolvedAt)
		if err != nil {
			zap.L().Error("can't scan report row", zap.Error(err))
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// UpdateStatus changes the report status. The resolution timestamp sticks:
// COALESCE keeps the value from the first resolution, so re-resolving or
// moving a report back to pending never rewrites or clears it.
func (r *Repository) UpdateStatus(ctx context.Context, id int, status string, resolvedAt *time.Time) error {
	query := `
        UPDATE reports
        SET status = $1, resolved_at = COALESCE(resolved_at, $2)
        WHERE id = $3
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query, status, resolvedAt, id)
		if err != nil {
			zap.L().Error("failed to update report status", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// MarkAwarded sets points_awarded exactly once. A report that already carries
// an award is left untouched and reported as domain.ErrAlreadyAwarded.
func (r *Repository) MarkAwarded(ctx context.Context, id int, points int64) error {
	query := `
        UPDATE reports
        SET points_awarded = $1
        WHERE id = $2 AND points_awarded = 0
    `
	tag, err := r.db.Exec(ctx, query, points, id)
	if err != nil {
		zap.L().Error("failed to mark report awarded", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyAwarded
	}
	return nil
}

func (r *Repository) SummaryByUserID(ctx context.Context, userID int) (int, int64, error) {
	query := `
        SELECT COUNT(*), COALESCE(SUM(points_awarded), 0)
        FROM reports
        WHERE user_id = $1
    `
	var count int
	var points int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count, &points)
	if err != nil {
		zap.L().Error("can't get reports summary", zap.Error(err))
		return 0, 0, err
	}
	return count, points, nil
}
