package reportservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/revibe-delhi/revibe/internal/domain"
)

type Repo interface {
	Save(ctx context.Context, report *domain.Report) error
	FindByID(ctx context.Context, id int) (*domain.Report, error)
	FindReportsByUserID(ctx context.Context, userID int) ([]domain.Report, error)
	UpdateStatus(ctx context.Context, id int, status string, resolvedAt *time.Time) error
	SummaryByUserID(ctx context.Context, userID int) (int, int64, error)
}

// Ledger awards points when a report reaches the resolved state.
type Ledger interface {
	OnReportResolved(ctx context.Context, report *domain.Report) (*domain.LedgerEvent, error)
}

type Service struct {
	repo   Repo
	ledger Ledger
}

func New(repo Repo, ledger Ledger) *Service {
	return &Service{
		repo:   repo,
		ledger: ledger,
	}
}

const (
	// PendingStatus report submitted, not yet picked up by the civic body.
	PendingStatus string = "pending"
	// InProgressStatus the civic body is working on the report.
	InProgressStatus string = "in-progress"
	// ResolvedStatus the issue is fixed; resolution awards points.
	ResolvedStatus string = "resolved"
)

// Summary aggregates a user's reporting activity.
type Summary struct {
	TotalReports int
	TotalPoints  int64
}

func ValidStatus(status string) bool {
	switch status {
	case PendingStatus, InProgressStatus, ResolvedStatus:
		return true
	}
	return false
}

func (s *Service) CreateReport(ctx context.Context, userID int, title, description, location, imageURL string) (*domain.Report, error) {
	report := &domain.Report{
		UserID:      userID,
		Title:       title,
		Description: description,
		Location:    location,
		ImageURL:    imageURL,
		Status:      PendingStatus,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Save(ctx, report); err != nil {
		zap.L().Error("can't save report", zap.Error(err))
		return nil, err
	}

	return report, nil
}

func (s *Service) GetReports(ctx context.Context, userID int) ([]domain.Report, error) {
	reports, err := s.repo.FindReportsByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get reports", zap.Error(err))
		return nil, err
	}
	return reports, nil
}

func (s *Service) GetReport(ctx context.Context, id int) (*domain.Report, error) {
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrReportNotFound
	}
	return report, nil
}

func (s *Service) GetSummary(ctx context.Context, userID int) (*Summary, error) {
	total, points, err := s.repo.SummaryByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get report summary", zap.Error(err))
		return nil, err
	}
	return &Summary{TotalReports: total, TotalPoints: points}, nil
}

// UpdateStatus moves a report through its lifecycle. Entering the resolved
// state awards points through the ledger; a report that was already awarded
// keeps its status change but earns nothing new. The resolution timestamp is
// set once, on the first transition into resolved, and never cleared.
func (s *Service) UpdateStatus(ctx context.Context, id int, status string) (*domain.Report, error) {
	if !ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, domain.ErrReportNotFound
	}

	var resolvedAt *time.Time
	if status == ResolvedStatus && report.ResolvedAt == nil {
		now := time.Now()
		resolvedAt = &now
	}
	if err := s.repo.UpdateStatus(ctx, id, status, resolvedAt); err != nil {
		zap.L().Error("can't update report status", zap.Int("reportID", id), zap.Error(err))
		return nil, err
	}
	report.Status = status
	if resolvedAt != nil {
		report.ResolvedAt = resolvedAt
	}

	if status == ResolvedStatus {
		if _, err := s.ledger.OnReportResolved(ctx, report); err != nil && !errors.Is(err, domain.ErrAlreadyAwarded) {
			return nil, err
		}
	}

	return report, nil
}
