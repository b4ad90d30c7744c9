package ledgerservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/revibe-delhi/revibe/internal/domain"
	"github.com/revibe-delhi/revibe/internal/pg"
	"github.com/revibe-delhi/revibe/internal/tier"
	"github.com/revibe-delhi/revibe/pkg/validate"
)

// PointsPerResolvedReport is the fixed award for every resolved report.
const PointsPerResolvedReport = 10

// PointsPerRupee converts a point balance into its rupee worth.
const PointsPerRupee = 100

// maxApplyAttempts bounds retries of balance writes that lose a race.
const maxApplyAttempts = 3

const (
	ReasonReportResolved = "report-resolved"
	ReasonRedemption     = "redemption"
	ReasonAdjustment     = "adjustment"
)

const (
	RedemptionPending    = "pending"
	RedemptionProcessing = "processing"
	RedemptionCompleted  = "completed"
	RedemptionFailed     = "failed"
)

type BalanceRepo interface {
	CreateBalance(ctx context.Context, userID int) (*domain.Balance, error)
	GetBalance(ctx context.Context, userID int) (*domain.Balance, error)
	Apply(ctx context.Context, event *domain.LedgerEvent) (int64, error)
	EventsByUserID(ctx context.Context, userID int) ([]domain.LedgerEvent, error)
}

type ReportRepo interface {
	MarkAwarded(ctx context.Context, id int, points int64) error
}

type RedemptionRepo interface {
	Create(ctx context.Context, req *domain.RedemptionRequest) (*domain.RedemptionRequest, error)
	FindByID(ctx context.Context, id int) (*domain.RedemptionRequest, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.RedemptionRequest, error)
	UpdateStatus(ctx context.Context, id int, from, to string) (bool, error)
}

type NotificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
}

// Rewards is the derived rewards-card view of a balance. Badges and milestones
// are recomputed on every read, never stored.
type Rewards struct {
	Balance       int64
	RedeemedTotal int64
	Worth         decimal.Decimal
	Badges        []string
	NextMilestone int64
	Progress      float64
	MinRedeemable int64
}

type Service struct {
	balanceRepo      BalanceRepo
	reportRepo       ReportRepo
	redemptionRepo   RedemptionRepo
	notificationRepo NotificationRepo
	txManager        pg.TXManager
	tiers            tier.Table
}

func New(balanceRepo BalanceRepo, reportRepo ReportRepo, redemptionRepo RedemptionRepo, notificationRepo NotificationRepo, txManager pg.TXManager, tiers tier.Table) *Service {
	return &Service{
		balanceRepo:      balanceRepo,
		reportRepo:       reportRepo,
		redemptionRepo:   redemptionRepo,
		notificationRepo: notificationRepo,
		txManager:        txManager,
		tiers:            tiers,
	}
}

func (s *Service) CreateBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	balance, err := s.balanceRepo.CreateBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to create balance", zap.Error(err))
		return nil, err
	}
	return balance, nil
}

func (s *Service) GetRewards(ctx context.Context, userID int) (*Rewards, error) {
	balance, err := s.balanceRepo.GetBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return nil, err
	}

	return &Rewards{
		Balance:       balance.Points,
		RedeemedTotal: balance.RedeemedTotal,
		Worth:         decimal.NewFromInt(balance.Points).Div(decimal.NewFromInt(PointsPerRupee)).Floor(),
		Badges:        s.tiers.Badges(balance.Points),
		NextMilestone: tier.NextMilestone(balance.Points),
		Progress:      tier.MilestoneProgress(balance.Points),
		MinRedeemable: s.tiers.MinPoints(),
	}, nil
}

func (s *Service) GetEvents(ctx context.Context, userID int) ([]domain.LedgerEvent, error) {
	events, err := s.balanceRepo.EventsByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch ledger events", zap.Error(err))
		return nil, err
	}
	return events, nil
}

// OnReportResolved awards points for a report entering the resolved state.
// The award is applied exactly once per report: a second invocation returns
// domain.ErrAlreadyAwarded and emits nothing.
func (s *Service) OnReportResolved(ctx context.Context, report *domain.Report) (*domain.LedgerEvent, error) {
	var event *domain.LedgerEvent

	err := s.withRetry(ctx, func(ctx context.Context) error {
		if err := s.reportRepo.MarkAwarded(ctx, report.ID, PointsPerResolvedReport); err != nil {
			return err
		}

		reportID := report.ID
		event = &domain.LedgerEvent{
			UserID:   report.UserID,
			Delta:    PointsPerResolvedReport,
			Reason:   ReasonReportResolved,
			ReportID: &reportID,
		}
		if _, err := s.balanceRepo.Apply(ctx, event); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrAlreadyAwarded) {
			zap.L().Error("failed to award points for report", zap.Int("reportID", report.ID), zap.Error(err))
		}
		return nil, err
	}

	report.PointsAwarded = PointsPerResolvedReport
	s.emit(ctx, report.UserID, "Points earned!",
		fmt.Sprintf("Your report %q was resolved. +%d points added to your balance.", report.Title, PointsPerResolvedReport),
		"points")
	return event, nil
}

// RequestRedemption validates a redemption against the published tiers and
// the account balance, then atomically decrements the balance and records the
// accepted request. No two concurrent requests can both pass validation
// against the same balance snapshot.
func (s *Service) RequestRedemption(ctx context.Context, userID int, points int64, upiID string) (*domain.RedemptionRequest, error) {
	if !validate.IsUPI(upiID) {
		return nil, domain.ErrInvalidDestination
	}
	amount, ok := s.tiers.Amount(points)
	if !ok {
		return nil, domain.ErrInvalidTier
	}

	var req *domain.RedemptionRequest
	err := s.withRetry(ctx, func(ctx context.Context) error {
		req = &domain.RedemptionRequest{
			UserID:    userID,
			Points:    points,
			Amount:    amount,
			UPIID:     upiID,
			Reference: uuid.New(),
			Status:    RedemptionPending,
		}
		if _, err := s.redemptionRepo.Create(ctx, req); err != nil {
			return err
		}

		redemptionID := req.ID
		event := &domain.LedgerEvent{
			UserID:       userID,
			Delta:        -points,
			Reason:       ReasonRedemption,
			RedemptionID: &redemptionID,
		}
		if _, err := s.balanceRepo.Apply(ctx, event); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			zap.L().Error("failed to accept redemption", zap.Int("userID", userID), zap.Error(err))
		}
		return nil, err
	}

	s.emit(ctx, userID, "Redemption accepted",
		fmt.Sprintf("₹%s will be credited to %s within 24 hours.", req.Amount, req.UPIID),
		"info")
	return req, nil
}

func (s *Service) GetRedemptions(ctx context.Context, userID int) ([]domain.RedemptionRequest, error) {
	requests, err := s.redemptionRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch redemptions", zap.Error(err))
		return nil, err
	}
	return requests, nil
}

// MarkProcessing claims a pending request for payout. It reports false when
// the request was already claimed or finished.
func (s *Service) MarkProcessing(ctx context.Context, id int) (bool, error) {
	return s.redemptionRepo.UpdateStatus(ctx, id, RedemptionPending, RedemptionProcessing)
}

// CompleteRedemption marks a processing request as paid out. The balance was
// already decremented at acceptance, so only the status moves.
func (s *Service) CompleteRedemption(ctx context.Context, id int) error {
	req, err := s.redemptionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrRedemptionNotFound
	}

	moved, err := s.redemptionRepo.UpdateStatus(ctx, id, RedemptionProcessing, RedemptionCompleted)
	if err != nil {
		return err
	}
	if !moved {
		return nil
	}

	s.emit(ctx, req.UserID, "Redemption successful!",
		fmt.Sprintf("₹%s was sent to %s.", req.Amount, req.UPIID),
		"success")
	return nil
}

// FailRedemption handles a downstream payment failure: the request moves to
// failed and a compensating event restores the exact points deducted at
// acceptance. Calling it again for an already failed request is a no-op.
func (s *Service) FailRedemption(ctx context.Context, id int) error {
	req, err := s.redemptionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if req == nil {
		return domain.ErrRedemptionNotFound
	}

	var compensated bool
	err = s.withRetry(ctx, func(ctx context.Context) error {
		compensated = false
		moved, err := s.redemptionRepo.UpdateStatus(ctx, id, RedemptionProcessing, RedemptionFailed)
		if err != nil {
			return err
		}
		if !moved {
			return nil
		}

		redemptionID := req.ID
		event := &domain.LedgerEvent{
			UserID:       req.UserID,
			Delta:        req.Points,
			Reason:       ReasonAdjustment,
			RedemptionID: &redemptionID,
		}
		if _, err := s.balanceRepo.Apply(ctx, event); err != nil {
			return err
		}
		compensated = true
		return nil
	})
	if err != nil {
		zap.L().Error("failed to compensate redemption", zap.Int("redemptionID", id), zap.Error(err))
		return err
	}

	if compensated {
		s.emit(ctx, req.UserID, "Redemption failed",
			fmt.Sprintf("The transfer to %s could not be completed. %d points were returned to your balance.", req.UPIID, req.Points),
			"warning")
	}
	return nil
}

// withRetry runs op in a transaction and retries the whole operation when a
// balance write loses its compare-and-swap or fails to reach durable storage.
// Both leave nothing applied, so rerunning the transaction is safe.
// Business-rule failures are terminal and returned as-is.
func (s *Service) withRetry(ctx context.Context, op pg.TransactionalFn) error {
	var err error
	for attempt := 1; attempt <= maxApplyAttempts; attempt++ {
		err = s.txManager.Begin(ctx, op)
		if !errors.Is(err, domain.ErrConcurrentModification) && !errors.Is(err, domain.ErrPersistenceFailure) {
			return err
		}
		zap.L().Warn("balance write failed, retrying", zap.Int("attempt", attempt), zap.Error(err))
	}
	return err
}

// emit records a notification for a committed ledger change. Delivery is a
// collaborator concern; a failed write is logged and never fails the
// operation that triggered it.
func (s *Service) emit(ctx context.Context, userID int, title, message, category string) {
	n := &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    category,
	}
	if _, err := s.notificationRepo.Create(ctx, n); err != nil {
		zap.L().Error("failed to emit notification", zap.Int("userID", userID), zap.Error(err))
	}
}
