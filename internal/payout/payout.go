package payout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/revibe-delhi/revibe/internal/config"
	"github.com/revibe-delhi/revibe/internal/domain"
	"github.com/revibe-delhi/revibe/internal/service/ledgerservice"
	"github.com/revibe-delhi/revibe/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

// Gateway transfer states.
const (
	TransferCompleted = "completed"
	TransferFailed    = "failed"
	TransferPending   = "pending"
)

var processingPayouts sync.Map

type Request struct {
	Reference string          `json:"reference"`
	UPIID     string          `json:"upi_id"`
	Amount    decimal.Decimal `json:"amount"`
}

type Response struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

type Repo interface {
	FindForProcessing(ctx context.Context, limit uint32) ([]domain.RedemptionRequest, error)
}

// Ledger owns redemption state transitions and the compensation that a
// failed transfer triggers.
type Ledger interface {
	MarkProcessing(ctx context.Context, id int) (bool, error)
	CompleteRedemption(ctx context.Context, id int) error
	FailRedemption(ctx context.Context, id int) error
}

type Service struct {
	url            string
	redemptionRepo Repo
	ledger         Ledger
	client         clients.HTTPClientI
	limit          uint32
	workerPool     WorkerPoolI
	updateInterval time.Duration
}

func New(cfg *config.Config, redemptionRepo Repo, ledger Ledger, client clients.HTTPClientI) *Service {
	return &Service{
		url:            cfg.PayoutAddress,
		redemptionRepo: redemptionRepo,
		ledger:         ledger,
		client:         client,
		limit:          1000,
		workerPool:     NewWorkerPool(10),
		updateInterval: time.Second * 5,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Payout service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()
	defer s.workerPool.Close()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping service")
			return
		case <-ticker.C:
			s.processRedemptions(ctx)
		}
	}
}

func (s *Service) processRedemptions(ctx context.Context) {
	redemptions, err := s.redemptionRepo.FindForProcessing(ctx, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch redemptions for processing", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, redemption := range redemptions {
		redemption := redemption

		if _, loaded := processingPayouts.LoadOrStore(redemption.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer processingPayouts.Delete(redemption.ID)
				return s.handleRedemption(ctx, redemption)
			})
			if err != nil {
				processingPayouts.Delete(redemption.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error processing redemptions", zap.Error(err))
	}
}

func (s *Service) handleRedemption(ctx context.Context, redemption domain.RedemptionRequest) error {
	if redemption.Status == ledgerservice.RedemptionPending {
		claimed, err := s.ledger.MarkProcessing(ctx, redemption.ID)
		if err != nil {
			return fmt.Errorf("failed to claim redemption %d: %w", redemption.ID, err)
		}
		if !claimed {
			return nil
		}
	}

	body, err := json.Marshal(Request{
		Reference: redemption.Reference.String(),
		UPIID:     redemption.UPIID,
		Amount:    redemption.Amount,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal payout request: %w", err)
	}

	url := s.url + "/api/payouts"
	var statusCode int
	var respBody []byte
	var respHeaders http.Header

	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			statusCode, respBody, respHeaders, err = s.client.Post(url, nil, body)
			if err != nil {
				if attempt < maxRetries {
					retryAfter := retryInterval * time.Duration(attempt)
					time.Sleep(retryAfter)
					continue
				}
				return fmt.Errorf("failed to reach payout gateway for redemption %d after %d retries: %w", redemption.ID, maxRetries, err)
			}

			switch {
			case statusCode == http.StatusTooManyRequests:
				if attempt < maxRetries {
					s.waitRateLimit(redemption, respHeaders, attempt)
					continue
				}
				return fmt.Errorf("payout gateway rate limited redemption %d after %d retries", redemption.ID, maxRetries)

			case statusCode == http.StatusOK || statusCode == http.StatusAccepted:
				return s.processTransfer(ctx, redemption, respBody)

			case statusCode >= http.StatusInternalServerError:
				zap.L().Warn("Payout gateway error, retrying", zap.Int("status", statusCode), zap.Int("redemptionID", redemption.ID), zap.Int("attempt", attempt))
				if attempt < maxRetries {
					time.Sleep(retryInterval * time.Duration(attempt))
					continue
				}
				return fmt.Errorf("payout gateway kept failing for redemption %d", redemption.ID)

			default:
				// The gateway rejected the transfer outright; give the points back.
				zap.L().Error("Payout rejected", zap.Int("status", statusCode), zap.Int("redemptionID", redemption.ID))
				return s.ledger.FailRedemption(ctx, redemption.ID)
			}
		}
	}
	return nil
}

func (s *Service) processTransfer(ctx context.Context, redemption domain.RedemptionRequest, respBody []byte) error {
	var response Response
	if err := json.Unmarshal(respBody, &response); err != nil {
		return fmt.Errorf("failed to parse gateway response: %w", err)
	}

	if response.Reference != redemption.Reference.String() {
		return fmt.Errorf("reference mismatch: expected %s, got %s", redemption.Reference, response.Reference)
	}

	switch response.Status {
	case TransferCompleted:
		if err := s.ledger.CompleteRedemption(ctx, redemption.ID); err != nil {
			return fmt.Errorf("failed to complete redemption %d: %w", redemption.ID, err)
		}
	case TransferFailed:
		if err := s.ledger.FailRedemption(ctx, redemption.ID); err != nil {
			return fmt.Errorf("failed to roll back redemption %d: %w", redemption.ID, err)
		}
	case TransferPending:
		zap.L().Info("Transfer still pending, will check next cycle", zap.Int("redemptionID", redemption.ID))
	default:
		zap.L().Warn("Unrecognized transfer status", zap.Int("redemptionID", redemption.ID), zap.String("status", response.Status))
		return errors.New("unrecognized transfer status")
	}
	return nil
}

func (s *Service) waitRateLimit(redemption domain.RedemptionRequest, respHeaders http.Header, attempt int) {
	retryAfterHeader := respHeaders.Get("Retry-After")
	retryAfter := retryInterval * time.Duration(attempt)

	if retryAfterHeader != "" {
		if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	zap.L().Warn(
		"Rate limit detected, retrying",
		zap.Int("redemptionID", redemption.ID),
		zap.Int("attempt", attempt),
		zap.Duration("retryAfter", retryAfter),
	)
	time.Sleep(retryAfter)
}
