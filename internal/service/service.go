package service

import (
	"github.com/revibe-delhi/revibe/internal/handlers/auth"
	"github.com/revibe-delhi/revibe/internal/handlers/notifications"
	"github.com/revibe-delhi/revibe/internal/handlers/reports"

	pkgauth "github.com/revibe-delhi/revibe/pkg/auth"

	"github.com/revibe-delhi/revibe/internal/pg"
	"github.com/revibe-delhi/revibe/internal/repo"
	authservice "github.com/revibe-delhi/revibe/internal/service/authservice"
	ledgerservice "github.com/revibe-delhi/revibe/internal/service/ledgerservice"
	notificationservice "github.com/revibe-delhi/revibe/internal/service/notificationservice"
	reportservice "github.com/revibe-delhi/revibe/internal/service/reportservice"
	"github.com/revibe-delhi/revibe/internal/tier"
)

// Services wires the service layer together. LedgerService stays concrete
// because the rewards handlers and the payout worker consume different
// slices of it.
type Services struct {
	AuthService         auth.Service
	ReportService       reports.Service
	LedgerService       *ledgerservice.Service
	NotificationService notifications.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, tiers tier.Table) *Services {
	ledgerService := ledgerservice.New(repo.BalanceRepo, repo.AwardRepo, repo.RedemptionRepo, repo.NotificationRepo, txManager, tiers)
	reportService := reportservice.New(repo.ReportRepo, ledgerService)
	authService := authservice.New(repo.UserRepo, ledgerService, &pkgauth.HashService{}, &pkgauth.JWTService{})
	notificationService := notificationservice.New(repo.NotificationFeed)

	return &Services{
		AuthService:         authService,
		ReportService:       reportService,
		LedgerService:       ledgerService,
		NotificationService: notificationService,
	}
}
