package repo

import (
	"github.com/revibe-delhi/revibe/internal/payout"
	"github.com/revibe-delhi/revibe/internal/pg"
	accountrepo "github.com/revibe-delhi/revibe/internal/repo/account-repo"
	ledgerrepo "github.com/revibe-delhi/revibe/internal/repo/ledger-repo"
	notificationrepo "github.com/revibe-delhi/revibe/internal/repo/notification-repo"
	redemptionrepo "github.com/revibe-delhi/revibe/internal/repo/redemption-repo"
	reportrepo "github.com/revibe-delhi/revibe/internal/repo/report-repo"
	"github.com/revibe-delhi/revibe/internal/service/authservice"
	"github.com/revibe-delhi/revibe/internal/service/ledgerservice"
	"github.com/revibe-delhi/revibe/internal/service/notificationservice"
	"github.com/revibe-delhi/revibe/internal/service/reportservice"
)

// Repositories exposes each store through the interface its consumer
// declares. The report and redemption stores back two consumers each:
// the report store also gates awards, the redemption store also feeds
// the payout queue.
type Repositories struct {
	UserRepo         authservice.Repo
	ReportRepo       reportservice.Repo
	AwardRepo        ledgerservice.ReportRepo
	BalanceRepo      ledgerservice.BalanceRepo
	RedemptionRepo   ledgerservice.RedemptionRepo
	PayoutQueue      payout.Repo
	NotificationRepo ledgerservice.NotificationRepo
	NotificationFeed notificationservice.Repo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	userRepo := accountrepo.New(conn)
	reportRepo := reportrepo.New(conn, txManager)
	balanceRepo := ledgerrepo.New(conn, txManager)
	redemptionRepo := redemptionrepo.New(conn)
	notificationRepo := notificationrepo.New(conn)

	return &Repositories{
		UserRepo:         userRepo,
		ReportRepo:       reportRepo,
		AwardRepo:        reportRepo,
		BalanceRepo:      balanceRepo,
		RedemptionRepo:   redemptionRepo,
		PayoutQueue:      redemptionRepo,
		NotificationRepo: notificationRepo,
		NotificationFeed: notificationRepo,
	}
}
