package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type Report struct {
	ID            int        `db:"id"`
	UserID        int        `db:"user_id"`
	Title         string     `db:"title"`
	Description   string     `db:"description"`
	Location      string     `db:"location"`
	ImageURL      string     `db:"image_url"`
	Status        string     `db:"status"`
	PointsAwarded int64      `db:"points_awarded"`
	CreatedAt     time.Time  `db:"created_at"`
	ResolvedAt    *time.Time `db:"resolved_at"`
}

type Balance struct {
	ID            int   `db:"id"`
	UserID        int   `db:"user_id"`
	Points        int64 `db:"points"`
	RedeemedTotal int64 `db:"redeemed_total"`
	Version       int64 `db:"version"`
}

// LedgerEvent is an append-only record of a single balance change. Balance
// holds the post-apply balance so the event stream is auditable on its own.
type LedgerEvent struct {
	ID           int64     `db:"id"`
	UserID       int       `db:"user_id"`
	Delta        int64     `db:"delta"`
	Reason       string    `db:"reason"`
	Balance      int64     `db:"balance"`
	ReportID     *int      `db:"report_id"`
	RedemptionID *int      `db:"redemption_id"`
	CreatedAt    time.Time `db:"created_at"`
}

type RedemptionRequest struct {
	ID          int             `db:"id"`
	UserID      int             `db:"user_id"`
	Points      int64           `db:"points"`
	Amount      decimal.Decimal `db:"amount"`
	UPIID       string          `db:"upi_id"`
	Reference   uuid.UUID       `db:"reference"`
	Status      string          `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
	ProcessedAt *time.Time      `db:"processed_at"`
}

type Notification struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	Type      string    `db:"type"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}
