package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type RewardsResponseDTO struct {
	Balance       int64           `json:"balance" example:"600"`
	RedeemedTotal int64           `json:"redeemed_total" example:"500"`
	Worth         decimal.Decimal `json:"worth" example:"6"`
	Badges        []string        `json:"badges" example:"tier-500"`
	NextMilestone int64           `json:"next_milestone" example:"1000"`
	Progress      float64         `json:"progress" example:"20"`
	MinRedeemable int64           `json:"min_redeemable" example:"500"`
}

type LedgerEventResponseDTO struct {
	Delta     int64     `json:"delta" example:"10"`
	Reason    string    `json:"reason" example:"report-resolved"`
	Balance   int64     `json:"balance" example:"610"`
	CreatedAt time.Time `json:"created_at" example:"2025-11-09T16:09:57+05:30"`
}

type RedeemRequestDTO struct {
	Points int64  `json:"points" validate:"required,gt=0" example:"500"`
	UPIID  string `json:"upi_id" validate:"required" example:"priya.sharma@okaxis"`
}

type RedemptionResponseDTO struct {
	ID          int             `json:"id" example:"7"`
	Points      int64           `json:"points" example:"500"`
	Amount      decimal.Decimal `json:"amount" example:"5"`
	UPIID       string          `json:"upi_id" example:"priya.sharma@okaxis"`
	Reference   string          `json:"reference" example:"6c1f3f64-9e2a-4b7e-9a57-0a6f0e3d9b1c"`
	Status      string          `json:"status" example:"pending"`
	CreatedAt   time.Time       `json:"created_at" example:"2025-11-09T16:09:57+05:30"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty" example:"2025-11-10T09:00:00+05:30"`
}
