package dto

import "time"

type NotificationResponseDTO struct {
	ID        int       `json:"id" example:"12"`
	Title     string    `json:"title" example:"Points earned!"`
	Message   string    `json:"message" example:"Your report \"Overflowing bin\" was resolved. +10 points added to your balance."`
	Type      string    `json:"type" example:"points"`
	IsRead    bool      `json:"is_read" example:"false"`
	CreatedAt time.Time `json:"created_at" example:"2025-11-09T16:09:57+05:30"`
}
