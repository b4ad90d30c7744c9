package dto

import "time"

type CreateReportRequestDTO struct {
	Title       string `json:"title" validate:"required,min=3,max=200" example:"Overflowing bin"`
	Description string `json:"description" validate:"required,max=2000" example:"Bin at the market corner has not been cleared for a week"`
	Location    string `json:"location" validate:"required,max=500" example:"Lajpat Nagar II, New Delhi"`
	ImageURL    string `json:"image_url" validate:"omitempty,url" example:"https://img.example/bin.jpg"`
}

type ReportResponseDTO struct {
	ID            int        `json:"id" example:"42"`
	Title         string     `json:"title" example:"Overflowing bin"`
	Description   string     `json:"description" example:"Bin at the market corner has not been cleared for a week"`
	Location      string     `json:"location" example:"Lajpat Nagar II, New Delhi"`
	ImageURL      string     `json:"image_url,omitempty" example:"https://img.example/bin.jpg"`
	Status        string     `json:"status" example:"pending"`
	PointsAwarded int64      `json:"points_awarded" example:"10"`
	CreatedAt     time.Time  `json:"created_at" example:"2025-11-09T16:09:57+05:30"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty" example:"2025-11-12T10:30:00+05:30"`
}

type UpdateReportStatusRequestDTO struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress resolved" example:"resolved"`
}

type ReportSummaryResponseDTO struct {
	TotalReports int   `json:"total_reports" example:"7"`
	TotalPoints  int64 `json:"total_points" example:"30"`
}
