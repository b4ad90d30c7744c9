package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/revibe-delhi/revibe/internal/domain"
	"github.com/revibe-delhi/revibe/internal/dto"
	"github.com/revibe-delhi/revibe/internal/service/reportservice"
	"github.com/revibe-delhi/revibe/pkg/auth"
	"github.com/revibe-delhi/revibe/pkg/utils"
)

type Service interface {
	CreateReport(ctx context.Context, userID int, title, description, location, imageURL string) (*domain.Report, error)
	GetReports(ctx context.Context, userID int) ([]domain.Report, error)
	GetReport(ctx context.Context, id int) (*domain.Report, error)
	GetSummary(ctx context.Context, userID int) (*reportservice.Summary, error)
	UpdateStatus(ctx context.Context, id int, status string) (*domain.Report, error)
}

type ReportHandler struct {
	reportService Service
	validate      *validator.Validate
}

func New(reportService Service) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		validate:      validator.New(),
	}
}

// AddReport godoc
//
//	@Summary		Submit a garbage report
//	@Description	File a new report about a garbage spot; it starts in the pending state.
//	@Tags			Reports
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateReportRequestDTO	true	"Report payload"
//	@Success		201		{object}	dto.ReportResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/reports [post]
func (h *ReportHandler) AddReport(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.CreateReportRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := h.reportService.CreateReport(r.Context(), userID, req.Title, req.Description, req.Location, req.ImageURL)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toReportDTO(report))
}

// GetReports godoc
//
//	@Summary		List own reports
//	@Description	Get the authenticated user's reports, newest first.
//	@Tags			Reports
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.ReportResponseDTO
//	@Success		204	{object}	utils.Response	"No reports yet"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/reports [get]
func (h *ReportHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	reports, err := h.reportService.GetReports(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch reports")
		return
	}
	if len(reports) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Reports not found")
		return
	}

	response := make([]dto.ReportResponseDTO, len(reports))
	for i := range reports {
		response[i] = toReportDTO(&reports[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetReport godoc
//
//	@Summary		Get a single report
//	@Description	Fetch one of the authenticated user's reports by id.
//	@Tags			Reports
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Report id"
//	@Success		200	{object}	dto.ReportResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Report not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/reports/{id} [get]
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid report id")
		return
	}

	report, err := h.reportService.GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Report not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if report.UserID != userID {
		utils.RespondWithError(w, http.StatusNotFound, "Report not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toReportDTO(report))
}

// GetSummary godoc
//
//	@Summary		Get reporting summary
//	@Description	Aggregate counts of the authenticated user's reports and points earned from them.
//	@Tags			Reports
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.ReportSummaryResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/reports/summary [get]
func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	summary, err := h.reportService.GetSummary(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ReportSummaryResponseDTO{
		TotalReports: summary.TotalReports,
		TotalPoints:  summary.TotalPoints,
	})
}

// UpdateStatus godoc
//
//	@Summary		Move a report through its lifecycle
//	@Description	Update the report status. Entering the resolved state awards points to the reporter exactly once.
//	@Tags			Reports
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Report id"
//	@Param			request	body		dto.UpdateReportStatusRequestDTO	true	"New status"
//	@Success		200		{object}	dto.ReportResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Report not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/reports/{id}/status [patch]
func (h *ReportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid report id")
		return
	}

	var req dto.UpdateReportStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	report, err := h.reportService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrReportNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Report not found")
			return
		}
		if errors.Is(err, domain.ErrInvalidStatus) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toReportDTO(report))
}

func toReportDTO(report *domain.Report) dto.ReportResponseDTO {
	return dto.ReportResponseDTO{
		ID:            report.ID,
		Title:         report.Title,
		Description:   report.Description,
		Location:      report.Location,
		ImageURL:      report.ImageURL,
		Status:        report.Status,
		PointsAwarded: report.PointsAwarded,
		CreatedAt:     report.CreatedAt,
		ResolvedAt:    report.ResolvedAt,
	}
}
