package notifications

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/revibe-delhi/revibe/internal/domain"
	"github.com/revibe-delhi/revibe/internal/dto"
	"github.com/revibe-delhi/revibe/pkg/auth"
	"github.com/revibe-delhi/revibe/pkg/utils"
)

type Service interface {
	GetNotifications(ctx context.Context, userID int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id int) error
	MarkAllRead(ctx context.Context, userID int) error
}

type NotificationHandler struct {
	notificationService Service
}

func New(notificationService Service) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// GetNotifications godoc
//
//	@Summary		List notifications
//	@Description	Recent notifications for the authenticated user, newest first.
//	@Tags			Notifications
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.NotificationResponseDTO
//	@Success		204	{object}	utils.Response	"No notifications"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/notifications [get]
func (h *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	notifications, err := h.notificationService.GetNotifications(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	if len(notifications) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Notifications not found")
		return
	}

	response := make([]dto.NotificationResponseDTO, len(notifications))
	for i, n := range notifications {
		response[i] = dto.NotificationResponseDTO{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// MarkRead godoc
//
//	@Summary		Mark a notification as read
//	@Tags			Notifications
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int		true	"Notification id"
//	@Success		200	{object}	utils.Response
//	@Failure		400	{object}	utils.Response	"Invalid notification id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid notification id")
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), userID, id); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Notification marked as read"})
}

// MarkAllRead godoc
//
//	@Summary		Mark all notifications as read
//	@Tags			Notifications
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	utils.Response
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	if err := h.notificationService.MarkAllRead(r.Context(), userID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "All notifications marked as read"})
}
