package rewards

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/revibe-delhi/revibe/internal/domain"
	"github.com/revibe-delhi/revibe/internal/dto"
	"github.com/revibe-delhi/revibe/internal/service/ledgerservice"
	"github.com/revibe-delhi/revibe/pkg/auth"
	"github.com/revibe-delhi/revibe/pkg/utils"
)

type Service interface {
	GetRewards(ctx context.Context, userID int) (*ledgerservice.Rewards, error)
	GetEvents(ctx context.Context, userID int) ([]domain.LedgerEvent, error)
	RequestRedemption(ctx context.Context, userID int, points int64, upiID string) (*domain.RedemptionRequest, error)
	GetRedemptions(ctx context.Context, userID int) ([]domain.RedemptionRequest, error)
}

type RewardsHandler struct {
	ledgerService Service
	validate      *validator.Validate
}

func New(ledgerService Service) *RewardsHandler {
	return &RewardsHandler{
		ledgerService: ledgerService,
		validate:      validator.New(),
	}
}

// GetRewards godoc
//
//	@Summary		Get the rewards card
//	@Description	Current points balance, rupee worth, unlocked badges and milestone progress for the authenticated user.
//	@Tags			Rewards
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.RewardsResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/rewards [get]
func (h *RewardsHandler) GetRewards(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	rewards, err := h.ledgerService.GetRewards(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.RewardsResponseDTO{
		Balance:       rewards.Balance,
		RedeemedTotal: rewards.RedeemedTotal,
		Worth:         rewards.Worth,
		Badges:        rewards.Badges,
		NextMilestone: rewards.NextMilestone,
		Progress:      rewards.Progress,
		MinRedeemable: rewards.MinRedeemable,
	})
}

// GetHistory godoc
//
//	@Summary		Get points history
//	@Description	Ledger of balance changes for the authenticated user, newest first. Each entry carries the balance after it was applied.
//	@Tags			Rewards
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.LedgerEventResponseDTO
//	@Success		204	{object}	utils.Response	"No points activity yet"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/rewards/history [get]
func (h *RewardsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	events, err := h.ledgerService.GetEvents(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch points history")
		return
	}
	if len(events) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "No points activity")
		return
	}

	response := make([]dto.LedgerEventResponseDTO, len(events))
	for i, event := range events {
		response[i] = dto.LedgerEventResponseDTO{
			Delta:     event.Delta,
			Reason:    event.Reason,
			Balance:   event.Balance,
			CreatedAt: event.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Redeem godoc
//
//	@Summary		Redeem points for a UPI payout
//	@Description	Convert a published points tier into rupees sent to a UPI ID. Points are deducted when the request is accepted.
//	@Tags			Rewards
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RedeemRequestDTO	true	"Redemption payload"
//	@Success		202		{object}	dto.RedemptionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		422		{object}	utils.Response	"Invalid UPI ID or points tier"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/rewards/redeem [post]
func (h *RewardsHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	var req dto.RedeemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	redemption, err := h.ledgerService.RequestRedemption(r.Context(), userID, req.Points, req.UPIID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDestination):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid UPI ID")
		case errors.Is(err, domain.ErrInvalidTier):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, "Points do not match a redemption tier")
		case errors.Is(err, domain.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, "Insufficient balance")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, toRedemptionDTO(redemption))
}

// GetRedemptions godoc
//
//	@Summary		Get redemption history
//	@Description	All redemption requests of the authenticated user with their payout status, newest first.
//	@Tags			Rewards
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.RedemptionResponseDTO
//	@Success		204	{object}	utils.Response	"No redemptions yet"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/redemptions [get]
func (h *RewardsHandler) GetRedemptions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value(auth.UserIDKey).(int)

	redemptions, err := h.ledgerService.GetRedemptions(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch redemptions")
		return
	}
	if len(redemptions) == 0 {
		utils.RespondWithError(w, http.StatusNoContent, "Redemptions not found")
		return
	}

	response := make([]dto.RedemptionResponseDTO, len(redemptions))
	for i := range redemptions {
		response[i] = toRedemptionDTO(&redemptions[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toRedemptionDTO(redemption *domain.RedemptionRequest) dto.RedemptionResponseDTO {
	return dto.RedemptionResponseDTO{
		ID:          redemption.ID,
		Points:      redemption.Points,
		Amount:      redemption.Amount,
		UPIID:       redemption.UPIID,
		Reference:   redemption.Reference.String(),
		Status:      redemption.Status,
		CreatedAt:   redemption.CreatedAt,
		ProcessedAt: redemption.ProcessedAt,
	}
}
