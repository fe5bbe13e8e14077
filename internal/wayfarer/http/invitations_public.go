package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/service"
	"github.com/wayfarerhq/wayfarer/pkg/httpx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
	"github.com/wayfarerhq/wayfarer/pkg/waysdk"
)

// InvitationsPublicHandler serves the invitee-facing lifecycle operations.
type InvitationsPublicHandler struct {
	InvitationService *service.InvitationService
}

// HandleValidate godoc
//
//	@Summary		Validate Invitation Endpoint
//	@Description	Check whether an invitation code is redeemable. The response deliberately distinguishes not_found, already_used and expired.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		waysdk.ValidateInvitationRequest	true	"Code"
//	@Success		200		{object}	waysdk.ValidateInvitationResponse	"valid, reason, role, trip_ids"
//	@Failure		400		{object}	waysdk.APIError						"error, message"
//	@Router			/v1/invitations/validate [post].
func (h *InvitationsPublicHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req waysdk.ValidateInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "invalid JSON body")
		return
	}
	if req.Code == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "code is required")
		return
	}

	v, err := h.InvitationService.ValidateInvitation(ctx, req.Code)
	if err != nil {
		log.Error("failed to validate invitation", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "failed to validate invitation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, waysdk.ValidateInvitationResponse{
		Valid:   v.Valid,
		Reason:  v.Reason,
		Role:    string(v.Role),
		TripIDs: v.TripIDs,
	})
}

// HandleRedeem godoc
//
//	@Summary		Redeem Invitation Endpoint
//	@Description	Consume an invitation exactly once, fanning out into one access grant per linked trip.
//	@Description	Authenticated callers redeem for themselves; anonymous callers must supply email, name and password and are registered in the same transaction.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		waysdk.RedeemInvitationRequest	true	"Redemption"
//	@Success		200		{object}	waysdk.RedeemInvitationResponse	"user, grants"
//	@Failure		400		{object}	waysdk.APIError					"error, message"
//	@Failure		401		{object}	waysdk.APIError					"error, message"
//	@Failure		409		{object}	waysdk.APIError					"error, message"
//	@Failure		410		{object}	waysdk.APIError					"error, message"
//	@Security		BearerAuth
//	@Router			/v1/invitations/redeem [post].
func (h *InvitationsPublicHandler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req waysdk.RedeemInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "invalid JSON body")
		return
	}
	if req.Code == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "code is required")
		return
	}

	if id, ok := httpx.IdentityFromContext(ctx); ok {
		grants, err := h.InvitationService.RedeemInvitation(ctx, req.Code, id.ID)
		if err != nil {
			writeRedemptionError(w, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, waysdk.RedeemInvitationResponse{
			User:   waysdk.User{ID: id.ID, Email: id.Email, Name: id.Name, IsAdmin: id.Admin},
			Grants: toGrantDTOs(grants),
		})
		return
	}

	// Anonymous redemption registers the account in the same transaction.
	if req.Email == "" || req.Name == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation,
			"email, name and password are required to register while redeeming")
		return
	}

	user, grants, err := h.InvitationService.RegisterAndRedeem(ctx, req.Code, req.Email, req.Name, req.Password)
	if err != nil {
		writeRedemptionError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, waysdk.RedeemInvitationResponse{
		User:   toUserDTO(user),
		Grants: toGrantDTOs(grants),
	})
}

// writeRedemptionError maps redemption failures onto the invitation-specific
// error kinds. Unlike trip access checks these are distinguishable on
// purpose.
func writeRedemptionError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvitationNotFound):
		httpx.WriteError(w, http.StatusNotFound, httpx.ErrKindInvitationNotFound, "invitation not found")
	case errors.Is(err, service.ErrInvitationExpired):
		httpx.WriteError(w, http.StatusGone, httpx.ErrKindInvitationExpired, "invitation has expired")
	case errors.Is(err, service.ErrInvitationAlreadyUsed):
		httpx.WriteError(w, http.StatusConflict, httpx.ErrKindInvitationAlreadyUsed, "invitation has already been used")
	case errors.Is(err, service.ErrEmailAlreadyTaken):
		httpx.WriteError(w, http.StatusConflict, httpx.ErrKindConflict, "email already registered")
	case errors.Is(err, service.ErrInvalidRequest):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "invalid redemption request")
	default:
		log.Error("failed to redeem invitation", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "failed to redeem invitation")
	}
}
