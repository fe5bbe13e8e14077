package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/domain"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/service"
	"github.com/wayfarerhq/wayfarer/pkg/httpx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
	"github.com/wayfarerhq/wayfarer/pkg/waysdk"
)

// InvitationsHandler serves the admin side of the invitation lifecycle.
// The public validate/redeem endpoints live in InvitationsPublicHandler.
type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

// HandleCreate godoc
//
//	@Summary		Create Invitation Endpoint
//	@Description	Issue a single-use invitation covering one or more trips at a role. The raw code is returned exactly once and never stored. Admin only.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		waysdk.InvitationRequest			true	"Invitation"
//	@Success		201		{object}	waysdk.InvitationCreateResponse		"code, invitation"
//	@Failure		400		{object}	waysdk.APIError						"error, message"
//	@Failure		401		{object}	waysdk.APIError						"error, message"
//	@Security		BearerAuth
//	@Router			/v1/invitations [post].
func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrKindUnauthenticated, "authentication required")
		return
	}

	var req waysdk.InvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "invalid JSON body")
		return
	}

	var email *string
	if req.Email != "" {
		email = &req.Email
	}

	code, inv, err := h.InvitationService.CreateInvitation(
		ctx,
		actor.ID,
		domain.Role(req.Role),
		req.TripIDs,
		email,
		time.Duration(req.TTLSeconds)*time.Second,
	)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "unknown role")
		case errors.Is(err, service.ErrInvalidRequest):
			httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "at least one trip id is required")
		default:
			log.Error("failed to create invitation", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "failed to create invitation")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, waysdk.InvitationCreateResponse{
		Code:       code,
		Invitation: toInvitationDTO(inv),
	})
}

// HandleList godoc
//
//	@Summary		List Invitations Endpoint
//	@Description	List every invitation, newest first. Codes are never included. Admin only.
//	@Tags			Invitations
//	@Produce		json
//	@Success		200	{array}		waysdk.Invitation
//	@Failure		401	{object}	waysdk.APIError	"error, message"
//	@Security		BearerAuth
//	@Router			/v1/invitations [get].
func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	invs, err := h.InvitationService.ListInvitations(ctx)
	if err != nil {
		log.Error("failed to list invitations", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "failed to list invitations")
		return
	}

	out := make([]waysdk.Invitation, 0, len(invs))
	for _, inv := range invs {
		out = append(out, toInvitationDTO(inv))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleRevoke godoc
//
//	@Summary		Revoke Invitation Endpoint
//	@Description	Consume an invitation without granting access. The code becomes permanently non-redeemable. Admin only.
//	@Tags			Invitations
//	@Produce		json
//	@Param			id	path	string	true	"Invitation id"
//	@Success		204	"no content"
//	@Failure		404	{object}	waysdk.APIError	"error, message"
//	@Failure		409	{object}	waysdk.APIError	"error, message"
//	@Security		BearerAuth
//	@Router			/v1/invitations/{id} [delete].
func (h *InvitationsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrKindUnauthenticated, "authentication required")
		return
	}

	if err := h.InvitationService.RevokeInvitation(ctx, r.PathValue("id"), actor.ID); err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			// Administrative miss on an explicit id, unrelated to the
			// anti-enumeration rule for trips.
			httpx.WriteError(w, http.StatusNotFound, httpx.ErrKindNotFound, "invitation not found")
		case errors.Is(err, service.ErrInvitationAlreadyUsed):
			httpx.WriteError(w, http.StatusConflict, httpx.ErrKindConflict, "invitation already consumed")
		default:
			log.Error("failed to revoke invitation", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "failed to revoke invitation")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
