package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/domain"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/service"
	"github.com/wayfarerhq/wayfarer/pkg/httpx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
	"github.com/wayfarerhq/wayfarer/pkg/waysdk"
)

type MembersHandler struct {
	GrantService *service.GrantService
}

// HandleList godoc
//
//	@Summary		List Trip Members Endpoint
//	@Description	List every grant on a trip joined with member info. Admin only.
//	@Tags			Grants
//	@Produce		json
//	@Param			id	path		string	true	"Trip id"
//	@Success		200	{array}		waysdk.Member
//	@Failure		401	{object}	waysdk.APIError	"error, message"
//	@Failure		403	{object}	waysdk.APIError	"error, message"
//	@Security		BearerAuth
//	@Router			/v1/trips/{id}/members [get].
func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	members, err := h.GrantService.ListMembers(ctx, r.PathValue("id"))
	if err != nil {
		log.Error("failed to list members", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "failed to list members")
		return
	}

	out := make([]waysdk.Member, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberDTO(m))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGrant godoc
//
//	@Summary		Grant Access Endpoint
//	@Description	Create an access grant on a trip for a user. A grant for the same user and trip already existing is a conflict. Admin only.
//	@Tags			Grants
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Trip id"
//	@Param			request	body		waysdk.GrantRequest	true	"Grant"
//	@Success		201		{object}	waysdk.Grant
//	@Failure		400		{object}	waysdk.APIError	"error, message"
//	@Failure		404		{object}	waysdk.APIError	"error, message"
//	@Failure		409		{object}	waysdk.APIError	"error, message"
//	@Security		BearerAuth
//	@Router			/v1/trips/{id}/members [post].
func (h *MembersHandler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	actor, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrKindUnauthenticated, "authentication required")
		return
	}

	var req waysdk.GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "invalid JSON body")
		return
	}

	grant, err := h.GrantService.Grant(ctx, req.UserID, r.PathValue("id"), domain.Role(req.Role), actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "unknown role")
		case errors.Is(err, service.ErrUserNotFound):
			httpx.WriteError(w, http.StatusNotFound, httpx.ErrKindNotFound, "user not found")
		case errors.Is(err, service.ErrAdminGrantee):
			httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "admins do not hold grants")
		case errors.Is(err, service.ErrGrantExists):
			httpx.WriteError(w, http.StatusConflict, httpx.ErrKindConflict, "grant already exists for this user and trip")
		default:
			log.Error("failed to create grant", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "failed to create grant")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toGrantDTO(grant))
}
