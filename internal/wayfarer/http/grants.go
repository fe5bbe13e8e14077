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

type GrantsHandler struct {
	GrantService *service.GrantService
}

// HandleUpdate godoc
//
//	@Summary		Update Grant Role Endpoint
//	@Description	Change the role on an existing grant. Admin only.
//	@Tags			Grants
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Grant id"
//	@Param			request	body		waysdk.GrantUpdateRequest	true	"New role"
//	@Success		200		{object}	waysdk.Grant
//	@Failure		400		{object}	waysdk.APIError	"error, message"
//	@Failure		404		{object}	waysdk.APIError	"error, message"
//	@Security		BearerAuth
//	@Router			/v1/grants/{id} [patch].
func (h *GrantsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req waysdk.GrantUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "invalid JSON body")
		return
	}

	grant, err := h.GrantService.UpdateRole(ctx, r.PathValue("id"), domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "unknown role")
		case errors.Is(err, service.ErrGrantNotFound):
			httpx.WriteError(w, http.StatusNotFound, httpx.ErrKindNotFound, "grant not found")
		default:
			log.Error("failed to update grant", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "failed to update grant")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toGrantDTO(grant))
}

// HandleRevoke godoc
//
//	@Summary		Revoke Grant Endpoint
//	@Description	Remove a grant. The next access check for that user and trip denies. Admin only.
//	@Tags			Grants
//	@Produce		json
//	@Param			id	path	string	true	"Grant id"
//	@Success		204	"no content"
//	@Failure		404	{object}	waysdk.APIError	"error, message"
//	@Security		BearerAuth
//	@Router			/v1/grants/{id} [delete].
func (h *GrantsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.GrantService.Revoke(ctx, r.PathValue("id")); err != nil {
		if errors.Is(err, service.ErrGrantNotFound) {
			httpx.WriteError(w, http.StatusNotFound, httpx.ErrKindNotFound, "grant not found")
			return
		}
		log.Error("failed to revoke grant", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "failed to revoke grant")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
