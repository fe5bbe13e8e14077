package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/service"
	"github.com/wayfarerhq/wayfarer/pkg/httpx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
	"github.com/wayfarerhq/wayfarer/pkg/waysdk"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP godoc
//
//	@Summary		Bootstrap Endpoint
//	@Description	One-time creation of the first admin account. Gated by the configured bootstrap token and an empty user table.
//	@Tags			System
//	@Accept			json
//	@Produce		json
//	@Param			request	body		waysdk.BootstrapRequest		true	"Bootstrap request"
//	@Success		201		{object}	waysdk.BootstrapResponse	"user"
//	@Failure		400		{object}	waysdk.APIError				"error, message"
//	@Failure		403		{object}	waysdk.APIError				"error, message"
//	@Failure		409		{object}	waysdk.APIError				"error, message"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req waysdk.BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "invalid JSON body")
		return
	}
	if req.Email == "" || req.Name == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "email, name and password are required")
		return
	}

	admin, err := h.BootstrapService.Bootstrap(ctx, req.Token, req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapAlready):
			httpx.WriteError(w, http.StatusConflict, httpx.ErrKindConflict, "system already bootstrapped")
		case errors.Is(err, service.ErrBootstrapUnauthorized):
			httpx.WriteError(w, http.StatusForbidden, httpx.ErrKindForbidden, "invalid bootstrap token")
		default:
			log.Error("bootstrap failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "bootstrap failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, waysdk.BootstrapResponse{User: toUserDTO(admin)})
}
