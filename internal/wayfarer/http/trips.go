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

type TripsHandler struct {
	TripService *service.TripService
}

// HandleCreate godoc
//
//	@Summary		Create Trip Endpoint
//	@Description	Create a new trip. A non-admin creator receives an editor grant on the trip in the same transaction.
//	@Tags			Trips
//	@Accept			json
//	@Produce		json
//	@Param			request	body		waysdk.TripRequest	true	"Trip"
//	@Success		201		{object}	waysdk.Trip
//	@Failure		400		{object}	waysdk.APIError	"error, message"
//	@Failure		401		{object}	waysdk.APIError	"error, message"
//	@Security		BearerAuth
//	@Router			/v1/trips [post].
func (h *TripsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrKindUnauthenticated, "authentication required")
		return
	}

	var req waysdk.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "invalid JSON body")
		return
	}

	trip, err := h.TripService.CreateTrip(ctx, id.ID, id.Admin, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "name is required")
			return
		}
		log.Error("failed to create trip", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "failed to create trip")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTripDTO(trip))
}

// HandleList godoc
//
//	@Summary		List Trips Endpoint
//	@Description	List the trips the caller can access: every trip for admins, granted trips for everyone else.
//	@Tags			Trips
//	@Produce		json
//	@Success		200	{array}		waysdk.Trip
//	@Failure		401	{object}	waysdk.APIError	"error, message"
//	@Security		BearerAuth
//	@Router			/v1/trips [get].
func (h *TripsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrKindUnauthenticated, "authentication required")
		return
	}

	trips, err := h.TripService.ListTrips(ctx, id.ID, id.Admin)
	if err != nil {
		log.Error("failed to list trips", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "failed to list trips")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTripDTOs(trips))
}

// HandleGet godoc
//
//	@Summary		Get Trip Endpoint
//	@Description	Fetch one trip. Requires at least a viewer grant or the admin flag.
//	@Tags			Trips
//	@Produce		json
//	@Param			id	path		string	true	"Trip id"
//	@Success		200	{object}	waysdk.Trip
//	@Failure		401	{object}	waysdk.APIError	"error, message"
//	@Failure		403	{object}	waysdk.APIError	"error, message"
//	@Security		BearerAuth
//	@Router			/v1/trips/{id} [get].
func (h *TripsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	trip, err := h.TripService.GetTrip(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrTripNotFound) {
			// Only admins reach this branch: everyone else was already
			// rejected by the grant check, which never leaks existence.
			httpx.WriteError(w, http.StatusNotFound, httpx.ErrKindNotFound, "trip not found")
			return
		}
		log.Error("failed to fetch trip", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "failed to fetch trip")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTripDTO(trip))
}

// HandleUpdate godoc
//
//	@Summary		Update Trip Endpoint
//	@Description	Update a trip's name and description. Requires an editor grant or the admin flag.
//	@Tags			Trips
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Trip id"
//	@Param			request	body		waysdk.TripRequest	true	"Trip"
//	@Success		200		{object}	waysdk.Trip
//	@Failure		400		{object}	waysdk.APIError	"error, message"
//	@Failure		403		{object}	waysdk.APIError	"error, message"
//	@Security		BearerAuth
//	@Router			/v1/trips/{id} [patch].
func (h *TripsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req waysdk.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "invalid JSON body")
		return
	}

	trip, err := h.TripService.UpdateTrip(ctx, r.PathValue("id"), req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "name is required")
		case errors.Is(err, service.ErrTripNotFound):
			httpx.WriteError(w, http.StatusNotFound, httpx.ErrKindNotFound, "trip not found")
		default:
			log.Error("failed to update trip", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "failed to update trip")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTripDTO(trip))
}

// HandleDelete godoc
//
//	@Summary		Delete Trip Endpoint
//	@Description	Delete a trip. Grants and invitation links cascade away. Requires an editor grant or the admin flag.
//	@Tags			Trips
//	@Produce		json
//	@Param			id	path	string	true	"Trip id"
//	@Success		204	"no content"
//	@Failure		403	{object}	waysdk.APIError	"error, message"
//	@Security		BearerAuth
//	@Router			/v1/trips/{id} [delete].
func (h *TripsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := h.TripService.DeleteTrip(ctx, r.PathValue("id")); err != nil {
		if errors.Is(err, service.ErrTripNotFound) {
			httpx.WriteError(w, http.StatusNotFound, httpx.ErrKindNotFound, "trip not found")
			return
		}
		log.Error("failed to delete trip", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "failed to delete trip")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
