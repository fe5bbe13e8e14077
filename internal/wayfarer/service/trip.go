package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/domain"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store"
	"github.com/wayfarerhq/wayfarer/pkg/idx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
)

var (
	ErrTripNotFound   = errors.New("trip not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// TripService owns the trip records at their boundary. Authorization happens
// in the HTTP middleware before any of these methods run; the service never
// reveals trip existence on its own.
type TripService struct {
	Store store.Store
}

// CreateTrip inserts a new trip. A non-admin creator receives an editor grant
// in the same transaction so the trip is immediately usable; admins need no
// grant row because their access is derived from the admin flag.
func (s *TripService) CreateTrip(
	ctx context.Context,
	creatorID string,
	creatorIsAdmin bool,
	name, description string,
) (domain.Trip, error) {
	log := slogx.FromContext(ctx)

	if name == "" {
		return domain.Trip{}, ErrInvalidRequest
	}

	now := time.Now().UTC()
	trip := domain.Trip{
		ID:          idx.New().String(),
		Name:        name,
		Description: description,
		CreatedBy:   creatorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Trips().CreateTrip(ctx, trip); err != nil {
			return err
		}
		if creatorIsAdmin {
			return nil
		}
		return tx.Grants().CreateGrant(ctx, domain.TripGrant{
			ID:        idx.New().String(),
			UserID:    creatorID,
			TripID:    trip.ID,
			Role:      domain.RoleEditor,
			GrantedBy: creatorID,
			GrantedAt: now,
		})
	})
	if err != nil {
		log.Error("failed to create trip", slog.Any("error", err))
		return domain.Trip{}, err
	}

	log.Info("trip created",
		slog.String("trip_id", trip.ID),
		slog.String("created_by", creatorID),
	)
	return trip, nil
}

func (s *TripService) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	trip, err := s.Store.Trips().GetTripByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Trip{}, ErrTripNotFound
		}
		return domain.Trip{}, err
	}
	return trip, nil
}

// ListTrips returns the trips the caller can see: every trip for admins, the
// granted ones for everyone else.
func (s *TripService) ListTrips(ctx context.Context, userID string, isAdmin bool) ([]domain.Trip, error) {
	if isAdmin {
		return s.Store.Trips().ListAllTrips(ctx)
	}
	return s.Store.Trips().ListTripsForUser(ctx, userID)
}

func (s *TripService) UpdateTrip(ctx context.Context, id, name, description string) (domain.Trip, error) {
	log := slogx.FromContext(ctx)

	if name == "" {
		return domain.Trip{}, ErrInvalidRequest
	}

	if err := s.Store.Trips().UpdateTrip(ctx, id, name, description); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Trip{}, ErrTripNotFound
		}
		log.Error("failed to update trip", slog.String("trip_id", id), slog.Any("error", err))
		return domain.Trip{}, err
	}

	return s.GetTrip(ctx, id)
}

// DeleteTrip removes the trip; grants and invitation links cascade away with
// it at the schema level.
func (s *TripService) DeleteTrip(ctx context.Context, id string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Trips().DeleteTrip(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTripNotFound
		}
		log.Error("failed to delete trip", slog.String("trip_id", id), slog.Any("error", err))
		return err
	}

	log.Info("trip deleted", slog.String("trip_id", id))
	return nil
}
