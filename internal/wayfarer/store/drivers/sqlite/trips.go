package sqlite

import (
	"context"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/domain"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store"
)

type tripsRepo struct {
	db dbtx
}

const tripColumns = `id, name, description, created_by, created_at, updated_at`

func scanTrip(row interface{ Scan(...any) error }) (domain.Trip, error) {
	var t domain.Trip
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return domain.Trip{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tripsRepo) GetTripByID(ctx context.Context, id string) (domain.Trip, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)
	return scanTrip(row)
}

func (r *tripsRepo) ListTripsForUser(ctx context.Context, userID string) ([]domain.Trip, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name, t.description, t.created_by, t.created_at, t.updated_at
		 FROM trips t
		 JOIN trip_grants g ON g.trip_id = t.id
		 WHERE g.user_id = ?
		 ORDER BY t.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (r *tripsRepo) ListAllTrips(ctx context.Context) ([]domain.Trip, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tripColumns+` FROM trips ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (r *tripsRepo) CreateTrip(ctx context.Context, t domain.Trip) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO trips (id, name, description, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Description, t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *tripsRepo) UpdateTrip(ctx context.Context, id, name, description string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE trips SET name = ?, description = ?, updated_at = ? WHERE id = ?`,
		name, description, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *tripsRepo) DeleteTrip(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
