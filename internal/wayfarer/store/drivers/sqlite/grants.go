package sqlite

import (
	"context"
	"strings"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/domain"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store"
)

type grantsRepo struct {
	db dbtx
}

const grantColumns = `id, user_id, trip_id, role, granted_by, granted_at`

func scanGrant(row interface{ Scan(...any) error }) (domain.TripGrant, error) {
	var g domain.TripGrant
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.TripID,
		&g.Role,
		&g.GrantedBy,
		&g.GrantedAt,
	)
	if err != nil {
		return domain.TripGrant{}, mapNotFound(err)
	}
	return g, nil
}

func (r *grantsRepo) CreateGrant(ctx context.Context, g domain.TripGrant) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO trip_grants (id, user_id, trip_id, role, granted_by, granted_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.TripID, g.Role, g.GrantedBy, g.GrantedAt,
	)
	return mapConstraint(err)
}

func (r *grantsRepo) UpsertGrant(ctx context.Context, g domain.TripGrant) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO trip_grants (id, user_id, trip_id, role, granted_by, granted_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, trip_id) DO UPDATE SET
		   role = excluded.role,
		   granted_by = excluded.granted_by,
		   granted_at = excluded.granted_at`,
		g.ID, g.UserID, g.TripID, g.Role, g.GrantedBy, g.GrantedAt,
	)
	return err
}

func (r *grantsRepo) GetGrantByID(ctx context.Context, id string) (domain.TripGrant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+grantColumns+` FROM trip_grants WHERE id = ?`, id)
	return scanGrant(row)
}

func (r *grantsRepo) GetGrantForUserTrip(ctx context.Context, userID, tripID string) (domain.TripGrant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+grantColumns+` FROM trip_grants WHERE user_id = ? AND trip_id = ?`,
		userID, tripID)
	return scanGrant(row)
}

func (r *grantsRepo) UpdateGrantRole(ctx context.Context, grantID string, role domain.Role) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE trip_grants SET role = ? WHERE id = ?`, role, grantID)
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

func (r *grantsRepo) DeleteGrant(ctx context.Context, grantID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trip_grants WHERE id = ?`, grantID)
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

func (r *grantsRepo) ListMembersForTrip(ctx context.Context, tripID string) ([]domain.TripMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT g.id, g.user_id, g.trip_id, g.role, g.granted_by, g.granted_at,
		        u.email, u.name
		 FROM trip_grants g
		 JOIN users u ON u.id = g.user_id
		 WHERE g.trip_id = ?
		 ORDER BY g.granted_at ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.TripMember
	for rows.Next() {
		var m domain.TripMember
		err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.TripID,
			&m.Role,
			&m.GrantedBy,
			&m.GrantedAt,
			&m.UserEmail,
			&m.UserName,
		)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *grantsRepo) CountGrantsForTrips(ctx context.Context, tripIDs []string) (int, error) {
	if len(tripIDs) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(tripIDs)), ",")
	args := make([]any, len(tripIDs))
	for i, id := range tripIDs {
		args[i] = id
	}

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM trip_grants WHERE trip_id IN (`+placeholders+`)`,
		args...,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
