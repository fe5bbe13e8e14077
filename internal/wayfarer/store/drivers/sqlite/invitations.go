package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/domain"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store"
)

type invitationsRepo struct {
	db dbtx
}

const invitationColumns = `id, code_hash, created_by, email, role, expires_at, used_at, used_by, created_at, updated_at`

func scanInvitation(row interface{ Scan(...any) error }) (domain.Invitation, error) {
	var (
		inv    domain.Invitation
		email  sql.NullString
		usedAt sql.NullTime
		usedBy sql.NullString
	)
	err := row.Scan(
		&inv.ID,
		&inv.CodeHash,
		&inv.CreatedBy,
		&email,
		&inv.Role,
		&inv.ExpiresAt,
		&usedAt,
		&usedBy,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	inv.Email = mapNullString(email)
	inv.UsedAt = mapNullTime(usedAt)
	inv.UsedBy = mapNullString(usedBy)
	return inv, nil
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invitations (id, code_hash, created_by, email, role, expires_at, used_at, used_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, NULL, NULL, ?, ?)`,
		inv.ID, inv.CodeHash, inv.CreatedBy, mapOptionalString(inv.Email),
		inv.Role, inv.ExpiresAt, inv.CreatedAt, inv.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) AddTripLink(ctx context.Context, invitationID, tripID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invitation_trips (invitation_id, trip_id) VALUES (?, ?)`,
		invitationID, tripID,
	)
	return mapConstraint(err)
}

func (r *invitationsRepo) GetInvitationByCodeHash(ctx context.Context, hash string) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE code_hash = ?`, hash)
	return scanInvitation(row)
}

func (r *invitationsRepo) GetInvitationByID(ctx context.Context, id string) (domain.Invitation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id)
	return scanInvitation(row)
}

func (r *invitationsRepo) ListTripIDs(ctx context.Context, invitationID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT trip_id FROM invitation_trips WHERE invitation_id = ? ORDER BY trip_id`,
		invitationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *invitationsRepo) ListInvitations(ctx context.Context) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+invitationColumns+` FROM invitations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invs []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

func (r *invitationsRepo) MarkInvitationUsed(ctx context.Context, invitationID, usedByUserID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invitations
		 SET used_at = ?, used_by = ?, updated_at = ?
		 WHERE id = ? AND used_at IS NULL`,
		at, usedByUserID, at, invitationID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	// Zero rows means the invitation does not exist or another redemption got
	// there first. Either way the caller must not grant access.
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitationsRepo) DeleteInvitationsExpiredBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM invitations WHERE expires_at < ? AND used_at IS NULL`, cutoff)
	return err
}
