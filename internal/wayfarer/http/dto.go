package http

import (
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/domain"
	"github.com/wayfarerhq/wayfarer/pkg/waysdk"
)

func toUserDTO(u domain.User) waysdk.User {
	return waysdk.User{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		IsAdmin: u.IsAdmin,
	}
}

func toTripDTO(t domain.Trip) waysdk.Trip {
	return waysdk.Trip{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTripDTOs(trips []domain.Trip) []waysdk.Trip {
	out := make([]waysdk.Trip, 0, len(trips))
	for _, t := range trips {
		out = append(out, toTripDTO(t))
	}
	return out
}

func toGrantDTO(g domain.TripGrant) waysdk.Grant {
	return waysdk.Grant{
		ID:        g.ID,
		UserID:    g.UserID,
		TripID:    g.TripID,
		Role:      string(g.Role),
		GrantedBy: g.GrantedBy,
		GrantedAt: g.GrantedAt,
	}
}

func toGrantDTOs(grants []domain.TripGrant) []waysdk.Grant {
	out := make([]waysdk.Grant, 0, len(grants))
	for _, g := range grants {
		out = append(out, toGrantDTO(g))
	}
	return out
}

func toMemberDTO(m domain.TripMember) waysdk.Member {
	return waysdk.Member{
		Grant:     toGrantDTO(m.TripGrant),
		UserEmail: m.UserEmail,
		UserName:  m.UserName,
	}
}

func toInvitationDTO(inv domain.Invitation) waysdk.Invitation {
	return waysdk.Invitation{
		ID:        inv.ID,
		CreatedBy: inv.CreatedBy,
		Email:     inv.Email,
		Role:      string(inv.Role),
		ExpiresAt: inv.ExpiresAt,
		UsedAt:    inv.UsedAt,
		UsedBy:    inv.UsedBy,
		CreatedAt: inv.CreatedAt,
	}
}
