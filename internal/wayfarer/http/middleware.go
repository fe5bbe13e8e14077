package http

import (
	"errors"
	"net/http"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/domain"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store"
	"github.com/wayfarerhq/wayfarer/pkg/httpx"
	"github.com/wayfarerhq/wayfarer/pkg/idx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
)

// TripIDExtractor pulls the target trip id out of a request.
type TripIDExtractor func(*http.Request) string

// PathTripID is the default extractor, reading the {id} path parameter.
func PathTripID(r *http.Request) string {
	return r.PathValue("id")
}

// RequireTripRole authorizes resource-scoped requests. It must run after
// RequireAuth. Resolution order:
//
//  1. admin bypass, checked before any store read
//  2. extract and validate the trip id (malformed ids are a 400)
//  3. exactly one grant lookup for (identity, trip)
//  4. a missing grant denies with Forbidden, indistinguishable from the trip
//     not existing at all
//  5. a present grant must carry a known role satisfying min; anything else
//     denies
//
// The denial in step 4/5 never reveals whether the trip exists.
func RequireTripRole(st store.Store, min domain.Role, extract TripIDExtractor) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			id, ok := httpx.IdentityFromContext(ctx)
			if !ok {
				// Chain misconfiguration; RequireAuth did not run.
				httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrKindUnauthenticated, "authentication required")
				return
			}

			if id.Admin {
				next.ServeHTTP(w, r)
				return
			}

			tripID := extract(r)
			if _, err := idx.Parse(tripID); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, httpx.ErrKindValidation, "malformed trip id")
				return
			}

			grant, err := st.Grants().GetGrantForUserTrip(ctx, id.ID, tripID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					writeAccessDenied(w)
					return
				}
				log.Error("grant lookup failed", "err", err, "trip_id", tripID)
				httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrKindServer, "internal error")
				return
			}

			if !grant.Role.Valid() {
				// Corrupted role data denies, never crashes the request.
				log.Error("grant has unknown role, denying",
					"grant_id", grant.ID,
					"role", string(grant.Role),
				)
				writeAccessDenied(w)
				return
			}

			if !grant.Role.Satisfies(min) {
				writeAccessDenied(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireViewer authorizes requests needing at least viewer access to the
// trip in the {id} path parameter.
func RequireViewer(st store.Store) httpx.Middleware {
	return RequireTripRole(st, domain.RoleViewer, PathTripID)
}

// RequireEditor authorizes requests needing editor access to the trip in the
// {id} path parameter.
func RequireEditor(st store.Store) httpx.Middleware {
	return RequireTripRole(st, domain.RoleEditor, PathTripID)
}

// writeAccessDenied is the single denial response for every resource-access
// failure: no grant, insufficient role, corrupted role, or no such trip.
func writeAccessDenied(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusForbidden, httpx.ErrKindForbidden, "access denied")
}
