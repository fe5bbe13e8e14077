package httpx

import (
	"net/http"
	"strings"

	"github.com/wayfarerhq/wayfarer/pkg/jwtx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
)

const bearerScheme = "bearer "

// extractBearer pulls the token out of the Authorization header. The scheme
// is matched case-insensitively and the value is trimmed. Returns "" when no
// bearer credential is present at all.
func extractBearer(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if len(authz) < len(bearerScheme) || !strings.EqualFold(authz[:len(bearerScheme)], bearerScheme) {
		return ""
	}
	return strings.TrimSpace(authz[len(bearerScheme):])
}

func identityFromClaims(c jwtx.Claims) Identity {
	return Identity{
		ID:    c.Subject,
		Email: c.Email,
		Name:  c.Name,
		Admin: c.Admin,
	}
}

// RequireAuth rejects requests without a valid bearer credential and attaches
// the resolved identity to the request context for downstream stages.
func RequireAuth(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := extractBearer(r)
			if raw == "" {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				// Log the reason and path, never the credential itself.
				log.Warn("bearer verification failed", "err", err, "path", r.URL.Path)
				writeBearerError(w, "token verification failed")
				return
			}

			ctx = ContextWithIdentity(ctx, identityFromClaims(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin behaves like RequireAuth and additionally rejects identities
// without the global admin flag.
func RequireAdmin(v jwtx.Verifier) Middleware {
	authed := RequireAuth(v)
	return func(next http.Handler) http.Handler {
		return authed(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok || !id.Admin {
				WriteError(w, http.StatusForbidden, ErrKindForbidden, "admin access required")
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

// OptionalAuth attaches an identity when a valid bearer credential is
// present and proceeds anonymously when none is. A present-but-invalid
// credential is still an error; it is never silently ignored.
func OptionalAuth(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw := extractBearer(r)
			if raw == "" {
				writeBearerError(w, "unsupported authorization scheme")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("bearer verification failed", "err", err, "path", r.URL.Path)
				writeBearerError(w, "token verification failed")
				return
			}

			ctx = ContextWithIdentity(ctx, identityFromClaims(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth, wrapped in the standard
// error envelope.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, ErrKindUnauthenticated, desc)
}
