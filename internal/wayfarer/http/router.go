package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/wayfarer/service"
	"github.com/wayfarerhq/wayfarer/internal/wayfarer/store"
	"github.com/wayfarerhq/wayfarer/pkg/httpx"
	"github.com/wayfarerhq/wayfarer/pkg/jwtx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"

	_ "github.com/wayfarerhq/wayfarer/api/wayfarer" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	AuthService       *service.AuthService
	BootstrapService  *service.BootstrapService
	TripService       *service.TripService
	GrantService      *service.GrantService
	InvitationService *service.InvitationService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerBootstrap()
	r.registerTrips()
	r.registerGrants()
	r.registerInvitations()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Wayfarer API
//	@version		0.1.0
//	@description	Trip sharing service with invitation-based onboarding. Access to a trip
//	@description	is controlled per user through grants; invitations are single-use codes
//	@description	that fan out into grants when redeemed.
//	@description
//	@description				All access tokens are signed using EdDSA (Ed25519) and can be verified using the JWKS endpoint.
//
//	@contact.name				Wayfarer Team
//	@contact.url				https://github.com/wayfarerhq/wayfarer
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /auth/login - strict rate limit by IP (authentication attempts)
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - strict rate limit by IP (one-time setup endpoint)
	bootstrapHandler := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(bootstrapHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerTrips() {
	h := &TripsHandler{TripService: r.TripService}
	membersHandler := &MembersHandler{GrantService: r.GrantService}

	// Collection routes only need authentication; the list is already
	// scoped to the caller's grants.
	r.Mux.Handle("POST /v1/trips",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.RequireAuth(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /v1/trips",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RequireAuth(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// Single-trip routes resolve access per grant. The role check runs
	// after authentication and must answer a plain 403 for any trip the
	// caller cannot see, whether or not it exists.
	r.Mux.Handle("GET /v1/trips/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RequireAuth(r.verifier),
			RequireViewer(r.store),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("PATCH /v1/trips/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.RequireAuth(r.verifier),
			RequireEditor(r.store),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/trips/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.RequireAuth(r.verifier),
			RequireEditor(r.store),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// Membership management is admin only - moderate rate limit by user
	r.Mux.Handle("GET /v1/trips/{id}/members",
		httpx.Chain(http.HandlerFunc(membersHandler.HandleList),
			httpx.RequireAdmin(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/trips/{id}/members",
		httpx.Chain(http.HandlerFunc(membersHandler.HandleGrant),
			httpx.RequireAdmin(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerGrants() {
	h := &GrantsHandler{GrantService: r.GrantService}

	// Grant mutation is admin only - moderate rate limit by user
	r.Mux.Handle("PATCH /v1/grants/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.RequireAdmin(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/grants/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleRevoke),
			httpx.RequireAdmin(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerInvitations() {
	adminHandler := &InvitationsHandler{InvitationService: r.InvitationService}
	publicHandler := &InvitationsPublicHandler{InvitationService: r.InvitationService}

	// Administration of invitations - admin only, moderate rate limit by user
	r.Mux.Handle("POST /v1/invitations",
		httpx.Chain(http.HandlerFunc(adminHandler.HandleCreate),
			httpx.RequireAdmin(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/invitations",
		httpx.Chain(http.HandlerFunc(adminHandler.HandleList),
			httpx.RequireAdmin(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/invitations/{id}",
		httpx.Chain(http.HandlerFunc(adminHandler.HandleRevoke),
			httpx.RequireAdmin(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /invitations/validate - strict rate limit by IP (code probing surface)
	r.Mux.Handle("POST /v1/invitations/validate",
		httpx.Chain(http.HandlerFunc(publicHandler.HandleValidate),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /invitations/redeem - strict rate limit by IP. Authentication is
	// optional: logged-in users redeem for themselves, anonymous callers
	// register inline.
	r.Mux.Handle("POST /v1/invitations/redeem",
		httpx.Chain(http.HandlerFunc(publicHandler.HandleRedeem),
			httpx.OptionalAuth(r.verifier),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// GET /jwks.json - public endpoint with high limit
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
