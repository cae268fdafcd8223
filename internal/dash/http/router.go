package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lakemont/crmdash/internal/dash/crm"
	"github.com/lakemont/crmdash/internal/dash/service"
	"github.com/lakemont/crmdash/internal/dash/store"
	"github.com/lakemont/crmdash/pkg/httpx"
	"github.com/lakemont/crmdash/pkg/jwtx"
	"github.com/lakemont/crmdash/pkg/slogx"

	_ "github.com/lakemont/crmdash/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store           store.Store
	IdentityService *service.IdentityService
	CRMSessions     *crm.SessionCache
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
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
	r.registerRecords()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CRM Dashboard API
//	@version		0.1.0
//	@description	Session and token lifecycle service for the business-data dashboard. Issues short-lived HS256 access tokens with rotating refresh tokens in HttpOnly cookies, and proxies paginated record reads through a cached session with the upstream CRM.
//
//	@contact.name	Lakemont Engineering
//	@contact.url	https://github.com/lakemont/crmdash
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /auth/register and /auth/login - strict rate limit by IP, these
	// are the credential brute-force surface.
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(&RegisterHandler{Identity: r.IdentityService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(&LoginHandler{Identity: r.IdentityService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/refresh-token - moderate limit, every client session hits
	// this regularly.
	r.Mux.Handle("POST /auth/refresh-token",
		httpx.Chain(&RefreshHandler{Identity: r.IdentityService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /auth/logout - bearer optional, handled inside the handler.
	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(&LogoutHandler{Identity: r.IdentityService, Verifier: r.verifier},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /auth/me - authenticated, lenient limit by user.
	r.Mux.Handle("GET /auth/me",
		httpx.Chain(&MeHandler{Identity: r.IdentityService},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerRecords() {
	r.Mux.Handle("GET /external/records",
		httpx.Chain(&RecordsHandler{CRM: r.CRMSessions},
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
