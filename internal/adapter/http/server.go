package adapthttp

import (
	"context"
	"net/http"

	"fitplan/internal/app"
	"fitplan/internal/metrics"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/oauth2"
)

// Services bundles the application services the adapter drives.
type Services struct {
	Auth     *app.AuthService
	Profiles *app.ProfileService
	Plans    *app.PlanService
	Progress *app.ProgressService
}

// OIDCConfig holds the single sign-on provider settings.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config oauth2.Config
}

// NewOIDCConfig discovers the provider at issuer and returns an enabled config.
func NewOIDCConfig(ctx context.Context, issuer, clientID, clientSecret, redirectURL string) (OIDCConfig, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return OIDCConfig{}, err
	}
	return OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	authSvc     *app.AuthService
	profileSvc  *app.ProfileService
	planSvc     *app.PlanService
	progressSvc *app.ProgressService

	metrics  *metrics.Manager
	gatherer prometheus.Gatherer

	oidcConfig       OIDCConfig
	allowedOrigins   []string
	trustForwardAuth bool
	webDir           string

	// disableAuth serves every protected request as authUserID.
	disableAuth bool
	authUserID  int64
}

// New creates a Server wired to the given application services. m and g may
// be nil, in which case no metrics are recorded or exposed.
func New(svcs Services, m *metrics.Manager, g prometheus.Gatherer) *Server {
	return &Server{
		authSvc:     svcs.Auth,
		profileSvc:  svcs.Profiles,
		planSvc:     svcs.Plans,
		progressSvc: svcs.Progress,
		metrics:     m,
		gatherer:    g,
	}
}

// WithOIDC enables the single sign-on routes.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// WithAllowedOrigins sets the CORS origins allowed to send credentials.
func (s *Server) WithAllowedOrigins(origins []string) *Server {
	s.allowedOrigins = origins
	return s
}

// WithForwardAuth trusts the Remote-User header set by a reverse proxy.
func (s *Server) WithForwardAuth() *Server {
	s.trustForwardAuth = true
	return s
}

// WithWebDir serves a built single page app from dir for non-API paths.
func (s *Server) WithWebDir(dir string) *Server {
	s.webDir = dir
	return s
}

// WithoutAuth disables authentication, acting as userID on every request.
// Used by tests.
func (s *Server) WithoutAuth(userID int64) *Server {
	s.disableAuth = true
	s.authUserID = userID
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware, PanicRecovery(s.metrics), RequestMetrics(s.metrics))

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/config", s.handleConfig).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin).Methods(http.MethodGet)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(s.authMiddleware)
	protected.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)
	protected.HandleFunc("/profile", s.handleGetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/profile", s.handleUpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/profile/regenerate-plans", s.handleRegeneratePlans).Methods(http.MethodPost)
	protected.HandleFunc("/plans", s.handleListPlans).Methods(http.MethodGet)
	protected.HandleFunc("/plans/{day}", s.handleGetPlan).Methods(http.MethodGet)
	protected.HandleFunc("/plans/{day}", s.handleUpdatePlan).Methods(http.MethodPut)
	protected.HandleFunc("/plans/{day}/exercises/{id}/toggle", s.handleToggleExercise).Methods(http.MethodPost)
	protected.HandleFunc("/plans/{day}/meals/{id}/toggle", s.handleToggleMeal).Methods(http.MethodPost)
	protected.HandleFunc("/progress", s.handleDailyProgress).Methods(http.MethodGet)
	protected.HandleFunc("/progress/stats", s.handleStats).Methods(http.MethodGet)

	if s.webDir != "" {
		r.PathPrefix("/").Handler(spaFromDisk(s.webDir))
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	})
	return withNoCache(c.Handler(r))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
