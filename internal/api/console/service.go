package console

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/quantashield/console/internal/api/schema"
	"github.com/quantashield/console/internal/auth"
	"github.com/quantashield/console/internal/config"
	"github.com/quantashield/console/internal/function"
	"github.com/quantashield/console/internal/session"
	"github.com/quantashield/console/internal/storage"
	"github.com/quantashield/console/internal/task"
)

// Service represents the console API service.
// It owns the whole login pipeline (local credentials + second factor, federated hand-off
// and callback) and serves the session-gated dashboard, asset and threat data.
type Service struct {
	server *http.Server

	Config *config.Config

	Storage storage.Driver

	Sessions *session.Store

	// OnLogin is invoked once per established session, after the configured hand-off
	// delay. Logging out or shutting down during the delay window suppresses the call.
	OnLogin func(ses *session.Session)

	flow      *auth.Flow
	providers *auth.Registry

	handoffMtx sync.Mutex
	handoff    *task.DelayedTask

	writer *schema.Writer
}

// Startup starts up the console API
func (service *Service) Startup() error {
	server := &http.Server{
		Addr:    service.Config.ListenAddress,
		Handler: service.handler(),
	}
	service.server = server
	return server.ListenAndServe()
}

// handler assembles the login pipeline and the HTTP router
func (service *Service) handler() http.Handler {
	// Create the HTTP schema writer
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the console API experienced an unexpected error")
		},
	}

	// Create the local login flow and the federated provider registry
	service.flow = auth.NewFlow(
		&auth.StaticVerifier{
			Username:     service.Config.DemoUsername,
			Password:     service.Config.DemoPassword,
			Email:        service.Config.DemoEmail,
			SecondFactor: service.Config.DemoSecondFactor,
			Latency:      service.Config.VerifierLatency,
		},
		auth.NewIssuer([]byte(service.Config.SigningSecret), service.Config.TokenLifetime),
		service.Config.AttemptLifetime,
	)
	service.providers = auth.NewRegistry(
		service.Config.AuthGatewayURL,
		service.Config.CallbackURL(),
		service.Config.Providers,
		service.Config.ProbeTimeout,
	)

	// Create the HTTP router
	router := chi.NewRouter()
	router.Use(middleware.RedirectSlashes)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{service.Config.AllowedOrigin},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusMethodNotAllowed, schema.ErrMethodNotAllowed)
	})

	// Register the authentication endpoints
	router.Post("/v1/auth/login", service.EndpointSubmitCredentials)
	router.Post("/v1/auth/2fa", service.EndpointSubmitSecondFactor)
	router.Get("/v1/auth/{provider}/login", service.EndpointFederatedLogin)
	router.Get("/v1/auth/callback", service.EndpointLoginCallback)
	router.Post("/v1/auth/logout", function.Nest[http.HandlerFunc](service.EndpointLogout, service.MiddlewareVerifySession))
	router.Get("/v1/me", function.Nest[http.HandlerFunc](service.EndpointGetSelf, service.MiddlewareVerifySession))

	// Register the session-gated data endpoints
	router.Get("/v1/dashboard", function.Nest[http.HandlerFunc](service.EndpointGetDashboard, service.MiddlewareVerifySession))
	router.Get("/v1/assets", function.Nest[http.HandlerFunc](service.EndpointGetAssets, service.MiddlewareVerifySession))
	router.Get("/v1/assets/{id}", function.Nest[http.HandlerFunc](service.EndpointGetAsset, service.MiddlewareVerifySession))
	router.Get("/v1/threats/indicators", function.Nest[http.HandlerFunc](service.EndpointGetThreatIndicators, service.MiddlewareVerifySession))
	router.Get("/v1/threats/credentials", function.Nest[http.HandlerFunc](service.EndpointGetLeakedCredentials, service.MiddlewareVerifySession))

	return router
}

// Shutdown shuts down the console API, suppressing a possibly pending login hand-off
func (service *Service) Shutdown() {
	service.cancelHandoff()
	if service.flow != nil {
		service.flow.Close()
		service.flow = nil
	}
	if service.server != nil {
		service.server.Close()
		service.server = nil
	}
}

// establishSession persists the given session and schedules the delayed login hand-off.
// The durable entries are written before the hand-off is even scheduled, so a restart
// within the delay window cannot lose the session.
func (service *Service) establishSession(ses *session.Session) error {
	if err := service.Sessions.Set(ses); err != nil {
		return err
	}
	service.scheduleHandoff(ses)
	return nil
}

func (service *Service) scheduleHandoff(ses *session.Session) {
	service.handoffMtx.Lock()
	defer service.handoffMtx.Unlock()
	if service.handoff != nil {
		service.handoff.Cancel()
	}
	service.handoff = task.NewDelayed(func() {
		if service.OnLogin != nil {
			service.OnLogin(ses)
		}
	}, service.Config.HandoffDelay)
}

func (service *Service) cancelHandoff() {
	service.handoffMtx.Lock()
	defer service.handoffMtx.Unlock()
	if service.handoff != nil {
		service.handoff.Cancel()
		service.handoff = nil
	}
}
