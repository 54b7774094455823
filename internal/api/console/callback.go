package console

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quantashield/console/internal/auth"
)

// EndpointFederatedLogin handles the GET /v1/auth/{provider}/login endpoint.
// It probes the external auth gateway once and, if reachable, redirects the client into
// the full-page provider hand-off. A failed probe is reported immediately; the user
// decides whether to try again.
func (service *Service) EndpointFederatedLogin(writer http.ResponseWriter, request *http.Request) {
	provider := chi.URLParam(request, "provider")
	if !service.providers.Contains(provider) {
		service.writeAuthError(writer, &auth.Error{
			Code:    auth.CodeUnknownProvider,
			Message: "unknown identity provider",
		})
		return
	}

	if err := service.providers.Probe(request.Context()); err != nil {
		service.writeAuthError(writer, err)
		return
	}

	http.Redirect(writer, request, service.providers.LoginURL(provider), http.StatusFound)
}

// EndpointLoginCallback handles the GET /v1/auth/callback endpoint, the return leg of a
// federated login. The token is validated structurally (shape, expiry, required claims)
// without a signature check; the gateway vouches for it. On success the session is
// persisted before the delayed login hand-off is even scheduled.
func (service *Service) EndpointLoginCallback(writer http.ResponseWriter, request *http.Request) {
	ses, err := auth.ResolveCallback(request.URL.Query(), time.Now())
	if err != nil {
		service.writeAuthError(writer, err)
		return
	}
	if err := service.establishSession(ses); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, &sessionResponse{
		Username: ses.Username,
		Email:    ses.Email,
		Provider: ses.Provider,
		Token:    ses.Token,
		State:    "authenticated",
	})
}
