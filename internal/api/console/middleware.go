package console

import (
	"context"
	"net/http"
	"strings"

	"github.com/quantashield/console/internal/api/schema"
	"github.com/quantashield/console/internal/session"
)

type contextValue string

const contextValueSession contextValue = "session"

// MiddlewareVerifySession makes sure that the requesting client presents the bearer token
// of the current session. The mere existence of a session gates access; the token
// comparison ties the request to it. The session object is injected into the request
// context for downstream handlers.
func (service *Service) MiddlewareVerifySession(next http.HandlerFunc) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		header := request.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer") {
			service.writer.WriteErrors(writer, http.StatusUnauthorized, schema.ErrUnauthorized)
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))

		current := service.Sessions.Get()
		if current == nil || current.Token != raw {
			service.writer.WriteErrors(writer, http.StatusUnauthorized, schema.ErrUnauthorized)
			return
		}

		request = request.WithContext(context.WithValue(request.Context(), contextValueSession, current))
		next(writer, request)
	}
}

func sessionOf(request *http.Request) *session.Session {
	return request.Context().Value(contextValueSession).(*session.Session)
}
