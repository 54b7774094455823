package console

import (
	"net/http"

	"github.com/quantashield/console/internal/api/schema"
)

type submitCredentialsPayload struct {
	Username *string `json:"username" required:"true"`
	Password *string `json:"password" required:"true"`
}

type submitSecondFactorPayload struct {
	AttemptID *string `json:"attempt_id" required:"true"`
	Code      *string `json:"code" required:"true"`
}

type loginAttemptResponse struct {
	AttemptID string `json:"attempt_id"`
	State     string `json:"state"`
}

type sessionResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
	Token    string `json:"token,omitempty"`
	State    string `json:"state"`
}

// EndpointSubmitCredentials handles the POST /v1/auth/login endpoint
func (service *Service) EndpointSubmitCredentials(writer http.ResponseWriter, request *http.Request) {
	payload, validationErrs, err := schema.UnmarshalBody[submitCredentialsPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	attempt, err := service.flow.SubmitCredentials(request.Context(), *payload.Username, *payload.Password)
	if err != nil {
		service.writeAuthError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, &loginAttemptResponse{
		AttemptID: attempt.ID,
		State:     attempt.State.String(),
	})
}

// EndpointSubmitSecondFactor handles the POST /v1/auth/2fa endpoint.
// A successful second factor materializes the session: the durable entries are written
// before the response leaves, and the login hand-off fires after the configured delay.
func (service *Service) EndpointSubmitSecondFactor(writer http.ResponseWriter, request *http.Request) {
	payload, validationErrs, err := schema.UnmarshalBody[submitSecondFactorPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	ses, err := service.flow.SubmitSecondFactor(request.Context(), *payload.AttemptID, *payload.Code)
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

// EndpointLogout handles the POST /v1/auth/logout endpoint.
// Logging out within the hand-off delay window suppresses the pending login notification.
func (service *Service) EndpointLogout(writer http.ResponseWriter, request *http.Request) {
	service.cancelHandoff()
	if err := service.Sessions.Clear(); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	writer.WriteHeader(http.StatusNoContent)
}

// EndpointGetSelf handles the GET /v1/me endpoint
func (service *Service) EndpointGetSelf(writer http.ResponseWriter, request *http.Request) {
	service.writer.WriteJSON(writer, sessionOf(request).Info())
}
