package console

import (
	"net/http"

	"github.com/quantashield/console/internal/api/schema"
	"github.com/quantashield/console/internal/auth"
)

// Error taxonomy mapping: every typed authentication failure becomes a unified schema
// error with a stable type identifier and the failure message verbatim.
var authErrorTypes = map[auth.Code]string{
	auth.CodeInvalidCredentials:  "auth.invalidCredentials",
	auth.CodeInvalidSecondFactor: "auth.invalidSecondFactor",
	auth.CodeUnknownAttempt:      "auth.unknownAttempt",
	auth.CodeUnknownProvider:     "auth.unknownProvider",
	auth.CodeProviderUnavailable: "auth.providerUnavailable",
	auth.CodeProviderRejected:    "auth.providerRejected",
	auth.CodeMissingToken:        "auth.missingToken",
	auth.CodeMalformedToken:      "auth.malformedToken",
	auth.CodeExpiredToken:        "auth.expiredToken",
	auth.CodeIncompleteUserInfo:  "auth.incompleteUserInfo",
}

var authErrorStatuses = map[auth.Code]int{
	auth.CodeInvalidCredentials:  http.StatusUnauthorized,
	auth.CodeInvalidSecondFactor: http.StatusUnauthorized,
	auth.CodeUnknownAttempt:      http.StatusBadRequest,
	auth.CodeUnknownProvider:     http.StatusNotFound,
	auth.CodeProviderUnavailable: http.StatusBadGateway,
	auth.CodeProviderRejected:    http.StatusForbidden,
	auth.CodeMissingToken:        http.StatusBadRequest,
	auth.CodeMalformedToken:      http.StatusBadRequest,
	auth.CodeExpiredToken:        http.StatusUnauthorized,
	auth.CodeIncompleteUserInfo:  http.StatusBadRequest,
}

// writeAuthError writes a typed authentication failure to the response.
// Errors raised outside the auth taxonomy (context cancellation, broken collaborators)
// are treated as internal.
func (service *Service) writeAuthError(writer http.ResponseWriter, err error) {
	code := auth.CodeOf(err)
	errType, ok := authErrorTypes[code]
	if !ok {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteErrors(writer, authErrorStatuses[code], &schema.Error{
		Type:    errType,
		Message: err.Error(),
	})
}
