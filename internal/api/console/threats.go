package console

import (
	"math"
	"net/http"

	"github.com/quantashield/console/internal/api/schema"
	"github.com/quantashield/console/internal/api/validation"
	"github.com/quantashield/console/internal/threat"
)

// EndpointGetThreatIndicators handles the GET /v1/threats/indicators endpoint
func (service *Service) EndpointGetThreatIndicators(writer http.ResponseWriter, request *http.Request) {
	offset, offsetErr := validation.QueryNumber(request, "offset", 0, 0, math.MaxInt64)
	limit, limitErr := validation.QueryNumber(request, "limit", 10, 1, 100)
	active, activeErr := validation.QueryBool(request, "active")
	if offsetErr != nil || limitErr != nil || activeErr != nil {
		var errs []*schema.Error
		for _, validationErr := range []*schema.Error{offsetErr, limitErr, activeErr} {
			if validationErr != nil {
				errs = append(errs, validationErr)
			}
		}
		service.writer.WriteErrors(writer, http.StatusBadRequest, errs...)
		return
	}

	filter := &threat.IndicatorFilter{
		Type:       validation.QueryString(request, "type"),
		ThreatType: validation.QueryString(request, "threat_type"),
		Active:     active,
	}

	indicators, total, err := service.Storage.Threats().GetIndicators(request.Context(), filter, uint64(offset), uint64(limit))
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, schema.BuildPaginatedResponse(uint64(offset), uint64(limit), total, indicators))
}

// EndpointGetLeakedCredentials handles the GET /v1/threats/credentials endpoint
func (service *Service) EndpointGetLeakedCredentials(writer http.ResponseWriter, request *http.Request) {
	offset, offsetErr := validation.QueryNumber(request, "offset", 0, 0, math.MaxInt64)
	limit, limitErr := validation.QueryNumber(request, "limit", 10, 1, 100)
	if offsetErr != nil || limitErr != nil {
		var errs []*schema.Error
		if offsetErr != nil {
			errs = append(errs, offsetErr)
		}
		if limitErr != nil {
			errs = append(errs, limitErr)
		}
		service.writer.WriteErrors(writer, http.StatusBadRequest, errs...)
		return
	}

	credentials, total, err := service.Storage.Threats().GetCredentials(request.Context(), uint64(offset), uint64(limit))
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, schema.BuildPaginatedResponse(uint64(offset), uint64(limit), total, credentials))
}
