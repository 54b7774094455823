package console

import (
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quantashield/console/internal/api/schema"
	"github.com/quantashield/console/internal/api/validation"
	"github.com/quantashield/console/internal/asset"
)

// EndpointGetAssets handles the GET /v1/assets endpoint
func (service *Service) EndpointGetAssets(writer http.ResponseWriter, request *http.Request) {
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

	filter := &asset.Filter{
		Type:        validation.QueryString(request, "type"),
		Criticality: validation.QueryString(request, "criticality"),
		Status:      validation.QueryString(request, "status"),
	}

	assets, total, err := service.Storage.Assets().GetByFilter(request.Context(), filter, uint64(offset), uint64(limit))
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	service.writer.WriteJSON(writer, schema.BuildPaginatedResponse(uint64(offset), uint64(limit), total, assets))
}

// EndpointGetAsset handles the GET /v1/assets/{id} endpoint
func (service *Service) EndpointGetAsset(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	found, err := service.Storage.Assets().GetByID(request.Context(), id)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if found == nil {
		service.writer.WriteErrors(writer, http.StatusNotFound, schema.ErrNotFound)
		return
	}
	service.writer.WriteJSON(writer, found)
}
