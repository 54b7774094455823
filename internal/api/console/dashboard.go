package console

import (
	"net/http"
	"time"
)

type dashboardResponse struct {
	TotalAssets           uint64            `json:"total_assets"`
	AssetsByType          map[string]uint64 `json:"assets_by_type"`
	ActiveIndicators      uint64            `json:"active_indicators"`
	CredentialsLeakedLast uint64            `json:"credentials_leaked_last_7d"`
}

// EndpointGetDashboard handles the GET /v1/dashboard endpoint
func (service *Service) EndpointGetDashboard(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	assets := service.Storage.Assets()
	threats := service.Storage.Threats()

	totalAssets, err := assets.Count(ctx)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	assetsByType, err := assets.CountByType(ctx)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	activeIndicators, err := threats.CountActiveIndicators(ctx)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	weekAgo := time.Now().Add(-7 * 24 * time.Hour).Unix()
	recentCredentials, err := threats.CountCredentialsSince(ctx, weekAgo)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	service.writer.WriteJSON(writer, &dashboardResponse{
		TotalAssets:           totalAssets,
		AssetsByType:          assetsByType,
		ActiveIndicators:      activeIndicators,
		CredentialsLeakedLast: recentCredentials,
	})
}
