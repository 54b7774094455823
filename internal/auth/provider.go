package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultProviders is the provider set offered when none is configured explicitly
var DefaultProviders = []string{"google", "microsoft", "facebook", "linkedin", "twitter"}

// Registry holds the configured federated identity providers and knows how to hand a
// login off to the external auth gateway that fronts them.
type Registry struct {
	gatewayURL  string
	callbackURL string
	providers   map[string]struct{}
	client      *http.Client
}

// NewRegistry creates a new provider registry.
// gatewayURL is the base address of the external auth gateway, callbackURL the absolute
// URL the gateway redirects back to after the provider hop.
func NewRegistry(gatewayURL, callbackURL string, providers []string, probeTimeout time.Duration) *Registry {
	set := make(map[string]struct{}, len(providers))
	for _, id := range providers {
		set[id] = struct{}{}
	}
	return &Registry{
		gatewayURL:  gatewayURL,
		callbackURL: callbackURL,
		providers:   set,
		client: &http.Client{
			Timeout: probeTimeout,
		},
	}
}

// Contains returns whether the given provider ID is part of the configured set
func (registry *Registry) Contains(id string) bool {
	_, ok := registry.providers[id]
	return ok
}

// Probe checks that the auth gateway is reachable before a login is handed off to it.
// Any transport failure or non-2xx status yields a ProviderUnavailable failure; the probe
// is never retried automatically - the caller reports the failure and the user decides.
func (registry *Registry) Probe(ctx context.Context) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, registry.gatewayURL+"/api/auth/providers", nil)
	if err != nil {
		return err
	}
	response, err := registry.client.Do(request)
	if err != nil {
		return newError(CodeProviderUnavailable, "identity provider service unavailable")
	}
	defer response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return newError(CodeProviderUnavailable, "identity provider service unavailable")
	}
	return nil
}

// LoginURL builds the gateway authorization URL performing the full-page hand-off for the
// given provider. The callback URL travels as a query parameter so the gateway knows
// where to resume the flow.
func (registry *Registry) LoginURL(provider string) string {
	return fmt.Sprintf(
		"%s/api/auth/%s/login?redirect_url=%s",
		registry.gatewayURL,
		provider,
		url.QueryEscape(registry.callbackURL),
	)
}
