package console

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantashield/console/internal/config"
	"github.com/quantashield/console/internal/session"
	"github.com/quantashield/console/internal/storage/inmem"
	kvmem "github.com/quantashield/console/internal/storage/kv/inmem"
)

type testConsole struct {
	service     *Service
	handler     http.Handler
	persistence *kvmem.Driver
	logins      chan *session.Session
}

func newTestConsole(t *testing.T, gatewayURL string) *testConsole {
	t.Helper()

	driver, err := inmem.New()
	require.NoError(t, err)
	require.NoError(t, driver.Initialize(context.Background()))
	t.Cleanup(driver.Close)

	persistence := kvmem.New()
	logins := make(chan *session.Session, 1)

	service := &Service{
		Config: &config.Config{
			BaseAddress:      "http://localhost:8080",
			AllowedOrigin:    "*",
			AuthGatewayURL:   gatewayURL,
			Providers:        []string{"google", "microsoft"},
			ProbeTimeout:     time.Second,
			DemoUsername:     "admin",
			DemoPassword:     "password",
			DemoEmail:        "admin@quantashield.io",
			DemoSecondFactor: "123456",
			SigningSecret:    "test-signing-secret",
			TokenLifetime:    time.Hour,
			AttemptLifetime:  time.Minute,
			HandoffDelay:     50 * time.Millisecond,
		},
		Storage:  driver,
		Sessions: session.NewStore(persistence),
		OnLogin: func(ses *session.Session) {
			logins <- ses
		},
	}
	handler := service.handler()
	t.Cleanup(service.Shutdown)

	return &testConsole{
		service:     service,
		handler:     handler,
		persistence: persistence,
		logins:      logins,
	}
}

func (console *testConsole) request(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}
	request := httptest.NewRequest(method, target, reader)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	console.handler.ServeHTTP(recorder, request)
	return recorder
}

func (console *testConsole) requireNoLogin(t *testing.T, within time.Duration) {
	t.Helper()
	select {
	case ses := <-console.logins:
		t.Fatalf("unexpected login hand-off for %q", ses.Username)
	case <-time.After(within):
	}
}

func (console *testConsole) requireLogin(t *testing.T, within time.Duration) *session.Session {
	t.Helper()
	select {
	case ses := <-console.logins:
		return ses
	case <-time.After(within):
		t.Fatal("expected a login hand-off, got none")
		return nil
	}
}

func buildCallbackToken(t *testing.T, payload map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return "header." + base64.RawURLEncoding.EncodeToString(raw) + ".signature"
}

func errorType(t *testing.T, recorder *httptest.ResponseRecorder) string {
	t.Helper()
	var response struct {
		Errors []struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.NotEmpty(t, response.Errors)
	return response.Errors[0].Type
}

func TestService_LocalLoginFlow(t *testing.T) {
	console := newTestConsole(t, "http://gateway.invalid")

	// Submit the primary credentials
	recorder := console.request(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"username": "admin",
		"password": "password",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	var attempt loginAttemptResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &attempt))
	assert.NotEmpty(t, attempt.AttemptID)
	assert.Equal(t, "two_factor_pending", attempt.State)

	// No session exists until the second factor passes
	assert.Nil(t, console.service.Sessions.Get())

	// Submit the second factor
	recorder = console.request(t, http.MethodPost, "/v1/auth/2fa", "", map[string]string{
		"attempt_id": attempt.AttemptID,
		"code":       "123456",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	var established sessionResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &established))
	assert.Equal(t, "admin", established.Username)
	assert.Equal(t, "local", established.Provider)
	assert.Equal(t, "authenticated", established.State)
	require.NotEmpty(t, established.Token)

	// The session is persisted durably before the hand-off fires
	persisted, err := console.persistence.Get("auth_token")
	require.NoError(t, err)
	assert.Equal(t, established.Token, persisted)

	ses := console.requireLogin(t, time.Second)
	assert.Equal(t, "admin", ses.Username)
}

func TestService_LocalLoginFlow_Failures(t *testing.T) {
	console := newTestConsole(t, "http://gateway.invalid")

	t.Run("wrong credentials", func(t *testing.T) {
		recorder := console.request(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
			"username": "admin",
			"password": "nope",
		})
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "auth.invalidCredentials", errorType(t, recorder))
	})

	t.Run("missing body parameters", func(t *testing.T) {
		recorder := console.request(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
			"username": "admin",
		})
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "validation.requestBody.parameter.missing", errorType(t, recorder))
	})

	t.Run("unknown attempt", func(t *testing.T) {
		recorder := console.request(t, http.MethodPost, "/v1/auth/2fa", "", map[string]string{
			"attempt_id": "b3c32f5c-1b7e-4c3b-b6d4-000000000000",
			"code":       "123456",
		})
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "auth.unknownAttempt", errorType(t, recorder))
	})

	t.Run("wrong second factor keeps the attempt pending", func(t *testing.T) {
		recorder := console.request(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
			"username": "admin",
			"password": "password",
		})
		require.Equal(t, http.StatusOK, recorder.Code)
		var attempt loginAttemptResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &attempt))

		recorder = console.request(t, http.MethodPost, "/v1/auth/2fa", "", map[string]string{
			"attempt_id": attempt.AttemptID,
			"code":       "654321",
		})
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "auth.invalidSecondFactor", errorType(t, recorder))

		recorder = console.request(t, http.MethodPost, "/v1/auth/2fa", "", map[string]string{
			"attempt_id": attempt.AttemptID,
			"code":       "123456",
		})
		require.Equal(t, http.StatusOK, recorder.Code)
		console.requireLogin(t, time.Second)
	})
}

func TestService_LoginCallback(t *testing.T) {
	console := newTestConsole(t, "http://gateway.invalid")

	token := buildCallbackToken(t, map[string]any{
		"username": "jdoe",
		"email":    "jdoe@example.com",
		"provider": "google",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	recorder := console.request(t, http.MethodGet, "/v1/auth/callback?token="+url.QueryEscape(token), "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var established sessionResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &established))
	assert.Equal(t, "jdoe", established.Username)
	assert.Equal(t, "google", established.Provider)
	assert.Equal(t, token, established.Token)

	// Both durable entries exist before the hand-off fires
	persistedToken, err := console.persistence.Get("auth_token")
	require.NoError(t, err)
	assert.Equal(t, token, persistedToken)
	persistedInfo, err := console.persistence.Get("user_info")
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"jdoe","email":"jdoe@example.com","provider":"google"}`, persistedInfo)

	console.requireNoLogin(t, 10*time.Millisecond)
	ses := console.requireLogin(t, time.Second)
	assert.Equal(t, "jdoe", ses.Username)
}

func TestService_LoginCallback_Failures(t *testing.T) {
	console := newTestConsole(t, "http://gateway.invalid")

	tests := []struct {
		name    string
		query   string
		status  int
		errType string
	}{
		{
			name:    "provider error",
			query:   "error=access_denied&error_description=" + url.QueryEscape("User cancelled"),
			status:  http.StatusForbidden,
			errType: "auth.providerRejected",
		},
		{
			name:    "missing token",
			query:   "",
			status:  http.StatusBadRequest,
			errType: "auth.missingToken",
		},
		{
			name:    "malformed token",
			query:   "token=not.enough",
			status:  http.StatusBadRequest,
			errType: "auth.malformedToken",
		},
		{
			name: "expired token",
			query: "token=" + url.QueryEscape(buildCallbackToken(t, map[string]any{
				"username": "jdoe",
				"email":    "jdoe@example.com",
				"exp":      time.Now().Add(-time.Hour).Unix(),
			})),
			status:  http.StatusUnauthorized,
			errType: "auth.expiredToken",
		},
		{
			name: "incomplete user info",
			query: "token=" + url.QueryEscape(buildCallbackToken(t, map[string]any{
				"email": "jdoe@example.com",
			})),
			status:  http.StatusBadRequest,
			errType: "auth.incompleteUserInfo",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			recorder := console.request(t, http.MethodGet, "/v1/auth/callback?"+test.query, "", nil)
			require.Equal(t, test.status, recorder.Code)
			assert.Equal(t, test.errType, errorType(t, recorder))
		})
	}

	// No failure ever materializes a session or schedules a hand-off
	assert.Nil(t, console.service.Sessions.Get())
	console.requireNoLogin(t, 100*time.Millisecond)
}

func TestService_Logout_SuppressesPendingHandoff(t *testing.T) {
	console := newTestConsole(t, "http://gateway.invalid")

	token := buildCallbackToken(t, map[string]any{
		"username": "jdoe",
		"email":    "jdoe@example.com",
	})
	recorder := console.request(t, http.MethodGet, "/v1/auth/callback?token="+url.QueryEscape(token), "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	// Log out within the hand-off delay window
	recorder = console.request(t, http.MethodPost, "/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	assert.Nil(t, console.service.Sessions.Get())
	persisted, err := console.persistence.Get("auth_token")
	require.NoError(t, err)
	assert.Empty(t, persisted)

	console.requireNoLogin(t, 200*time.Millisecond)
}

func TestService_Shutdown_SuppressesPendingHandoff(t *testing.T) {
	console := newTestConsole(t, "http://gateway.invalid")

	token := buildCallbackToken(t, map[string]any{
		"username": "jdoe",
		"email":    "jdoe@example.com",
	})
	recorder := console.request(t, http.MethodGet, "/v1/auth/callback?token="+url.QueryEscape(token), "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	console.service.Shutdown()
	console.requireNoLogin(t, 200*time.Millisecond)
}

func TestService_FederatedLogin(t *testing.T) {
	t.Run("redirects into the gateway hand-off", func(t *testing.T) {
		gateway := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/auth/providers", request.URL.Path)
			writer.WriteHeader(http.StatusOK)
		}))
		defer gateway.Close()

		console := newTestConsole(t, gateway.URL)
		recorder := console.request(t, http.MethodGet, "/v1/auth/google/login", "", nil)
		require.Equal(t, http.StatusFound, recorder.Code)
		expected := fmt.Sprintf(
			"%s/api/auth/google/login?redirect_url=%s",
			gateway.URL,
			url.QueryEscape("http://localhost:8080/v1/auth/callback"),
		)
		assert.Equal(t, expected, recorder.Header().Get("Location"))
	})

	t.Run("unknown provider", func(t *testing.T) {
		console := newTestConsole(t, "http://gateway.invalid")
		recorder := console.request(t, http.MethodGet, "/v1/auth/github/login", "", nil)
		require.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "auth.unknownProvider", errorType(t, recorder))
	})

	t.Run("unreachable gateway", func(t *testing.T) {
		gateway := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		gateway.Close()

		console := newTestConsole(t, gateway.URL)
		recorder := console.request(t, http.MethodGet, "/v1/auth/google/login", "", nil)
		require.Equal(t, http.StatusBadGateway, recorder.Code)
		assert.Equal(t, "auth.providerUnavailable", errorType(t, recorder))
	})
}

func TestService_SessionGate(t *testing.T) {
	console := newTestConsole(t, "http://gateway.invalid")

	t.Run("no session at all", func(t *testing.T) {
		recorder := console.request(t, http.MethodGet, "/v1/dashboard", "some-token", nil)
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	token := buildCallbackToken(t, map[string]any{
		"username": "jdoe",
		"email":    "jdoe@example.com",
	})
	recorder := console.request(t, http.MethodGet, "/v1/auth/callback?token="+url.QueryEscape(token), "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	t.Run("missing header", func(t *testing.T) {
		recorder := console.request(t, http.MethodGet, "/v1/dashboard", "", nil)
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("foreign token", func(t *testing.T) {
		recorder := console.request(t, http.MethodGet, "/v1/dashboard", "some-other-token", nil)
		require.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("session token", func(t *testing.T) {
		recorder := console.request(t, http.MethodGet, "/v1/me", token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		var info session.Info
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &info))
		assert.Equal(t, "jdoe", info.Username)
		assert.Equal(t, "federated", info.Provider)
	})
}

func TestService_DataEndpoints(t *testing.T) {
	console := newTestConsole(t, "http://gateway.invalid")

	token := buildCallbackToken(t, map[string]any{
		"username": "jdoe",
		"email":    "jdoe@example.com",
	})
	recorder := console.request(t, http.MethodGet, "/v1/auth/callback?token="+url.QueryEscape(token), "", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	t.Run("dashboard", func(t *testing.T) {
		recorder := console.request(t, http.MethodGet, "/v1/dashboard", token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		var dashboard dashboardResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &dashboard))
		assert.NotZero(t, dashboard.TotalAssets)
		assert.NotEmpty(t, dashboard.AssetsByType)
	})

	t.Run("assets pagination", func(t *testing.T) {
		recorder := console.request(t, http.MethodGet, "/v1/assets?limit=3", token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		var response struct {
			Pagination struct {
				Limit         uint64 `json:"limit"`
				TotalCount    uint64 `json:"total_count"`
				IncludedCount int    `json:"included_count"`
			} `json:"pagination"`
			Data []json.RawMessage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, uint64(3), response.Pagination.Limit)
		assert.Len(t, response.Data, 3)
		assert.GreaterOrEqual(t, response.Pagination.TotalCount, uint64(3))
	})

	t.Run("asset by unknown ID", func(t *testing.T) {
		recorder := console.request(t, http.MethodGet, "/v1/assets/does-not-exist", token, nil)
		require.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("invalid limit", func(t *testing.T) {
		recorder := console.request(t, http.MethodGet, "/v1/assets?limit=0", token, nil)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, "validation.query.parameter.number.outOfRange", errorType(t, recorder))
	})

	t.Run("threat indicators", func(t *testing.T) {
		recorder := console.request(t, http.MethodGet, "/v1/threats/indicators?active=true", token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("leaked credentials", func(t *testing.T) {
		recorder := console.request(t, http.MethodGet, "/v1/threats/credentials", token, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
	})
}
