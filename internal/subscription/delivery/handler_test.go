package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"interest-registry/internal/subscription/domain"
	"interest-registry/internal/subscription/gateway"
	"interest-registry/internal/subscription/repository"
	"interest-registry/internal/subscription/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct{}

func (stubResolver) Resolve(ctx context.Context, sellerToken string) (domain.Interest, error) {
	if sellerToken != "s1-token" {
		return "", &domain.NotFoundError{Resource: "seller"}
	}
	return "App.Seller.S1", nil
}

type failingGateway struct{}

func (failingGateway) RegisterInterest(ctx context.Context, interest domain.Interest, token string) error {
	return domain.NewProviderError(errors.New("provider unavailable"))
}

func (failingGateway) DeregisterInterest(ctx context.Context, interest domain.Interest, tokens []string) (int, error) {
	return 0, domain.NewProviderError(errors.New("provider unavailable"))
}

func newRouter(gw gateway.DeliveryGateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	uc := usecase.NewSubscriptionUsecase(repository.NewMemorySubscriptionRepository(), stubResolver{}, gw, time.Second)
	h := NewSubscriptionHandler(uc)

	r := gin.New()
	r.POST("/subscribe", h.Subscribe)
	r.POST("/unsubscribe", h.Unsubscribe)
	r.GET("/interests/:interest/subscriptions", h.ListSubscriptions)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w.Code, out
}

func TestSubscribeFlow(t *testing.T) {
	r := newRouter(gateway.NewMemoryGateway())

	code, body := do(t, r, http.MethodPost, "/subscribe", `{"expo_token":"tok-A","seller_token":"s1-token"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "succeeded", body["status"])
	assert.Equal(t, "tok-A", body["expo_token"])

	code, body = do(t, r, http.MethodPost, "/subscribe", `{"expo_token":"tok-B","seller_token":"s1-token"}`)
	assert.Equal(t, http.StatusOK, code)

	code, body = do(t, r, http.MethodGet, "/interests/App.Seller.S1/subscriptions", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["count"])

	code, body = do(t, r, http.MethodPost, "/unsubscribe", `{"seller_token":"s1-token"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["deleted"])

	code, body = do(t, r, http.MethodPost, "/unsubscribe", `{"seller_token":"s1-token"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["deleted"])
}

func TestSubscribeErrors(t *testing.T) {
	tests := []struct {
		name   string
		gw     gateway.DeliveryGateway
		path   string
		body   string
		status int
	}{
		{"missing expo token", gateway.NewMemoryGateway(), "/subscribe", `{"seller_token":"s1-token"}`, http.StatusUnprocessableEntity},
		{"malformed body", gateway.NewMemoryGateway(), "/subscribe", `{"expo_token":42}`, http.StatusUnprocessableEntity},
		{"empty unsubscribe token", gateway.NewMemoryGateway(), "/unsubscribe", `{"seller_token":"s1-token","expo_token":""}`, http.StatusUnprocessableEntity},
		{"unknown seller", gateway.NewMemoryGateway(), "/subscribe", `{"expo_token":"tok-A","seller_token":"other"}`, http.StatusNotFound},
		{"provider failure", failingGateway{}, "/subscribe", `{"expo_token":"tok-A","seller_token":"s1-token"}`, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, newRouter(tt.gw), http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, code)
			assert.Equal(t, "failed", body["status"])

			errBody, ok := body["error"].(map[string]interface{})
			require.True(t, ok)
			assert.NotEmpty(t, errBody["message"])
		})
	}
}

func TestSubscribeProviderFailureMessage(t *testing.T) {
	code, body := do(t, newRouter(failingGateway{}), http.MethodPost, "/subscribe", `{"expo_token":"tok-A","seller_token":"s1-token"}`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "provider unavailable", body["error"].(map[string]interface{})["message"])
}

func TestValidationErrorListsFields(t *testing.T) {
	code, body := do(t, newRouter(gateway.NewMemoryGateway()), http.MethodPost, "/subscribe", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	fields, ok := body["error"].(map[string]interface{})["fields"].([]interface{})
	require.True(t, ok)
	assert.Len(t, fields, 2)
}
