package middlewares

import (
	"hyperschedule-service/internal/app/config"
	"hyperschedule-service/internal/pkg/constvars"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequireAdminAPIKey(t *testing.T) {
	testAPIKey := "test-admin-api-key-12345"
	middlewares := NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		App: config.App{AdminAPIKey: testAPIKey},
	})

	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})
	handler := middlewares.RequireAdminAPIKey(testHandler)

	t.Run("Valid API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/scrapers/hmc/harvests", nil)
		req.Header.Set(constvars.HeaderAPIKey, testAPIKey)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "should return 200 OK for valid API key")
		assert.Equal(t, "success", rr.Body.String())
	})

	t.Run("Lowercase Header Name", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/scrapers", nil)
		req.Header.Set("x-api-key", testAPIKey)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Missing API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/scrapers/hmc/harvests", nil)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "should return 401 Unauthorized for missing API key")
	})

	t.Run("Invalid API Key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/scrapers/hmc/harvests", nil)
		req.Header.Set(constvars.HeaderAPIKey, "invalid-api-key")

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Case Sensitivity", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/scrapers/hmc/harvests", nil)
		req.Header.Set(constvars.HeaderAPIKey, "TEST-ADMIN-API-KEY-12345")

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("No Key Configured", func(t *testing.T) {
		closed := NewMiddlewares(zap.NewNop(), &config.InternalConfig{}).RequireAdminAPIKey(testHandler)
		req := httptest.NewRequest("GET", "/api/v1/scrapers", nil)

		rr := httptest.NewRecorder()
		closed.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	middlewares := NewMiddlewares(zap.NewNop(), &config.InternalConfig{})

	var seen string
	handler := middlewares.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	}))

	t.Run("Client Supplied", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/healthz", nil)
		req.Header.Set(constvars.HeaderRequestID, "req-1")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "req-1", seen)
		assert.Equal(t, "req-1", rr.Header().Get(constvars.HeaderRequestID))
	})

	t.Run("Generated", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rr.Header().Get(constvars.HeaderRequestID))
	})
}

func TestErrorHandlerRecoversPanic(t *testing.T) {
	middlewares := NewMiddlewares(zap.NewNop(), &config.InternalConfig{})
	handler := middlewares.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
