package middlewares

import (
	"crypto/subtle"
	"hyperschedule-service/internal/pkg/constvars"
	"hyperschedule-service/internal/pkg/exceptions"
	"hyperschedule-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// RequireAdminAPIKey rejects requests whose x-api-key header does not match
// the configured admin key. With no key configured every request is rejected.
func (m *Middlewares) RequireAdminAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderAPIKey)
		expected := m.InternalConfig.App.AdminAPIKey

		if expected == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			m.Log.Warn("Admin API key rejected",
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingMethodKey, r.Method),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		next.ServeHTTP(w, r)
	})
}
