package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/IgorGrieder/encurtador-console/internal/constants"
	"github.com/IgorGrieder/encurtador-console/pkg/httputils"
)

const APIKeyHeader = "X-API-Key"

// APIKeyMiddleware guards the admin API. The key comes from X-API-Key or an
// "Authorization: Bearer" header. With no keys configured it runs open.
func APIKeyMiddleware(allowedKeys []string) func(http.Handler) http.Handler {
	allowed := make([][]byte, 0, len(allowedKeys))
	for _, k := range allowedKeys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		allowed = append(allowed, []byte(k))
	}

	if len(allowed) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := requestKey(r)
			if apiKey == "" || !keyAllowed(allowed, apiKey) {
				httputils.WriteAPIError(w, r, constants.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestKey(r *http.Request) string {
	if k := strings.TrimSpace(r.Header.Get(APIKeyHeader)); k != "" {
		return k
	}
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

func keyAllowed(allowed [][]byte, key string) bool {
	candidate := []byte(key)
	for _, k := range allowed {
		if subtle.ConstantTimeCompare(k, candidate) == 1 {
			return true
		}
	}
	return false
}
