package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSMiddleware lets the listed origins read the admin API. The surface is
// read-only, so only safe methods are allowed.
func CORSMiddleware(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"X-API-Key",
			"X-Correlation-Id",
			// OpenTelemetry headers
			"traceparent",
			"tracestate",
			"baggage",
		},
		ExposedHeaders: []string{"X-Correlation-Id"},
		MaxAge:         300,
	})

	return c.Handler
}
