package http

import (
	"net/http"
	"strings"

	"github.com/IgorGrieder/encurtador-console/internal/config"
	"github.com/IgorGrieder/encurtador-console/internal/infrastructure/telemetry"
	"github.com/IgorGrieder/encurtador-console/internal/transport/http/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var spanNames = map[string]string{
	"GET /health":        "health",
	"GET /metrics":       "metrics",
	"GET /api/dashboard": "admin.dashboard",
	"GET /api/links":     "admin.links",
}

type RouterOptions struct {
	EnableCORS    bool
	EnableLogging bool
	EnableMetrics bool
}

func DefaultRouterOptions() RouterOptions {
	return RouterOptions{
		EnableCORS:    true,
		EnableLogging: true,
		EnableMetrics: true,
	}
}

func NewRouter(cfg *config.Config, source DashboardSource) http.Handler {
	return NewRouterWithOptions(cfg, source, DefaultRouterOptions())
}

func NewRouterWithOptions(cfg *config.Config, source DashboardSource, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	healthHandler := NewHealthHandler(source)
	dashboardHandler := NewDashboardHandler(source)

	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", healthHandler.Metrics())

	auth := middleware.APIKeyMiddleware(cfg.Admin.APIKeys)
	mux.Handle("GET /api/dashboard", middleware.Chain(http.HandlerFunc(dashboardHandler.Dashboard), auth))
	mux.Handle("GET /api/links", middleware.Chain(http.HandlerFunc(dashboardHandler.Links), auth))

	var innerHandler http.Handler = mux
	if opts.EnableCORS && len(cfg.Admin.CORSOrigins) > 0 {
		innerHandler = middleware.CORSMiddleware(cfg.Admin.CORSOrigins)(innerHandler)
	}
	if opts.EnableLogging {
		innerHandler = middleware.LoggingMiddleware(innerHandler)
	}
	if opts.EnableMetrics {
		innerHandler = middleware.MetricsMiddleware(innerHandler)
	}

	otelOptions := []otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			key := r.Method + " " + r.Pattern
			if name, ok := spanNames[key]; ok {
				return name
			}
			if r.Pattern != "" {
				return r.Pattern
			}
			path := strings.TrimSpace(r.URL.Path)
			if path == "" {
				path = "/"
			}
			return path
		}),
	}

	if telemetry.TracerProvider != nil {
		otelOptions = append(otelOptions, otelhttp.WithTracerProvider(telemetry.TracerProvider))
	}

	return otelhttp.NewHandler(innerHandler, cfg.App.Name+"-admin", otelOptions...)
}
