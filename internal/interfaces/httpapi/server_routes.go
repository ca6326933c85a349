package httpapi

import (
	"net/http"

	"github.com/riskibarqy/scouting-panel/internal/platform/metrics"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}
	if !cfg.SwaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPanelRoutes(mux *http.ServeMux, handler *Handler, m *metrics.Manager) {
	route := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, RequestMetrics(m, pattern, h))
	}

	route("GET /v1/windows", handler.ListWindows)
	route("GET /v1/scouts", handler.ListScoutGroups)
	route("GET /v1/windows/{window}/filters", handler.GetFilters)
	route("GET /v1/windows/{window}/rankings", handler.GetRankings)
	route("GET /v1/windows/{window}/details", handler.GetDetails)
	route("GET /v1/windows/{window}/players/{name}/scouts", handler.GetPlayerScouts)
	route("POST /v1/windows/{window}/comparison", handler.Compare)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.Handle("POST /v1/internal/cache/invalidate",
		RequestMetrics(cfg.Metrics, "POST /v1/internal/cache/invalidate",
			RequireInternalJobToken(cfg.InternalJobToken, http.HandlerFunc(handler.InvalidateCache))))
}
