package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerSquadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/squads/suggestions", handler.ListSquadSuggestions)
	mux.HandleFunc("POST /v1/squads/optimize", handler.OptimizeSquads)
	mux.HandleFunc("POST /v1/squads/sweep", handler.SweepSquadBudgets)
	mux.HandleFunc("GET /v1/fixtures/difficulty", handler.GetFixtureDifficulty)
}

func registerMCPRoutes(mux *http.ServeMux, mcpHandler http.Handler) {
	if mcpHandler == nil {
		return
	}
	mux.Handle("/mcp", mcpHandler)
	mux.Handle("/mcp/", mcpHandler)
}
