// README: API gateway; holds the services the HTTP routes delegate to.
package http

import (
	"voyage/internal/http/handlers"
	"voyage/internal/infra"
	"voyage/internal/modules/search"
	"voyage/internal/modules/trips"
	"voyage/internal/observability"
)

type ServerDeps struct {
	Trips    *trips.Service
	Search   *search.Service
	Quota    handlers.QuotaReporter
	Verifier infra.TokenVerifier
	Metrics  *observability.Metrics

	ServiceName string
	RatePerMin  int
	RateBurst   int
}

type Server struct {
	deps ServerDeps
}

// NewServer keeps deps as given; a nil Verifier disables auth and a nil Quota hides /api/quota.
func NewServer(deps ServerDeps) *Server {
	if deps.ServiceName == "" {
		deps.ServiceName = "voyage-api"
	}
	return &Server{deps: deps}
}
