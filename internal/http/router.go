// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"voyage/internal/http/handlers"
	"voyage/internal/http/middleware"
)

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(), otelgin.Middleware(s.deps.ServiceName))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if s.deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(s.deps.Metrics.Handler()))
	}

	api := r.Group("/api", middleware.RateLimit(s.deps.RatePerMin, s.deps.RateBurst), middleware.Auth(s.deps.Verifier))

	tripHandler := handlers.NewTripHandler(s.deps.Trips, s.deps.Quota)
	api.POST("/trips/plan", tripHandler.Plan)
	api.GET("/trips", tripHandler.List)
	api.GET("/trips/:id", tripHandler.Get)
	api.POST("/trips/:id/replan", tripHandler.Replan)
	api.GET("/trips/:id/itinerary.md", tripHandler.Itinerary)
	api.GET("/quota", tripHandler.Quota)

	searchHandler := handlers.NewSearchHandler(s.deps.Search)
	api.POST("/search/flights", searchHandler.Flights)
	api.POST("/search/hotels", searchHandler.Hotels)
	api.GET("/search/overview", searchHandler.Overview)

	return r
}
