package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// reservedCodes are top-level paths served by static routes. Gin matches them
// before GET /:code, so a short code with one of these names never redirects.
var reservedCodes = map[string]struct{}{
	"health":  {},
	"metrics": {},
}

// IsReservedCode reports whether code collides with a static top-level route.
func IsReservedCode(code string) bool {
	_, ok := reservedCodes[code]
	return ok
}

// RegisterRoutes sets up all the routes for the URL shortener service.
// It registers the API endpoints, the health and metrics endpoints and the
// user-facing redirect, and applies CORS to all of them.
func RegisterRoutes(r *gin.Engine, handler URLHandlerInterface, metricsHandler http.Handler) {
	// Apply CORS middleware to all routes
	r.Use(CORSMiddleware())

	v1 := r.Group("/api/v1")
	{
		shortURLs := v1.Group("/shorturls")
		{
			shortURLs.POST("", handler.CreateShortURL)
			shortURLs.GET("", handler.ListShortURLs)
			shortURLs.GET("/:code", handler.GetShortURL)
			shortURLs.DELETE("/:code", handler.DeleteShortURL)
		}
	}

	r.GET("/health", handler.HealthCheck)
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// Redirection route (not under /api/v1 as it's user-facing)
	r.GET("/:code", handler.RedirectURL)
}
