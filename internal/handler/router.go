package handler

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter wires the HTTP routes. allowedOrigins is a comma separated
// list, "*" allows any origin.
func NewRouter(rec *RecommendationHandler, health *HealthHandler, allowedOrigins string, logger zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	origins := splitOrigins(allowedOrigins)
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", RequestIDHeader}
	corsConfig.ExposeHeaders = []string{RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/health", health.Health)
	router.GET("/version", health.Version)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/recommendations", rec.Recommend)
		apiV1.GET("/recommendations", rec.RecommendQuery)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "API endpoint not found"})
	})

	return router
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
