package httpapi

import (
	"slicepoll/internal/auth"

	"github.com/gin-gonic/gin"
)

// Register wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers delegate to internal
// services; the gate middleware owns all authentication decisions.
func Register(r *gin.Engine, gate *auth.Gate, h Handlers) {
	// Engine-level so preflight OPTIONS requests without a matching route
	// still get CORS headers.
	r.Use(CORS())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	{
		// public reads
		v1.GET("/surveys", h.ListSurveys)
		v1.GET("/surveys/:survey_id", h.GetSurvey)
		v1.GET("/surveys/:survey_id/results", gate.Optional(), h.GetResults)

		// authenticated
		v1.GET("/me", gate.RequireAuthenticated(), h.Me)
		v1.POST("/surveys/:survey_id/ratings", gate.RequireAuthenticated(), h.SubmitRating)

		// admin-only survey mutations
		admin := v1.Group("/surveys")
		admin.Use(gate.RequireAdmin())
		{
			admin.POST("", h.CreateSurvey)
			admin.PUT("/:survey_id", h.UpdateSurvey)
			admin.DELETE("/:survey_id", h.DeleteSurvey)
		}
	}
}
