package router

import (
	"appointments-api/core/middleware"
	"appointments-api/modules/occurrence/controller"

	"github.com/labstack/echo/v4"
)

// OccurrenceRouter handles occurrence routes
type OccurrenceRouter struct {
	OccurrenceController *controller.OccurrenceController
}

// NewOccurrenceRouter creates a new router
func NewOccurrenceRouter(occurrenceController *controller.OccurrenceController) *OccurrenceRouter {
	return &OccurrenceRouter{
		OccurrenceController: occurrenceController,
	}
}

// Setup registers occurrence routes
func (r *OccurrenceRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public reads
	v1.GET("/occurrences/:id", r.OccurrenceController.GetOccurrenceByID)
	v1.GET("/events/:id/occurrence", r.OccurrenceController.GetOccurrence)

	// Mutations require authentication
	private := v1.Group("/private", mw.AuthMiddleware())
	private.POST("/events/:id/occurrence/cancel", r.OccurrenceController.CancelOccurrence)
	private.PUT("/events/:id/occurrence", r.OccurrenceController.MoveOccurrence)
}
