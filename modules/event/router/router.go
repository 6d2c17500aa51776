package router

import (
	"appointments-api/core/middleware"
	"appointments-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

// EventRouter handles event and rule routes
type EventRouter struct {
	EventController *controller.EventController
}

// NewEventRouter creates a new router
func NewEventRouter(eventController *controller.EventController) *EventRouter {
	return &EventRouter{
		EventController: eventController,
	}
}

// Setup registers event routes
func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public reads
	v1.GET("/events/:id", r.EventController.GetEvent)
	v1.GET("/events/:id/occurrences", r.EventController.GetOccurrences)
	v1.GET("/events/:id/relations", r.EventController.GetRelations)
	v1.GET("/calendars/:slug/events", r.EventController.ListEvents)
	v1.GET("/rules", r.EventController.ListRules)
	v1.GET("/rules/:id", r.EventController.GetRule)

	// Mutations require authentication
	private := v1.Group("/private", mw.AuthMiddleware())
	private.POST("/calendars/:slug/events", r.EventController.CreateEvent)
	private.PUT("/events/:id", r.EventController.UpdateEvent)
	private.DELETE("/events/:id", r.EventController.DeleteEvent)
	private.POST("/events/:id/relations", r.EventController.CreateRelation)
	private.POST("/rules", r.EventController.CreateRule)
}
