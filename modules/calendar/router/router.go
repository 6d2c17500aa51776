package router

import (
	"appointments-api/core/middleware"
	"appointments-api/modules/calendar/controller"

	"github.com/labstack/echo/v4"
)

// CalendarRouter handles calendar routes
type CalendarRouter struct {
	CalendarController *controller.CalendarController
}

// NewCalendarRouter creates a new router
func NewCalendarRouter(calendarController *controller.CalendarController) *CalendarRouter {
	return &CalendarRouter{
		CalendarController: calendarController,
	}
}

// Setup registers calendar routes
func (r *CalendarRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public reads
	v1.GET("/calendars", r.CalendarController.ListCalendars)
	v1.GET("/calendars/:slug", r.CalendarController.GetCalendar)
	v1.GET("/calendars/:slug/relations", r.CalendarController.GetRelations)

	// Mutations require authentication
	privateRoutes := v1.Group("/private/calendars", mw.AuthMiddleware())
	privateRoutes.POST("", r.CalendarController.CreateCalendar)
	privateRoutes.PUT("/:slug", r.CalendarController.UpdateCalendar)
	privateRoutes.DELETE("/:slug", r.CalendarController.DeleteCalendar)
	privateRoutes.POST("/:slug/relations", r.CalendarController.CreateRelation)
}
