package router

import (
	"appointments-api/modules/period/controller"

	"github.com/labstack/echo/v4"
)

// PeriodRouter handles period routes
type PeriodRouter struct {
	PeriodController *controller.PeriodController
}

// NewPeriodRouter creates a new router
func NewPeriodRouter(periodController *controller.PeriodController) *PeriodRouter {
	return &PeriodRouter{
		PeriodController: periodController,
	}
}

// Setup registers period routes. Period views are read-only and public.
func (r *PeriodRouter) Setup(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.GET("/calendars/:slug/periods/:kind", r.PeriodController.GetPeriod)
	v1.GET("/calendars/:slug/periods/:kind/has-occurrences", r.PeriodController.HasOccurrences)
}
