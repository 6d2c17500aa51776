package calendar

import (
	"appointments-api/core/database"
	"appointments-api/core/middleware"
	"appointments-api/modules/calendar/controller"
	"appointments-api/modules/calendar/repository"
	"appointments-api/modules/calendar/router"
	"appointments-api/modules/calendar/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the calendar module and registers routes
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware) {
	repo := repository.NewCalendarRepository(db)
	svc := service.NewCalendarService(repo)
	ctrl := controller.NewCalendarController(svc)
	rtr := router.NewCalendarRouter(ctrl)

	rtr.Setup(e, mw)
}
