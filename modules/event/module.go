package event

import (
	"appointments-api/core/config"
	"appointments-api/core/database"
	"appointments-api/core/middleware"
	calrepository "appointments-api/modules/calendar/repository"
	"appointments-api/modules/event/controller"
	"appointments-api/modules/event/repository"
	"appointments-api/modules/event/router"
	"appointments-api/modules/event/service"
	occrepository "appointments-api/modules/occurrence/repository"

	"github.com/labstack/echo/v4"
)

// Init initializes the event module and registers routes. The permission
// function gates event mutations; pass nil for the default.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware, canEdit service.PermissionFunc) {
	repo := repository.NewEventRepository(db)
	calRepo := calrepository.NewCalendarRepository(db)
	occRepo := occrepository.NewOccurrenceRepository(db)
	finder := service.NewOccurrenceFinder(repo, occRepo)

	svc := service.NewEventService(repo, calRepo, finder, &config.Get().Appointments, canEdit)
	ctrl := controller.NewEventController(svc)
	rtr := router.NewEventRouter(ctrl)

	rtr.Setup(e, mw)
}
