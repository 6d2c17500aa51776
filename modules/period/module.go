package period

import (
	"appointments-api/core/config"
	"appointments-api/core/database"
	calrepository "appointments-api/modules/calendar/repository"
	evrepository "appointments-api/modules/event/repository"
	evservice "appointments-api/modules/event/service"
	"appointments-api/modules/occurrence/repository"
	"appointments-api/modules/period/controller"
	"appointments-api/modules/period/router"
	"appointments-api/modules/period/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the period module and registers routes. The selector
// scopes which events a period shows; pass nil for the default
// whole-calendar selector.
func Init(e *echo.Echo, db database.IDatabase, selector evservice.EventSelector) {
	evRepo := evrepository.NewEventRepository(db)
	calRepo := calrepository.NewCalendarRepository(db)
	occRepo := repository.NewOccurrenceRepository(db)
	finder := evservice.NewOccurrenceFinder(evRepo, occRepo)

	if selector == nil {
		selector = evservice.NewCalendarEventSelector(evRepo)
	}

	svc := service.NewPeriodService(calRepo, selector, finder, &config.Get().Appointments)
	ctrl := controller.NewPeriodController(svc)
	rtr := router.NewPeriodRouter(ctrl)

	rtr.Setup(e)
}
