package occurrence

import (
	"appointments-api/core/config"
	"appointments-api/core/database"
	"appointments-api/core/middleware"
	evrepository "appointments-api/modules/event/repository"
	evservice "appointments-api/modules/event/service"
	"appointments-api/modules/occurrence/controller"
	"appointments-api/modules/occurrence/repository"
	"appointments-api/modules/occurrence/router"
	"appointments-api/modules/occurrence/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the occurrence module and registers routes. The
// permission function gates cancel/move; pass nil for the default.
func Init(e *echo.Echo, db database.IDatabase, mw *middleware.Middleware, canEdit evservice.PermissionFunc) {
	evRepo := evrepository.NewEventRepository(db)
	repo := repository.NewOccurrenceRepository(db)
	finder := evservice.NewOccurrenceFinder(evRepo, repo)

	svc := service.NewOccurrenceService(evRepo, repo, finder, &config.Get().Appointments, canEdit)
	ctrl := controller.NewOccurrenceController(svc)
	rtr := router.NewOccurrenceRouter(ctrl)

	rtr.Setup(e, mw)
}
