package event

import (
	"github.com/Ecospace254/employee-sub000/core/database"
	"github.com/Ecospace254/employee-sub000/core/middleware"
	"github.com/Ecospace254/employee-sub000/modules/event/controller"
	"github.com/Ecospace254/employee-sub000/modules/event/repository"
	"github.com/Ecospace254/employee-sub000/modules/event/router"
	"github.com/Ecospace254/employee-sub000/modules/event/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the event module. Notifier and reminders are optional
// side channels; pass nil to disable either.
func Init(e *echo.Echo, db database.Database, notifier service.Notifier, reminders service.ReminderScheduler, mw *middleware.Middleware) {
	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, notifier, reminders)
	ctrl := controller.NewEventController(svc)

	router.NewEventRouter(ctrl).Setup(e, mw)
}
