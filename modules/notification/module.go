package notification

import (
	"github.com/Ecospace254/employee-sub000/core/database"
	"github.com/Ecospace254/employee-sub000/core/middleware"
	"github.com/Ecospace254/employee-sub000/modules/notification/controller"
	"github.com/Ecospace254/employee-sub000/modules/notification/repository"
	"github.com/Ecospace254/employee-sub000/modules/notification/router"
	"github.com/Ecospace254/employee-sub000/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the notification module and returns the service so the
// events module and the reminder worker can create notifications.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) *service.NotificationService {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Setup(e, mw)

	return svc
}
