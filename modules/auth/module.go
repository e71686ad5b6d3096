package auth

import (
	"github.com/Ecospace254/employee-sub000/core/cache"
	"github.com/Ecospace254/employee-sub000/core/database"
	"github.com/Ecospace254/employee-sub000/core/middleware"
	"github.com/Ecospace254/employee-sub000/modules/auth/controller"
	"github.com/Ecospace254/employee-sub000/modules/auth/router"
	"github.com/Ecospace254/employee-sub000/modules/auth/service"
	userRepo "github.com/Ecospace254/employee-sub000/modules/user/repository"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module and registers routes.
func Init(e *echo.Echo, db database.Database, c cache.Cache, mw *middleware.Middleware) {
	users := userRepo.NewUserRepository(db)
	svc := service.NewAuthService(users, c)
	ctrl := controller.NewAuthController(svc)
	rtr := router.NewAuthRouter(ctrl)

	rtr.Setup(e, mw)
}
