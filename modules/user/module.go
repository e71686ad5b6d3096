package user

import (
	"github.com/Ecospace254/employee-sub000/core/database"
	"github.com/Ecospace254/employee-sub000/core/middleware"
	"github.com/Ecospace254/employee-sub000/modules/user/controller"
	"github.com/Ecospace254/employee-sub000/modules/user/repository"

	"github.com/labstack/echo/v4"
)

// Init registers the user routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware) {
	repo := repository.NewUserRepository(db)
	ctrl := controller.NewUserController(repo)

	api := e.Group("/api")
	api.GET("/users", ctrl.ListUsers, mw.AuthMiddleware())
}
