package router

import (
	"github.com/Ecospace254/employee-sub000/core/middleware"
	"github.com/Ecospace254/employee-sub000/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

// AuthRouter registers session routes.
type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{AuthController: authController}
}

// Setup registers auth routes.
func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	auth := e.Group("/api/auth")

	auth.POST("/login", r.AuthController.Login)
	auth.POST("/logout", r.AuthController.Logout, mw.AuthMiddleware())
	auth.GET("/me", r.AuthController.Me, mw.AuthMiddleware())
}
