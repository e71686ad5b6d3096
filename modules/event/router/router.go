package router

import (
	"github.com/Ecospace254/employee-sub000/core/middleware"
	"github.com/Ecospace254/employee-sub000/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	controller *controller.EventController
}

func NewEventRouter(controller *controller.EventController) *EventRouter {
	return &EventRouter{controller: controller}
}

func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	group := e.Group("/api/events", mw.AuthMiddleware())
	group.GET("", r.controller.ListEvents)
	group.POST("", r.controller.CreateEvent)
	// Registered before /:id so "upcoming" is not parsed as an event id.
	group.GET("/upcoming/sidebar", r.controller.UpcomingSidebar)
	group.GET("/:id", r.controller.GetEvent)
	group.PUT("/:id", r.controller.UpdateEvent)
	group.DELETE("/:id", r.controller.DeleteEvent)
	group.POST("/:id/participants", r.controller.AddParticipants)
	group.PUT("/:id/participants/:userId", r.controller.SetRSVP)
}
