package router

import (
	"toutouchic-api/core/middleware"
	"toutouchic-api/modules/appointment/controller"

	"github.com/labstack/echo/v4"
)

type AppointmentRouter struct {
	Controller *controller.AppointmentController
}

func NewAppointmentRouter(ctrl *controller.AppointmentController) *AppointmentRouter {
	return &AppointmentRouter{Controller: ctrl}
}

func (r *AppointmentRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	api := e.Group("/api")

	// Public booking surface
	api.GET("/appointments/availability/:date", r.Controller.GetAvailability)
	api.POST("/appointments", r.Controller.Create)

	// Administrative surface
	api.GET("/appointments", r.Controller.List, mw.AuthMiddleware())
	api.DELETE("/appointments/:id", r.Controller.Delete, mw.AuthMiddleware())
}
