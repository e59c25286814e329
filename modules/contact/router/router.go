package router

import (
	"toutouchic-api/modules/contact/controller"

	"github.com/labstack/echo/v4"
)

type ContactRouter struct {
	Controller *controller.ContactController
}

func NewContactRouter(ctrl *controller.ContactController) *ContactRouter {
	return &ContactRouter{Controller: ctrl}
}

func (r *ContactRouter) Setup(e *echo.Echo) {
	e.POST("/api/contact", r.Controller.Send)
}
