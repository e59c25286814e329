package auth

import (
	"toutouchic-api/modules/auth/controller"
	"toutouchic-api/modules/auth/router"
	"toutouchic-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, authSvc service.AuthServiceInterface) {
	ctrl := controller.NewAuthController(authSvc)
	router.NewAuthRouter(ctrl).Setup(e)
}
