package contact

import (
	"toutouchic-api/modules/contact/controller"
	"toutouchic-api/modules/contact/router"
	"toutouchic-api/modules/contact/service"
	notifservice "toutouchic-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, notifSvc notifservice.NotificationServiceInterface) {
	contactSvc := service.NewContactService(notifSvc)
	ctrl := controller.NewContactController(contactSvc)
	router.NewContactRouter(ctrl).Setup(e)
}
