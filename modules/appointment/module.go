package appointment

import (
	"time"

	"toutouchic-api/core/clock"
	"toutouchic-api/core/middleware"
	"toutouchic-api/modules/appointment/controller"
	"toutouchic-api/modules/appointment/repository"
	"toutouchic-api/modules/appointment/router"
	"toutouchic-api/modules/appointment/service"
	calservice "toutouchic-api/modules/calendar/service"
	notifservice "toutouchic-api/modules/notification/service"

	"github.com/labstack/echo/v4"
)

func Init(
	e *echo.Echo,
	repo repository.AppointmentRepositoryInterface,
	calendarSvc calservice.CalendarService,
	notifSvc notifservice.NotificationServiceInterface,
	mw *middleware.Middleware,
	clk clock.Clock,
	loc *time.Location,
) {
	slots := service.NewSlotGenerator(service.DefaultOpeningHours(), loc)
	appointmentSvc := service.NewAppointmentService(repo, calendarSvc, notifSvc, slots, clk, loc)

	ctrl := controller.NewAppointmentController(appointmentSvc)
	router.NewAppointmentRouter(ctrl).Setup(e, mw)
}
