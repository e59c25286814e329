package controller

import (
	"toutouchic-api/core/controller"
	"toutouchic-api/core/errors"
	"toutouchic-api/modules/appointment/dto"
	"toutouchic-api/modules/appointment/service"

	"github.com/labstack/echo/v4"
)

type AppointmentController struct {
	controller.BaseController
	AppointmentService service.AppointmentServiceInterface
}

func NewAppointmentController(appointmentService service.AppointmentServiceInterface) *AppointmentController {
	return &AppointmentController{
		BaseController:     controller.NewBaseController(),
		AppointmentService: appointmentService,
	}
}

// Create books a new appointment.
func (ctrl *AppointmentController) Create(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.CreateAppointmentRequest)
	if err := c.Bind(requestData); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Données de requête invalides", nil)
	}

	appointment, appErr := ctrl.AppointmentService.Book(ctx, requestData)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.CreatedResponse(c, appointment, "Rendez-vous créé avec succès!")
}

// GetAvailability lists the occupied slots for a date (YYYY-MM-DD).
func (ctrl *AppointmentController) GetAvailability(c echo.Context) error {
	ctx := c.Request().Context()

	availability, appErr := ctrl.AppointmentService.Availability(ctx, c.Param("date"))
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, availability, "Disponibilités récupérées")
}

// List returns all appointments (admin only).
func (ctrl *AppointmentController) List(c echo.Context) error {
	ctx := c.Request().Context()

	listing, appErr := ctrl.AppointmentService.List(ctx)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, listing, "Rendez-vous récupérés")
}

// Delete cancels an appointment by id (admin only).
func (ctrl *AppointmentController) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if appErr := ctrl.AppointmentService.Cancel(ctx, c.Param("id")); appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, nil, "Rendez-vous annulé avec succès")
}
