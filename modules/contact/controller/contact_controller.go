package controller

import (
	"toutouchic-api/core/controller"
	"toutouchic-api/core/errors"
	"toutouchic-api/modules/contact/dto"
	"toutouchic-api/modules/contact/service"

	"github.com/labstack/echo/v4"
)

type ContactController struct {
	controller.BaseController
	ContactService service.ContactServiceInterface
}

func NewContactController(contactService service.ContactServiceInterface) *ContactController {
	return &ContactController{
		BaseController: controller.NewBaseController(),
		ContactService: contactService,
	}
}

func (ctrl *ContactController) Send(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.ContactRequest)
	if err := c.Bind(requestData); err != nil {
		return ctrl.BadRequest(errors.ErrInvalidRequestData, "Données de requête invalides", nil)
	}

	response, appErr := ctrl.ContactService.Relay(ctx, requestData)
	if appErr != nil {
		return ctrl.ErrorResponse(c, appErr)
	}

	return ctrl.SuccessResponse(c, response, "Message envoyé avec succès!")
}
