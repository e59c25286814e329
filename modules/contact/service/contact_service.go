package service

import (
	"context"
	"regexp"
	"strings"

	"toutouchic-api/core/errors"
	"toutouchic-api/core/logger"
	"toutouchic-api/core/utils"
	"toutouchic-api/modules/contact/dto"
	notifdto "toutouchic-api/modules/notification/dto"
	notifservice "toutouchic-api/modules/notification/service"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ContactServiceInterface interface {
	Relay(ctx context.Context, req *dto.ContactRequest) (*dto.ContactResponse, *errors.AppError)
}

// ContactService relays contact-form messages to the salon owner. Unlike
// booking notifications, delivery failure here fails the request: the
// message would otherwise be lost.
type ContactService struct {
	notifier notifservice.NotificationServiceInterface
}

func NewContactService(notifier notifservice.NotificationServiceInterface) *ContactService {
	return &ContactService{notifier: notifier}
}

func (s *ContactService) Relay(ctx context.Context, req *dto.ContactRequest) (*dto.ContactResponse, *errors.AppError) {
	if req == nil {
		return nil, errors.NewAppError(errors.ErrInvalidRequestData, "Requête invalide", nil)
	}

	missing := strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Phone) == "" ||
		strings.TrimSpace(req.Message) == ""
	if missing {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Tous les champs obligatoires doivent être remplis", nil)
	}

	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Format d'email invalide", nil)
	}

	message := &notifdto.ContactMessage{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Dog:       strings.TrimSpace(req.Dog),
		Message:   strings.TrimSpace(req.Message),
		Reference: utils.GenerateReference(),
	}

	if appErr := s.notifier.SendContactMessage(ctx, message); appErr != nil {
		return nil, appErr
	}

	logger.Info("ContactService:Relay:Success", "reference", message.Reference, "from", message.Email)
	return &dto.ContactResponse{Reference: message.Reference}, nil
}
