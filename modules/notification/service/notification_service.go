package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"toutouchic-api/core/config"
	"toutouchic-api/core/errors"
	"toutouchic-api/core/logger"
	"toutouchic-api/modules/appointment/entity"
	"toutouchic-api/modules/notification/dto"
)

var frenchWeekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

var frenchMonths = [...]string{"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre"}

type NotificationServiceInterface interface {
	SendBookingConfirmation(ctx context.Context, appointment *entity.Appointment) *errors.AppError
	SendOwnerBookingNotice(ctx context.Context, appointment *entity.Appointment) *errors.AppError
	SendContactMessage(ctx context.Context, message *dto.ContactMessage) *errors.AppError
}

// NotificationService composes and sends the salon's emails. Missing SMTP
// configuration is a valid disabled state; sends then fail with an external
// service error that callers treat according to their own policy.
type NotificationService struct {
	sender     Sender
	ownerEmail string
	loc        *time.Location
}

func NewNotificationService(sender Sender, cfg config.EmailConfig, loc *time.Location) *NotificationService {
	if loc == nil {
		loc = time.UTC
	}
	if cfg.Host == "" {
		logger.Warn("NotificationService:New:Disabled", "reason", "no SMTP host configured")
		sender = nil
	}
	return &NotificationService{
		sender:     sender,
		ownerEmail: cfg.OwnerEmail,
		loc:        loc,
	}
}

// SendBookingConfirmation emails the client their appointment details.
func (s *NotificationService) SendBookingConfirmation(ctx context.Context, appointment *entity.Appointment) *errors.AppError {
	if appErr := s.ready(); appErr != nil {
		return appErr
	}

	subject := "✅ Confirmation de votre rendez-vous - Toutouchic"
	body := s.confirmationBody(appointment)

	if err := s.sender.Send(appointment.Email, subject, body); err != nil {
		logger.Error("NotificationService:SendBookingConfirmation:Error", "error", err, "appointment_id", appointment.ID)
		return errors.NewAppError(errors.ErrExternalService, "échec de l'envoi de l'email de confirmation", err)
	}

	logger.Info("NotificationService:SendBookingConfirmation:Sent", "to", appointment.Email, "appointment_id", appointment.ID)
	return nil
}

// SendOwnerBookingNotice emails the salon owner about a new booking.
func (s *NotificationService) SendOwnerBookingNotice(ctx context.Context, appointment *entity.Appointment) *errors.AppError {
	if appErr := s.ready(); appErr != nil {
		return appErr
	}

	subject := fmt.Sprintf("📅 Nouveau rendez-vous - %s", appointment.Name)
	body := s.ownerNoticeBody(appointment)

	if err := s.sender.Send(s.ownerEmail, subject, body); err != nil {
		logger.Error("NotificationService:SendOwnerBookingNotice:Error", "error", err, "appointment_id", appointment.ID)
		return errors.NewAppError(errors.ErrExternalService, "échec de l'envoi de la notification", err)
	}

	logger.Info("NotificationService:SendOwnerBookingNotice:Sent", "to", s.ownerEmail, "appointment_id", appointment.ID)
	return nil
}

// SendContactMessage relays a contact-form message to the owner.
func (s *NotificationService) SendContactMessage(ctx context.Context, message *dto.ContactMessage) *errors.AppError {
	if appErr := s.ready(); appErr != nil {
		return appErr
	}

	subject := fmt.Sprintf("🐕 Nouveau message de %s - Toutouchic", message.Name)
	body := s.contactBody(message)

	if err := s.sender.Send(s.ownerEmail, subject, body); err != nil {
		logger.Error("NotificationService:SendContactMessage:Error", "error", err, "reference", message.Reference)
		return errors.NewAppError(errors.ErrExternalService, "Erreur lors de l'envoi du message. Veuillez réessayer.", err)
	}

	logger.Info("NotificationService:SendContactMessage:Sent", "to", s.ownerEmail, "reference", message.Reference)
	return nil
}

func (s *NotificationService) ready() *errors.AppError {
	if s.sender == nil {
		return errors.NewAppError(errors.ErrExternalService, "serveur email non configuré", nil)
	}
	if s.ownerEmail == "" {
		return errors.NewAppError(errors.ErrExternalService, "adresse du salon non configurée", nil)
	}
	return nil
}

func (s *NotificationService) confirmationBody(appointment *entity.Appointment) string {
	date, hour := s.formatFrench(appointment.StartInstant)

	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h1 style="color: #10b981;">🐕 Toutouchic</h1>`)
	b.WriteString(`<h2>Rendez-vous confirmé !</h2>`)
	fmt.Fprintf(&b, `<p>Bonjour %s,</p>`, html.EscapeString(appointment.Name))
	b.WriteString(`<p>Votre rendez-vous a été confirmé avec succès. Voici les détails :</p>`)
	b.WriteString(`<div style="background-color: #f0fdf4; padding: 20px; border-left: 4px solid #10b981;">`)
	fmt.Fprintf(&b, `<p><strong>📅 Date:</strong> %s</p>`, date)
	fmt.Fprintf(&b, `<p><strong>🕐 Heure:</strong> %s</p>`, hour)
	fmt.Fprintf(&b, `<p><strong>🐶 Chien:</strong> %s</p>`, html.EscapeString(appointment.Dog))
	fmt.Fprintf(&b, `<p><strong>✂️ Service:</strong> %s</p>`, html.EscapeString(appointment.Service.Label()))
	if appointment.Notes != "" {
		fmt.Fprintf(&b, `<p><strong>📝 Notes:</strong> %s</p>`, html.EscapeString(appointment.Notes))
	}
	b.WriteString(`</div>`)
	b.WriteString(`<ul>`)
	b.WriteString(`<li>Merci d'arriver 5 minutes avant l'heure du rendez-vous</li>`)
	b.WriteString(`<li>Pensez à apporter le carnet de vaccination</li>`)
	b.WriteString(`<li>En cas d'empêchement, prévenez-nous 24h à l'avance</li>`)
	b.WriteString(`</ul>`)
	b.WriteString(`<p>À très bientôt ! 🐾</p>`)
	b.WriteString(`</div>`)
	return b.String()
}

func (s *NotificationService) ownerNoticeBody(appointment *entity.Appointment) string {
	date, hour := s.formatFrench(appointment.StartInstant)

	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h2 style="color: #10b981;">Nouveau rendez-vous</h2>`)
	b.WriteString(`<h3>Détails du client</h3>`)
	fmt.Fprintf(&b, `<p><strong>Nom:</strong> %s</p>`, html.EscapeString(appointment.Name))
	fmt.Fprintf(&b, `<p><strong>Email:</strong> %s</p>`, html.EscapeString(appointment.Email))
	fmt.Fprintf(&b, `<p><strong>Téléphone:</strong> %s</p>`, html.EscapeString(appointment.Phone))
	fmt.Fprintf(&b, `<p><strong>Chien:</strong> %s</p>`, html.EscapeString(appointment.Dog))
	b.WriteString(`<h3>Rendez-vous</h3>`)
	fmt.Fprintf(&b, `<p><strong>Date:</strong> %s</p>`, date)
	fmt.Fprintf(&b, `<p><strong>Heure:</strong> %s</p>`, hour)
	fmt.Fprintf(&b, `<p><strong>Service:</strong> %s</p>`, html.EscapeString(appointment.Service.Label()))
	if appointment.Notes != "" {
		fmt.Fprintf(&b, `<p><strong>Notes:</strong> %s</p>`, html.EscapeString(appointment.Notes))
	}
	fmt.Fprintf(&b, `<p style="color: #6b7280; font-size: 12px;">ID du rendez-vous: %s</p>`, appointment.ID)
	b.WriteString(`</div>`)
	return b.String()
}

func (s *NotificationService) contactBody(message *dto.ContactMessage) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h2 style="color: #10b981;">Nouveau message de contact</h2>`)
	fmt.Fprintf(&b, `<p><strong>Nom:</strong> %s</p>`, html.EscapeString(message.Name))
	fmt.Fprintf(&b, `<p><strong>Email:</strong> %s</p>`, html.EscapeString(message.Email))
	fmt.Fprintf(&b, `<p><strong>Téléphone:</strong> %s</p>`, html.EscapeString(message.Phone))
	if message.Dog != "" {
		fmt.Fprintf(&b, `<p><strong>Chien:</strong> %s</p>`, html.EscapeString(message.Dog))
	}
	b.WriteString(`<h3>Message:</h3>`)
	fmt.Fprintf(&b, `<p>%s</p>`, html.EscapeString(message.Message))
	fmt.Fprintf(&b, `<p style="color: #9ca3af; font-size: 12px;">Référence: %s</p>`, message.Reference)
	b.WriteString(`</div>`)
	return b.String()
}

// formatFrench renders an instant as a French long date and a time of day in
// the salon's time zone.
func (s *NotificationService) formatFrench(t time.Time) (string, string) {
	local := t.In(s.loc)
	date := fmt.Sprintf("%s %d %s %d",
		frenchWeekdays[local.Weekday()],
		local.Day(),
		frenchMonths[local.Month()-1],
		local.Year(),
	)
	return date, local.Format("15:04")
}
