package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"toutouchic-api/core/clock"
	"toutouchic-api/core/constants"
	"toutouchic-api/core/errors"
	"toutouchic-api/core/logger"
	"toutouchic-api/modules/appointment/dto"
	"toutouchic-api/modules/appointment/entity"
	"toutouchic-api/modules/appointment/repository"
	calservice "toutouchic-api/modules/calendar/service"
	notifservice "toutouchic-api/modules/notification/service"

	"github.com/google/uuid"
)

// Basic local@domain.tld shape, same as the booking form enforces.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AppointmentServiceInterface interface {
	Book(ctx context.Context, req *dto.CreateAppointmentRequest) (*entity.Appointment, *errors.AppError)
	Cancel(ctx context.Context, id string) *errors.AppError
	List(ctx context.Context) (*dto.AppointmentListResponse, *errors.AppError)
	Availability(ctx context.Context, date string) (*dto.AvailabilityResponse, *errors.AppError)
}

// AppointmentService orchestrates booking and cancellation. Persistence is
// authoritative; calendar mirroring and email notification are best effort
// and never change the outcome of a committed booking.
type AppointmentService struct {
	repo     repository.AppointmentRepositoryInterface
	calendar calservice.CalendarService
	notifier notifservice.NotificationServiceInterface
	slots    *SlotGenerator
	clock    clock.Clock
	loc      *time.Location
}

func NewAppointmentService(
	repo repository.AppointmentRepositoryInterface,
	calendar calservice.CalendarService,
	notifier notifservice.NotificationServiceInterface,
	slots *SlotGenerator,
	clk clock.Clock,
	loc *time.Location,
) *AppointmentService {
	if loc == nil {
		loc = time.UTC
	}
	return &AppointmentService{
		repo:     repo,
		calendar: calendar,
		notifier: notifier,
		slots:    slots,
		clock:    clk,
		loc:      loc,
	}
}

// Book runs the booking workflow: validate, check the slot, persist, then
// best-effort mirror to the external calendar and notify by email.
func (s *AppointmentService) Book(ctx context.Context, req *dto.CreateAppointmentRequest) (*entity.Appointment, *errors.AppError) {
	startInstant, appErr := s.validate(req)
	if appErr != nil {
		return nil, appErr
	}

	now := s.clock.Now()
	if !s.slots.IsBookable(startInstant, now) {
		logger.Warn("AppointmentService:Book:NotBookable", "start_instant", startInstant)
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Ce créneau n'est pas réservable", nil)
	}

	appointment := &entity.Appointment{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Dog:          strings.TrimSpace(req.Dog),
		Service:      entity.ServiceKind(req.Service),
		Notes:        strings.TrimSpace(req.Notes),
		StartInstant: startInstant,
		CreatedAt:    now,
		Status:       entity.StatusConfirmed,
	}

	// Conflict check and append are one atomic step in the store, so two
	// concurrent requests for the same instant cannot both commit.
	if appErr := s.repo.Create(ctx, appointment); appErr != nil {
		return nil, appErr
	}

	s.mirrorToCalendar(ctx, appointment)
	s.notifyBooking(ctx, appointment)

	logger.Info("AppointmentService:Book:Success",
		"appointment_id", appointment.ID,
		"start_instant", appointment.StartInstant,
		"service", appointment.Service,
	)
	return appointment, nil
}

// Cancel removes the appointment and best-effort deletes its mirrored
// calendar event. Local deletion is authoritative.
func (s *AppointmentService) Cancel(ctx context.Context, id string) *errors.AppError {
	appointment, appErr := s.repo.Delete(ctx, id)
	if appErr != nil {
		return appErr
	}

	if appointment.GoogleEventID != "" && s.calendar.Enabled() {
		callCtx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
		defer cancel()
		if appErr := s.calendar.DeleteEvent(callCtx, appointment.GoogleEventID); appErr != nil {
			// Local cancellation already committed; the stale event is logged only.
			logger.Warn("AppointmentService:Cancel:DeleteEvent:Error",
				"error", appErr, "appointment_id", id, "event_id", appointment.GoogleEventID)
		}
	}

	logger.Info("AppointmentService:Cancel:Success", "appointment_id", id, "name", appointment.Name)
	return nil
}

func (s *AppointmentService) List(ctx context.Context) (*dto.AppointmentListResponse, *errors.AppError) {
	appointments, appErr := s.repo.List(ctx)
	if appErr != nil {
		return nil, appErr
	}
	return &dto.AppointmentListResponse{
		Appointments: appointments,
		Total:        len(appointments),
	}, nil
}

// Availability returns the occupied start instants for a YYYY-MM-DD date.
func (s *AppointmentService) Availability(ctx context.Context, date string) (*dto.AvailabilityResponse, *errors.AppError) {
	day, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Format de date invalide (AAAA-MM-JJ attendu)", err)
	}

	appointments, appErr := s.repo.List(ctx)
	if appErr != nil {
		return nil, appErr
	}

	occupied := s.slots.OccupiedInstants(day, appointments)
	slots := make([]string, 0, len(occupied))
	for _, instant := range occupied {
		slots = append(slots, instant.In(s.loc).Format(time.RFC3339))
	}

	return &dto.AvailabilityResponse{Date: date, OccupiedSlots: slots}, nil
}

func (s *AppointmentService) validate(req *dto.CreateAppointmentRequest) (time.Time, *errors.AppError) {
	if req == nil {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidRequestData, "Requête invalide", nil)
	}

	missing := strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Phone) == "" ||
		strings.TrimSpace(req.Dog) == "" ||
		strings.TrimSpace(req.Service) == "" ||
		strings.TrimSpace(req.StartInstant) == ""
	if missing {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "Tous les champs obligatoires doivent être remplis", nil)
	}

	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "Format d'email invalide", nil)
	}

	if !entity.ServiceKind(req.Service).Valid() {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "Service inconnu", nil)
	}

	startInstant, err := time.Parse(time.RFC3339, req.StartInstant)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidInput, "Format de date invalide", err)
	}

	return startInstant.In(s.loc), nil
}

// mirrorToCalendar creates the external calendar event and stores its id.
// Failure leaves the appointment persisted with no calendar reference.
func (s *AppointmentService) mirrorToCalendar(ctx context.Context, appointment *entity.Appointment) {
	if !s.calendar.Enabled() {
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	eventID, appErr := s.calendar.CreateEvent(callCtx, appointment)
	if appErr != nil {
		logger.Warn("AppointmentService:Book:MirrorCalendar:Error", "error", appErr, "appointment_id", appointment.ID)
		return
	}

	if appErr := s.repo.SetGoogleEventID(ctx, appointment.ID, eventID); appErr != nil {
		logger.Warn("AppointmentService:Book:StoreEventID:Error", "error", appErr, "appointment_id", appointment.ID)
		return
	}
	appointment.GoogleEventID = eventID
}

// notifyBooking sends both booking emails. Both are attempted even if the
// first fails; failures never surface to the caller.
func (s *AppointmentService) notifyBooking(ctx context.Context, appointment *entity.Appointment) {
	if appErr := s.notifier.SendBookingConfirmation(ctx, appointment); appErr != nil {
		logger.Warn("AppointmentService:Book:NotifyClient:Error", "error", appErr, "appointment_id", appointment.ID)
	}
	if appErr := s.notifier.SendOwnerBookingNotice(ctx, appointment); appErr != nil {
		logger.Warn("AppointmentService:Book:NotifyOwner:Error", "error", appErr, "appointment_id", appointment.ID)
	}
}
