package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"toutouchic-api/core/config"
	"toutouchic-api/core/constants"
	"toutouchic-api/core/errors"
	"toutouchic-api/core/logger"
	"toutouchic-api/modules/appointment/entity"
	"toutouchic-api/modules/calendar/dto"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleCalendarAPIBase = "https://www.googleapis.com/calendar/v3"
	googleCalendarScope   = "https://www.googleapis.com/auth/calendar"

	// Green, the salon's grooming color in the owner's calendar.
	groomingColorID = "10"
)

// CalendarService mirrors appointments into an external calendar.
// Mirroring is best effort: callers treat any returned error as non-fatal.
type CalendarService interface {
	// Enabled reports whether a calendar backend is configured. When false,
	// CreateEvent and DeleteEvent are never called.
	Enabled() bool
	CreateEvent(ctx context.Context, appointment *entity.Appointment) (string, *errors.AppError)
	DeleteEvent(ctx context.Context, eventID string) *errors.AppError
}

// GoogleCalendarService talks to the Google Calendar v3 REST API with a
// service-account token. Absence of credentials is a valid disabled state,
// not an error: the salon runs fine without calendar sync.
type GoogleCalendarService struct {
	tokenSource oauth2.TokenSource
	calendarID  string
	client      *http.Client
	loc         *time.Location
}

func NewGoogleCalendarService(cfg config.CalendarConfig, loc *time.Location) *GoogleCalendarService {
	if loc == nil {
		loc = time.UTC
	}
	svc := &GoogleCalendarService{
		calendarID: cfg.CalendarID,
		client:     &http.Client{Timeout: constants.DefaultTimeout},
		loc:        loc,
	}
	if svc.calendarID == "" {
		svc.calendarID = "primary"
	}

	if cfg.CredentialsJSON == "" {
		logger.Warn("GoogleCalendarService:New:Disabled", "reason", "no credentials configured")
		return svc
	}

	jwtConfig, err := google.JWTConfigFromJSON([]byte(cfg.CredentialsJSON), googleCalendarScope)
	if err != nil {
		logger.Error("GoogleCalendarService:New:ParseCredentials:Error", "error", err)
		return svc
	}

	svc.tokenSource = jwtConfig.TokenSource(context.Background())
	logger.Info("GoogleCalendarService:New:Enabled", "calendar_id", svc.calendarID)
	return svc
}

func (s *GoogleCalendarService) Enabled() bool {
	return s.tokenSource != nil
}

// CreateEvent inserts a one-hour event for the appointment and returns the
// Google event id.
func (s *GoogleCalendarService) CreateEvent(ctx context.Context, appointment *entity.Appointment) (string, *errors.AppError) {
	if !s.Enabled() {
		return "", errors.NewAppError(errors.ErrExternalService, "Google Calendar non configuré", nil)
	}

	start := appointment.StartInstant.In(s.loc)
	end := start.Add(constants.AppointmentDuration)

	event := dto.GoogleEvent{
		Summary:     fmt.Sprintf("🐕 %s - %s", appointment.Name, appointment.Dog),
		Description: s.eventDescription(appointment),
		Start: dto.GoogleEventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: s.loc.String(),
		},
		End: dto.GoogleEventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: s.loc.String(),
		},
		Attendees: []dto.GoogleEventAttendee{{Email: appointment.Email}},
		Reminders: &dto.GoogleEventReminders{
			UseDefault: false,
			Overrides: []dto.GoogleEventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 60},
			},
		},
		ColorID: groomingColorID,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return "", errors.NewAppError(errors.ErrExternalService, "failed to encode calendar event", err)
	}

	apiURL := fmt.Sprintf("%s/calendars/%s/events?sendUpdates=all",
		googleCalendarAPIBase, url.PathEscape(s.calendarID))

	body, appErr := s.doRequest(ctx, http.MethodPost, apiURL, payload, http.StatusOK)
	if appErr != nil {
		return "", appErr
	}

	var created dto.GoogleEventCreated
	if err := json.Unmarshal(body, &created); err != nil {
		return "", errors.NewAppError(errors.ErrExternalService, "failed to parse calendar response", err)
	}

	logger.Info("GoogleCalendarService:CreateEvent:Success", "event_id", created.ID, "appointment_id", appointment.ID)
	return created.ID, nil
}

// DeleteEvent removes a previously mirrored event. Already-gone events are
// treated as success so cancellation stays idempotent on the calendar side.
func (s *GoogleCalendarService) DeleteEvent(ctx context.Context, eventID string) *errors.AppError {
	if !s.Enabled() {
		return errors.NewAppError(errors.ErrExternalService, "Google Calendar non configuré", nil)
	}
	if eventID == "" {
		return nil
	}

	apiURL := fmt.Sprintf("%s/calendars/%s/events/%s?sendUpdates=all",
		googleCalendarAPIBase, url.PathEscape(s.calendarID), url.PathEscape(eventID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, apiURL, nil)
	if err != nil {
		return errors.NewAppError(errors.ErrExternalService, "failed to create request", err)
	}
	if appErr := s.authorize(req); appErr != nil {
		return appErr
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.NewAppError(errors.ErrExternalService, "failed to delete calendar event", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound, http.StatusGone:
		logger.Info("GoogleCalendarService:DeleteEvent:Success", "event_id", eventID)
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		logger.Error("GoogleCalendarService:DeleteEvent:APIError", "status", resp.StatusCode, "body", string(body))
		return errors.NewAppError(errors.ErrExternalService,
			fmt.Sprintf("Google Calendar API error: %d", resp.StatusCode), nil)
	}
}

func (s *GoogleCalendarService) doRequest(ctx context.Context, method, apiURL string, payload []byte, wantStatus int) ([]byte, *errors.AppError) {
	req, err := http.NewRequestWithContext(ctx, method, apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrExternalService, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if appErr := s.authorize(req); appErr != nil {
		return nil, appErr
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrExternalService, "failed to call Google Calendar", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrExternalService, "failed to read response", err)
	}
	if resp.StatusCode != wantStatus {
		logger.Error("GoogleCalendarService:Request:APIError", "status", resp.StatusCode, "body", string(body))
		return nil, errors.NewAppError(errors.ErrExternalService,
			fmt.Sprintf("Google Calendar API error: %d", resp.StatusCode), nil)
	}
	return body, nil
}

func (s *GoogleCalendarService) authorize(req *http.Request) *errors.AppError {
	token, err := s.tokenSource.Token()
	if err != nil {
		return errors.NewAppError(errors.ErrExternalService, "failed to obtain Google token", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	return nil
}

func (s *GoogleCalendarService) eventDescription(appointment *entity.Appointment) string {
	lines := []string{
		fmt.Sprintf("Service : %s", appointment.Service.Label()),
		fmt.Sprintf("Client : %s", appointment.Name),
		fmt.Sprintf("Téléphone : %s", appointment.Phone),
		fmt.Sprintf("Email : %s", appointment.Email),
	}
	if appointment.Notes != "" {
		lines = append(lines, fmt.Sprintf("Notes : %s", appointment.Notes))
	}
	lines = append(lines, "", fmt.Sprintf("ID rendez-vous : %s", appointment.ID))
	return strings.Join(lines, "\n")
}
