package controller_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"toutouchic-api/core/clock"
	"toutouchic-api/core/config"
	"toutouchic-api/core/middleware"
	"toutouchic-api/modules/appointment"
	"toutouchic-api/modules/appointment/repository"
	"toutouchic-api/modules/auth"
	authdto "toutouchic-api/modules/auth/dto"
	authservice "toutouchic-api/modules/auth/service"
	calservice "toutouchic-api/modules/calendar/service"
	notifservice "toutouchic-api/modules/notification/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var paris = time.FixedZone("Europe/Paris", 2*60*60)

type apiFixture struct {
	e     *echo.Echo
	token string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	repo, err := repository.NewAppointmentRepository(filepath.Join(t.TempDir(), "appointments.json"))
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("croquettes"), bcrypt.MinCost)
	require.NoError(t, err)

	authSvc := authservice.NewAuthService("test-secret", string(hash), clock.NewSystem())
	calendarSvc := calservice.NewGoogleCalendarService(config.CalendarConfig{}, paris)
	notifSvc := notifservice.NewNotificationService(nil, config.EmailConfig{}, paris)

	e := echo.New()
	auth.Init(e, authSvc)
	appointment.Init(e, repo, calendarSvc, notifSvc, middleware.NewMiddleware(authSvc), clock.NewSystem(), paris)

	login, appErr := authSvc.Login(context.Background(), &authdto.LoginRequest{Password: "croquettes"})
	require.Nil(t, appErr)

	return &apiFixture{e: e, token: login.Token}
}

// futureSlot returns an upcoming Monday at 10:00 salon time, always strictly
// in the future so the booking rules accept it.
func futureSlot() time.Time {
	now := time.Now().In(paris)
	day := now.AddDate(0, 0, 1)
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, 1)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, paris)
}

func bookingBody(email string, instant time.Time) string {
	return fmt.Sprintf(`{
		"name": "Marie Dupont",
		"email": %q,
		"phone": "0612345678",
		"dog": "Caniche, Filou",
		"service": "full-groom",
		"startInstant": %q
	}`, email, instant.Format(time.RFC3339))
}

func (f *apiFixture) do(method, target, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func createdID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.Data.ID)
	return payload.Data.ID
}

func TestAppointmentAPI_Create(t *testing.T) {
	t.Run("books a valid request", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(http.MethodPost, "/api/appointments", bookingBody("marie@example.com", futureSlot()), "")
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		createdID(t, rec)
	})

	t.Run("returns 409 for an occupied slot", func(t *testing.T) {
		f := newAPIFixture(t)
		slot := futureSlot()

		rec := f.do(http.MethodPost, "/api/appointments", bookingBody("marie@example.com", slot), "")
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = f.do(http.MethodPost, "/api/appointments", bookingBody("paul@example.com", slot), "")
		assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	})

	t.Run("returns 400 for a malformed email", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(http.MethodPost, "/api/appointments", bookingBody("not-an-email", futureSlot()), "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns 400 for an unparseable body", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(http.MethodPost, "/api/appointments", `{"name": `, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAppointmentAPI_Availability(t *testing.T) {
	f := newAPIFixture(t)
	slot := futureSlot()

	rec := f.do(http.MethodPost, "/api/appointments", bookingBody("marie@example.com", slot), "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(http.MethodGet, "/api/appointments/availability/"+slot.Format("2006-01-02"), "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data struct {
			OccupiedSlots []string `json:"occupiedSlots"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload.Data.OccupiedSlots, 1)
}

func TestAppointmentAPI_AdminRoutes(t *testing.T) {
	t.Run("listing requires a token", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(http.MethodGet, "/api/appointments", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("listing works with a valid token", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(http.MethodPost, "/api/appointments", bookingBody("marie@example.com", futureSlot()), "")
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = f.do(http.MethodGet, "/api/appointments", "", f.token)
		require.Equal(t, http.StatusOK, rec.Code)

		var payload struct {
			Data struct {
				Total int `json:"total"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, 1, payload.Data.Total)
	})

	t.Run("rejects a malformed authorization header", func(t *testing.T) {
		f := newAPIFixture(t)

		req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
		req.Header.Set(echo.HeaderAuthorization, "Basic abc123")
		rec := httptest.NewRecorder()
		f.e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("cancels an existing appointment", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(http.MethodPost, "/api/appointments", bookingBody("marie@example.com", futureSlot()), "")
		require.Equal(t, http.StatusCreated, rec.Code)
		id := createdID(t, rec)

		rec = f.do(http.MethodDelete, "/api/appointments/"+id, "", f.token)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = f.do(http.MethodDelete, "/api/appointments/"+id, "", f.token)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("cancel requires a token", func(t *testing.T) {
		f := newAPIFixture(t)

		rec := f.do(http.MethodDelete, "/api/appointments/some-id", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
