package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"toutouchic-api/core/errors"
	"toutouchic-api/modules/appointment/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAppointment(id string, start time.Time) *entity.Appointment {
	return &entity.Appointment{
		ID:           id,
		Name:         "Marie Dupont",
		Email:        "marie@example.com",
		Phone:        "0612345678",
		Dog:          "Caniche, Filou",
		Service:      entity.ServiceFullGroom,
		Notes:        "Premier rendez-vous",
		StartInstant: start,
		CreatedAt:    time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		Status:       entity.StatusConfirmed,
	}
}

func TestAppointmentRepository_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	repo, err := NewAppointmentRepository(path)
	require.NoError(t, err)

	start := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	appointment := testAppointment("appt-1", start)

	require.Nil(t, repo.Create(context.Background(), appointment))

	got, appErr := repo.GetByID(context.Background(), "appt-1")
	require.Nil(t, appErr)
	assert.Equal(t, appointment.Name, got.Name)
	assert.Equal(t, appointment.Email, got.Email)
	assert.Equal(t, appointment.Service, got.Service)
	assert.True(t, got.StartInstant.Equal(start))
	assert.Equal(t, entity.StatusConfirmed, got.Status)
	assert.Empty(t, got.GoogleEventID)
}

func TestAppointmentRepository_DurableAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	repo, err := NewAppointmentRepository(path)
	require.NoError(t, err)

	start := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	require.Nil(t, repo.Create(context.Background(), testAppointment("appt-1", start)))
	require.Nil(t, repo.SetGoogleEventID(context.Background(), "appt-1", "gcal-42"))

	reopened, err := NewAppointmentRepository(path)
	require.NoError(t, err)

	got, appErr := reopened.GetByID(context.Background(), "appt-1")
	require.Nil(t, appErr)
	assert.Equal(t, "gcal-42", got.GoogleEventID)
	assert.True(t, got.StartInstant.Equal(start))
}

func TestAppointmentRepository_ConflictOnSameInstant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	repo, err := NewAppointmentRepository(path)
	require.NoError(t, err)

	start := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	require.Nil(t, repo.Create(context.Background(), testAppointment("appt-1", start)))

	appErr := repo.Create(context.Background(), testAppointment("appt-2", start))
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrAlreadyExists, appErr.Code)

	listing, listErr := repo.List(context.Background())
	require.Nil(t, listErr)
	assert.Len(t, listing, 1)
}

func TestAppointmentRepository_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	repo, err := NewAppointmentRepository(path)
	require.NoError(t, err)

	start := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	require.Nil(t, repo.Create(context.Background(), testAppointment("appt-1", start)))

	removed, appErr := repo.Delete(context.Background(), "appt-1")
	require.Nil(t, appErr)
	assert.Equal(t, "appt-1", removed.ID)

	// Second deletion of the same id reports not found, as does a third.
	for i := 0; i < 2; i++ {
		_, appErr = repo.Delete(context.Background(), "appt-1")
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrNotFound, appErr.Code)
	}

	// The freed instant is bookable again.
	require.Nil(t, repo.Create(context.Background(), testAppointment("appt-3", start)))
}

func TestAppointmentRepository_ListSortedByStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	repo, err := NewAppointmentRepository(path)
	require.NoError(t, err)

	later := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	require.Nil(t, repo.Create(context.Background(), testAppointment("appt-l", later)))
	require.Nil(t, repo.Create(context.Background(), testAppointment("appt-e", earlier)))

	listing, appErr := repo.List(context.Background())
	require.Nil(t, appErr)
	require.Len(t, listing, 2)
	assert.Equal(t, "appt-e", listing[0].ID)
	assert.Equal(t, "appt-l", listing[1].ID)
}

func TestAppointmentRepository_NewSeedsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	repo, err := NewAppointmentRepository(path)
	require.NoError(t, err)

	listing, appErr := repo.List(context.Background())
	require.Nil(t, appErr)
	assert.Empty(t, listing)

	// The file exists on disk after first open.
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestAppointmentRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewAppointmentRepository(path)
	assert.Error(t, err)
}

func TestAppointmentRepository_SetGoogleEventIDUnknownID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appointments.json")
	repo, err := NewAppointmentRepository(path)
	require.NoError(t, err)

	appErr := repo.SetGoogleEventID(context.Background(), "missing", "gcal-1")
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
