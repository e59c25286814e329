package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"toutouchic-api/core/errors"
	"toutouchic-api/core/logger"
	"toutouchic-api/modules/appointment/entity"
)

type AppointmentRepositoryInterface interface {
	List(ctx context.Context) ([]entity.Appointment, *errors.AppError)
	GetByID(ctx context.Context, id string) (*entity.Appointment, *errors.AppError)
	Create(ctx context.Context, appointment *entity.Appointment) *errors.AppError
	Delete(ctx context.Context, id string) (*entity.Appointment, *errors.AppError)
	SetGoogleEventID(ctx context.Context, id string, eventID string) *errors.AppError
}

// AppointmentRepository is the durable appointment collection, backed by a
// single JSON file. The file is the sole source of truth between restarts;
// an in-memory index serves reads, and every mutation rewrites the whole
// collection through a temp file renamed into place. The mutex serializes
// the check-then-append sequence, so two concurrent bookings of the same
// instant cannot both commit.
type AppointmentRepository struct {
	mu        sync.Mutex
	path      string
	byID      map[string]entity.Appointment
	byInstant map[int64]string // unix start instant -> appointment id
}

func NewAppointmentRepository(path string) (*AppointmentRepository, error) {
	repo := &AppointmentRepository{
		path:      path,
		byID:      make(map[string]entity.Appointment),
		byInstant: make(map[int64]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: seed an empty collection so later reads succeed.
		if err := repo.persistLocked(); err != nil {
			return nil, fmt.Errorf("initialize appointments file: %w", err)
		}
		logger.Info("AppointmentRepository:New:Created", "path", path)
		return repo, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read appointments file: %w", err)
	}

	var appointments []entity.Appointment
	if err := json.Unmarshal(data, &appointments); err != nil {
		return nil, fmt.Errorf("parse appointments file %s: %w", path, err)
	}
	for _, a := range appointments {
		repo.byID[a.ID] = a
		repo.byInstant[a.StartInstant.Unix()] = a.ID
	}

	logger.Info("AppointmentRepository:New:Loaded", "path", path, "count", len(appointments))
	return repo, nil
}

func (r *AppointmentRepository) List(ctx context.Context) ([]entity.Appointment, *errors.AppError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointments := r.snapshotLocked()
	return appointments, nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*entity.Appointment, *errors.AppError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointment, ok := r.byID[id]
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, "Rendez-vous non trouvé", nil)
	}
	return &appointment, nil
}

// Create appends the appointment, failing with ErrAlreadyExists when another
// appointment shares the exact start instant. Insert and conflict check are
// atomic under the repository mutex.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) *errors.AppError {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := appointment.StartInstant.Unix()
	if _, taken := r.byInstant[key]; taken {
		return errors.NewAppError(errors.ErrAlreadyExists, "Ce créneau est déjà réservé", nil)
	}

	r.byID[appointment.ID] = *appointment
	r.byInstant[key] = appointment.ID

	if err := r.persistLocked(); err != nil {
		delete(r.byID, appointment.ID)
		delete(r.byInstant, key)
		logger.Error("AppointmentRepository:Create:Persist:Error", "error", err, "id", appointment.ID)
		return errors.NewAppError(errors.ErrPersistence, "Erreur lors de la création du rendez-vous", err)
	}
	return nil
}

// Delete removes and returns the appointment, or reports not found.
func (r *AppointmentRepository) Delete(ctx context.Context, id string) (*entity.Appointment, *errors.AppError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointment, ok := r.byID[id]
	if !ok {
		return nil, errors.NewAppError(errors.ErrNotFound, "Rendez-vous non trouvé", nil)
	}

	key := appointment.StartInstant.Unix()
	delete(r.byID, id)
	delete(r.byInstant, key)

	if err := r.persistLocked(); err != nil {
		r.byID[id] = appointment
		r.byInstant[key] = id
		logger.Error("AppointmentRepository:Delete:Persist:Error", "error", err, "id", id)
		return nil, errors.NewAppError(errors.ErrPersistence, "Erreur lors de l'annulation", err)
	}
	return &appointment, nil
}

// SetGoogleEventID records the external calendar reference after mirroring.
// This is the only post-creation mutation an appointment supports.
func (r *AppointmentRepository) SetGoogleEventID(ctx context.Context, id string, eventID string) *errors.AppError {
	r.mu.Lock()
	defer r.mu.Unlock()

	appointment, ok := r.byID[id]
	if !ok {
		return errors.NewAppError(errors.ErrNotFound, "Rendez-vous non trouvé", nil)
	}

	previous := appointment.GoogleEventID
	appointment.GoogleEventID = eventID
	r.byID[id] = appointment

	if err := r.persistLocked(); err != nil {
		appointment.GoogleEventID = previous
		r.byID[id] = appointment
		logger.Error("AppointmentRepository:SetGoogleEventID:Persist:Error", "error", err, "id", id)
		return errors.NewAppError(errors.ErrPersistence, "Erreur lors de la mise à jour du rendez-vous", err)
	}
	return nil
}

func (r *AppointmentRepository) snapshotLocked() []entity.Appointment {
	appointments := make([]entity.Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		appointments = append(appointments, a)
	}
	sort.Slice(appointments, func(i, j int) bool {
		return appointments[i].StartInstant.Before(appointments[j].StartInstant)
	})
	return appointments
}

// persistLocked rewrites the whole collection. Write goes to a temp file in
// the same directory, then an atomic rename replaces the previous version,
// so a crash mid-write never leaves a truncated store.
func (r *AppointmentRepository) persistLocked() error {
	data, err := json.MarshalIndent(r.snapshotLocked(), "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, fmt.Sprintf(".appointments-%d-*", time.Now().UnixNano()))
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
