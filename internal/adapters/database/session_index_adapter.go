package database

import (
	"context"

	"github.com/auroraskincare/clinic-booking/internal/domain/entities"
	"github.com/auroraskincare/clinic-booking/internal/domain/repositories"
)

// SessionIndexedRepository wraps a repository with an in-memory index of
// the appointments seen during the current console session, keyed by
// date. The index answers day views and positive slot-conflict probes
// without a round trip, but the wrapped store stays the source of truth:
// a miss always falls through to it.
type SessionIndexedRepository struct {
	inner  repositories.AppointmentRepository
	byDate map[string][]*entities.Appointment
	loaded map[string]bool
}

// NewSessionIndexedRepository creates the session index decorator.
func NewSessionIndexedRepository(inner repositories.AppointmentRepository) *SessionIndexedRepository {
	return &SessionIndexedRepository{
		inner:  inner,
		byDate: make(map[string][]*entities.Appointment),
		loaded: make(map[string]bool),
	}
}

// Exists delegates to the wrapped store.
func (r *SessionIndexedRepository) Exists(ctx context.Context, date, timeOfDay, nic string) (bool, error) {
	return r.inner.Exists(ctx, date, timeOfDay, nic)
}

// SlotTaken answers from the session index when it already knows the
// slot is occupied, otherwise asks the store.
func (r *SessionIndexedRepository) SlotTaken(ctx context.Context, date, timeOfDay, dermatologist string) (bool, error) {
	for _, appointment := range r.byDate[date] {
		if appointment.SameSlot(date, timeOfDay, dermatologist) {
			return true, nil
		}
	}
	return r.inner.SlotTaken(ctx, date, timeOfDay, dermatologist)
}

// Save delegates to the store and indexes the appointment when it was
// actually inserted. The date is marked stale so the next day view
// refetches it in time order instead of serving the appended entry last.
func (r *SessionIndexedRepository) Save(ctx context.Context, appointment *entities.Appointment) (repositories.SaveOutcome, error) {
	outcome, err := r.inner.Save(ctx, appointment)
	if err != nil {
		return outcome, err
	}
	if outcome.Status == repositories.SaveStatusSaved {
		r.byDate[appointment.Date] = append(r.byDate[appointment.Date], appointment)
		delete(r.loaded, appointment.Date)
	}
	return outcome, nil
}

// LastID delegates to the wrapped store.
func (r *SessionIndexedRepository) LastID(ctx context.Context) (int, bool, error) {
	return r.inner.LastID(ctx)
}

// GetByID delegates to the wrapped store.
func (r *SessionIndexedRepository) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	return r.inner.GetByID(ctx, id)
}

// Search delegates to the wrapped store.
func (r *SessionIndexedRepository) Search(ctx context.Context, term string) ([]*entities.Appointment, error) {
	return r.inner.Search(ctx, term)
}

// Update delegates to the store and drops the index, since an edit can
// move an appointment between dates.
func (r *SessionIndexedRepository) Update(ctx context.Context, appointment *entities.Appointment) error {
	if err := r.inner.Update(ctx, appointment); err != nil {
		return err
	}
	r.byDate = make(map[string][]*entities.Appointment)
	r.loaded = make(map[string]bool)
	return nil
}

// ListByDate serves repeated day views from the index once the date has
// been loaded during this session.
func (r *SessionIndexedRepository) ListByDate(ctx context.Context, date string) ([]*entities.Appointment, error) {
	if r.loaded[date] {
		return r.byDate[date], nil
	}

	appointments, err := r.inner.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	r.byDate[date] = appointments
	r.loaded[date] = true
	return appointments, nil
}

var _ repositories.AppointmentRepository = (*SessionIndexedRepository)(nil)
