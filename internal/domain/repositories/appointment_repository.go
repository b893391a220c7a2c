package repositories

import (
	"context"

	"github.com/auroraskincare/clinic-booking/internal/domain/entities"
)

// SaveStatus tags the outcome of a Save call. A duplicate is not an
// error: the caller has to branch on it and tell the user.
type SaveStatus string

const (
	SaveStatusSaved     SaveStatus = "saved"
	SaveStatusDuplicate SaveStatus = "duplicate"
)

// SaveOutcome reports what Save did. ID is set only when Status is saved.
type SaveOutcome struct {
	Status SaveStatus
	ID     string
}

// AppointmentRepository is the persistence contract for bookings.
//
// Two different keys are in play: Exists guards duplicates by
// (date, time, patient NIC) while SlotTaken guards double-booking by
// (date, time, dermatologist). Both are checked against persisted rows.
type AppointmentRepository interface {
	// Exists reports whether the patient already has an appointment at
	// the given date and time.
	Exists(ctx context.Context, date, timeOfDay, nic string) (bool, error)

	// SlotTaken reports whether the dermatologist is already booked for
	// the given date and time.
	SlotTaken(ctx context.Context, date, timeOfDay, dermatologist string) (bool, error)

	// Save inserts the appointment unless Exists is true for its
	// (date, time, NIC) triple, in which case it reports a duplicate
	// without touching the table.
	Save(ctx context.Context, appointment *entities.Appointment) (SaveOutcome, error)

	// LastID returns the highest assigned appointment id. The second
	// return is false when the table is empty.
	LastID(ctx context.Context) (int, bool, error)

	// GetByID fetches one appointment, or a not-found error.
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// Search dispatches on the shape of term: all digits is an exact id
	// lookup, a yyyy-MM-dd literal is an exact date match, anything else
	// is a case-insensitive substring match on the patient name.
	Search(ctx context.Context, term string) ([]*entities.Appointment, error)

	// Update overwrites every column of the row matching the
	// appointment's id.
	Update(ctx context.Context, appointment *entities.Appointment) error

	// ListByDate returns all appointments on a calendar date, ordered by
	// time of day.
	ListByDate(ctx context.Context, date string) ([]*entities.Appointment, error)
}
