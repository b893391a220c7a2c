package entities

import (
	"github.com/shopspring/decimal"
)

// Patient holds the contact details collected for a booking. A patient
// has no lifecycle of its own; it is owned by exactly one appointment.
type Patient struct {
	NIC   string `json:"nic" db:"patient_nic" validate:"required,nic"`
	Name  string `json:"name" db:"patient_name" validate:"required,person_name"`
	Email string `json:"email" db:"patient_email" validate:"required,simple_email"`
	Phone string `json:"phone" db:"patient_phone" validate:"required,phone10"`
}

// Appointment represents one dermatology booking. Date and Time are kept
// in their wire formats (yyyy-MM-dd and HH:mm) because the table stores
// them as text and every lookup is an exact string match.
type Appointment struct {
	ID            string          `json:"id" db:"id"`
	Patient       Patient         `json:"patient"`
	Date          string          `json:"date" db:"date"`
	Time          string          `json:"time" db:"time"`
	Dermatologist string          `json:"dermatologist" db:"dermatologist"`
	Treatments    []string        `json:"treatments"`
	TotalCost     decimal.Decimal `json:"total_cost" db:"total_cost"`
}

// SameSlot reports whether the appointment occupies the given
// date/time/dermatologist combination.
func (a *Appointment) SameSlot(date, timeOfDay, dermatologist string) bool {
	return a.Date == date && a.Time == timeOfDay && a.Dermatologist == dermatologist
}
