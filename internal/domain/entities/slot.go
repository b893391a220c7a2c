package entities

import (
	"fmt"
	"time"
)

// Slot is a bookable 15-minute window, identified by its start time.
// Only the time of day is meaningful; the date portion is a fixed anchor.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// StorageTime returns the start time in the HH:mm form the table stores.
func (s Slot) StorageTime() string {
	return s.Start.Format("15:04")
}

// Label renders the slot the way the booking menu displays it.
func (s Slot) Label() string {
	return fmt.Sprintf("%s - %s", s.Start.Format("03:04 PM"), s.End.Format("03:04 PM"))
}
