package services

import (
	"strings"
	"time"

	"github.com/auroraskincare/clinic-booking/internal/domain/entities"
	apperrors "github.com/auroraskincare/clinic-booking/pkg/errors"
)

const slotLength = 15 * time.Minute

// clinicWindow is a consulting window on one weekday. Times are minutes
// from midnight; the end is exclusive as a slot start.
type clinicWindow struct {
	startHour, startMinute int
	endHour, endMinute     int
}

// ScheduleService generates the bookable slots for each weekday from the
// clinic's fixed consulting windows.
type ScheduleService struct {
	windows map[time.Weekday]clinicWindow
}

// NewScheduleService creates a schedule service with the clinic's
// consulting hours.
func NewScheduleService() *ScheduleService {
	return &ScheduleService{
		windows: map[time.Weekday]clinicWindow{
			time.Monday:    {10, 0, 13, 0},
			time.Wednesday: {14, 0, 17, 0},
			time.Friday:    {16, 0, 20, 0},
			time.Saturday:  {9, 0, 13, 0},
		},
	}
}

// SlotsFor returns the ordered 15-minute slots for a weekday. Days
// without a consulting window yield an empty sequence.
func (s *ScheduleService) SlotsFor(day time.Weekday) []entities.Slot {
	window, ok := s.windows[day]
	if !ok {
		return nil
	}

	start := timeOfDay(window.startHour, window.startMinute)
	end := timeOfDay(window.endHour, window.endMinute)

	var slots []entities.Slot
	for cursor := start; cursor.Before(end); cursor = cursor.Add(slotLength) {
		slots = append(slots, entities.Slot{Start: cursor, End: cursor.Add(slotLength)})
	}
	return slots
}

// SlotsForDay resolves a weekday by name, case-insensitively.
func (s *ScheduleService) SlotsForDay(name string) ([]entities.Slot, error) {
	day, err := parseWeekday(name)
	if err != nil {
		return nil, err
	}
	return s.SlotsFor(day), nil
}

// SlotsForDate parses a yyyy-MM-dd date and returns its slots along with
// the resolved weekday.
func (s *ScheduleService) SlotsForDate(date string) ([]entities.Slot, time.Weekday, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, 0, apperrors.NewValidationError("invalid date, expected yyyy-MM-dd")
	}
	return s.SlotsFor(parsed.Weekday()), parsed.Weekday(), nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), name) {
			return day, nil
		}
	}
	return 0, apperrors.NewValidationError("unknown weekday " + name)
}

// timeOfDay anchors a clock time on a fixed date; only the formatted
// time portion is ever used.
func timeOfDay(hour, minute int) time.Time {
	return time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC)
}
