package services

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/auroraskincare/clinic-booking/internal/domain/entities"
	"github.com/auroraskincare/clinic-booking/internal/domain/repositories"
	apperrors "github.com/auroraskincare/clinic-booking/pkg/errors"
	"github.com/auroraskincare/clinic-booking/pkg/validation"
)

// BookingService orchestrates the booking and update workflows: id
// assignment, conflict checks, cost computation and persistence.
type BookingService struct {
	repo    repositories.AppointmentRepository
	pricing *PricingService
	logger  zerolog.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(repo repositories.AppointmentRepository, pricing *PricingService, logger zerolog.Logger) *BookingService {
	return &BookingService{
		repo:    repo,
		pricing: pricing,
		logger:  logger,
	}
}

// NextID derives the next appointment id from the highest persisted one.
// Not atomic; acceptable because one interactive user books at a time.
func (s *BookingService) NextID(ctx context.Context) (string, error) {
	last, found, err := s.repo.LastID(ctx)
	if err != nil {
		return "", err
	}
	if !found {
		return "1", nil
	}
	return strconv.Itoa(last + 1), nil
}

// SlotAvailable checks the persisted appointments for a conflicting
// booking of the same dermatologist.
func (s *BookingService) SlotAvailable(ctx context.Context, date, timeOfDay, dermatologist string) (bool, error) {
	taken, err := s.repo.SlotTaken(ctx, date, timeOfDay, dermatologist)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// Book validates the patient, re-checks the slot, computes the total and
// persists the appointment. The returned outcome distinguishes a saved
// booking from a duplicate skip.
func (s *BookingService) Book(ctx context.Context, appointment *entities.Appointment) (repositories.SaveOutcome, error) {
	if err := validation.ValidatePatient(&appointment.Patient); err != nil {
		return repositories.SaveOutcome{}, err
	}

	available, err := s.SlotAvailable(ctx, appointment.Date, appointment.Time, appointment.Dermatologist)
	if err != nil {
		return repositories.SaveOutcome{}, err
	}
	if !available {
		return repositories.SaveOutcome{}, apperrors.NewConflictError("time slot is already booked")
	}

	s.Recalculate(appointment)

	outcome, err := s.repo.Save(ctx, appointment)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to save appointment")
		return repositories.SaveOutcome{}, err
	}
	return outcome, nil
}

// Recalculate recomputes the appointment's total cost from its current
// treatment selection. Called after every field edit in the update flow.
func (s *BookingService) Recalculate(appointment *entities.Appointment) {
	appointment.TotalCost = s.pricing.Total(appointment.Treatments)
}

// Update recomputes the cost and overwrites the persisted row.
func (s *BookingService) Update(ctx context.Context, appointment *entities.Appointment) error {
	s.Recalculate(appointment)
	if err := s.repo.Update(ctx, appointment); err != nil {
		s.logger.Error().Err(err).Str("appointment_id", appointment.ID).Msg("failed to update appointment")
		return err
	}
	return nil
}
