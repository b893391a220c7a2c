package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/auroraskincare/clinic-booking/internal/domain/entities"
	apperrors "github.com/auroraskincare/clinic-booking/pkg/errors"
)

// runUpdate reloads an appointment from the store, lets the user edit it
// field by field and writes it back only after a final confirmation.
func (w *Workflow) runUpdate(ctx context.Context) {
	id := w.prompter.Line("\nEnter the appointment ID to update: ")
	if id == "" {
		return
	}

	appointment, err := w.repo.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			fmt.Fprintf(w.out, "No appointment found with ID %s\n", id)
			return
		}
		w.logger.Error().Err(err).Str("appointment_id", id).Msg("update lookup failed")
		fmt.Fprintln(w.out, "Could not load the appointment. Please try again.")
		return
	}

	fmt.Fprintln(w.out, "\nCurrent appointment details:")
	w.renderer.Details(appointment)

	for {
		action := w.editField(ctx, appointment)
		if action == editAbort {
			return
		}
		if action == editDone {
			break
		}

		w.booking.Recalculate(appointment)
		fmt.Fprintln(w.out, "\nUpdated appointment details:")
		w.renderer.Details(appointment)

		if !w.prompter.Confirm("Do you want to continue updating?") {
			break
		}
	}

	if !w.prompter.Confirm("Do you want to update your appointment with these new details?") {
		fmt.Fprintln(w.out, "Update canceled.")
		return
	}

	if err := w.booking.Update(ctx, appointment); err != nil {
		fmt.Fprintln(w.out, "Could not update the appointment. Please try again.")
		return
	}

	saved, err := w.repo.GetByID(ctx, appointment.ID)
	if err != nil {
		w.logger.Error().Err(err).Str("appointment_id", appointment.ID).Msg("reload after update failed")
		fmt.Fprintln(w.out, "Appointment updated successfully!")
		return
	}
	fmt.Fprintln(w.out, "\nAppointment updated successfully!")
	w.renderer.Invoice(saved)
}

type editAction int

const (
	editApplied editAction = iota
	editDone
	editAbort
)

// editField applies one edit from the update menu.
func (w *Workflow) editField(ctx context.Context, appointment *entities.Appointment) editAction {
	fmt.Fprintln(w.out, "\n--- Update Menu ---")
	fmt.Fprintln(w.out, "1. Dermatologist")
	fmt.Fprintln(w.out, "2. Date")
	fmt.Fprintln(w.out, "3. Time Slot")
	fmt.Fprintln(w.out, "4. Treatments")
	fmt.Fprintln(w.out, "5. Done")

	choice, ok := w.prompter.Int("Select the field to update: ")
	if w.prompter.EOF() {
		return editAbort
	}
	if !ok {
		fmt.Fprintln(w.out, "Invalid option. Please try again.")
		return editApplied
	}

	switch choice {
	case 1:
		dermatologist, ok := w.chooseDermatologist()
		if !ok {
			return editApplied
		}
		if !appointment.SameSlot(appointment.Date, appointment.Time, dermatologist) {
			available, err := w.booking.SlotAvailable(ctx, appointment.Date, appointment.Time, dermatologist)
			if err != nil {
				w.logger.Error().Err(err).Msg("slot availability check failed")
				fmt.Fprintln(w.out, "Could not check the slot. Please try again.")
				return editApplied
			}
			if !available {
				fmt.Fprintln(w.out, "This dermatologist is already booked at this time. Please choose another.")
				return editApplied
			}
		}
		appointment.Dermatologist = dermatologist
	case 2:
		date, slot, ok := w.chooseUpdateSlot(ctx, appointment, "")
		if !ok {
			return editApplied
		}
		appointment.Date = date
		appointment.Time = slot
	case 3:
		// Keep the date, pick a new slot on it.
		_, slot, ok := w.chooseUpdateSlot(ctx, appointment, appointment.Date)
		if !ok {
			return editApplied
		}
		appointment.Time = slot
	case 4:
		treatments := w.chooseUpdateTreatments()
		if len(treatments) == 0 {
			fmt.Fprintln(w.out, "Treatment selection unchanged.")
			return editApplied
		}
		appointment.Treatments = treatments
	case 5:
		return editDone
	default:
		fmt.Fprintln(w.out, "Invalid option. Please try again.")
	}
	return editApplied
}

// chooseUpdateSlot picks a slot for the update flow. When fixedDate is
// set only the time changes. The slot the appointment already holds
// counts as free so the user can keep it.
func (w *Workflow) chooseUpdateSlot(ctx context.Context, appointment *entities.Appointment, fixedDate string) (string, string, bool) {
	date := fixedDate
	if date == "" {
		date = w.prompter.Line("\nEnter the new date (yyyy-MM-dd): ")
		if w.prompter.EOF() {
			return "", "", false
		}
	}

	slots, weekday, err := w.schedule.SlotsForDate(date)
	if err != nil {
		fmt.Fprintln(w.out, "Invalid date format. Please enter the date in yyyy-MM-dd format.")
		return "", "", false
	}
	if len(slots) == 0 {
		fmt.Fprintf(w.out, "No available slots on %s. Choose another day.\n", weekday)
		return "", "", false
	}

	fmt.Fprintf(w.out, "\nAvailable time slots on %s (%s):\n", date, weekday)
	for i, slot := range slots {
		fmt.Fprintf(w.out, "%d. %s\n", i+1, slot.Label())
	}

	choice, ok := w.prompter.Int("Select a time slot: ")
	if !ok || choice < 1 || choice > len(slots) {
		fmt.Fprintln(w.out, "Invalid slot selection.")
		return "", "", false
	}

	slot := slots[choice-1].StorageTime()
	if appointment.SameSlot(date, slot, appointment.Dermatologist) {
		return date, slot, true
	}

	available, err := w.booking.SlotAvailable(ctx, date, slot, appointment.Dermatologist)
	if err != nil {
		w.logger.Error().Err(err).Msg("slot availability check failed")
		fmt.Fprintln(w.out, "Could not check the slot. Please try again.")
		return "", "", false
	}
	if !available {
		fmt.Fprintln(w.out, "This time slot is already booked. Please select another slot.")
		return "", "", false
	}
	return date, slot, true
}

// chooseUpdateTreatments replaces the treatment list with a numbered
// comma-separated pick from the price list.
func (w *Workflow) chooseUpdateTreatments() []string {
	names := w.pricing.Names()
	fmt.Fprintln(w.out, "\n--- Treatments ---")
	for i, name := range names {
		fmt.Fprintf(w.out, "%d. %-20s LKR %s\n", i+1, name, w.pricing.Price(name).StringFixed(2))
	}

	answer := w.prompter.Line("Enter treatment numbers separated by commas (e.g. 1,3): ")
	var treatments []string
	for _, field := range strings.Split(answer, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		index, err := strconv.Atoi(field)
		if err != nil || index < 1 || index > len(names) {
			fmt.Fprintf(w.out, "Ignoring invalid selection %q.\n", field)
			continue
		}
		treatments = append(treatments, names[index-1])
	}
	return treatments
}
