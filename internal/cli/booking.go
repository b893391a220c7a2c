package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/auroraskincare/clinic-booking/internal/domain/entities"
	"github.com/auroraskincare/clinic-booking/internal/domain/repositories"
	"github.com/auroraskincare/clinic-booking/pkg/validation"
)

// runBooking walks the full make-appointment dialogue: dermatologist,
// date, slot, registration fee confirmation, treatments, patient details.
func (w *Workflow) runBooking(ctx context.Context) {
	dermatologist, ok := w.chooseDermatologist()
	if !ok {
		return
	}

	date, slot, ok := w.chooseSlot(ctx, dermatologist)
	if !ok {
		return
	}

	fmt.Fprintf(w.out, "\nA registration fee of LKR %s is required to make the appointment.\n",
		w.pricing.RegistrationFee().StringFixed(2))
	if !strings.EqualFold(w.prompter.Line("Confirm by typing 'yes' to proceed: "), "yes") {
		fmt.Fprintln(w.out, "Registration fee not accepted. Appointment not made.")
		return
	}

	// An empty selection is a valid registration-fee-only booking.
	treatments := w.chooseTreatments()

	patient, ok := w.collectPatient()
	if !ok {
		return
	}

	id, err := w.booking.NextID(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("failed to derive next appointment id")
		fmt.Fprintln(w.out, "Could not make the appointment. Please try again.")
		return
	}

	appointment := &entities.Appointment{
		ID:            id,
		Patient:       patient,
		Date:          date,
		Time:          slot,
		Dermatologist: dermatologist,
		Treatments:    treatments,
	}

	outcome, err := w.booking.Book(ctx, appointment)
	if err != nil {
		w.logger.Error().Err(err).Msg("booking failed")
		fmt.Fprintln(w.out, "Could not make the appointment. Please try again.")
		return
	}

	switch outcome.Status {
	case repositories.SaveStatusSaved:
		fmt.Fprintln(w.out, "\nAppointment made successfully!")
		w.renderer.Invoice(appointment)
	case repositories.SaveStatusDuplicate:
		fmt.Fprintln(w.out, "\nAn identical appointment already exists for this patient. Nothing was saved.")
	}
}

// chooseSlot prompts for a consulting date and one of its free slots.
// Occupied slots are rejected and the selection re-prompted.
func (w *Workflow) chooseSlot(ctx context.Context, dermatologist string) (string, string, bool) {
	for {
		date := w.prompter.Line("\nEnter Date (yyyy-MM-dd): ")
		if w.prompter.EOF() {
			return "", "", false
		}

		slots, weekday, err := w.schedule.SlotsForDate(date)
		if err != nil {
			fmt.Fprintln(w.out, "Invalid date format. Please enter the date in yyyy-MM-dd format.")
			continue
		}
		if len(slots) == 0 {
			fmt.Fprintf(w.out, "No available slots on %s. Choose another day.\n", weekday)
			continue
		}

		fmt.Fprintf(w.out, "\nAvailable time slots on %s (%s):\n", date, weekday)
		for i, slot := range slots {
			fmt.Fprintf(w.out, "%d. %s\n", i+1, slot.Label())
		}

		for {
			choice, ok := w.prompter.Int("Select a time slot: ")
			if w.prompter.EOF() {
				return "", "", false
			}
			if !ok || choice < 1 || choice > len(slots) {
				fmt.Fprintln(w.out, "Invalid slot selection.")
				continue
			}

			slot := slots[choice-1].StorageTime()
			available, err := w.booking.SlotAvailable(ctx, date, slot, dermatologist)
			if err != nil {
				w.logger.Error().Err(err).Msg("slot availability check failed")
				fmt.Fprintln(w.out, "Could not check the slot. Please try again.")
				continue
			}
			if !available {
				fmt.Fprintln(w.out, "This time slot is already booked. Please select another slot.")
				continue
			}
			return date, slot, true
		}
	}
}

// chooseTreatments collects treatment names until the user types done.
func (w *Workflow) chooseTreatments() []string {
	fmt.Fprintln(w.out, "\n--- Treatments ---")
	for _, name := range w.pricing.Names() {
		fmt.Fprintf(w.out, "%-20s LKR %s\n", name, w.pricing.Price(name).StringFixed(2))
	}

	var treatments []string
	for {
		name := w.prompter.Line("Enter treatment name (or 'done' to finish): ")
		if w.prompter.EOF() || strings.EqualFold(name, "done") {
			return treatments
		}
		if !w.pricing.Known(name) {
			fmt.Fprintln(w.out, "Invalid treatment name.")
			continue
		}
		treatments = append(treatments, name)
	}
}

// collectPatient prompts for the four patient fields, validating each
// answer before moving on. A bad answer aborts the booking.
func (w *Workflow) collectPatient() (entities.Patient, bool) {
	fmt.Fprintln(w.out, "\n--- Patient Details ---")

	nic := w.prompter.Line("Enter NIC: ")
	if !validation.IsValidNIC(nic) {
		fmt.Fprintln(w.out, "Invalid NIC. Appointment not made.")
		return entities.Patient{}, false
	}

	name := w.prompter.Line("Enter Name: ")
	if !validation.IsValidName(name) {
		fmt.Fprintln(w.out, "Invalid Name. Appointment not made.")
		return entities.Patient{}, false
	}

	email := w.prompter.Line("Enter Email: ")
	if !validation.IsValidEmail(email) {
		fmt.Fprintln(w.out, "Invalid Email. Appointment not made.")
		return entities.Patient{}, false
	}

	phone := w.prompter.Line("Enter Phone: ")
	if !validation.IsValidPhone(phone) {
		fmt.Fprintln(w.out, "Invalid Phone. Appointment not made.")
		return entities.Patient{}, false
	}

	return entities.Patient{NIC: nic, Name: name, Email: email, Phone: phone}, true
}
