package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/auroraskincare/clinic-booking/internal/application/services"
	"github.com/auroraskincare/clinic-booking/internal/domain/repositories"
	"github.com/auroraskincare/clinic-booking/pkg/config"
)

// Workflow drives the interactive console session. All I/O goes through
// the injected streams so the whole session can be scripted in tests.
type Workflow struct {
	clinic   config.ClinicConfig
	prompter *Prompter
	out      io.Writer
	repo     repositories.AppointmentRepository
	booking  *services.BookingService
	schedule *services.ScheduleService
	pricing  *services.PricingService
	renderer *Renderer
	logger   zerolog.Logger
}

// NewWorkflow wires the interactive session.
func NewWorkflow(
	clinic config.ClinicConfig,
	in io.Reader,
	out io.Writer,
	repo repositories.AppointmentRepository,
	booking *services.BookingService,
	schedule *services.ScheduleService,
	pricing *services.PricingService,
	logger zerolog.Logger,
) *Workflow {
	return &Workflow{
		clinic:   clinic,
		prompter: NewPrompter(in, out),
		out:      out,
		repo:     repo,
		booking:  booking,
		schedule: schedule,
		pricing:  pricing,
		renderer: NewRenderer(out, pricing, clinic.Name),
		logger:   logger,
	}
}

// Run loops on the main menu until the user exits or input ends.
func (w *Workflow) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(w.out, "\n=== %s ===\n", w.clinic.Name)
		fmt.Fprintln(w.out, "1. Make an Appointment")
		fmt.Fprintln(w.out, "2. Search Appointments")
		fmt.Fprintln(w.out, "3. Update Appointment")
		fmt.Fprintln(w.out, "4. View Appointments by Date")
		fmt.Fprintln(w.out, "5. Exit")

		choice, ok := w.prompter.Int("Select an option: ")
		if w.prompter.EOF() {
			return nil
		}
		if !ok {
			fmt.Fprintln(w.out, "Invalid option. Please try again.")
			continue
		}

		switch choice {
		case 1:
			w.runBooking(ctx)
		case 2:
			w.runSearch(ctx)
		case 3:
			w.runUpdate(ctx)
		case 4:
			w.runDayView(ctx)
		case 5:
			fmt.Fprintln(w.out, "Exiting...")
			return nil
		default:
			fmt.Fprintln(w.out, "Invalid option. Please try again.")
		}
	}
}

// chooseDermatologist presents the configured roster as a numbered menu.
func (w *Workflow) chooseDermatologist() (string, bool) {
	fmt.Fprintln(w.out, "\n--- Select Dermatologist ---")
	for i, name := range w.clinic.Dermatologists {
		fmt.Fprintf(w.out, "%d. %s\n", i+1, name)
	}

	choice, ok := w.prompter.Int("Enter choice: ")
	if !ok || choice < 1 || choice > len(w.clinic.Dermatologists) {
		fmt.Fprintln(w.out, "Invalid choice for dermatologist.")
		return "", false
	}
	return w.clinic.Dermatologists[choice-1], true
}

// runDayView lists everything booked on one date.
func (w *Workflow) runDayView(ctx context.Context) {
	date := w.prompter.Line("\nEnter the date (yyyy-MM-dd) to view appointments: ")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		fmt.Fprintln(w.out, "Invalid date format. Please enter the date in yyyy-MM-dd format.")
		return
	}

	appointments, err := w.repo.ListByDate(ctx, date)
	if err != nil {
		w.logger.Error().Err(err).Str("date", date).Msg("day view failed")
		fmt.Fprintln(w.out, "Could not load appointments. Please try again.")
		return
	}
	w.renderer.DayView(date, appointments)
}

// runSearch looks up appointments by id, date or patient name.
func (w *Workflow) runSearch(ctx context.Context) {
	term := w.prompter.Line("\nEnter appointment ID, date or patient name to search: ")
	if term == "" {
		fmt.Fprintln(w.out, "Nothing to search for.")
		return
	}

	appointments, err := w.repo.Search(ctx, term)
	if err != nil {
		w.logger.Error().Err(err).Str("term", term).Msg("search failed")
		fmt.Fprintln(w.out, "Search failed. Please try again.")
		return
	}
	w.renderer.SearchResults(appointments)
}
