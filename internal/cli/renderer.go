package cli

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/auroraskincare/clinic-booking/internal/application/services"
	"github.com/auroraskincare/clinic-booking/internal/domain/entities"
)

var decimalHundred = decimal.NewFromInt(100)

// Renderer prints appointments and invoices. The same cost breakdown
// serves the booking confirmation, search results, day views and update
// summaries.
type Renderer struct {
	out        io.Writer
	pricing    *services.PricingService
	clinicName string
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, pricing *services.PricingService, clinicName string) *Renderer {
	return &Renderer{out: out, pricing: pricing, clinicName: clinicName}
}

// Invoice renders the full booking confirmation with a fresh invoice
// reference.
func (r *Renderer) Invoice(appointment *entities.Appointment) {
	fmt.Fprintf(r.out, "\n--- Invoice ---\n")
	fmt.Fprintf(r.out, "Invoice Ref: %s\n", uuid.NewString())
	r.Details(appointment)
	fmt.Fprintf(r.out, "Thank you for choosing %s. We look forward to your visit!\n\n", r.clinicName)
}

// Details renders the appointment header and its cost breakdown.
func (r *Renderer) Details(appointment *entities.Appointment) {
	fmt.Fprintf(r.out, "Appointment ID: %s\n", appointment.ID)
	fmt.Fprintf(r.out, "Patient NIC: %s\n", appointment.Patient.NIC)
	fmt.Fprintf(r.out, "Patient Name: %s\n", appointment.Patient.Name)
	fmt.Fprintf(r.out, "Patient Email: %s\n", appointment.Patient.Email)
	fmt.Fprintf(r.out, "Patient Phone: %s\n", appointment.Patient.Phone)
	fmt.Fprintf(r.out, "Doctor: %s\n", appointment.Dermatologist)
	fmt.Fprintf(r.out, "Date: %s\n", appointment.Date)
	fmt.Fprintf(r.out, "Time Slot: %s\n", appointment.Time)
	r.costBreakdown(appointment)
}

func (r *Renderer) costBreakdown(appointment *entities.Appointment) {
	subtotal := r.pricing.Subtotal(appointment.Treatments)
	taxPercent := r.pricing.TaxRate().Mul(decimalHundred)

	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Item", "Amount (LKR)"})
	table.SetBorder(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, treatment := range appointment.Treatments {
		table.Append([]string{treatment, r.pricing.Price(treatment).StringFixed(2)})
	}
	table.Append([]string{"Registration Fee", r.pricing.RegistrationFee().StringFixed(2)})
	table.Append([]string{fmt.Sprintf("Tax (%s%%)", taxPercent.String()), r.pricing.Tax(subtotal).StringFixed(2)})
	table.Append([]string{"Total", appointment.TotalCost.StringFixed(2)})
	table.Render()
	fmt.Fprintln(r.out)
}

// SearchResults renders every matched appointment, or a no-match notice.
func (r *Renderer) SearchResults(appointments []*entities.Appointment) {
	if len(appointments) == 0 {
		fmt.Fprintln(r.out, "No appointments found for the given search term.")
		return
	}
	fmt.Fprintf(r.out, "\nFound %d appointment(s):\n\n", len(appointments))
	for _, appointment := range appointments {
		r.Details(appointment)
	}
}

// DayView renders all appointments booked on one date.
func (r *Renderer) DayView(date string, appointments []*entities.Appointment) {
	if len(appointments) == 0 {
		fmt.Fprintf(r.out, "No appointments found on %s\n", date)
		return
	}
	fmt.Fprintf(r.out, "\nAppointments on %s:\n\n", date)
	for _, appointment := range appointments {
		r.Details(appointment)
	}
}
