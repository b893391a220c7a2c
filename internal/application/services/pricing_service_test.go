package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/auroraskincare/clinic-booking/internal/application/services"
	"github.com/auroraskincare/clinic-booking/pkg/config"
)

func defaultClinic() config.ClinicConfig {
	return config.ClinicConfig{
		Name:            "Aurora Skin Care",
		Dermatologists:  []string{"Dr. Ariyathunga", "Dr. Jayaweera"},
		RegistrationFee: decimal.RequireFromString("500.00"),
		TaxRate:         decimal.RequireFromString("0.025"),
	}
}

func TestTotal_NoTreatments(t *testing.T) {
	pricing := services.NewPricingService(defaultClinic())

	assert.Equal(t, "500.00", pricing.Total(nil).StringFixed(2))
}

func TestTotal_SingleTreatment(t *testing.T) {
	pricing := services.NewPricingService(defaultClinic())

	// 500 + 2750 + 2750*0.025 = 3318.75
	assert.Equal(t, "3318.75", pricing.Total([]string{"Acne Treatment"}).StringFixed(2))
}

func TestTotal_MultipleTreatments(t *testing.T) {
	pricing := services.NewPricingService(defaultClinic())

	// 500 + (2750+3850) + 6600*0.025 = 7265.00
	total := pricing.Total([]string{"Acne Treatment", "Mole Removal"})
	assert.Equal(t, "7265.00", total.StringFixed(2))
}

func TestTotal_UnknownTreatmentPricesAtZero(t *testing.T) {
	pricing := services.NewPricingService(defaultClinic())

	assert.Equal(t, "500.00", pricing.Total([]string{"Botox"}).StringFixed(2))
}

func TestTotal_RoundsUpToNextCent(t *testing.T) {
	clinic := defaultClinic()
	clinic.RegistrationFee = decimal.RequireFromString("100.001")
	pricing := services.NewPricingService(clinic)

	// 100.001 would round to 100.00 with nearest rounding; the clinic
	// always rounds up.
	assert.Equal(t, "100.01", pricing.Total(nil).StringFixed(2))
}

func TestSubtotalAndTax(t *testing.T) {
	pricing := services.NewPricingService(defaultClinic())

	subtotal := pricing.Subtotal([]string{"Skin Whitening", "Laser Treatment"})
	assert.Equal(t, "20150.00", subtotal.StringFixed(2))
	assert.Equal(t, "503.75", pricing.Tax(subtotal).StringFixed(2))
}

func TestKnownAndNames(t *testing.T) {
	pricing := services.NewPricingService(defaultClinic())

	assert.True(t, pricing.Known("Laser Treatment"))
	assert.False(t, pricing.Known("laser treatment"))
	assert.Equal(t,
		[]string{"Acne Treatment", "Skin Whitening", "Mole Removal", "Laser Treatment"},
		pricing.Names(),
	)
}

func TestPrice_Unknown(t *testing.T) {
	pricing := services.NewPricingService(defaultClinic())

	assert.True(t, pricing.Price("Cryotherapy").IsZero())
}
