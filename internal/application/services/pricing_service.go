package services

import (
	"github.com/shopspring/decimal"

	"github.com/auroraskincare/clinic-booking/pkg/config"
)

// PricingService computes invoice totals from the clinic's treatment
// price list. The registration fee and tax rate come from configuration;
// prices are in LKR.
type PricingService struct {
	registrationFee decimal.Decimal
	taxRate         decimal.Decimal
	prices          map[string]decimal.Decimal
	names           []string
}

// DefaultPriceList returns the clinic's treatment menu in display order.
func DefaultPriceList() ([]string, map[string]decimal.Decimal) {
	names := []string{"Acne Treatment", "Skin Whitening", "Mole Removal", "Laser Treatment"}
	prices := map[string]decimal.Decimal{
		"Acne Treatment":  decimal.NewFromInt(2750),
		"Skin Whitening":  decimal.NewFromInt(7650),
		"Mole Removal":    decimal.NewFromInt(3850),
		"Laser Treatment": decimal.NewFromInt(12500),
	}
	return names, prices
}

// NewPricingService creates a pricing service from the clinic config and
// the default price list.
func NewPricingService(cfg config.ClinicConfig) *PricingService {
	names, prices := DefaultPriceList()
	return &PricingService{
		registrationFee: cfg.RegistrationFee,
		taxRate:         cfg.TaxRate,
		prices:          prices,
		names:           names,
	}
}

// Names returns the treatment names in menu order.
func (s *PricingService) Names() []string {
	return s.names
}

// Known reports whether name is on the price list.
func (s *PricingService) Known(name string) bool {
	_, ok := s.prices[name]
	return ok
}

// Price returns the list price for a treatment. Unknown treatments price
// at zero rather than failing; entry paths reject them before they reach
// an invoice.
func (s *PricingService) Price(name string) decimal.Decimal {
	if price, ok := s.prices[name]; ok {
		return price
	}
	return decimal.Zero
}

// RegistrationFee returns the fixed per-booking surcharge.
func (s *PricingService) RegistrationFee() decimal.Decimal {
	return s.registrationFee
}

// TaxRate returns the tax rate applied to treatment subtotals.
func (s *PricingService) TaxRate() decimal.Decimal {
	return s.taxRate
}

// Subtotal sums the list prices of the selected treatments.
func (s *PricingService) Subtotal(treatments []string) decimal.Decimal {
	subtotal := decimal.Zero
	for _, treatment := range treatments {
		subtotal = subtotal.Add(s.Price(treatment))
	}
	return subtotal
}

// Tax returns the tax due on a treatment subtotal. The registration fee
// is not taxed.
func (s *PricingService) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(s.taxRate)
}

// Total computes the invoice total: registration fee plus treatment
// subtotal plus tax, rounded UP to the next cent. Rounding up is a
// business rule, not float hygiene.
func (s *PricingService) Total(treatments []string) decimal.Decimal {
	subtotal := s.Subtotal(treatments)
	total := s.registrationFee.Add(subtotal).Add(s.Tax(subtotal))
	return total.RoundCeil(2)
}
