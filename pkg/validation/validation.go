package validation

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/auroraskincare/clinic-booking/internal/domain/entities"
	apperrors "github.com/auroraskincare/clinic-booking/pkg/errors"
)

var validate *validator.Validate

var (
	// Sri Lankan NIC: nine digits followed by V or v.
	nicPattern   = regexp.MustCompile(`^\d{9}[Vv]$`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@.+$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("nic", validateNIC)
	validate.RegisterValidation("person_name", validatePersonName)
	validate.RegisterValidation("phone10", validatePhone)
	validate.RegisterValidation("simple_email", validateEmail)
}

// ValidatePatient checks every patient field and returns a validation
// error naming the first field that failed.
func ValidatePatient(p *entities.Patient) error {
	if err := validate.Struct(p); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			return apperrors.NewValidationError(fmt.Sprintf("invalid patient %s", fieldErrs[0].Field()))
		}
		return apperrors.NewValidationError("invalid patient details")
	}
	return nil
}

func validateNIC(fl validator.FieldLevel) bool {
	return nicPattern.MatchString(fl.Field().String())
}

func validatePersonName(fl validator.FieldLevel) bool {
	return namePattern.MatchString(fl.Field().String())
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func validateEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

// Per-field predicates for prompt-by-prompt checks in the console flow.

// IsValidNIC reports whether nic is nine digits followed by V or v.
func IsValidNIC(nic string) bool { return nicPattern.MatchString(nic) }

// IsValidName reports whether name contains only letters and whitespace.
func IsValidName(name string) bool { return namePattern.MatchString(name) }

// IsValidPhone reports whether phone is exactly ten digits.
func IsValidPhone(phone string) bool { return phonePattern.MatchString(phone) }

// IsValidEmail reports whether email has a local@domain shape.
func IsValidEmail(email string) bool { return emailPattern.MatchString(email) }
