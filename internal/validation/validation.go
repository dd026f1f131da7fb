// Package validation checks candidate records before any mutation and
// reports failures as a field→message map. It is pure: no I/O, no
// state beyond the compiled rule set.
package validation

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a form field name to a human-readable message.
// An empty map signals a valid candidate.
type FieldErrors map[string]string

// Valid reports whether no field failed.
func (f FieldErrors) Valid() bool { return len(f) == 0 }

// TicketForm is the candidate payload for ticket create and edit.
// Reporter, advisor and company carry ids of reference entities.
type TicketForm struct {
	Type        string `field:"type" validate:"required,oneof=SUPPORT INCIDENT INQUIRY"`
	ReporterID  string `field:"reporter" validate:"required"`
	Date        string `field:"date" validate:"required,datetime=2006-01-02"`
	Status      string `field:"status" validate:"required,oneof=OPEN IN_PROGRESS RESOLVED CLOSED"`
	AdvisorID   string `field:"advisor" validate:"required"`
	CompanyID   string `field:"company" validate:"required"`
	Description string `field:"description" validate:"required"`
}

// RegistrationForm is the candidate payload for account registration.
// Email is optional here; uniqueness of username/email is the auth
// module's concern since it needs the account collection.
type RegistrationForm struct {
	Username string `field:"username" validate:"required"`
	Email    string `field:"email" validate:"omitempty,email"`
	Secret   string `field:"secret" validate:"required"`
}

// ProfileForm is the candidate payload for profile update. A blank
// secret means the stored hash is kept unchanged.
type ProfileForm struct {
	Name   string `field:"name" validate:"required"`
	Email  string `field:"email" validate:"required,email"`
	Secret string `field:"secret" validate:"omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("field"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

var ticketRequired = map[string]string{
	"type":        "ticket type is required",
	"reporter":    "reporter is required",
	"date":        "date is required",
	"status":      "status is required",
	"advisor":     "assigned advisor is required",
	"company":     "company is required",
	"description": "description is required",
}

var ticketInvalid = map[string]string{
	"type":   "unknown ticket type",
	"date":   "date must use the YYYY-MM-DD format",
	"status": "unknown ticket status",
}

var registrationRequired = map[string]string{
	"username": "username is required",
	"secret":   "password is required",
}

var registrationInvalid = map[string]string{
	"email": "email address is not valid",
}

var profileRequired = map[string]string{
	"name":  "display name is required",
	"email": "email is required",
}

var profileInvalid = map[string]string{
	"email": "email address is not valid",
}

// ValidateTicket checks a ticket candidate. Every field is required;
// type and status must come from their closed sets.
func ValidateTicket(form TicketForm) FieldErrors {
	return collect(validate.Struct(form), ticketRequired, ticketInvalid)
}

// ValidateRegistration checks a registration candidate.
func ValidateRegistration(form RegistrationForm) FieldErrors {
	return collect(validate.Struct(form), registrationRequired, registrationInvalid)
}

// ValidateProfile checks a profile-update candidate.
func ValidateProfile(form ProfileForm) FieldErrors {
	return collect(validate.Struct(form), profileRequired, profileInvalid)
}

func collect(err error, required, invalid map[string]string) FieldErrors {
	fields := FieldErrors{}
	if err == nil {
		return fields
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fields
	}
	for _, fe := range verrs {
		name := fe.Field()
		if fe.Tag() == "required" {
			fields[name] = required[name]
			continue
		}
		if msg, ok := invalid[name]; ok {
			fields[name] = msg
			continue
		}
		fields[name] = name + " is not valid"
	}
	return fields
}
