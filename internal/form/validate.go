package form

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/estudiosur/site-backend/internal/model"
)

var (
	namePattern  = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Optional leading +, then 9-15 characters of digits, spaces, hyphens
	// and parentheses.
	phonePattern = regexp.MustCompile(`^\+?[\d\s()-]{9,15}$`)
)

// FieldErrors maps a field name to the first validation failure found for it.
// A field never carries more than one message.
type FieldErrors map[string]string

// Validate applies the contact-form field rules to an already-sanitized
// submission. It either returns a fully validated ContactSubmission or a
// non-empty FieldErrors; it never returns both. Expected bad input is
// reported through the map, never through a panic.
func Validate(raw RawSubmission) (model.ContactSubmission, FieldErrors) {
	errs := FieldErrors{}

	switch n := utf8.RuneCountInString(raw.Name); {
	case raw.Name == "":
		errs["name"] = "El nombre es obligatorio"
	case n < 2 || n > 100:
		errs["name"] = "El nombre debe tener entre 2 y 100 caracteres"
	case !namePattern.MatchString(raw.Name):
		errs["name"] = "El nombre solo puede contener letras y espacios"
	}

	switch {
	case raw.Email == "":
		errs["email"] = "El correo electrónico es obligatorio"
	case len(raw.Email) > 255:
		errs["email"] = "El correo electrónico no puede superar 255 caracteres"
	case !emailPattern.MatchString(raw.Email):
		errs["email"] = "El correo electrónico no es válido"
	}

	if raw.Phone != "" && !phonePattern.MatchString(raw.Phone) {
		errs["phone"] = "El teléfono debe tener entre 9 y 15 dígitos"
	}

	if utf8.RuneCountInString(raw.Topic) > 100 {
		errs["topic"] = "El tema no puede superar 100 caracteres"
	}

	switch n := utf8.RuneCountInString(raw.Subject); {
	case raw.Subject == "":
		errs["subject"] = "El asunto es obligatorio"
	case n < 5 || n > 200:
		errs["subject"] = "El asunto debe tener entre 5 y 200 caracteres"
	}

	switch n := utf8.RuneCountInString(raw.Message); {
	case raw.Message == "":
		errs["message"] = "El mensaje es obligatorio"
	case n < 10 || n > 2000:
		errs["message"] = "El mensaje debe tener entre 10 y 2000 caracteres"
	}

	// The form preselects the email channel, so an absent preference means
	// email rather than a validation failure.
	preference := raw.Preference
	if preference == "" {
		preference = model.PreferenceEmail
	}
	switch preference {
	case model.PreferenceEmail, model.PreferencePhone, model.PreferenceAny:
	default:
		errs["preference"] = "La preferencia de contacto debe ser email, phone o any"
	}

	if len(errs) > 0 {
		return model.ContactSubmission{}, errs
	}

	return model.ContactSubmission{
		Name:       raw.Name,
		Email:      strings.ToLower(raw.Email),
		Phone:      raw.Phone,
		Topic:      raw.Topic,
		Subject:    raw.Subject,
		Message:    raw.Message,
		Preference: preference,
	}, nil
}
