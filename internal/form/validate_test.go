package form

import (
	"testing"

	"github.com/estudiosur/site-backend/internal/model"
)

func validRaw() RawSubmission {
	return RawSubmission{
		Name:       "Ana García",
		Email:      "ana@example.com",
		Subject:    "Consulta inicial",
		Message:    "Quisiera pedir información.",
		Preference: "email",
	}
}

func TestValidate_ValidSubmission(t *testing.T) {
	sub, errs := Validate(validRaw())
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if sub.Name != "Ana García" {
		t.Errorf("name = %q", sub.Name)
	}
	if sub.Preference != model.PreferenceEmail {
		t.Errorf("preference = %q", sub.Preference)
	}
}

func TestValidate_LowercasesEmail(t *testing.T) {
	raw := validRaw()
	raw.Email = "Ana@Example.COM"
	sub, errs := Validate(raw)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if sub.Email != "ana@example.com" {
		t.Errorf("email = %q, want lower-cased", sub.Email)
	}
}

func TestValidate_MissingName(t *testing.T) {
	raw := validRaw()
	raw.Name = ""
	_, errs := Validate(raw)
	if errs["name"] == "" {
		t.Error("expected an error for name")
	}
	if _, ok := errs["email"]; ok {
		t.Error("email should not carry an error")
	}
}

// A name that is both too short and made of invalid characters yields exactly
// one message: the first rule that fails.
func TestValidate_FirstErrorPerField(t *testing.T) {
	raw := validRaw()
	raw.Name = "7"
	_, errs := Validate(raw)
	if got := errs["name"]; got != "El nombre debe tener entre 2 y 100 caracteres" {
		t.Errorf("name error = %q, want the length message", got)
	}
}

func TestValidate_NameRejectsDigits(t *testing.T) {
	raw := validRaw()
	raw.Name = "Ana123"
	_, errs := Validate(raw)
	if errs["name"] == "" {
		t.Error("expected an error for a name with digits")
	}
}

func TestValidate_NameAcceptsAccents(t *testing.T) {
	raw := validRaw()
	raw.Name = "José Ñúñez Ibáñez"
	_, errs := Validate(raw)
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestValidate_PhoneOptional(t *testing.T) {
	raw := validRaw()
	raw.Phone = ""
	if _, errs := Validate(raw); len(errs) != 0 {
		t.Errorf("empty phone should be valid, got %v", errs)
	}
}

func TestValidate_Phone(t *testing.T) {
	cases := []struct {
		phone string
		ok    bool
	}{
		{"600112233", true},
		{"+34 600 11 22 33", true},
		{"(91) 555-0123", true},
		{"12345678", false},         // too short
		{"1234567890123456", false}, // too long
		{"600x112233", false},       // invalid character
	}
	for _, c := range cases {
		raw := validRaw()
		raw.Phone = c.phone
		_, errs := Validate(raw)
		if c.ok && errs["phone"] != "" {
			t.Errorf("phone %q: unexpected error %q", c.phone, errs["phone"])
		}
		if !c.ok && errs["phone"] == "" {
			t.Errorf("phone %q: expected an error", c.phone)
		}
	}
}

func TestValidate_SubjectBounds(t *testing.T) {
	raw := validRaw()
	raw.Subject = "Hola"
	if _, errs := Validate(raw); errs["subject"] == "" {
		t.Error("4-character subject should fail")
	}
	raw.Subject = "Hola!"
	if _, errs := Validate(raw); errs["subject"] != "" {
		t.Error("5-character subject should pass")
	}
}

func TestValidate_MessageBounds(t *testing.T) {
	raw := validRaw()
	raw.Message = "corto"
	if _, errs := Validate(raw); errs["message"] == "" {
		t.Error("short message should fail")
	}
}

func TestValidate_PreferenceDefaultsToEmail(t *testing.T) {
	raw := validRaw()
	raw.Preference = ""
	sub, errs := Validate(raw)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if sub.Preference != model.PreferenceEmail {
		t.Errorf("preference = %q, want %q", sub.Preference, model.PreferenceEmail)
	}
}

func TestValidate_PreferenceRejectsUnknown(t *testing.T) {
	raw := validRaw()
	raw.Preference = "fax"
	if _, errs := Validate(raw); errs["preference"] == "" {
		t.Error("expected an error for an unknown preference")
	}
}

func TestValidate_CollectsErrorsAcrossFields(t *testing.T) {
	_, errs := Validate(RawSubmission{})
	for _, field := range []string{"name", "email", "subject", "message"} {
		if errs[field] == "" {
			t.Errorf("expected an error for %s", field)
		}
	}
}

// Sanitize then Validate must be idempotent: re-running both over already
// validated data produces the same submission and no new errors.
func TestSanitizeValidate_Idempotent(t *testing.T) {
	first, errs := Validate(Sanitize(validRaw()))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	again := RawSubmission{
		Name:       first.Name,
		Email:      first.Email,
		Phone:      first.Phone,
		Topic:      first.Topic,
		Subject:    first.Subject,
		Message:    first.Message,
		Preference: first.Preference,
	}
	second, errs := Validate(Sanitize(again))
	if len(errs) != 0 {
		t.Fatalf("second pass produced errors: %v", errs)
	}
	if first != second {
		t.Errorf("second pass changed data: %+v vs %+v", first, second)
	}
}
