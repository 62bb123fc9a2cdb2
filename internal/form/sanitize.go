// Package form sanitizes and validates contact-form submissions.
package form

import (
	"regexp"
	"strings"
)

var (
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	controlPattern = regexp.MustCompile("[\x00-\x1f\x7f]")
)

// RawSubmission is the pre-validation JSON body of POST /api/contact.
type RawSubmission struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Topic      string `json:"topic"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	Preference string `json:"preference"`
}

// Clean strips HTML tags and control characters from s and trims surrounding
// whitespace. It is total: any input yields a (possibly empty) string.
func Clean(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = controlPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Sanitize returns a copy of raw with every string field cleaned.
// Sanitization always runs before validation, so validation rules only ever
// see cleaned values.
func Sanitize(raw RawSubmission) RawSubmission {
	return RawSubmission{
		Name:       Clean(raw.Name),
		Email:      Clean(raw.Email),
		Phone:      Clean(raw.Phone),
		Topic:      Clean(raw.Topic),
		Subject:    Clean(raw.Subject),
		Message:    Clean(raw.Message),
		Preference: Clean(raw.Preference),
	}
}
