package model

import "time"

// Contact preferences a visitor can choose on the form.
const (
	PreferenceEmail = "email"
	PreferencePhone = "phone"
	PreferenceAny   = "any"
)

// Submission statuses. New rows always start as StatusNew.
const (
	StatusNew      = "new"
	StatusRead     = "read"
	StatusArchived = "archived"
)

// Unknown is the sentinel stored when the client IP or user agent could not
// be determined from the request.
const Unknown = "unknown"

// ContactSubmission is one validated contact-form submission. It is produced
// by form.Validate and never mutated afterwards; identity is assigned by the
// database on insert.
type ContactSubmission struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Topic      string `json:"topic,omitempty"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	Preference string `json:"preference"`
}

// SubmissionMetadata is request-time context attached to a submission. It is
// never validated; it only feeds the notification email and the stored row.
type SubmissionMetadata struct {
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
	Timestamp string `json:"timestamp"` // RFC 3339, generated at receipt
}

// SubmissionRecord is the persisted shape of a submission.
type SubmissionRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Topic      string    `json:"topic,omitempty"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	Preference string    `json:"preference"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"user_agent"`
	Status     string    `json:"status"` // "new" | "read" | "archived"
	CreatedAt  time.Time `json:"created_at"`
}

// NewSubmissionRecord maps a validated submission plus its request metadata
// onto the row to insert. ID and CreatedAt are filled in by the database.
func NewSubmissionRecord(sub ContactSubmission, meta SubmissionMetadata) *SubmissionRecord {
	return &SubmissionRecord{
		Name:       sub.Name,
		Email:      sub.Email,
		Phone:      sub.Phone,
		Topic:      sub.Topic,
		Subject:    sub.Subject,
		Message:    sub.Message,
		Preference: sub.Preference,
		IP:         meta.IP,
		UserAgent:  meta.UserAgent,
		Status:     StatusNew,
	}
}

// SubmissionListOptions carries filter and pagination parameters for listing
// stored submissions.
type SubmissionListOptions struct {
	// Status filters by submission status: "", "all", "new", "read",
	// "archived". Empty string and "all" return everything.
	Status string
	Limit  int
	Offset int
}
