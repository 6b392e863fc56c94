package domain

import (
	"context"
	"net/mail"
	"strings"
	"time"
)

// maxFieldLength bounds every registration form field.
const maxFieldLength = 255

// RegistrationSubmission is the data of one registration form post. It is never persisted.
type RegistrationSubmission struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Position  string `json:"position"`
	Twitter   string `json:"twitter"`
}

// Validate returns the list of problems with the submission; empty means valid.
// It trims every field in place.
func (s *RegistrationSubmission) Validate() []string {
	for _, f := range []*string{&s.Email, &s.FirstName, &s.LastName, &s.Company, &s.Position, &s.Twitter} {
		*f = strings.TrimSpace(*f)
	}
	var errs []string
	if s.Email == "" {
		errs = append(errs, "email is required")
	} else if addr, err := mail.ParseAddress(s.Email); err != nil || addr.Address != s.Email {
		errs = append(errs, "email is invalid")
	}
	if s.FirstName == "" {
		errs = append(errs, "first name is required")
	}
	if s.LastName == "" {
		errs = append(errs, "last name is required")
	}
	fields := []struct{ name, value string }{
		{"email", s.Email}, {"first name", s.FirstName}, {"last name", s.LastName},
		{"company", s.Company}, {"position", s.Position}, {"twitter", s.Twitter},
	}
	for _, f := range fields {
		if len(f.value) > maxFieldLength {
			errs = append(errs, f.name+" is too long")
		}
	}
	return errs
}

// MergeFields maps the submission onto the mailing list merge fields.
func (s *RegistrationSubmission) MergeFields() map[string]string {
	return map[string]string{
		"FNAME":    s.FirstName,
		"LNAME":    s.LastName,
		"COMPANY":  s.Company,
		"POSITION": s.Position,
		"TWITTER":  s.Twitter,
	}
}

// RegistrationResult is the user-facing outcome of a submission.
type RegistrationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SubscribeRequest is one subscribe call to the mailing list provider.
type SubscribeRequest struct {
	Email       string
	DoubleOptIn bool
	MergeFields map[string]string
}

// MailingListSubscriber is the mailing list integration port. Implementations return
// ErrAlreadySubscribed when the address is already on the list and wrap
// ErrMailingListUnavailable for failures worth retrying.
type MailingListSubscriber interface {
	Subscribe(ctx context.Context, listID string, req SubscribeRequest) error
}

// RegistrationService gates and forwards event registrations.
type RegistrationService interface {
	IsRegistrationOpen(event *Event, now time.Time) (bool, error)
	Submit(ctx context.Context, submission *RegistrationSubmission, listID string) RegistrationResult
	// Register checks the window, submits, and sends a confirmation email on success.
	// It returns ErrRegistrationClosed when the event does not accept registrations.
	Register(ctx context.Context, event *Event, submission *RegistrationSubmission, now time.Time) (RegistrationResult, error)
}
