package helpers

import (
	"net/http"

	"conferencesite/internal/domain"
)

// RegistrationFormPrefix prefixes every registration form field name.
const RegistrationFormPrefix = "regform_"

// maxFormBytes bounds the registration form body.
const maxFormBytes = 64 << 10

// ParseRegistrationForm reads the registration fields from a urlencoded POST body.
// Validation is left to the caller.
func ParseRegistrationForm(w http.ResponseWriter, r *http.Request) (*domain.RegistrationSubmission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	field := func(name string) string {
		return r.PostForm.Get(RegistrationFormPrefix + name)
	}
	return &domain.RegistrationSubmission{
		Email:     field("email"),
		FirstName: field("firstName"),
		LastName:  field("lastName"),
		Company:   field("company"),
		Position:  field("position"),
		Twitter:   field("twitter"),
	}, nil
}
