package views

import (
	"html/template"

	"conferencesite/internal/domain"
)

// Layout is the data every page shares.
type Layout struct {
	SiteTitle string
	Title     string
	Flashes   []string
}

// HomeData is rendered by index.html.
type HomeData struct {
	Layout
	Home *domain.HomeView
}

// EventData is rendered by event.html. Form and CSRFField are only used when
// ShowRegistration is set.
type EventData struct {
	Layout
	View             *domain.EventView
	Partners         []*domain.Partner
	ShowRegistration bool
	Form             *domain.RegistrationSubmission
	FormErrors       []string
	CSRFField        template.HTML
}

// StaticPageData is rendered by page.html.
type StaticPageData struct {
	Layout
	Body template.HTML
}

// ErrorData is rendered by error.html.
type ErrorData struct {
	Layout
	Status  int
	Message string
}
