package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/csrf"

	"conferencesite/internal/datetime"
	"conferencesite/internal/delivery/http/helpers"
	"conferencesite/internal/domain"
	"conferencesite/internal/views"
)

// EventControllerConfig holds the user-facing texts and cookie settings of event pages.
type EventControllerConfig struct {
	ThanksMessage      string
	InvalidFormMessage string
	SecureCookies      bool
	Now                func() time.Time
}

type EventController struct {
	pages
	Content      domain.ContentRepository
	Builder      domain.ScheduleBuilder
	Registration domain.RegistrationService
	cfg          EventControllerConfig
}

func NewEventController(logger *slog.Logger, renderer PageRenderer, content domain.ContentRepository, builder domain.ScheduleBuilder, registration domain.RegistrationService, cfg EventControllerConfig) *EventController {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &EventController{
		pages:        pages{renderer: renderer, logger: logger},
		Content:      content,
		Builder:      builder,
		Registration: registration,
		cfg:          cfg,
	}
}

// eventPage is everything loaded for one event page request.
type eventPage struct {
	event    *domain.Event
	view     *domain.EventView
	partners []*domain.Partner
	open     bool
}

// load returns the event page data; ok is false when the event does not exist.
func (c *EventController) load(r *http.Request) (page *eventPage, ok bool, err error) {
	content, err := c.Content.Load(r.Context(),
		domain.CollectionEvents, domain.CollectionPartners, domain.CollectionPresentations, domain.CollectionSpeakers)
	if err != nil {
		return nil, false, err
	}
	event, ok := content.EventByID(r.PathValue("eventID"))
	if !ok {
		return nil, false, nil
	}
	view, err := c.Builder.Build(event, content.Presentations, content.Speakers)
	if err != nil {
		return nil, false, err
	}
	open, err := c.Registration.IsRegistrationOpen(event, c.cfg.Now())
	if err != nil {
		return nil, false, err
	}
	return &eventPage{event: event, view: view, partners: content.Partners, open: open}, true, nil
}

func (c *EventController) renderEvent(w http.ResponseWriter, r *http.Request, page *eventPage, form *domain.RegistrationSubmission, formErrors []string, flashes ...string) {
	data := views.EventData{
		Layout:           c.layout(page.event.Title, flashes...),
		View:             page.view,
		Partners:         page.partners,
		ShowRegistration: page.open,
		Form:             form,
		FormErrors:       formErrors,
	}
	if page.open {
		data.CSRFField = csrf.TemplateField(r)
	}
	c.render(w, r, http.StatusOK, views.PageEvent, data)
}

// Show renders the event page with its schedule, speakers and, while
// registration is open, the registration form.
func (c *EventController) Show(w http.ResponseWriter, r *http.Request) {
	page, ok, err := c.load(r)
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	if !ok {
		c.NotFound(w, r)
		return
	}
	var flashes []string
	if msg, ok := helpers.PopFlash(w, r); ok {
		flashes = append(flashes, msg)
	}
	c.renderEvent(w, r, page, nil, nil, flashes...)
}

// Register handles the registration form. A successful registration redirects
// back to the event page with a thank-you message; any failure re-renders the
// page with the submitted values and the reason.
func (c *EventController) Register(w http.ResponseWriter, r *http.Request) {
	page, ok, err := c.load(r)
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	if !ok {
		c.NotFound(w, r)
		return
	}
	if !page.open {
		c.renderEvent(w, r, page, nil, nil)
		return
	}

	form, err := helpers.ParseRegistrationForm(w, r)
	if err != nil {
		c.Error(w, r, http.StatusBadRequest, "The form could not be read.")
		return
	}
	if errs := form.Validate(); len(errs) > 0 {
		c.renderEvent(w, r, page, form, errs, c.cfg.InvalidFormMessage)
		return
	}

	result, err := c.Registration.Register(r.Context(), page.event, form, c.cfg.Now())
	switch {
	case errors.Is(err, domain.ErrRegistrationClosed):
		page.open = false
		c.renderEvent(w, r, page, nil, nil)
		return
	case err != nil:
		c.serverError(w, r, err)
		return
	}
	if !result.Success {
		c.renderEvent(w, r, page, form, nil, result.Message)
		return
	}
	helpers.SetFlash(w, c.cfg.ThanksMessage, c.cfg.SecureCookies)
	http.Redirect(w, r, eventPath(page.event.ID), http.StatusSeeOther)
}

// LegacyRedirect maps the old /{year}/{month}/{day}/ URLs to the event held on that date.
func (c *EventController) LegacyRedirect(w http.ResponseWriter, r *http.Request) {
	year, errY := strconv.Atoi(r.PathValue("year"))
	month, errM := strconv.Atoi(r.PathValue("month"))
	day, errD := strconv.Atoi(r.PathValue("day"))
	if errY != nil || errM != nil || errD != nil {
		c.NotFound(w, r)
		return
	}
	content, err := c.Content.Load(r.Context(), domain.CollectionEvents)
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	// When several events share a date the last one listed wins.
	var match *domain.Event
	for _, e := range content.Events {
		y, m, d, err := datetime.ParseCalendarDate(e.Date)
		if err != nil {
			c.serverError(w, r, fmt.Errorf("event %s: %w", e.ID, err))
			return
		}
		if y == year && int(m) == month && d == day {
			match = e
		}
	}
	if match == nil {
		c.NotFound(w, r)
		return
	}
	http.Redirect(w, r, eventPath(match.ID), http.StatusFound)
}

func eventPath(id string) string {
	return "/events/" + id + "/"
}
