package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Event represents a conference event as stored in events.json.
// swagger:model Event
type Event struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description,omitempty"`
	Venue        string        `json:"venue,omitempty"`
	Date         string        `json:"date"`
	Timezone     string        `json:"timezone"`
	Schedule     *Schedule     `json:"schedule,omitempty"`
	Registration *Registration `json:"registration,omitempty"`
}

// Schedule is the ordered agenda of an event. StartTime is an "HH:MM" offset from
// the event date.
type Schedule struct {
	StartTime     string       `json:"startTime"`
	Presentations []AgendaItem `json:"presentations"`
}

// AgendaItem is one slot of the schedule. Presentation is empty for breaks.
type AgendaItem struct {
	Duration     Minutes `json:"duration"`
	Presentation string  `json:"presentation,omitempty"`
	Title        string  `json:"title,omitempty"`
}

// Minutes is a duration in whole minutes. Content files carry it either as a
// JSON number or as a numeric string.
type Minutes int

func (m *Minutes) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*m = Minutes(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a number: %s", b)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("duration must be a number: %q", s)
	}
	*m = Minutes(n)
	return nil
}

// Duration converts m to a time.Duration.
func (m Minutes) Duration() time.Duration {
	return time.Duration(m) * time.Minute
}

// Registration is the registration block of an event. The presence of force_close,
// whatever its value, closes registration.
type Registration struct {
	OpenDate        string          `json:"openDate"`
	OpenTime        string          `json:"openTime"`
	CloseDate       string          `json:"closeDate"`
	CloseTime       string          `json:"closeTime"`
	MailchimpListID string          `json:"mailchimpListId"`
	ForceClose      json.RawMessage `json:"force_close,omitempty" swaggertype:"boolean"`
}

// ForceClosed reports whether the block carries a force_close marker.
func (r *Registration) ForceClosed() bool {
	return r != nil && len(r.ForceClose) > 0
}

// EventView is the fully resolved, render-ready representation of an event.
// swagger:model EventView
type EventView struct {
	Event        *Event            `json:"event"`
	Date         time.Time         `json:"date"`
	Agenda       []AgendaSlot      `json:"agenda"`
	Speakers     []*Speaker        `json:"speakers"`
	SpeakerNames map[string]string `json:"speaker_names"`
	Archived     bool              `json:"archived"`
}

// AgendaSlot is an agenda item with its computed clock time and resolved presentation.
type AgendaSlot struct {
	Time         string        `json:"time"`
	StartsAt     time.Time     `json:"starts_at"`
	Duration     int           `json:"duration"`
	Title        string        `json:"title,omitempty"`
	Presentation *Presentation `json:"presentation,omitempty"`
	File         *Attachment   `json:"file,omitempty"`
}

// DatedEvent pairs an event with its parsed date.
type DatedEvent struct {
	Event *Event    `json:"event"`
	Date  time.Time `json:"date"`
}

// ScheduleBuilder turns a stored event into its view model.
type ScheduleBuilder interface {
	Build(event *Event, presentations map[string]*Presentation, speakers []*Speaker) (*EventView, error)
}
