package jsonfs

import (
	"fmt"

	"conferencesite/internal/datetime"
	"conferencesite/internal/domain"
)

func validateEvents(events []*domain.Event) error {
	seen := make(map[string]struct{}, len(events))
	for i, e := range events {
		if e == nil {
			return fmt.Errorf("%w: events[%d] is null", domain.ErrDataLoad, i)
		}
		if e.ID == "" {
			return fmt.Errorf("%w: events[%d] has no id", domain.ErrDataLoad, i)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate event id %q", domain.ErrDataLoad, e.ID)
		}
		seen[e.ID] = struct{}{}
		if e.Date == "" || e.Timezone == "" {
			return fmt.Errorf("%w: event %q needs date and timezone", domain.ErrDataLoad, e.ID)
		}
		if _, err := datetime.ParseDate(e.Date, e.Timezone); err != nil {
			return fmt.Errorf("%w: event %q date: %w", domain.ErrDataLoad, e.ID, err)
		}
		if e.Schedule != nil {
			if e.Schedule.StartTime == "" {
				return fmt.Errorf("%w: event %q schedule has no startTime", domain.ErrDataLoad, e.ID)
			}
			if _, _, err := datetime.ParseClock(e.Schedule.StartTime); err != nil {
				return fmt.Errorf("%w: event %q schedule startTime: %w", domain.ErrDataLoad, e.ID, err)
			}
			for j, item := range e.Schedule.Presentations {
				// Agenda times must strictly increase.
				if item.Duration <= 0 {
					return fmt.Errorf("%w: event %q agenda item %d has non-positive duration", domain.ErrDataLoad, e.ID, j)
				}
			}
		}
		if r := e.Registration; r != nil && !r.ForceClosed() {
			if r.OpenDate == "" || r.OpenTime == "" || r.CloseDate == "" || r.CloseTime == "" {
				return fmt.Errorf("%w: event %q registration needs open and close date/time", domain.ErrDataLoad, e.ID)
			}
			if _, err := datetime.ParseDateTime(r.OpenDate, r.OpenTime, e.Timezone); err != nil {
				return fmt.Errorf("%w: event %q registration opening: %w", domain.ErrDataLoad, e.ID, err)
			}
			if _, err := datetime.ParseDateTime(r.CloseDate, r.CloseTime, e.Timezone); err != nil {
				return fmt.Errorf("%w: event %q registration closing: %w", domain.ErrDataLoad, e.ID, err)
			}
			if r.MailchimpListID == "" {
				return fmt.Errorf("%w: event %q registration has no mailchimpListId", domain.ErrDataLoad, e.ID)
			}
		}
	}
	return nil
}

// validatePresentations fills a missing id from the mapping key and rejects mismatches.
func validatePresentations(presentations map[string]*domain.Presentation) error {
	for key, p := range presentations {
		if p == nil {
			return fmt.Errorf("%w: presentation %q is null", domain.ErrDataLoad, key)
		}
		switch p.ID {
		case "":
			p.ID = key
		case key:
		default:
			return fmt.Errorf("%w: presentation key %q holds id %q", domain.ErrDataLoad, key, p.ID)
		}
	}
	return nil
}

func validateSpeakers(speakers []*domain.Speaker) error {
	seen := make(map[string]struct{}, len(speakers))
	for i, s := range speakers {
		if s == nil {
			return fmt.Errorf("%w: speakers[%d] is null", domain.ErrDataLoad, i)
		}
		if s.ID == "" {
			return fmt.Errorf("%w: speakers[%d] has no id", domain.ErrDataLoad, i)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate speaker id %q", domain.ErrDataLoad, s.ID)
		}
		seen[s.ID] = struct{}{}
		if s.LastName == "" {
			return fmt.Errorf("%w: speaker %q has no lastName", domain.ErrDataLoad, s.ID)
		}
	}
	return nil
}
