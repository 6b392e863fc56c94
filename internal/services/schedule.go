package services

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"conferencesite/internal/datetime"
	"conferencesite/internal/domain"
)

// archiveAfter is how long after its date an event stays current.
const archiveAfter = 24 * time.Hour

type scheduleBuilder struct {
	attachments domain.AttachmentResolver
	now         func() time.Time
}

// NewScheduleBuilder returns a ScheduleBuilder that resolves presentation files with
// attachments and reads the current time from now (time.Now when nil).
func NewScheduleBuilder(attachments domain.AttachmentResolver, now func() time.Time) domain.ScheduleBuilder {
	if now == nil {
		now = time.Now
	}
	return &scheduleBuilder{attachments: attachments, now: now}
}

func (b *scheduleBuilder) Build(event *domain.Event, presentations map[string]*domain.Presentation, speakers []*domain.Speaker) (*domain.EventView, error) {
	if event == nil {
		return nil, fmt.Errorf("%w: event is nil", domain.ErrInvalidInput)
	}
	date, err := datetime.ParseDate(event.Date, event.Timezone)
	if err != nil {
		return nil, fmt.Errorf("event %s date: %w", event.ID, err)
	}

	view := &domain.EventView{
		Event:        event,
		Date:         date,
		Agenda:       []domain.AgendaSlot{},
		Speakers:     []*domain.Speaker{},
		SpeakerNames: map[string]string{},
		Archived:     isArchived(date, b.now()),
	}
	if event.Schedule == nil {
		return view, nil
	}

	// Wall-clock start; midnight plus an offset is off by an hour on DST change days.
	clock, err := datetime.ParseDateTime(event.Date, event.Schedule.StartTime, event.Timezone)
	if err != nil {
		return nil, fmt.Errorf("event %s schedule start: %w", event.ID, err)
	}

	participants := make(map[string]struct{})
	for i, item := range event.Schedule.Presentations {
		slot := domain.AgendaSlot{
			Time:     datetime.FormatClock(clock),
			StartsAt: clock,
			Duration: int(item.Duration),
			Title:    item.Title,
		}
		clock = clock.Add(item.Duration.Duration())

		if item.Presentation != "" {
			p, ok := presentations[item.Presentation]
			if !ok {
				return nil, fmt.Errorf("%w: event %s agenda item %d references presentation %q",
					domain.ErrMissingReference, event.ID, i, item.Presentation)
			}
			slot.Presentation = p
			if b.attachments != nil {
				if file, ok := b.attachments.Resolve(item.Presentation); ok {
					slot.File = file
				}
			}
			for _, id := range p.Speakers {
				participants[id] = struct{}{}
			}
		}
		view.Agenda = append(view.Agenda, slot)
	}

	view.Speakers, view.SpeakerNames, err = participatingSpeakers(participants, speakers)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", event.ID, err)
	}
	return view, nil
}

// participatingSpeakers filters speakers to ids, stable-sorted by last name, and
// returns the id -> display name lookup alongside.
func participatingSpeakers(ids map[string]struct{}, speakers []*domain.Speaker) ([]*domain.Speaker, map[string]string, error) {
	sorted := sortByLastName(speakers)
	out := make([]*domain.Speaker, 0, len(ids))
	names := make(map[string]string, len(ids))
	for _, s := range sorted {
		if _, ok := ids[s.ID]; !ok {
			continue
		}
		if _, dup := names[s.ID]; dup {
			continue
		}
		out = append(out, s)
		names[s.ID] = s.DisplayName()
	}
	if len(names) != len(ids) {
		var missing []string
		for id := range ids {
			if _, ok := names[id]; !ok {
				missing = append(missing, id)
			}
		}
		slices.Sort(missing)
		return nil, nil, fmt.Errorf("%w: unknown speakers %s", domain.ErrMissingReference, strings.Join(missing, ", "))
	}
	return out, names, nil
}

func sortByLastName(speakers []*domain.Speaker) []*domain.Speaker {
	sorted := slices.Clone(speakers)
	slices.SortStableFunc(sorted, func(a, b *domain.Speaker) int {
		return strings.Compare(a.LastName, b.LastName)
	})
	return sorted
}

func isArchived(date, now time.Time) bool {
	return now.After(date.Add(archiveAfter))
}
