package domain

import "context"

// Collection names a JSON document in the content directory.
type Collection string

const (
	CollectionEvents        Collection = "events"
	CollectionPresentations Collection = "presentations"
	CollectionSpeakers      Collection = "speakers"
	CollectionPartners      Collection = "partners"
)

// Content is one load of the content directory. Collections that were not
// requested are left empty.
type Content struct {
	Events        []*Event
	Presentations map[string]*Presentation
	Speakers      []*Speaker
	Partners      []*Partner

	eventsByID map[string]*Event
}

// NewContent returns Content with its event index built.
func NewContent(events []*Event, presentations map[string]*Presentation, speakers []*Speaker, partners []*Partner) *Content {
	if presentations == nil {
		presentations = map[string]*Presentation{}
	}
	byID := make(map[string]*Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}
	return &Content{
		Events:        events,
		Presentations: presentations,
		Speakers:      speakers,
		Partners:      partners,
		eventsByID:    byID,
	}
}

// EventByID returns the event with the given id.
func (c *Content) EventByID(id string) (*Event, bool) {
	e, ok := c.eventsByID[id]
	return e, ok
}

// ContentRepository loads content collections. Every call reads from storage.
type ContentRepository interface {
	Load(ctx context.Context, collections ...Collection) (*Content, error)
}
