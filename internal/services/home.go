package services

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"conferencesite/internal/datetime"
	"conferencesite/internal/domain"
)

// featuredCount is how many recorded talks the homepage shows.
const featuredCount = 3

// ShuffleFunc has the signature of rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

type homeService struct {
	shuffle ShuffleFunc
	now     func() time.Time
}

// NewHomeService returns a HomeService. A nil shuffle uses math/rand/v2; a nil now uses time.Now.
func NewHomeService(shuffle ShuffleFunc, now func() time.Time) domain.HomeService {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	if now == nil {
		now = time.Now
	}
	return &homeService{shuffle: shuffle, now: now}
}

func (s *homeService) Build(content *domain.Content) (*domain.HomeView, error) {
	history, err := eventHistory(content.Events)
	if err != nil {
		return nil, err
	}
	featured, err := s.featuredPresentations(content.Presentations, content.Speakers)
	if err != nil {
		return nil, err
	}
	return &domain.HomeView{
		History:       history,
		Speakers:      sortByLastName(content.Speakers),
		Presentations: featured,
		Today:         s.now().UTC(),
	}, nil
}

// eventHistory sorts events by date, newest first, and groups them by year.
func eventHistory(events []*domain.Event) ([]domain.YearGroup, error) {
	dated := make([]domain.DatedEvent, 0, len(events))
	for _, e := range events {
		date, err := datetime.ParseDate(e.Date, e.Timezone)
		if err != nil {
			return nil, fmt.Errorf("event %s date: %w", e.ID, err)
		}
		dated = append(dated, domain.DatedEvent{Event: e, Date: date})
	}
	slices.SortStableFunc(dated, func(a, b domain.DatedEvent) int {
		return b.Date.Compare(a.Date)
	})

	groups := []domain.YearGroup{}
	for _, d := range dated {
		year := d.Date.Year()
		if n := len(groups); n > 0 && groups[n-1].Year == year {
			groups[n-1].Events = append(groups[n-1].Events, d)
			continue
		}
		groups = append(groups, domain.YearGroup{Year: year, Events: []domain.DatedEvent{d}})
	}
	return groups, nil
}

// featuredPresentations picks up to featuredCount presentations that have a video.
func (s *homeService) featuredPresentations(presentations map[string]*domain.Presentation, speakers []*domain.Speaker) ([]domain.FeaturedPresentation, error) {
	var withVideo []*domain.Presentation
	for _, p := range presentations {
		if p.VideoID != "" {
			withVideo = append(withVideo, p)
		}
	}
	// Map iteration order is random; sort first so the shuffle is the only source of randomness.
	slices.SortFunc(withVideo, func(a, b *domain.Presentation) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	s.shuffle(len(withVideo), func(i, j int) { withVideo[i], withVideo[j] = withVideo[j], withVideo[i] })
	if len(withVideo) > featuredCount {
		withVideo = withVideo[:featuredCount]
	}

	byID := make(map[string]*domain.Speaker, len(speakers))
	for _, sp := range speakers {
		byID[sp.ID] = sp
	}
	featured := make([]domain.FeaturedPresentation, 0, len(withVideo))
	for _, p := range withVideo {
		names := make([]string, 0, len(p.Speakers))
		for _, id := range p.Speakers {
			sp, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("%w: presentation %s references speaker %q", domain.ErrMissingReference, p.ID, id)
			}
			names = append(names, sp.DisplayName())
		}
		featured = append(featured, domain.FeaturedPresentation{Presentation: p, SpeakerNames: names})
	}
	return featured, nil
}
