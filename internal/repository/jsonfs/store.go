package jsonfs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"conferencesite/internal/domain"
)

// Store reads content collections from <dir>/<name>.json. It holds no state
// between calls: every load reads the files again.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// LoadCollections reads one JSON document per name, in order.
func (s *Store) LoadCollections(ctx context.Context, names ...string) ([]json.RawMessage, error) {
	docs := make([]json.RawMessage, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if name == "" || filepath.Base(name) != name {
			return nil, fmt.Errorf("%w: invalid collection name %q", domain.ErrDataLoad, name)
		}
		raw, err := os.ReadFile(filepath.Join(s.dir, name+".json"))
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", domain.ErrDataLoad, name, err)
		}
		if !json.Valid(raw) {
			return nil, fmt.Errorf("%w: %s.json is not valid JSON", domain.ErrDataLoad, name)
		}
		docs = append(docs, raw)
	}
	return docs, nil
}

// Load reads, decodes and validates the requested collections.
func (s *Store) Load(ctx context.Context, collections ...domain.Collection) (*domain.Content, error) {
	names := make([]string, len(collections))
	for i, c := range collections {
		names[i] = string(c)
	}
	docs, err := s.LoadCollections(ctx, names...)
	if err != nil {
		return nil, err
	}

	var (
		events        []*domain.Event
		presentations map[string]*domain.Presentation
		speakers      []*domain.Speaker
		partners      []*domain.Partner
	)
	for i, c := range collections {
		switch c {
		case domain.CollectionEvents:
			events, err = decodeEvents(docs[i])
		case domain.CollectionPresentations:
			presentations, err = decodePresentations(docs[i])
		case domain.CollectionSpeakers:
			speakers, err = decodeSpeakers(docs[i])
		case domain.CollectionPartners:
			partners, err = decodePartners(docs[i])
		default:
			err = fmt.Errorf("%w: unknown collection %q", domain.ErrDataLoad, c)
		}
		if err != nil {
			return nil, err
		}
	}
	return domain.NewContent(events, presentations, speakers, partners), nil
}

func decodeEvents(raw json.RawMessage) ([]*domain.Event, error) {
	var events []*domain.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("%w: decode events: %v", domain.ErrDataLoad, err)
	}
	if err := validateEvents(events); err != nil {
		return nil, err
	}
	return events, nil
}

func decodePresentations(raw json.RawMessage) (map[string]*domain.Presentation, error) {
	var presentations map[string]*domain.Presentation
	if err := json.Unmarshal(raw, &presentations); err != nil {
		return nil, fmt.Errorf("%w: decode presentations: %v", domain.ErrDataLoad, err)
	}
	if err := validatePresentations(presentations); err != nil {
		return nil, err
	}
	return presentations, nil
}

func decodeSpeakers(raw json.RawMessage) ([]*domain.Speaker, error) {
	var speakers []*domain.Speaker
	if err := json.Unmarshal(raw, &speakers); err != nil {
		return nil, fmt.Errorf("%w: decode speakers: %v", domain.ErrDataLoad, err)
	}
	if err := validateSpeakers(speakers); err != nil {
		return nil, err
	}
	return speakers, nil
}

func decodePartners(raw json.RawMessage) ([]*domain.Partner, error) {
	var partners []*domain.Partner
	if err := json.Unmarshal(raw, &partners); err != nil {
		return nil, fmt.Errorf("%w: decode partners: %v", domain.ErrDataLoad, err)
	}
	for i, p := range partners {
		if p == nil {
			return nil, fmt.Errorf("%w: partners[%d] is null", domain.ErrDataLoad, i)
		}
	}
	return partners, nil
}
