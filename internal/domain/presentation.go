package domain

import "time"

// Presentation is a talk. Speakers holds Speaker ids.
// swagger:model Presentation
type Presentation struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Speakers    []string `json:"speakers"`
	VideoID     string   `json:"videoId,omitempty"`
}

// Attachment is a file (slides, archive) published for a presentation.
type Attachment struct {
	Name    string    `json:"name"`
	URL     string    `json:"url"`
	Ext     string    `json:"ext"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// AttachmentResolver looks up the attachment of a presentation. A miss is not an error.
type AttachmentResolver interface {
	Resolve(presentationID string) (*Attachment, bool)
}

// FeaturedPresentation is a presentation shown on the homepage with its speakers' names.
type FeaturedPresentation struct {
	Presentation *Presentation `json:"presentation"`
	SpeakerNames []string      `json:"speaker_names"`
}
