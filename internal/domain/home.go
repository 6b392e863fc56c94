package domain

import "time"

// YearGroup is one year of the event history, most recent event first.
type YearGroup struct {
	Year   int          `json:"year"`
	Events []DatedEvent `json:"events"`
}

// HomeView is the homepage view model.
type HomeView struct {
	History       []YearGroup            `json:"history"`
	Speakers      []*Speaker             `json:"speakers"`
	Presentations []FeaturedPresentation `json:"presentations"`
	Today         time.Time              `json:"today"`
}

// HomeService builds the homepage view model.
type HomeService interface {
	Build(content *Content) (*HomeView, error)
}
