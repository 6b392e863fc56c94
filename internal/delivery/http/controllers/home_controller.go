package controllers

import (
	"log/slog"
	"net/http"

	"conferencesite/internal/domain"
	"conferencesite/internal/views"
)

type HomeController struct {
	pages
	Content domain.ContentRepository
	Service domain.HomeService
}

func NewHomeController(logger *slog.Logger, renderer PageRenderer, content domain.ContentRepository, svc domain.HomeService) *HomeController {
	return &HomeController{
		pages:   pages{renderer: renderer, logger: logger},
		Content: content,
		Service: svc,
	}
}

// Index renders the homepage: event history, speakers and featured talks.
func (c *HomeController) Index(w http.ResponseWriter, r *http.Request) {
	content, err := c.Content.Load(r.Context(), domain.CollectionEvents, domain.CollectionPresentations, domain.CollectionSpeakers)
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	home, err := c.Service.Build(content)
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	c.render(w, r, http.StatusOK, views.PageIndex, views.HomeData{Layout: c.layout(""), Home: home})
}
