package controllers

import (
	"html/template"
	"log/slog"
	"net/http"

	"conferencesite/internal/domain"
	"conferencesite/internal/views"
)

type PageController struct {
	pages
	Pages domain.PageRepository
}

func NewPageController(logger *slog.Logger, renderer PageRenderer, repo domain.PageRepository) *PageController {
	return &PageController{
		pages: pages{renderer: renderer, logger: logger},
		Pages: repo,
	}
}

// Show renders the Markdown page named by the single path segment.
func (c *PageController) Show(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("page")
	// The route is a prefix pattern; only "/{page}/" itself is a page.
	if r.URL.Path != "/"+name+"/" {
		c.NotFound(w, r)
		return
	}
	page, ok, err := c.Pages.Get(r.Context(), name)
	if err != nil {
		c.serverError(w, r, err)
		return
	}
	if !ok {
		c.NotFound(w, r)
		return
	}
	data := views.StaticPageData{
		Layout: c.layout(page.Title),
		// Page HTML comes from goldmark with raw HTML disabled.
		Body: template.HTML(page.HTML),
	}
	c.render(w, r, http.StatusOK, views.PageStatic, data)
}
