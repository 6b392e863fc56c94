package controllers

import (
	"log/slog"
	"net/http"

	"conferencesite/internal/views"
)

// PageRenderer renders HTML pages of the site.
type PageRenderer interface {
	Render(w http.ResponseWriter, status int, page string, data any) error
	SiteTitle() string
}

// pages renders HTML responses and the shared error pages.
type pages struct {
	renderer PageRenderer
	logger   *slog.Logger
}

func (p pages) layout(title string, flashes ...string) views.Layout {
	return views.Layout{SiteTitle: p.renderer.SiteTitle(), Title: title, Flashes: flashes}
}

func (p pages) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := p.renderer.Render(w, status, page, data); err != nil {
		p.logger.ErrorContext(r.Context(), "render failed", "path", r.URL.Path, "page", page, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// NotFound renders the 404 page.
func (p pages) NotFound(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, http.StatusNotFound, views.PageNotFound, p.layout("Page not found"))
}

// Error renders a generic error page with status.
func (p pages) Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := views.ErrorData{Layout: p.layout(http.StatusText(status)), Status: status, Message: message}
	p.render(w, r, status, views.PageError, data)
}

// serverError logs err and renders the 500 page.
func (p pages) serverError(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	p.Error(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

// ErrorPages exposes the 404 and error pages to the router.
type ErrorPages struct {
	pages
}

func NewErrorPages(logger *slog.Logger, renderer PageRenderer) *ErrorPages {
	return &ErrorPages{pages{renderer: renderer, logger: logger}}
}

// Forbidden renders the 403 page; it serves as the CSRF failure handler.
func (e *ErrorPages) Forbidden(w http.ResponseWriter, r *http.Request) {
	e.Error(w, r, http.StatusForbidden, "The form has expired. Please reload the page and try again.")
}
