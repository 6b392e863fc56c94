package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"conferencesite/internal/datetime"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	PageIndex    = "index.html"
	PageEvent    = "event.html"
	PageStatic   = "page.html"
	PageNotFound = "not_found.html"
	PageError    = "error.html"
)

// Options configures a Renderer.
type Options struct {
	SiteTitle string
	// Months are the twelve localized month names, January first.
	Months []string
	// StaticDir is the directory served under StaticURL; it is only stat'ed for cache busting.
	StaticDir string
	StaticURL string
	Logger    *slog.Logger
}

// Renderer executes the site's page templates. Each page is parsed together with
// layout.html once, at construction.
type Renderer struct {
	pages     map[string]*template.Template
	siteTitle string
	months    []string
	staticDir string
	staticURL string
	logger    *slog.Logger
}

// NewRenderer parses all page templates.
func NewRenderer(opts Options) (*Renderer, error) {
	if len(opts.Months) != 12 {
		return nil, fmt.Errorf("views: need 12 month names, got %d", len(opts.Months))
	}
	if opts.StaticURL == "" {
		opts.StaticURL = "/static"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	r := &Renderer{
		pages:     make(map[string]*template.Template),
		siteTitle: opts.SiteTitle,
		months:    opts.Months,
		staticDir: opts.StaticDir,
		staticURL: strings.TrimSuffix(opts.StaticURL, "/"),
		logger:    opts.Logger,
	}

	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		base := path.Base(name)
		if base == "layout.html" {
			continue
		}
		tpl, err := template.New("layout.html").Funcs(r.funcs()).ParseFS(templateFS, "templates/layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", base, err)
		}
		r.pages[base] = tpl
	}
	return r, nil
}

// Render writes page with the given status. The page is executed into a buffer
// first so a template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("views: unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("views: render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// SiteTitle is the title rendered in every page header.
func (r *Renderer) SiteTitle() string {
	return r.siteTitle
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"day":      func(t time.Time) int { return t.Day() },
		"month":    r.month,
		"year":     func(t time.Time) int { return t.Year() },
		"clock":    datetime.FormatClock,
		"filesize": filesize,
		"static":   r.static,
	}
}

func (r *Renderer) month(t time.Time) string {
	return r.months[t.Month()-1]
}

// static returns the public URL of an asset with its modification time as a
// cache-busting query parameter.
func (r *Renderer) static(name string) string {
	name = strings.TrimPrefix(name, "/")
	u := r.staticURL + "/" + name
	fi, err := os.Stat(filepath.Join(r.staticDir, filepath.FromSlash(name)))
	if err != nil {
		r.logger.Warn("static asset missing", "path", name, "err", err)
		return u
	}
	return u + "?v=" + strconv.FormatInt(fi.ModTime().Unix(), 10)
}

func filesize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}
