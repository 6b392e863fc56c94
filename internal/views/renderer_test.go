package views

import (
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencesite/internal/domain"
)

var testMonths = []string{"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря"}

func newTestRenderer(t *testing.T) (*Renderer, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "styles"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "styles", "main.css"), []byte("body{}"), 0o644))
	r, err := NewRenderer(Options{
		SiteTitle: "Web Standards Days",
		Months:    testMonths,
		StaticDir: dir,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return r, dir
}

func TestNewRenderer_RequiresTwelveMonths(t *testing.T) {
	_, err := NewRenderer(Options{Months: []string{"jan"}})
	assert.Error(t, err)
}

func TestRenderer_TemplateFuncs(t *testing.T) {
	r, dir := newTestRenderer(t)
	msk, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	date := time.Date(2015, time.March, 1, 10, 5, 0, 0, msk)

	assert.Equal(t, "марта", r.month(date))
	assert.Equal(t, "1.5 kB", filesize(1500))
	assert.Equal(t, "0 B", filesize(-1))

	fi, err := os.Stat(filepath.Join(dir, "styles", "main.css"))
	require.NoError(t, err)
	assert.Equal(t, "/static/styles/main.css?v="+strconv.FormatInt(fi.ModTime().Unix(), 10), r.static("styles/main.css"))
	assert.Equal(t, "/static/missing.png", r.static("/missing.png"), "missing assets keep a plain URL")
}

func TestRenderer_Render(t *testing.T) {
	r, _ := newTestRenderer(t)
	msk, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	date := time.Date(2015, time.March, 1, 0, 0, 0, 0, msk)

	event := &domain.Event{ID: "wsd-moscow-2015", Title: "WSD Moscow", Date: "2015-03-01", Timezone: "Europe/Moscow"}
	data := EventData{
		Layout: Layout{SiteTitle: r.SiteTitle(), Title: event.Title, Flashes: []string{"a@b.c is already registered"}},
		View: &domain.EventView{
			Event: event,
			Date:  date,
			Agenda: []domain.AgendaSlot{
				{Time: "10:00", Duration: 30, Title: "Registration"},
				{Time: "10:30", Duration: 45, Presentation: &domain.Presentation{ID: "p1", Title: "Flexbox", Speakers: []string{"s1"}},
					File: &domain.Attachment{Name: "p1.pdf", URL: "/pres/p1.pdf", Ext: "pdf", Size: 2048}},
			},
			Speakers:     []*domain.Speaker{{ID: "s1", FirstName: "Vadim", LastName: "Makeev"}},
			SpeakerNames: map[string]string{"s1": "Vadim Makeev"},
		},
		ShowRegistration: true,
		Form:             &domain.RegistrationSubmission{Email: "a@b.c"},
		CSRFField:        template.HTML(`<input type="hidden" name="gorilla.csrf.Token" value="tok">`),
	}

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, PageEvent, data))

	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "<title>WSD Moscow | Web Standards Days</title>")
	assert.Contains(t, body, "1 марта 2015")
	assert.Contains(t, body, "a@b.c is already registered")
	assert.Contains(t, body, "Vadim Makeev")
	assert.Contains(t, body, "pdf, 2.0 kB")
	assert.Contains(t, body, `name="gorilla.csrf.Token"`)
	assert.Contains(t, body, `name="regform_email" value="a@b.c"`)
}

func TestRenderer_RenderEscapesContent(t *testing.T) {
	r, _ := newTestRenderer(t)
	rec := httptest.NewRecorder()
	data := StaticPageData{Layout: Layout{SiteTitle: "<b>site</b>"}, Body: template.HTML("<h1>About</h1>")}
	require.NoError(t, r.Render(rec, http.StatusOK, PageStatic, data))

	assert.Contains(t, rec.Body.String(), "&lt;b&gt;site&lt;/b&gt;")
	assert.Contains(t, rec.Body.String(), "<h1>About</h1>")
}

func TestRenderer_RenderUnknownPage(t *testing.T) {
	r, _ := newTestRenderer(t)
	rec := httptest.NewRecorder()
	err := r.Render(rec, http.StatusOK, "nope.html", nil)
	assert.Error(t, err)
	assert.Empty(t, rec.Body.String())
}

func TestRenderer_RenderNotFound(t *testing.T) {
	r, _ := newTestRenderer(t)
	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusNotFound, PageNotFound, Layout{SiteTitle: "WSD"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
}

func TestRenderer_RenderError(t *testing.T) {
	r, _ := newTestRenderer(t)
	rec := httptest.NewRecorder()
	data := ErrorData{Layout: Layout{SiteTitle: "WSD"}, Status: http.StatusForbidden, Message: "Forbidden"}
	require.NoError(t, r.Render(rec, http.StatusForbidden, PageError, data))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>403</h1>")
}
