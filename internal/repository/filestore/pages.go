package filestore

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"conferencesite/internal/domain"
)

var pageNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// PageStore renders Markdown pages from <dir>/<name>.md.
type PageStore struct {
	dir string
	md  goldmark.Markdown
}

// NewPageStore returns a PageStore over dir. Raw HTML in the Markdown is escaped.
func NewPageStore(dir string) *PageStore {
	return &PageStore{
		dir: dir,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()),
		),
	}
}

// Get implements domain.PageRepository.
func (s *PageStore) Get(ctx context.Context, name string) (*domain.Page, bool, error) {
	if !pageNameRegex.MatchString(name) {
		return nil, false, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	src, err := os.ReadFile(filepath.Join(s.dir, name+".md"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read page %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := s.md.Convert(src, &buf); err != nil {
		return nil, false, fmt.Errorf("render page %s: %w", name, err)
	}
	return &domain.Page{Name: name, Title: pageTitle(src, name), HTML: buf.String()}, true, nil
}

// pageTitle returns the first level-one heading, or name.
func pageTitle(src []byte, name string) string {
	sc := bufio.NewScanner(bytes.NewReader(src))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return name
}
