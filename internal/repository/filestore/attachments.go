package filestore

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"conferencesite/internal/domain"
)

// AttachmentStore finds presentation files in a flat directory. A file belongs to a
// presentation when its name without extension equals the presentation id.
type AttachmentStore struct {
	dir       string
	urlPrefix string
}

// NewAttachmentStore returns a store over dir whose files are served under urlPrefix.
func NewAttachmentStore(dir, urlPrefix string) *AttachmentStore {
	return &AttachmentStore{dir: dir, urlPrefix: urlPrefix}
}

// Resolve implements domain.AttachmentResolver.
func (s *AttachmentStore) Resolve(presentationID string) (*domain.Attachment, bool) {
	if !safeName(presentationID) {
		return nil, false
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, false
	}
	// ReadDir sorts by name, so the pick is deterministic when several extensions exist.
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if strings.TrimSuffix(name, ext) != presentationID {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, false
		}
		return &domain.Attachment{
			Name:    name,
			URL:     path.Join(s.urlPrefix, url.PathEscape(name)),
			Ext:     strings.TrimPrefix(ext, "."),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}, true
	}
	return nil, false
}

func safeName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
