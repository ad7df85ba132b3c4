package files

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"vetform/pkg/platform/sentinel"
)

// Upload is a candidate file as received at the transport boundary.
type Upload struct {
	FileName string
	MIMEType string
	Size     int64
	Data     []byte
}

// Entry is a stored upload plus its minted preview reference.
type Entry struct {
	Ref       string
	SessionID string
	FileName  string
	MIMEType  string
	Size      int64
	Preview   string
	data      []byte
}

// Registry owns uploaded document bytes for the lifetime of a session. Files
// never leave process memory; the draft codec persists previews only. Releasing
// an entry frees both the bytes and the preview reference, which is the
// server-side analog of revoking an object URL.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Add stores an upload for the session and mints its file reference and
// preview reference. The caller is expected to have run Check first; Add does
// not re-validate.
func (r *Registry) Add(sessionID string, up Upload) *Entry {
	entry := &Entry{
		Ref:       "upload-" + uuid.NewString(),
		SessionID: sessionID,
		FileName:  up.FileName,
		MIMEType:  up.MIMEType,
		Size:      up.Size,
		Preview:   "blob:vetform/" + uuid.NewString(),
		data:      up.Data,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entry.Ref] = entry
	return entry
}

// Get returns the entry for ref, scoped to the owning session.
func (r *Registry) Get(sessionID, ref string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[ref]
	if !ok || entry.SessionID != sessionID {
		return nil, fmt.Errorf("upload %s: %w", ref, sentinel.ErrNotFound)
	}
	return entry, nil
}

// Bytes exposes the stored file content for serving.
func (e *Entry) Bytes() []byte { return e.data }

// Release frees a stored upload and its preview reference. Releasing an
// unknown ref is a no-op so slot replacement never has to check first.
func (r *Registry) Release(ref string) {
	if ref == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, ref)
}

// ReleaseSession drops every upload owned by the session.
func (r *Registry) ReleaseSession(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for ref, entry := range r.entries {
		if entry.SessionID == sessionID {
			delete(r.entries, ref)
		}
	}
}

// Len reports the number of stored uploads.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
