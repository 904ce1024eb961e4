// Package upload keeps per-form-session input files in memory: candidates
// are filtered by the model's accepted MIME prefix, the retained list is
// truncated to the model's file limit, and every retained file owns exactly
// one preview handle that is released when the file is removed or the
// session is torn down.
package upload

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"genhub/services/web-frontend/internal/domain/model"
)

// File is one user-selected binary blob.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Preview is the transient handle exposed for a retained file.
type Preview struct {
	ID   string       `json:"id"`
	URL  string       `json:"url"`
	Type model.IOType `json:"type"`
	Name string       `json:"name"`
}

type entry struct {
	file    File
	preview Preview
}

type session struct {
	from      model.IOType
	limit     int
	entries   []entry
	touchedAt time.Time
}

// AddResult reports the outcome of one add operation. Rejected files are
// dropped silently from the list; the counts let a caller surface them.
type AddResult struct {
	Previews []Preview `json:"previews"`
	Accepted int       `json:"accepted"`
	Rejected int       `json:"rejected"`
	Dropped  int       `json:"dropped"`
}

// ErrSessionNotFound is returned for operations on unknown sessions.
var ErrSessionNotFound = fmt.Errorf("upload session not found")

// ErrIndexOutOfRange is returned when removing a position that does not exist.
var ErrIndexOutOfRange = fmt.Errorf("upload index out of range")

// Store owns all upload sessions.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
	maxBytes int64
	ttl      time.Duration
	log      zerolog.Logger
}

// NewStore builds a Store. maxBytes bounds a single file, ttl bounds an
// idle session's lifetime.
func NewStore(maxBytes int64, ttl time.Duration, log zerolog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*session),
		maxBytes: maxBytes,
		ttl:      ttl,
		log:      log.With().Str("component", "upload-store").Logger(),
	}
}

// Add filters candidates against the session's accepted MIME prefix,
// appends survivors in encounter order, and truncates to the file limit
// (last-wins: overflow is silently dropped, not rejected with an error).
// The session is created on first use.
func (s *Store) Add(sessionID string, from model.IOType, limit int, candidates []File) (AddResult, error) {
	if limit <= 0 {
		limit = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{from: from, limit: limit}
		s.sessions[sessionID] = sess
	}
	sess.from = from
	sess.limit = limit
	sess.touchedAt = time.Now()

	result := AddResult{}
	prefix := from.AcceptPrefix()
	for _, f := range candidates {
		if !accepts(prefix, f) {
			result.Rejected++
			continue
		}
		if s.maxBytes > 0 && int64(len(f.Data)) > s.maxBytes {
			result.Rejected++
			continue
		}
		if len(sess.entries) >= sess.limit {
			result.Dropped++
			continue
		}
		id := uuid.NewString()
		sess.entries = append(sess.entries, entry{
			file: f,
			preview: Preview{
				ID:   id,
				URL:  previewURL(sessionID, id),
				Type: from,
				Name: f.Name,
			},
		})
		result.Accepted++
	}

	result.Previews = previews(sess)
	return result, nil
}

// Remove deletes exactly the entry at index, releasing its preview handle
// and preserving the relative order of the rest.
func (s *Store) Remove(sessionID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if index < 0 || index >= len(sess.entries) {
		return ErrIndexOutOfRange
	}
	sess.entries = append(sess.entries[:index], sess.entries[index+1:]...)
	sess.touchedAt = time.Now()
	return nil
}

// Previews returns the current preview list in retained order.
func (s *Store) Previews(sessionID string) []Preview {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	return previews(sess)
}

// Count returns the number of retained files for a session.
func (s *Store) Count(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return 0
	}
	return len(sess.entries)
}

// Open resolves a preview handle to its file for serving.
func (s *Store) Open(sessionID, previewID string) (File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return File{}, false
	}
	sess.touchedAt = time.Now()
	for _, e := range sess.entries {
		if e.preview.ID == previewID {
			return e.file, true
		}
	}
	return File{}, false
}

// Teardown releases every preview handle of a session.
func (s *Store) Teardown(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// SweepExpired tears down sessions idle longer than the TTL and returns
// how many were removed.
func (s *Store) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if time.Since(sess.touchedAt) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.log.Debug().Int("sessions", removed).Msg("swept expired upload sessions")
	}
	return removed
}

func previews(sess *session) []Preview {
	out := make([]Preview, 0, len(sess.entries))
	for _, e := range sess.entries {
		out = append(out, e.preview)
	}
	return out
}

func previewURL(sessionID, previewID string) string {
	return fmt.Sprintf("/v1/uploads/%s/%s", sessionID, previewID)
}

// accepts checks the candidate against the accepted prefix: sniffed
// content wins, the declared content type is the fallback for empty files.
func accepts(prefix string, f File) bool {
	if prefix == "" {
		return true
	}
	mime := f.ContentType
	if len(f.Data) > 0 {
		mime = mimetype.Detect(f.Data).String()
	}
	return strings.HasPrefix(mime, prefix)
}
