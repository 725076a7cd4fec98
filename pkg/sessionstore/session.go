package sessionstore

import (
	"bytes"
	"context"
	"time"
)

// Session is a writable handle to one batch's output location. It is owned
// by the batch that created it for the duration of the request.
type Session struct {
	ID        string
	Kind      string
	CreatedAt time.Time

	store *Store
}

// Write stores data as name inside the session. An existing file of the
// same name is replaced.
func (s *Session) Write(ctx context.Context, name string, data []byte) (int64, error) {
	p, err := s.store.path(s.ID, name)
	if err != nil {
		return 0, err
	}
	return s.store.storage.Put(ctx, p, bytes.NewReader(data))
}

// URL returns the public retrieval path of name within the session.
func (s *Session) URL(name string) string {
	return s.store.URL(s.ID, name)
}
