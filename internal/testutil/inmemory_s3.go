package testutil

import (
	"context"
	"fmt"
	"sync"

	ierr "github.com/skyup-digital/skyup-api/internal/errors"
	"github.com/skyup-digital/skyup-api/internal/s3"
)

var _ s3.Service = (*InMemoryS3)(nil)

// InMemoryS3 stores uploaded documents by object key. Set Err to make every
// upload fail.
type InMemoryS3 struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
	Err     error
}

func NewInMemoryS3() *InMemoryS3 {
	return &InMemoryS3{
		objects: make(map[string][]byte),
		baseURL: "https://uploads.skyup.test",
	}
}

func (s *InMemoryS3) key(id string, docType s3.DocumentType) string {
	return fmt.Sprintf("skyup/%ss/%s", docType, id)
}

func (s *InMemoryS3) UploadDocument(ctx context.Context, doc *s3.Document) (*s3.StoredDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, ierr.WithError(s.Err).
			WithHint("failed to upload document").
			Mark(ierr.ErrHTTPClient)
	}

	key := s.key(doc.ID, doc.Type)
	s.objects[key] = append([]byte(nil), doc.Data...)

	return &s3.StoredDocument{
		Key:   key,
		URL:   s.baseURL + "/" + key,
		Bytes: int64(len(doc.Data)),
	}, nil
}

func (s *InMemoryS3) GetURL(ctx context.Context, id string, docType s3.DocumentType) (string, error) {
	return s.baseURL + "/" + s.key(id, docType), nil
}

func (s *InMemoryS3) Exists(ctx context.Context, id string, docType s3.DocumentType) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[s.key(id, docType)]
	return ok, nil
}

// Object returns the stored bytes for key
func (s *InMemoryS3) Object(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

func (s *InMemoryS3) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = make(map[string][]byte)
	s.Err = nil
}
