package dashboard

import (
	"errors"
	"sync"
)

var errNilContent = errors.New("dashboard: content document is nil")

// ContentProvider returns the tables to render for the next request.
type ContentProvider interface {
	Current() Content
}

// ContentStore is a concurrency-safe holder of the live content document.
type ContentStore struct {
	mu        sync.RWMutex
	content   Content
	validator ContentValidator
}

// NewContentStore seeds the store with initial content. A nil validator selects the
// JSON schema validator.
func NewContentStore(initial Content, validator ContentValidator) *ContentStore {
	if validator == nil {
		validator = NewJSONSchemaValidator(nil)
	}
	return &ContentStore{
		content:   initial.Clone(),
		validator: validator,
	}
}

// Current returns a copy of the live content.
func (s *ContentStore) Current() Content {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.content.Clone()
}

// Replace validates doc and swaps it in. The previous content stays live on error.
func (s *ContentStore) Replace(doc *Content) error {
	if doc == nil {
		return errNilContent
	}
	if err := s.validator.Validate(*doc); err != nil {
		return err
	}
	next := doc.Clone()
	s.mu.Lock()
	s.content = next
	s.mu.Unlock()
	return nil
}

// StaticContent serves a fixed document.
type StaticContent Content

// Current returns a copy of the document.
func (c StaticContent) Current() Content {
	return Content(c).Clone()
}
