package tab

import "fmt"

// Document holds the editable content backing a tab. Documents live in a
// separate store keyed by tab id; one exists for every live tab and is
// removed in the same logical step the tab is removed.
type Document struct {
	Content       string
	SavedContent  string
	Dirty         bool
	Path          string
	WorkspaceRoot string
}

// DocumentStore owns the documents of one window, keyed by tab id.
type DocumentStore struct {
	docs map[string]*Document
}

// NewDocumentStore returns an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make(map[string]*Document)}
}

// Init registers a document for a tab. An existing document for the same
// tab id is replaced; transfer undo relies on this to reconstruct state.
func (s *DocumentStore) Init(tabID string, doc *Document) {
	s.docs[tabID] = doc
}

// Get returns the document for a tab id, or nil.
func (s *DocumentStore) Get(tabID string) *Document {
	return s.docs[tabID]
}

// Remove deletes the document for a tab id and returns it.
func (s *DocumentStore) Remove(tabID string) (*Document, error) {
	doc, ok := s.docs[tabID]
	if !ok {
		return nil, fmt.Errorf("%w: document %s", ErrNotFound, tabID)
	}
	delete(s.docs, tabID)
	return doc, nil
}

// Len returns the number of documents in the store.
func (s *DocumentStore) Len() int {
	return len(s.docs)
}

// SetContent updates the document content and recomputes the dirty flag
// against the saved baseline.
func (s *DocumentStore) SetContent(tabID, content string) error {
	doc, ok := s.docs[tabID]
	if !ok {
		return fmt.Errorf("%w: document %s", ErrNotFound, tabID)
	}
	doc.Content = content
	doc.Dirty = content != doc.SavedContent
	return nil
}
