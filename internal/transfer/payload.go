// Package transfer implements cross-window tab hand-off: the serialized
// payload, the claim-once registry keyed by destination window, and the
// coordinator that commits a drop without ever leaving a tab owned by two
// windows or by none.
package transfer

import (
	"encoding/json"

	"github.com/tabflow/tabflow/internal/tab"
)

// Payload is the full state needed to rebuild a tab in another window.
// It carries unsaved content so a dirty tab survives the hand-off without
// touching disk.
type Payload struct {
	TabID         string `json:"tabId"`
	Title         string `json:"title"`
	FilePath      string `json:"filePath"`
	Content       string `json:"content"`
	SavedContent  string `json:"savedContent"`
	IsDirty       bool   `json:"isDirty"`
	WorkspaceRoot string `json:"workspaceRoot,omitempty"`
}

// NewPayload captures a tab and its document into a payload.
func NewPayload(t *tab.Tab, doc *tab.Document) Payload {
	p := Payload{
		TabID:    t.ID,
		Title:    t.Title,
		FilePath: t.Path,
	}
	if doc != nil {
		p.Content = doc.Content
		p.SavedContent = doc.SavedContent
		p.IsDirty = doc.Dirty
		p.WorkspaceRoot = doc.WorkspaceRoot
	}
	return p
}

// Restore rebuilds the tab and document the payload describes. The tab
// keeps its original ID so references held by the source window's history
// stay valid.
func (p Payload) Restore() (*tab.Tab, *tab.Document) {
	t := &tab.Tab{ID: p.TabID, Title: p.Title, Path: p.FilePath}
	doc := &tab.Document{
		Content:       p.Content,
		SavedContent:  p.SavedContent,
		Dirty:         p.IsDirty,
		Path:          p.FilePath,
		WorkspaceRoot: p.WorkspaceRoot,
	}
	return t, doc
}

// Encode serializes the payload for the wire.
func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// DecodePayload parses a payload off the wire.
func DecodePayload(data []byte) (Payload, error) {
	var p Payload
	err := json.Unmarshal(data, &p)
	return p, err
}
