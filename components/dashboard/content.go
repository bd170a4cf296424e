package dashboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	contentVersionV1 = "1"
	// ContentVersion exposes the current content document format version for tooling.
	ContentVersion = contentVersionV1
)

// Content holds the tables rendered by the dashboard panels. The zero value renders
// empty panels; DefaultContent returns the built-in tables.
type Content struct {
	Version      string            `json:"version" yaml:"version"`
	Stats        []Stat            `json:"stats" yaml:"stats"`
	QuickActions []QuickAction     `json:"quick_actions" yaml:"quick_actions"`
	Activity     []ActivityEntry   `json:"activity" yaml:"activity"`
	Status       []StatusIndicator `json:"status" yaml:"status"`
	Source       string            `json:"-" yaml:"-"`
}

// ReadContent loads a content document from disk.
func ReadContent(path string) (*Content, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open content %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeContent(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode content %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeContent reads a YAML (or JSON) content document from any reader. Unknown
// fields are rejected.
func DecodeContent(r io.Reader) (*Content, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc Content
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dashboard: content document is empty")
		}
		return nil, fmt.Errorf("dashboard: parse content: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeContent writes the document as YAML.
func EncodeContent(w io.Writer, doc Content) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("dashboard: encode content: %w", err)
	}
	return encoder.Close()
}

// Validate checks required fields and duplicate names.
func (doc *Content) Validate() error {
	if doc.Version != contentVersionV1 {
		return fmt.Errorf("dashboard: unsupported content version %q", doc.Version)
	}
	seenStats := make(map[string]struct{}, len(doc.Stats))
	for idx, stat := range doc.Stats {
		if strings.TrimSpace(stat.Name) == "" {
			return fmt.Errorf("dashboard: stat at index %d is missing name", idx)
		}
		if _, ok := seenStats[stat.Name]; ok {
			return fmt.Errorf("dashboard: content duplicates stat %s", stat.Name)
		}
		seenStats[stat.Name] = struct{}{}
	}
	seenActions := make(map[string]struct{}, len(doc.QuickActions))
	for idx, action := range doc.QuickActions {
		if strings.TrimSpace(action.Name) == "" {
			return fmt.Errorf("dashboard: quick action at index %d is missing name", idx)
		}
		if strings.TrimSpace(action.Href) == "" {
			return fmt.Errorf("dashboard: quick action %s missing href", action.Name)
		}
		if strings.TrimSpace(action.RequiresModule) == "" {
			return fmt.Errorf("dashboard: quick action %s missing requires_module", action.Name)
		}
		if _, ok := seenActions[action.Name]; ok {
			return fmt.Errorf("dashboard: content duplicates quick action %s", action.Name)
		}
		seenActions[action.Name] = struct{}{}
	}
	for idx, entry := range doc.Activity {
		if strings.TrimSpace(entry.Action) == "" {
			return fmt.Errorf("dashboard: activity at index %d is missing action", idx)
		}
	}
	for idx, row := range doc.Status {
		if strings.TrimSpace(row.Title) == "" {
			return fmt.Errorf("dashboard: status row at index %d is missing title", idx)
		}
	}
	return nil
}

// Clone returns a deep copy of the document tables.
func (doc Content) Clone() Content {
	out := doc
	out.Stats = append([]Stat(nil), doc.Stats...)
	out.QuickActions = append([]QuickAction(nil), doc.QuickActions...)
	out.Activity = append([]ActivityEntry(nil), doc.Activity...)
	out.Status = append([]StatusIndicator(nil), doc.Status...)
	return out
}

func (doc *Content) applyDefaults() {
	if doc.Version == "" {
		doc.Version = contentVersionV1
	}
	for i := range doc.Activity {
		if doc.Activity[i].Type == "" {
			doc.Activity[i].Type = ActivityInfo
		}
	}
}
