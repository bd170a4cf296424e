package commands

import (
	"context"
	"errors"
	"strings"

	dashboard "github.com/goliatone/go-admin-panel/components/dashboard"
	gocommand "github.com/goliatone/go-command"
)

// ReloadContentInput points at the content document to load.
type ReloadContentInput struct {
	Path string `json:"path"`
}

type contentReplacer interface {
	Replace(doc *dashboard.Content) error
}

// ContentReader loads a content document from a path.
type ContentReader func(path string) (*dashboard.Content, error)

// ReloadContentCommand reads a content document and swaps it into the live store.
type ReloadContentCommand struct {
	store     contentReplacer
	read      ContentReader
	telemetry Telemetry
}

// NewReloadContentCommand wires the store the content is swapped into. A nil reader
// selects dashboard.ReadContent.
func NewReloadContentCommand(store contentReplacer, read ContentReader, telemetry Telemetry) *ReloadContentCommand {
	if read == nil {
		read = dashboard.ReadContent
	}
	if s, ok := store.(*dashboard.ContentStore); ok && s == nil {
		store = nil
	}
	return &ReloadContentCommand{
		store:     store,
		read:      read,
		telemetry: normalizeTelemetry(telemetry),
	}
}

var _ gocommand.Commander[ReloadContentInput] = (*ReloadContentCommand)(nil)

// Execute loads msg.Path and replaces the store content. The previous content stays
// live when loading or validation fails.
func (c *ReloadContentCommand) Execute(ctx context.Context, msg ReloadContentInput) error {
	if c.store == nil {
		return errors.New("reload command requires content store")
	}
	path := strings.TrimSpace(msg.Path)
	if path == "" {
		return errors.New("reload command requires a content path")
	}
	doc, err := c.read(path)
	if err != nil {
		return err
	}
	if err := c.store.Replace(doc); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.content.reload", map[string]any{
		"path":    path,
		"stats":   len(doc.Stats),
		"actions": len(doc.QuickActions),
	})
	return nil
}
