package commands

import (
	"context"
	"errors"
	"strings"

	dashboard "github.com/goliatone/go-admin-panel/components/dashboard"
	gocommand "github.com/goliatone/go-command"
)

// RecordActivityInput carries a single timeline entry.
type RecordActivityInput struct {
	Entry dashboard.ActivityEntry `json:"entry"`
}

type activityAppender interface {
	Append(entry dashboard.ActivityEntry)
}

// RecordActivityCommand appends entries to an in-memory activity feed.
type RecordActivityCommand struct {
	feed      activityAppender
	telemetry Telemetry
}

// NewRecordActivityCommand creates the command. A nil feed, typed or not, makes Execute
// fail instead of panicking.
func NewRecordActivityCommand(feed activityAppender, telemetry Telemetry) *RecordActivityCommand {
	if f, ok := feed.(*dashboard.MemoryActivityFeed); ok && f == nil {
		feed = nil
	}
	return &RecordActivityCommand{feed: feed, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RecordActivityInput] = (*RecordActivityCommand)(nil)

// Execute validates and appends the entry.
func (c *RecordActivityCommand) Execute(ctx context.Context, msg RecordActivityInput) error {
	if c.feed == nil {
		return errors.New("record activity command requires feed")
	}
	if strings.TrimSpace(msg.Entry.Action) == "" {
		return errors.New("record activity command requires an action")
	}
	c.feed.Append(msg.Entry)
	c.telemetry.Record(ctx, "dashboard.activity.record", map[string]any{
		"action": msg.Entry.Action,
		"type":   string(msg.Entry.Type),
	})
	return nil
}
