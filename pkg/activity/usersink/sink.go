// Package usersink adapts go-users activity records into dashboard timeline entries.
package usersink

import (
	"context"
	"fmt"
	"strings"
	"time"

	dashboard "github.com/goliatone/go-admin-panel/components/dashboard"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Appender receives mapped timeline entries. dashboard.MemoryActivityFeed satisfies it.
type Appender interface {
	Append(entry dashboard.ActivityEntry)
}

// Sink implements the go-users activity sink contract on top of a dashboard feed.
type Sink struct {
	Feed Appender
	Now  func() time.Time
}

var _ types.ActivitySink = Sink{}

// Log maps record into an activity entry. Records without a verb are ignored.
func (s Sink) Log(_ context.Context, record types.ActivityRecord) error {
	if s.Feed == nil {
		return nil
	}
	verb := strings.TrimSpace(record.Verb)
	if verb == "" {
		return nil
	}
	s.Feed.Append(dashboard.ActivityEntry{
		Action: firstString(record.Data, "action", verb),
		User:   actorName(record),
		Time:   FormatAgo(s.now(), record.OccurredAt),
		Type:   dashboard.ActivityType(firstString(record.Data, "type", string(dashboard.ActivityInfo))),
	})
	return nil
}

func (s Sink) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func actorName(record types.ActivityRecord) string {
	if name := firstString(record.Data, "actor_name", ""); name != "" {
		return name
	}
	if record.ActorID != uuid.Nil {
		return record.ActorID.String()
	}
	return dashboard.DefaultUserName
}

func firstString(data map[string]any, key, fallback string) string {
	if value, ok := data[key].(string); ok {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return fallback
}

// FormatAgo renders the distance between now and at as a Spanish relative label.
func FormatAgo(now, at time.Time) string {
	if at.IsZero() {
		return "Hace un momento"
	}
	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "Hace un momento"
	case elapsed < time.Hour:
		return plural(int(elapsed/time.Minute), "minuto", "minutos")
	case elapsed < 24*time.Hour:
		return plural(int(elapsed/time.Hour), "hora", "horas")
	default:
		return plural(int(elapsed/(24*time.Hour)), "día", "días")
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("Hace 1 %s", one)
	}
	return fmt.Sprintf("Hace %d %s", n, many)
}
