package dashboard

import (
	"context"
	"testing"
)

func TestStaticActivityFeedClipsToLimit(t *testing.T) {
	feed := StaticActivityFeed{Items: DefaultActivity()}
	items, err := feed.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(items) != 2 || items[0].User != "Ana García" {
		t.Fatalf("unexpected items %#v", items)
	}
	all, _ := feed.Recent(context.Background(), 0)
	if len(all) != len(DefaultActivity()) {
		t.Fatalf("expected all items for non-positive limit, got %d", len(all))
	}
}

func TestMemoryActivityFeedNewestFirstAndCapped(t *testing.T) {
	feed := NewMemoryActivityFeed(2)
	feed.Append(ActivityEntry{Action: "uno"})
	feed.Append(ActivityEntry{Action: "dos", Type: ActivitySuccess})
	feed.Append(ActivityEntry{Action: "tres"})

	if feed.Len() != 2 {
		t.Fatalf("expected capacity to cap entries, got %d", feed.Len())
	}
	items, _ := feed.Recent(context.Background(), 10)
	if items[0].Action != "tres" || items[1].Action != "dos" {
		t.Fatalf("expected newest first, got %#v", items)
	}
	if items[0].Type != ActivityInfo {
		t.Fatalf("expected blank type to default to info, got %q", items[0].Type)
	}
}
