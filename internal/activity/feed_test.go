package activity

import (
	"fmt"
	"testing"
)

func TestFeed_RecentNewestFirst(t *testing.T) {
	feed := NewFeed(10)
	feed.Record("campaigns", "create", "first")
	feed.Record("events", "create", "second")
	feed.Record("surveys", "launch", "third")

	recent := feed.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("Expected 2 entries but got %d", len(recent))
	}
	if recent[0].Message != "third" || recent[1].Message != "second" {
		t.Errorf("Expected newest first but got %q, %q", recent[0].Message, recent[1].Message)
	}
}

func TestFeed_DropsOldestWhenFull(t *testing.T) {
	feed := NewFeed(3)
	for i := 1; i <= 5; i++ {
		feed.Record("campaigns", "create", fmt.Sprintf("entry %d", i))
	}

	recent := feed.Recent(0)
	if len(recent) != 3 {
		t.Fatalf("Expected feed capped at 3 but got %d", len(recent))
	}
	if recent[0].Message != "entry 5" || recent[2].Message != "entry 3" {
		t.Errorf("Expected entries 5..3 but got %q .. %q", recent[0].Message, recent[2].Message)
	}
}

func TestFeed_LimitLargerThanFeed(t *testing.T) {
	feed := NewFeed(10)
	feed.Record("segments", "create", "only one")

	recent := feed.Recent(50)
	if len(recent) != 1 {
		t.Errorf("Expected 1 entry but got %d", len(recent))
	}
}

func TestFeed_EntriesCarryIdentity(t *testing.T) {
	feed := NewFeed(10)
	a := feed.Record("campaigns", "create", "one")
	b := feed.Record("campaigns", "create", "two")

	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Errorf("Expected distinct entry IDs but got %q and %q", a.ID, b.ID)
	}
	if a.At.IsZero() {
		t.Error("Expected entries to be timestamped")
	}
}

func TestFeed_BroadcastInvokedPerEntry(t *testing.T) {
	feed := NewFeed(10)
	var seen []Entry
	feed.SetBroadcast(func(e Entry) { seen = append(seen, e) })

	feed.Record("integrations", "sync", "queued")
	feed.Record("integrations", "sync", "done")

	if len(seen) != 2 {
		t.Fatalf("Expected 2 broadcasts but got %d", len(seen))
	}
	if seen[1].Message != "done" {
		t.Errorf("Expected the recorded entry to reach the broadcast but got %q", seen[1].Message)
	}
}
