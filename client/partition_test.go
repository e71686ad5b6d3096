package client

import (
	"testing"
	"time"
)

func testEvent(id string, start, end time.Time) Event {
	return Event{
		ID:        id,
		Title:     "event " + id,
		EventType: "meeting",
		StartTime: start,
		EndTime:   end,
	}
}

func withRecording(e Event) Event {
	e.Recording = &Recording{URL: "https://recordings.example.com/" + e.ID}
	return e
}

func TestPartition(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	ongoing := testEvent("ongoing", now.Add(-time.Hour), now.Add(time.Hour))
	laterToday := testEvent("later-today", now.Add(2*time.Hour), now.Add(3*time.Hour))
	eveningToday := testEvent("evening-today", now.Add(5*time.Hour), now.Add(6*time.Hour))
	tomorrow := testEvent("tomorrow", now.Add(day), now.Add(day+time.Hour))
	nextWeek := testEvent("next-week", now.Add(7*day), now.Add(7*day+time.Hour))
	yesterday := withRecording(testEvent("yesterday", now.Add(-day), now.Add(-day+time.Hour)))
	lastWeek := withRecording(testEvent("last-week", now.Add(-7*day), now.Add(-7*day+time.Hour)))
	earlierToday := testEvent("earlier-today", now.Add(-3*time.Hour), now.Add(-2*time.Hour))

	all := []Event{nextWeek, yesterday, eveningToday, ongoing, lastWeek, tomorrow, laterToday, earlierToday}

	views := Partition(all, now)

	t.Run("today holds ongoing and next same-day events up to the cap", func(t *testing.T) {
		assertIDs(t, views.Today, []string{"ongoing", "later-today"})
	})

	t.Run("today overflow stays in upcoming", func(t *testing.T) {
		assertIDs(t, views.Upcoming, []string{"evening-today", "tomorrow", "next-week"})
	})

	t.Run("previous is most recent first", func(t *testing.T) {
		assertIDs(t, views.Previous, []string{"earlier-today", "yesterday", "last-week"})
	})

	t.Run("recordings sorted descending by start", func(t *testing.T) {
		assertIDs(t, views.Recordings, []string{"yesterday", "last-week"})
	})

	t.Run("today upcoming and previous are disjoint", func(t *testing.T) {
		seen := map[string]string{}
		buckets := map[string][]Event{
			"today":    views.Today,
			"upcoming": views.Upcoming,
			"previous": views.Previous,
		}
		for name, bucket := range buckets {
			for _, e := range bucket {
				if prev, ok := seen[e.ID]; ok {
					t.Errorf("event %s in both %s and %s", e.ID, prev, name)
				}
				seen[e.ID] = name
			}
		}
	})
}

func TestPartitionOngoingOverflowStaysInUpcoming(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Three events running at once on now's calendar day. The today cap
	// keeps the first two; the third must still land in a bucket.
	a := testEvent("a", now.Add(-3*time.Hour), now.Add(time.Hour))
	b := testEvent("b", now.Add(-2*time.Hour), now.Add(2*time.Hour))
	c := testEvent("c", now.Add(-time.Hour), now.Add(3*time.Hour))

	views := Partition([]Event{a, b, c}, now)

	assertIDs(t, views.Today, []string{"a", "b"})
	assertIDs(t, views.Upcoming, []string{"c"})
	assertIDs(t, views.Previous, nil)

	placed := len(views.Today) + len(views.Upcoming) + len(views.Previous)
	if placed != 3 {
		t.Fatalf("placed %d of 3 events across today/upcoming/previous", placed)
	}
}

func TestPartitionDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []Event{
		testEvent("a", now.Add(time.Hour), now.Add(2*time.Hour)),
		testEvent("b", now.Add(-2*time.Hour), now.Add(-time.Hour)),
	}

	first := Partition(events, now)
	second := Partition(events, now)

	if len(first.Today) != len(second.Today) ||
		len(first.Upcoming) != len(second.Upcoming) ||
		len(first.Previous) != len(second.Previous) ||
		len(first.Recordings) != len(second.Recordings) {
		t.Fatal("same input and now produced different views")
	}
}

func TestPartitionEmptyInput(t *testing.T) {
	views := Partition(nil, time.Now())
	if views.Today == nil || views.Upcoming == nil || views.Previous == nil || views.Recordings == nil {
		t.Fatal("expected empty non-nil buckets for empty input")
	}
	if len(views.Today)+len(views.Upcoming)+len(views.Previous)+len(views.Recordings) != 0 {
		t.Fatal("expected all buckets empty")
	}
}

func TestPartitionDoesNotMutateInput(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	events := []Event{
		testEvent("z", now.Add(3*time.Hour), now.Add(4*time.Hour)),
		testEvent("a", now.Add(time.Hour), now.Add(2*time.Hour)),
	}

	Partition(events, now)

	if events[0].ID != "z" || events[1].ID != "a" {
		t.Fatal("input slice order changed")
	}
}

func assertIDs(t *testing.T, events []Event, want []string) {
	t.Helper()
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d (%v)", len(events), len(want), want)
	}
	for i, e := range events {
		if e.ID != want[i] {
			t.Errorf("position %d: got %s, want %s", i, e.ID, want[i])
		}
	}
}
