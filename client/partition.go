package client

import (
	"sort"
	"time"
)

// maxTodayDisplay caps the today bucket; the overflow stays in upcoming so
// no event is dropped.
const maxTodayDisplay = 2

// Views holds the four derived buckets of one event list. Today, Upcoming
// and Previous are disjoint; Recordings may overlap any of them.
type Views struct {
	Today      []Event
	Upcoming   []Event
	Previous   []Event
	Recordings []Event
}

// Partition derives the view buckets from one fetched list. It is pure:
// same events and same now always produce the same views.
//
//   - Today: starts on now's calendar day and is not over (starting later
//     today, or currently ongoing), first maxTodayDisplay by start time.
//   - Upcoming: not over yet (ends at or after now), ascending by start
//     time, minus the today bucket.
//   - Previous: ended before now, descending (most recent first).
//   - Recordings: carries a recording reference, descending by start time,
//     regardless of which time bucket it is in.
func Partition(events []Event, now time.Time) Views {
	views := Views{
		Today:      []Event{},
		Upcoming:   []Event{},
		Previous:   []Event{},
		Recordings: []Event{},
	}

	byStartAsc := make([]Event, len(events))
	copy(byStartAsc, events)
	sort.SliceStable(byStartAsc, func(i, j int) bool {
		return byStartAsc[i].StartTime.Before(byStartAsc[j].StartTime)
	})

	inToday := make(map[string]struct{}, maxTodayDisplay)
	for _, e := range byStartAsc {
		if len(views.Today) == maxTodayDisplay {
			break
		}
		if !sameDay(e.StartTime, now) {
			continue
		}
		ongoing := e.StartTime.Before(now) && e.EndTime.After(now)
		if e.StartTime.Before(now) && !ongoing {
			continue
		}
		views.Today = append(views.Today, e)
		inToday[e.ID] = struct{}{}
	}

	for _, e := range byStartAsc {
		if _, ok := inToday[e.ID]; ok {
			continue
		}
		// Anything not over yet belongs to upcoming, which keeps ongoing
		// events that overflowed the today cap from vanishing.
		if e.EndTime.Before(now) {
			views.Previous = append(views.Previous, e)
		} else {
			views.Upcoming = append(views.Upcoming, e)
		}
	}
	// Previous reads most-recent-first.
	reverse(views.Previous)

	for _, e := range byStartAsc {
		if e.HasRecording() {
			views.Recordings = append(views.Recordings, e)
		}
	}
	reverse(views.Recordings)

	return views
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func reverse(events []Event) {
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
}
