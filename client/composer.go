package client

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// cacheTTL bounds how long a fetched list is treated as fresh. Events
	// are a low-volatility dataset; there is no implicit refetch on top of
	// this, mutations invalidate explicitly.
	cacheTTL  = 45 * time.Second
	cacheSize = 64

	sidebarKeyPrefix = "sidebar:"
	listKeyPrefix    = "list:"
)

// Composer sits on top of Client and derives the cached, mutation-aware
// views the frontends render. All methods are safe for concurrent use.
type Composer struct {
	client *Client

	mu    sync.Mutex
	cache *expirable.LRU[string, []Event]
}

// NewComposer wraps a client with the view cache.
func NewComposer(c *Client) *Composer {
	return &Composer{
		client: c,
		cache:  expirable.NewLRU[string, []Event](cacheSize, nil, cacheTTL),
	}
}

// FetchEvents returns the events matching the filter, serving a cached copy
// while it is fresh.
func (cp *Composer) FetchEvents(ctx context.Context, filter Filter) ([]Event, error) {
	key := listKeyPrefix + filter.Key()

	cp.mu.Lock()
	if cached, ok := cp.cache.Get(key); ok {
		out := cloneEvents(cached)
		cp.mu.Unlock()
		return out, nil
	}
	cp.mu.Unlock()

	events, err := cp.client.ListEvents(ctx, filter)
	if err != nil {
		return nil, err
	}

	cp.mu.Lock()
	cp.cache.Add(key, cloneEvents(events))
	cp.mu.Unlock()
	return events, nil
}

// FetchViews fetches (or serves from cache) and partitions in one step.
func (cp *Composer) FetchViews(ctx context.Context, filter Filter, now time.Time) (Views, error) {
	events, err := cp.FetchEvents(ctx, filter)
	if err != nil {
		return Views{}, err
	}
	return Partition(events, now), nil
}

// Sidebar returns the caller's next events. Transport and server failures
// degrade to an empty slice: the sidebar is decoration, not primary content.
func (cp *Composer) Sidebar(ctx context.Context, limit int) []Event {
	key := sidebarKey(limit)

	cp.mu.Lock()
	if cached, ok := cp.cache.Get(key); ok {
		out := cloneEvents(cached)
		cp.mu.Unlock()
		return out
	}
	cp.mu.Unlock()

	events, err := cp.client.UpcomingSidebar(ctx, limit)
	if err != nil {
		return []Event{}
	}

	cp.mu.Lock()
	cp.cache.Add(key, cloneEvents(events))
	cp.mu.Unlock()
	return events
}

// MutateRSVP optimistically applies the new status to every cached view,
// then issues the network call. On failure the pre-mutation snapshot is
// restored and a TransientMutationError is returned; on success all caches
// are invalidated so the next read is canonical.
func (cp *Composer) MutateRSVP(ctx context.Context, eventID, userID, status string) error {
	cp.mu.Lock()
	snapshot := cp.snapshotLocked()
	cp.applyRSVPLocked(eventID, userID, status)
	cp.mu.Unlock()

	if err := cp.client.SetRSVP(ctx, eventID, userID, status); err != nil {
		cp.mu.Lock()
		cp.restoreLocked(snapshot)
		cp.mu.Unlock()
		return &TransientMutationError{Err: err}
	}

	cp.Invalidate()
	return nil
}

// CreateEvent creates an event and invalidates all cached views.
func (cp *Composer) CreateEvent(ctx context.Context, input CreateEventInput) (*Event, error) {
	event, err := cp.client.CreateEvent(ctx, input)
	if err != nil {
		return nil, err
	}
	cp.Invalidate()
	return event, nil
}

// UpdateEvent applies a partial update and invalidates all cached views.
func (cp *Composer) UpdateEvent(ctx context.Context, eventID string, input UpdateEventInput) (*Event, error) {
	event, err := cp.client.UpdateEvent(ctx, eventID, input)
	if err != nil {
		return nil, err
	}
	cp.Invalidate()
	return event, nil
}

// DeleteEvent removes an event after an explicit confirmation. Without
// opts.Confirm no network call is issued at all.
func (cp *Composer) DeleteEvent(ctx context.Context, eventID string, opts DeleteOptions) error {
	if !opts.Confirm {
		return ErrConfirmationRequired
	}
	if err := cp.client.DeleteEvent(ctx, eventID); err != nil {
		return err
	}
	cp.Invalidate()
	return nil
}

// Invalidate drops every cached view. The next read of any filter hits the
// network.
func (cp *Composer) Invalidate() {
	cp.mu.Lock()
	cp.cache.Purge()
	cp.mu.Unlock()
}

// snapshotLocked copies the full cache contents. Caller holds cp.mu.
func (cp *Composer) snapshotLocked() map[string][]Event {
	snap := make(map[string][]Event)
	for _, key := range cp.cache.Keys() {
		if events, ok := cp.cache.Peek(key); ok {
			snap[key] = cloneEvents(events)
		}
	}
	return snap
}

// restoreLocked replaces the cache contents with a snapshot. Caller holds
// cp.mu.
func (cp *Composer) restoreLocked(snap map[string][]Event) {
	cp.cache.Purge()
	for key, events := range snap {
		cp.cache.Add(key, events)
	}
}

// applyRSVPLocked rewrites the viewer status of one event across every
// cached list. Caller holds cp.mu.
func (cp *Composer) applyRSVPLocked(eventID, userID, status string) {
	now := time.Now()
	for _, key := range cp.cache.Keys() {
		events, ok := cp.cache.Peek(key)
		if !ok {
			continue
		}
		updated := cloneEvents(events)
		for i := range updated {
			if updated[i].ID != eventID {
				continue
			}
			updated[i].ViewerStatus = status
			for p := range updated[i].Participants {
				if updated[i].Participants[p].UserID == userID {
					updated[i].Participants[p].Status = status
					respondedAt := now
					updated[i].Participants[p].RespondedAt = &respondedAt
				}
			}
		}
		cp.cache.Add(key, updated)
	}
}

func sidebarKey(limit int) string {
	if limit <= 0 {
		return sidebarKeyPrefix + "default"
	}
	return sidebarKeyPrefix + strconv.Itoa(limit)
}

// cloneEvents deep-copies the slice far enough that optimistic edits never
// alias a caller's copy.
func cloneEvents(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	for i := range out {
		if len(out[i].Participants) > 0 {
			ps := make([]Participant, len(out[i].Participants))
			copy(ps, out[i].Participants)
			out[i].Participants = ps
		}
	}
	return out
}

// IsTransient reports whether an error is worth a retry: a transport
// failure or a 5xx from the server, as opposed to a 4xx the caller must
// correct.
func IsTransient(err error) bool {
	var tf *TransientFetchError
	if errors.As(err, &tf) {
		return true
	}
	var api *APIError
	if errors.As(err, &api) {
		return api.StatusCode >= http.StatusInternalServerError
	}
	return false
}
