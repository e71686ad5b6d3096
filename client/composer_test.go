package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  http.StatusOK,
		"message": "ok",
		"data":    data,
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "error",
		"code":    code,
		"message": message,
	})
}

func newTestComposer(t *testing.T, handler http.Handler) (*Composer, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewComposer(c), srv
}

func TestFetchEventsServesCachedResult(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/events", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeSuccess(w, []Event{{ID: "e1", Title: "Standup"}})
	})
	cp, _ := newTestComposer(t, mux)

	ctx := context.Background()
	filter := Filter{EventType: "meeting"}

	for i := 0; i < 3; i++ {
		events, err := cp.FetchEvents(ctx, filter)
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if len(events) != 1 || events[0].ID != "e1" {
			t.Fatalf("fetch %d: unexpected events %v", i, events)
		}
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 network call, got %d", got)
	}

	// A different filter is a different cache slot.
	if _, err := cp.FetchEvents(ctx, Filter{EventType: "training"}); err != nil {
		t.Fatalf("second filter: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected 2 network calls after new filter, got %d", got)
	}
}

func TestMutateRSVPSuccessInvalidatesCache(t *testing.T) {
	var listCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/events", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&listCalls, 1)
		writeSuccess(w, []Event{{ID: "e1", ViewerStatus: "pending"}})
	})
	mux.HandleFunc("/api/events/e1/participants/u1", func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, nil)
	})
	cp, _ := newTestComposer(t, mux)

	ctx := context.Background()
	if _, err := cp.FetchEvents(ctx, Filter{}); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	if err := cp.MutateRSVP(ctx, "e1", "u1", "accepted"); err != nil {
		t.Fatalf("MutateRSVP: %v", err)
	}

	// The cache was invalidated, so this fetch must hit the network again.
	if _, err := cp.FetchEvents(ctx, Filter{}); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if got := atomic.LoadInt32(&listCalls); got != 2 {
		t.Fatalf("expected 2 list calls, got %d", got)
	}
}

func TestMutateRSVPFailureRollsBack(t *testing.T) {
	var listCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/events", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&listCalls, 1)
		writeSuccess(w, []Event{{ID: "e1", ViewerStatus: "pending"}})
	})
	mux.HandleFunc("/api/events/e1/participants/u1", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "boom")
	})
	cp, _ := newTestComposer(t, mux)

	ctx := context.Background()
	if _, err := cp.FetchEvents(ctx, Filter{}); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	err := cp.MutateRSVP(ctx, "e1", "u1", "accepted")
	if err == nil {
		t.Fatal("expected an error")
	}
	var te *TransientMutationError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransientMutationError, got %T: %v", err, err)
	}

	// The snapshot was restored: the cached copy still says pending and no
	// extra network call happened.
	events, fetchErr := cp.FetchEvents(ctx, Filter{})
	if fetchErr != nil {
		t.Fatalf("refetch: %v", fetchErr)
	}
	if events[0].ViewerStatus != "pending" {
		t.Fatalf("expected rollback to pending, got %q", events[0].ViewerStatus)
	}
	if got := atomic.LoadInt32(&listCalls); got != 1 {
		t.Fatalf("expected cached read after rollback, got %d list calls", got)
	}
}

func TestDeleteEventRequiresConfirmation(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeSuccess(w, nil)
	})
	cp, _ := newTestComposer(t, mux)

	err := cp.DeleteEvent(context.Background(), "e1", DeleteOptions{})
	if !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("expected ErrConfirmationRequired, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatal("unconfirmed delete must not reach the network")
	}

	if err := cp.DeleteEvent(context.Background(), "e1", DeleteOptions{Confirm: true}); err != nil {
		t.Fatalf("confirmed delete: %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatal("confirmed delete should issue exactly one call")
	}
}

func TestSidebarDegradesToEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/events/upcoming/sidebar", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "db down")
	})
	cp, _ := newTestComposer(t, mux)

	events := cp.Sidebar(context.Background(), 5)
	if events == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestSidebarCachesResult(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/events/upcoming/sidebar", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeSuccess(w, []Event{{ID: "up1", StartTime: time.Now().Add(time.Hour)}})
	})
	cp, _ := newTestComposer(t, mux)

	for i := 0; i < 2; i++ {
		events := cp.Sidebar(context.Background(), 5)
		if len(events) != 1 {
			t.Fatalf("call %d: expected 1 event, got %d", i, len(events))
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected 1 network call, got %d", got)
	}
}

func TestAPIErrorMapping(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/events/missing", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Event not found")
	})
	cp, _ := newTestComposer(t, mux)

	_, err := cp.client.GetEvent(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Code != "NOT_FOUND" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if IsTransient(err) {
		t.Fatal("a 404 is not transient")
	}
}
