package service

import (
	"context"
	"testing"
	"time"

	"github.com/Ecospace254/employee-sub000/core/errors"
	"github.com/Ecospace254/employee-sub000/core/reminder"
	"github.com/Ecospace254/employee-sub000/modules/event/dto"
	"github.com/Ecospace254/employee-sub000/modules/event/entity"
	notifdto "github.com/Ecospace254/employee-sub000/modules/notification/dto"

	"github.com/google/uuid"
)

// fakeRepo is an in-memory EventRepositoryInterface for service tests.
type fakeRepo struct {
	events       map[uuid.UUID]*entity.Event
	participants map[uuid.UUID][]uuid.UUID

	createErr   error
	upcomingErr error
	listIDsErr  error

	updateCalled  bool
	deleteCalled  bool
	statusMatched bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		events:       map[uuid.UUID]*entity.Event{},
		participants: map[uuid.UUID][]uuid.UUID{},
	}
}

func (f *fakeRepo) ListEvents(ctx context.Context, filter entity.EventFilter) ([]entity.EventWithMeta, error) {
	out := []entity.EventWithMeta{}
	for _, e := range f.events {
		out = append(out, f.meta(e))
	}
	return out, nil
}

func (f *fakeRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (f *fakeRepo) GetEventWithMeta(ctx context.Context, id, viewerID uuid.UUID) (*entity.EventWithMeta, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, nil
	}
	m := f.meta(e)
	return &m, nil
}

func (f *fakeRepo) CreateEventWithParticipants(ctx context.Context, event *entity.Event, inviteeIDs []uuid.UUID) (*entity.Event, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	event.ID = uuid.New()
	f.events[event.ID] = event
	f.addPairs(event.ID, inviteeIDs)
	return event, nil
}

// addPairs mirrors the store's conflict handling: an (event, user) pair is
// recorded at most once.
func (f *fakeRepo) addPairs(eventID uuid.UUID, userIDs []uuid.UUID) {
	for _, userID := range userIDs {
		exists := false
		for _, have := range f.participants[eventID] {
			if have == userID {
				exists = true
				break
			}
		}
		if !exists {
			f.participants[eventID] = append(f.participants[eventID], userID)
		}
	}
}

func (f *fakeRepo) UpdateEvent(ctx context.Context, event *entity.Event) error {
	f.updateCalled = true
	f.events[event.ID] = event
	return nil
}

func (f *fakeRepo) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	f.deleteCalled = true
	delete(f.events, id)
	delete(f.participants, id)
	return nil
}

func (f *fakeRepo) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]entity.ParticipantWithUser, error) {
	out := []entity.ParticipantWithUser{}
	for _, userID := range f.participants[eventID] {
		out = append(out, entity.ParticipantWithUser{
			Participant: entity.Participant{
				EventID: eventID,
				UserID:  userID,
				Status:  entity.RSVPStatusPending,
			},
		})
	}
	return out, nil
}

func (f *fakeRepo) ListParticipantIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	if f.listIDsErr != nil {
		return nil, f.listIDsErr
	}
	return f.participants[eventID], nil
}

func (f *fakeRepo) AddParticipants(ctx context.Context, eventID uuid.UUID, userIDs []uuid.UUID) error {
	f.addPairs(eventID, userIDs)
	return nil
}

func (f *fakeRepo) UpdateParticipantStatus(ctx context.Context, eventID, userID uuid.UUID, status entity.RSVPStatus, respondedAt time.Time) (bool, error) {
	return f.statusMatched, nil
}

func (f *fakeRepo) ListUpcomingForUser(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]entity.EventWithMeta, error) {
	if f.upcomingErr != nil {
		return nil, f.upcomingErr
	}
	out := []entity.EventWithMeta{}
	for _, e := range f.events {
		if !e.StartTime.Before(now) {
			out = append(out, f.meta(e))
		}
	}
	return out, nil
}

func (f *fakeRepo) meta(e *entity.Event) entity.EventWithMeta {
	return entity.EventWithMeta{
		Event:            *e,
		OrganizerName:    "Organizer",
		OrganizerEmail:   "organizer@example.com",
		ParticipantCount: len(f.participants[e.ID]),
	}
}

// fakeNotifier records what was sent.
type fakeNotifier struct {
	sent []*notifdto.CreateNotificationRequest
}

func (f *fakeNotifier) Create(ctx context.Context, req *notifdto.CreateNotificationRequest) error {
	f.sent = append(f.sent, req)
	return nil
}

// fakeReminders records scheduled and cancelled reminders.
type fakeReminders struct {
	scheduled [][]uuid.UUID
	cancelled [][]uuid.UUID
}

func (f *fakeReminders) Schedule(ctx context.Context, ev reminder.EventInfo, userIDs []uuid.UUID) error {
	f.scheduled = append(f.scheduled, userIDs)
	return nil
}

func (f *fakeReminders) Cancel(ctx context.Context, eventID uuid.UUID, userIDs []uuid.UUID) error {
	f.cancelled = append(f.cancelled, userIDs)
	return nil
}

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestService(repo *fakeRepo, notifier *fakeNotifier, reminders *fakeReminders) EventServiceInterface {
	var n Notifier
	if notifier != nil {
		n = notifier
	}
	var r ReminderScheduler
	if reminders != nil {
		r = reminders
	}
	return NewEventService(repo, n, r, WithClock(func() time.Time { return testNow }))
}

func validCreateRequest() *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Title:     "Quarterly All-Hands",
		EventType: "event",
		StartTime: testNow.Add(24 * time.Hour),
		EndTime:   testNow.Add(25 * time.Hour),
	}
}

func TestCreateEventValidation(t *testing.T) {
	organizer := uuid.New()

	tests := []struct {
		name   string
		mutate func(*dto.CreateEventRequest)
	}{
		{"empty title", func(r *dto.CreateEventRequest) { r.Title = "   " }},
		{"end equals start", func(r *dto.CreateEventRequest) { r.EndTime = r.StartTime }},
		{"end before start", func(r *dto.CreateEventRequest) { r.EndTime = r.StartTime.Add(-time.Hour) }},
		{"unknown event type", func(r *dto.CreateEventRequest) { r.EventType = "party" }},
		{"zero start time", func(r *dto.CreateEventRequest) { r.StartTime = time.Time{} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			svc := newTestService(repo, nil, nil)

			req := validCreateRequest()
			tc.mutate(req)

			_, appErr := svc.CreateEvent(context.Background(), organizer, req)
			if appErr == nil {
				t.Fatal("expected a validation error")
			}
			if appErr.Code != errors.ErrInvalidInput {
				t.Fatalf("expected %s, got %s", errors.ErrInvalidInput, appErr.Code)
			}
			if len(repo.events) != 0 {
				t.Fatal("invalid input must not reach the repository")
			}
		})
	}
}

func TestCreateEventSuccess(t *testing.T) {
	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	reminders := &fakeReminders{}
	svc := newTestService(repo, notifier, reminders)

	organizer := uuid.New()
	invitee := uuid.New()

	req := validCreateRequest()
	// Duplicate and malformed ids must be dropped, not stored.
	req.ParticipantIDs = []string{invitee.String(), invitee.String(), "not-a-uuid"}

	resp, appErr := svc.CreateEvent(context.Background(), organizer, req)
	if appErr != nil {
		t.Fatalf("CreateEvent: %v", appErr)
	}

	if resp.Organizer.ID != organizer.String() {
		t.Errorf("organizer = %s, want %s", resp.Organizer.ID, organizer)
	}
	if resp.Slug == "" {
		t.Error("expected a generated slug")
	}

	var stored *entity.Event
	for _, e := range repo.events {
		stored = e
	}
	if stored == nil {
		t.Fatal("event not persisted")
	}
	if got := repo.participants[stored.ID]; len(got) != 1 || got[0] != invitee {
		t.Fatalf("invitees = %v, want exactly [%s]", got, invitee)
	}

	if len(notifier.sent) != 1 || notifier.sent[0].UserID != invitee {
		t.Fatalf("expected one invitation notification to %s, got %v", invitee, notifier.sent)
	}
	if len(reminders.scheduled) != 1 {
		t.Fatalf("expected one reminder batch, got %d", len(reminders.scheduled))
	}
	// Reminders cover the invitee and the organizer.
	if len(reminders.scheduled[0]) != 2 {
		t.Fatalf("expected reminders for 2 users, got %d", len(reminders.scheduled[0]))
	}
}

func TestUpdateEventOrganizerOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil, nil)

	organizer := uuid.New()
	stranger := uuid.New()

	created, appErr := svc.CreateEvent(context.Background(), organizer, validCreateRequest())
	if appErr != nil {
		t.Fatalf("CreateEvent: %v", appErr)
	}
	eventID := uuid.MustParse(created.ID)

	newTitle := "Hijacked"
	_, appErr = svc.UpdateEvent(context.Background(), eventID, stranger, &dto.UpdateEventRequest{Title: &newTitle})
	if appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected %s, got %v", errors.ErrForbidden, appErr)
	}
	if repo.updateCalled {
		t.Fatal("forbidden update must not reach the repository")
	}
	if repo.events[eventID].Title != "Quarterly All-Hands" {
		t.Fatal("event changed after a forbidden attempt")
	}

	_, appErr = svc.UpdateEvent(context.Background(), eventID, organizer, &dto.UpdateEventRequest{Title: &newTitle})
	if appErr != nil {
		t.Fatalf("organizer update: %v", appErr)
	}
	if repo.events[eventID].Title != "Hijacked" {
		t.Fatal("organizer update not applied")
	}
}

func TestUpdateEventMergedValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil, nil)

	organizer := uuid.New()
	created, appErr := svc.CreateEvent(context.Background(), organizer, validCreateRequest())
	if appErr != nil {
		t.Fatalf("CreateEvent: %v", appErr)
	}
	eventID := uuid.MustParse(created.ID)

	// Moving only the end time before the existing start must fail.
	badEnd := testNow.Add(23 * time.Hour)
	_, appErr = svc.UpdateEvent(context.Background(), eventID, organizer, &dto.UpdateEventRequest{EndTime: &badEnd})
	if appErr == nil || appErr.Code != errors.ErrInvalidInput {
		t.Fatalf("expected %s, got %v", errors.ErrInvalidInput, appErr)
	}
	if repo.updateCalled {
		t.Fatal("invalid merged update must not be persisted")
	}
}

func TestUpdateEventNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil, nil)

	title := "anything"
	_, appErr := svc.UpdateEvent(context.Background(), uuid.New(), uuid.New(), &dto.UpdateEventRequest{Title: &title})
	if appErr == nil || appErr.Code != errors.ErrNotFound {
		t.Fatalf("expected %s, got %v", errors.ErrNotFound, appErr)
	}
}

func TestDeleteEventOrganizerOnly(t *testing.T) {
	repo := newFakeRepo()
	reminders := &fakeReminders{}
	svc := newTestService(repo, nil, reminders)

	organizer := uuid.New()
	created, appErr := svc.CreateEvent(context.Background(), organizer, validCreateRequest())
	if appErr != nil {
		t.Fatalf("CreateEvent: %v", appErr)
	}
	eventID := uuid.MustParse(created.ID)

	if appErr := svc.DeleteEvent(context.Background(), eventID, uuid.New()); appErr == nil || appErr.Code != errors.ErrForbidden {
		t.Fatalf("expected %s, got %v", errors.ErrForbidden, appErr)
	}
	if repo.deleteCalled {
		t.Fatal("forbidden delete must not reach the repository")
	}

	if appErr := svc.DeleteEvent(context.Background(), eventID, organizer); appErr != nil {
		t.Fatalf("organizer delete: %v", appErr)
	}
	if _, ok := repo.events[eventID]; ok {
		t.Fatal("event still present after delete")
	}
	if len(reminders.cancelled) != 1 {
		t.Fatal("expected pending reminders to be cancelled")
	}
}

func TestAddParticipantsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil, nil)

	organizer := uuid.New()
	invitee := uuid.New()

	req := validCreateRequest()
	req.ParticipantIDs = []string{invitee.String()}
	created, appErr := svc.CreateEvent(context.Background(), organizer, req)
	if appErr != nil {
		t.Fatalf("CreateEvent: %v", appErr)
	}
	eventID := uuid.MustParse(created.ID)

	// Re-inviting an existing participant must not add a second row.
	for i := 0; i < 2; i++ {
		if _, appErr := svc.AddParticipants(context.Background(), eventID, []string{invitee.String()}); appErr != nil {
			t.Fatalf("AddParticipants call %d: %v", i+1, appErr)
		}
	}

	if got := len(repo.participants[eventID]); got != 1 {
		t.Fatalf("expected exactly 1 participant row, got %d", got)
	}
}

func TestDeleteEventRemovesParticipants(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil, nil)

	organizer := uuid.New()
	req := validCreateRequest()
	req.ParticipantIDs = []string{uuid.New().String(), uuid.New().String()}
	created, appErr := svc.CreateEvent(context.Background(), organizer, req)
	if appErr != nil {
		t.Fatalf("CreateEvent: %v", appErr)
	}
	eventID := uuid.MustParse(created.ID)

	if appErr := svc.DeleteEvent(context.Background(), eventID, organizer); appErr != nil {
		t.Fatalf("DeleteEvent: %v", appErr)
	}

	if rows, ok := repo.participants[eventID]; ok {
		t.Fatalf("participant rows left behind after delete: %v", rows)
	}
}

func TestDeleteEventSurvivesParticipantLookupFailure(t *testing.T) {
	repo := newFakeRepo()
	reminders := &fakeReminders{}
	svc := newTestService(repo, nil, reminders)

	organizer := uuid.New()
	created, appErr := svc.CreateEvent(context.Background(), organizer, validCreateRequest())
	if appErr != nil {
		t.Fatalf("CreateEvent: %v", appErr)
	}
	eventID := uuid.MustParse(created.ID)

	repo.listIDsErr = errors.New("connection reset")

	if appErr := svc.DeleteEvent(context.Background(), eventID, organizer); appErr != nil {
		t.Fatalf("DeleteEvent: %v", appErr)
	}
	if _, ok := repo.events[eventID]; ok {
		t.Fatal("event still present after delete")
	}

	// The organizer reminder is still cancelled even without the list.
	if len(reminders.cancelled) != 1 {
		t.Fatalf("expected 1 cancel call, got %d", len(reminders.cancelled))
	}
	if got := reminders.cancelled[0]; len(got) != 1 || got[0] != organizer {
		t.Fatalf("expected cancel for the organizer only, got %v", got)
	}
}

func TestSetParticipantStatus(t *testing.T) {
	t.Run("rejects pending and unknown statuses", func(t *testing.T) {
		svc := newTestService(newFakeRepo(), nil, nil)
		for _, status := range []string{"pending", "going", ""} {
			appErr := svc.SetParticipantStatus(context.Background(), uuid.New(), uuid.New(), status)
			if appErr == nil || appErr.Code != errors.ErrInvalidInput {
				t.Fatalf("status %q: expected %s, got %v", status, errors.ErrInvalidInput, appErr)
			}
		}
	})

	t.Run("not found when no invitation exists", func(t *testing.T) {
		repo := newFakeRepo()
		repo.statusMatched = false
		svc := newTestService(repo, nil, nil)

		appErr := svc.SetParticipantStatus(context.Background(), uuid.New(), uuid.New(), "accepted")
		if appErr == nil || appErr.Code != errors.ErrNotFound {
			t.Fatalf("expected %s, got %v", errors.ErrNotFound, appErr)
		}
	})

	t.Run("success notifies the organizer", func(t *testing.T) {
		repo := newFakeRepo()
		repo.statusMatched = true
		notifier := &fakeNotifier{}
		svc := newTestService(repo, notifier, nil)

		organizer := uuid.New()
		created, appErr := svc.CreateEvent(context.Background(), organizer, validCreateRequest())
		if appErr != nil {
			t.Fatalf("CreateEvent: %v", appErr)
		}
		eventID := uuid.MustParse(created.ID)

		if appErr := svc.SetParticipantStatus(context.Background(), eventID, uuid.New(), "declined"); appErr != nil {
			t.Fatalf("SetParticipantStatus: %v", appErr)
		}

		last := notifier.sent[len(notifier.sent)-1]
		if last.UserID != organizer || last.Type != "event_rsvp" {
			t.Fatalf("expected an RSVP notification to the organizer, got %+v", last)
		}
	})
}

func TestUpcomingForUserDegradesToEmpty(t *testing.T) {
	repo := newFakeRepo()
	repo.upcomingErr = errors.New("connection refused")
	svc := newTestService(repo, nil, nil)

	events := svc.UpcomingForUser(context.Background(), uuid.New(), 5)
	if events == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestOrganizerReportedAsAccepted(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil, nil)

	organizer := uuid.New()
	created, appErr := svc.CreateEvent(context.Background(), organizer, validCreateRequest())
	if appErr != nil {
		t.Fatalf("CreateEvent: %v", appErr)
	}

	if created.ViewerStatus != string(entity.RSVPStatusAccepted) {
		t.Fatalf("organizer viewer status = %q, want %q", created.ViewerStatus, entity.RSVPStatusAccepted)
	}
}

func TestListEventsRejectsBadFilter(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil, nil)

	tests := []struct {
		name  string
		query dto.EventListQuery
	}{
		{"bad event type", dto.EventListQuery{EventType: "festival"}},
		{"bad start date", dto.EventListQuery{StartDate: "next tuesday"}},
		{"bad user id", dto.EventListQuery{UserID: "nope"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, appErr := svc.ListEvents(context.Background(), uuid.New(), &tc.query)
			if appErr == nil || appErr.Code != errors.ErrInvalidInput {
				t.Fatalf("expected %s, got %v", errors.ErrInvalidInput, appErr)
			}
		})
	}
}

func TestListEventsAcceptsDateOnlyFilter(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil, nil)

	query := &dto.EventListQuery{StartDate: "2026-03-01", EndDate: "2026-03-31"}
	if _, appErr := svc.ListEvents(context.Background(), uuid.New(), query); appErr != nil {
		t.Fatalf("date-only filter rejected: %v", appErr)
	}
}
