package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ecospace254/employee-sub000/core/constants"
	"github.com/Ecospace254/employee-sub000/core/errors"
	"github.com/Ecospace254/employee-sub000/core/logger"
	"github.com/Ecospace254/employee-sub000/core/reminder"
	"github.com/Ecospace254/employee-sub000/core/utils"
	"github.com/Ecospace254/employee-sub000/modules/event/dto"
	"github.com/Ecospace254/employee-sub000/modules/event/entity"
	"github.com/Ecospace254/employee-sub000/modules/event/repository"
	notifdto "github.com/Ecospace254/employee-sub000/modules/notification/dto"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Notifier is the slice of the notification service the events module needs.
type Notifier interface {
	Create(ctx context.Context, req *notifdto.CreateNotificationRequest) error
}

// ReminderScheduler schedules and cancels event-start reminders.
type ReminderScheduler interface {
	Schedule(ctx context.Context, ev reminder.EventInfo, userIDs []uuid.UUID) error
	Cancel(ctx context.Context, eventID uuid.UUID, userIDs []uuid.UUID) error
}

// EventService handles event business logic: input validation, the
// organizer-only mutation rule and the RSVP state machine.
type EventService struct {
	repo      repository.EventRepositoryInterface
	notifier  Notifier
	reminders ReminderScheduler
	now       func() time.Time
}

// EventServiceInterface defines the service contract.
type EventServiceInterface interface {
	ListEvents(ctx context.Context, viewerID uuid.UUID, q *dto.EventListQuery) ([]dto.EventResponse, *errors.AppError)
	GetEventByID(ctx context.Context, id, viewerID uuid.UUID) (*dto.EventResponse, *errors.AppError)
	CreateEvent(ctx context.Context, organizerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError)
	UpdateEvent(ctx context.Context, eventID, actingUserID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError)
	DeleteEvent(ctx context.Context, eventID, actingUserID uuid.UUID) *errors.AppError
	AddParticipants(ctx context.Context, eventID uuid.UUID, userIDs []string) (*dto.EventResponse, *errors.AppError)
	SetParticipantStatus(ctx context.Context, eventID, userID uuid.UUID, status string) *errors.AppError
	UpcomingForUser(ctx context.Context, userID uuid.UUID, limit int) []dto.EventResponse
}

// Option configures the service.
type Option func(*EventService)

// WithClock replaces the wall clock, keeping time-dependent behavior
// deterministic in tests.
func WithClock(now func() time.Time) Option {
	return func(s *EventService) { s.now = now }
}

// NewEventService creates a new event service. Notifier and reminders may be
// nil; both are best-effort side channels.
func NewEventService(repo repository.EventRepositoryInterface, notifier Notifier, reminders ReminderScheduler, opts ...Option) EventServiceInterface {
	s := &EventService{
		repo:      repo,
		notifier:  notifier,
		reminders: reminders,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ===================== Queries =====================

// ListEvents returns enriched events matching the intersection of the
// supplied filters, ordered by start time ascending.
func (s *EventService) ListEvents(ctx context.Context, viewerID uuid.UUID, q *dto.EventListQuery) ([]dto.EventResponse, *errors.AppError) {
	filter, appErr := parseFilter(viewerID, q)
	if appErr != nil {
		return nil, appErr
	}

	events, err := s.repo.ListEvents(ctx, *filter)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list events", err)
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		s.applyOrganizerStatus(&events[i], viewerID)
		result = append(result, *dto.ToEventResponse(&events[i]))
	}
	return result, nil
}

// GetEventByID returns one event enriched with the full participant list.
func (s *EventService) GetEventByID(ctx context.Context, id, viewerID uuid.UUID) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventWithMeta(ctx, id, viewerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	participants, err := s.repo.ListParticipants(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get participants", err)
	}

	s.applyOrganizerStatus(event, viewerID)
	resp := dto.ToEventResponse(event)
	for i := range participants {
		resp.Participants = append(resp.Participants, dto.ToParticipantResponse(&participants[i]))
	}
	return resp, nil
}

// UpcomingForUser returns up to limit events starting at or after now where
// the user is organizer or participant. Failures degrade to an empty list:
// the sidebar is decoration, not primary content. The degradation is logged
// so real backend errors stay visible.
func (s *EventService) UpcomingForUser(ctx context.Context, userID uuid.UUID, limit int) []dto.EventResponse {
	if limit <= 0 {
		limit = constants.DefaultUpcomingLimit
	}
	if limit > constants.MaxUpcomingLimit {
		limit = constants.MaxUpcomingLimit
	}

	events, err := s.repo.ListUpcomingForUser(ctx, userID, s.now(), limit)
	if err != nil {
		logger.Warn("EventService:UpcomingForUser:Degraded", "user_id", userID, "error", err)
		return []dto.EventResponse{}
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		s.applyOrganizerStatus(&events[i], userID)
		result = append(result, *dto.ToEventResponse(&events[i]))
	}
	return result
}

// ===================== Mutations =====================

// CreateEvent validates the input, persists the event with its pending
// invitee rows in one transaction, then fans out invitations and reminders.
func (s *EventService) CreateEvent(ctx context.Context, organizerID uuid.UUID, req *dto.CreateEventRequest) (*dto.EventResponse, *errors.AppError) {
	title := strings.TrimSpace(req.Title)
	eventType := entity.EventType(req.EventType)
	if appErr := validateEvent(title, eventType, req.StartTime, req.EndTime); appErr != nil {
		return nil, appErr
	}

	event := &entity.Event{
		OrganizerID: organizerID,
		Title:       title,
		EventType:   eventType,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsMandatory: req.IsMandatory,
		Slug:        makeSlug(title),
	}
	if req.Description != "" {
		event.Description = &req.Description
	}
	if req.Location != "" {
		event.Location = &req.Location
	}
	if req.MeetingLink != "" {
		event.MeetingLink = &req.MeetingLink
	}
	if req.MaxAttendees != nil && *req.MaxAttendees > 0 {
		event.MaxAttendees = req.MaxAttendees
	}

	inviteeIDs := parseUserIDs(req.ParticipantIDs)

	created, err := s.repo.CreateEventWithParticipants(ctx, event, inviteeIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCreateFailed, "Failed to create event", err)
	}

	s.notifyInvitees(ctx, created, inviteeIDs)
	s.scheduleReminders(ctx, created, append(inviteeIDs, organizerID))

	return s.GetEventByID(ctx, created.ID, organizerID)
}

// UpdateEvent applies a partial update. Only the organizer may mutate; the
// merged result is re-validated.
func (s *EventService) UpdateEvent(ctx context.Context, eventID, actingUserID uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if event.OrganizerID != actingUserID {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only the organizer may update this event", nil)
	}

	timeChanged := applyPatch(event, req)

	if appErr := validateEvent(event.Title, event.EventType, event.StartTime, event.EndTime); appErr != nil {
		return nil, appErr
	}

	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to update event", err)
	}

	if timeChanged {
		s.rescheduleReminders(ctx, event)
	}

	return s.GetEventByID(ctx, eventID, actingUserID)
}

// DeleteEvent removes the event and all its participant rows. Organizer
// only.
func (s *EventService) DeleteEvent(ctx context.Context, eventID, actingUserID uuid.UUID) *errors.AppError {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil {
		return errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}
	if event.OrganizerID != actingUserID {
		return errors.NewAppError(errors.ErrForbidden, "Only the organizer may delete this event", nil)
	}

	participantIDs, err := s.repo.ListParticipantIDs(ctx, eventID)
	if err != nil {
		// Best effort. The delete proceeds and the organizer reminder is
		// still cancelled.
		logger.Warn("EventService:DeleteEvent:ListParticipantIDs", "event_id", eventID, "error", err)
		participantIDs = nil
	}

	if err := s.repo.DeleteEvent(ctx, eventID); err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "Failed to delete event", err)
	}

	if s.reminders != nil {
		_ = s.reminders.Cancel(ctx, eventID, append(participantIDs, event.OrganizerID))
	}
	return nil
}

// AddParticipants bulk-invites users. Existing pairs are silently ignored.
func (s *EventService) AddParticipants(ctx context.Context, eventID uuid.UUID, userIDs []string) (*dto.EventResponse, *errors.AppError) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get event", err)
	}
	if event == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Event not found", nil)
	}

	inviteeIDs := parseUserIDs(userIDs)
	if len(inviteeIDs) > 0 {
		if err := s.repo.AddParticipants(ctx, eventID, inviteeIDs); err != nil {
			return nil, errors.NewAppError(errors.ErrUpdateFailed, "Failed to add participants", err)
		}
		s.notifyInvitees(ctx, event, inviteeIDs)
		s.scheduleReminders(ctx, event, inviteeIDs)
	}

	return s.GetEventByID(ctx, eventID, event.OrganizerID)
}

// SetParticipantStatus records the user's RSVP. Pending is insert-only and
// can never be re-entered; the self-only rule is enforced by the controller.
func (s *EventService) SetParticipantStatus(ctx context.Context, eventID, userID uuid.UUID, status string) *errors.AppError {
	rsvp := entity.RSVPStatus(status)
	if !rsvp.ValidResponse() {
		return errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("Status must be one of accepted, declined, maybe; got %q", status), nil)
	}

	updated, err := s.repo.UpdateParticipantStatus(ctx, eventID, userID, rsvp, s.now())
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to update RSVP", err)
	}
	if !updated {
		return errors.NewAppError(errors.ErrNotFound, "No invitation found for this event", nil)
	}

	s.notifyOrganizerOfRSVP(ctx, eventID, userID, rsvp)
	return nil
}

// ===================== Helpers =====================

// validateEvent enforces the event invariants shared by create and update.
func validateEvent(title string, eventType entity.EventType, start, end time.Time) *errors.AppError {
	if strings.TrimSpace(title) == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "Title is required", nil)
	}
	if !eventType.Valid() {
		return errors.NewAppError(errors.ErrInvalidInput,
			fmt.Sprintf("Unknown event type %q", eventType), nil)
	}
	if start.IsZero() || end.IsZero() {
		return errors.NewAppError(errors.ErrInvalidInput, "Start and end time are required", nil)
	}
	if !end.After(start) {
		return errors.NewAppError(errors.ErrInvalidInput, "End time must be after start time", nil)
	}
	return nil
}

// applyPatch copies present fields onto the event and reports whether the
// schedule moved.
func applyPatch(event *entity.Event, req *dto.UpdateEventRequest) bool {
	timeChanged := false

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		event.Description = req.Description
	}
	if req.EventType != nil {
		event.EventType = entity.EventType(*req.EventType)
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
		timeChanged = true
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
		timeChanged = true
	}
	if req.Location != nil {
		event.Location = req.Location
	}
	if req.MeetingLink != nil {
		event.MeetingLink = req.MeetingLink
	}
	if req.IsMandatory != nil {
		event.IsMandatory = *req.IsMandatory
	}
	if req.MaxAttendees != nil {
		event.MaxAttendees = req.MaxAttendees
	}
	if req.RecordingURL != nil {
		event.RecordingURL = req.RecordingURL
	}
	if req.RecordingThumbnail != nil {
		event.RecordingThumbnail = req.RecordingThumbnail
	}
	if req.RecordingDuration != nil {
		event.RecordingDuration = req.RecordingDuration
	}

	return timeChanged
}

// applyOrganizerStatus makes the implicit rule explicit: the organizer is
// always "going" to their own event, participant row or not.
func (s *EventService) applyOrganizerStatus(event *entity.EventWithMeta, viewerID uuid.UUID) {
	if event.OrganizerID == viewerID && event.ViewerStatus == nil {
		accepted := string(entity.RSVPStatusAccepted)
		event.ViewerStatus = &accepted
	}
}

// parseFilter converts the wire-level query into a typed filter.
func parseFilter(viewerID uuid.UUID, q *dto.EventListQuery) (*entity.EventFilter, *errors.AppError) {
	filter := &entity.EventFilter{ViewerID: viewerID}
	if q == nil {
		return filter, nil
	}

	if q.EventType != "" {
		et := entity.EventType(q.EventType)
		if !et.Valid() {
			return nil, errors.NewAppError(errors.ErrInvalidInput,
				fmt.Sprintf("Unknown event type %q", q.EventType), nil)
		}
		filter.EventType = &et
	}
	if q.StartDate != "" {
		t, err := parseDate(q.StartDate)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid startDate", err)
		}
		filter.StartDate = &t
	}
	if q.EndDate != "" {
		t, err := parseDate(q.EndDate)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid endDate", err)
		}
		filter.EndDate = &t
	}
	if q.UserID != "" {
		id, err := uuid.Parse(q.UserID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid userId", err)
		}
		filter.UserID = &id
	}

	return filter, nil
}

// parseDate accepts RFC3339 or a bare YYYY-MM-DD date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// parseUserIDs parses and deduplicates invitee ids, skipping malformed ones.
func parseUserIDs(raw []string) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func makeSlug(title string) string {
	base := slug.Make(title)
	if len(base) > 48 {
		base = base[:48]
	}
	return base + "-" + strings.ToLower(utils.GenerateID())
}

func (s *EventService) notifyInvitees(ctx context.Context, event *entity.Event, inviteeIDs []uuid.UUID) {
	if s.notifier == nil {
		return
	}
	for _, userID := range inviteeIDs {
		req := &notifdto.CreateNotificationRequest{
			UserID:  userID,
			Title:   "New event invitation",
			Message: fmt.Sprintf("You have been invited to %q", event.Title),
			Type:    "event_invitation",
			Data: map[string]any{
				"event_id":   event.ID.String(),
				"start_time": event.StartTime,
			},
		}
		if err := s.notifier.Create(ctx, req); err != nil {
			logger.Error("EventService:NotifyInvitees", "event_id", event.ID, "user_id", userID, "error", err)
		}
	}
}

func (s *EventService) notifyOrganizerOfRSVP(ctx context.Context, eventID, userID uuid.UUID, status entity.RSVPStatus) {
	if s.notifier == nil {
		return
	}
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil || event == nil {
		return
	}

	req := &notifdto.CreateNotificationRequest{
		UserID:  event.OrganizerID,
		Title:   "RSVP update",
		Message: fmt.Sprintf("A participant responded %s to %q", status, event.Title),
		Type:    "event_rsvp",
		Data: map[string]any{
			"event_id": eventID.String(),
			"user_id":  userID.String(),
			"status":   string(status),
		},
	}
	if err := s.notifier.Create(ctx, req); err != nil {
		logger.Error("EventService:NotifyOrganizerOfRSVP", "event_id", eventID, "error", err)
	}
}

func (s *EventService) scheduleReminders(ctx context.Context, event *entity.Event, userIDs []uuid.UUID) {
	if s.reminders == nil || len(userIDs) == 0 {
		return
	}
	info := reminder.EventInfo{ID: event.ID, Title: event.Title, StartTime: event.StartTime}
	if err := s.reminders.Schedule(ctx, info, userIDs); err != nil {
		logger.Warn("EventService:ScheduleReminders", "event_id", event.ID, "error", err)
	}
}

func (s *EventService) rescheduleReminders(ctx context.Context, event *entity.Event) {
	if s.reminders == nil {
		return
	}
	participantIDs, err := s.repo.ListParticipantIDs(ctx, event.ID)
	if err != nil {
		logger.Warn("EventService:RescheduleReminders", "event_id", event.ID, "error", err)
		return
	}
	s.scheduleReminders(ctx, event, append(participantIDs, event.OrganizerID))
}
