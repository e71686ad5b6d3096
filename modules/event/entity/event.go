package entity

import (
	"time"

	coreEntity "github.com/Ecospace254/employee-sub000/core/entity"

	"github.com/google/uuid"
)

// EventType classifies an event.
type EventType string

const (
	EventTypeEvent    EventType = "event"
	EventTypeTraining EventType = "training"
	EventTypeMeeting  EventType = "meeting"
	EventTypeOneOnOne EventType = "one_on_one"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeEvent, EventTypeTraining, EventTypeMeeting, EventTypeOneOnOne:
		return true
	}
	return false
}

// Event represents a scheduled portal event (events table). The organizer is
// the creating user and the sole holder of update/delete rights.
type Event struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	OrganizerID        uuid.UUID `db:"organizer_id" json:"organizer_id"`
	Title              string    `db:"title" json:"title"`
	Description        *string   `db:"description" json:"description,omitempty"`
	EventType          EventType `db:"event_type" json:"event_type"`
	StartTime          time.Time `db:"start_time" json:"start_time"`
	EndTime            time.Time `db:"end_time" json:"end_time"`
	Location           *string   `db:"location" json:"location,omitempty"`
	MeetingLink        *string   `db:"meeting_link" json:"meeting_link,omitempty"`
	Slug               string    `db:"slug" json:"slug"`
	IsMandatory        bool      `db:"is_mandatory" json:"is_mandatory"`
	MaxAttendees       *int      `db:"max_attendees" json:"max_attendees,omitempty"`
	RecordingURL       *string   `db:"recording_url" json:"recording_url,omitempty"`
	RecordingThumbnail *string   `db:"recording_thumbnail" json:"recording_thumbnail,omitempty"`
	RecordingDuration  *int      `db:"recording_duration" json:"recording_duration,omitempty"`
	coreEntity.BaseEntity
}

// HasRecording reports whether a recording reference is attached. An event
// with a recording is implicitly in the past.
func (e *Event) HasRecording() bool {
	return e.RecordingURL != nil && *e.RecordingURL != ""
}

// EventFilter narrows ListEvents. Absent fields mean no constraint; supplied
// filters intersect.
type EventFilter struct {
	EventType *EventType
	StartDate *time.Time
	EndDate   *time.Time
	UserID    *uuid.UUID

	// ViewerID enriches rows with the viewing user's own RSVP status. It is
	// not a filter.
	ViewerID uuid.UUID
}

// EventWithMeta is an event row enriched at query time with the organizer
// summary, the live participant count and the viewer's own status.
type EventWithMeta struct {
	Event
	OrganizerName   string  `db:"organizer_name"`
	OrganizerEmail  string  `db:"organizer_email"`
	OrganizerAvatar *string `db:"organizer_avatar"`

	ParticipantCount int     `db:"participant_count"`
	ViewerStatus     *string `db:"viewer_status"`
}
