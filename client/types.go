// Package client is the Go SDK for the portal events API. It speaks the
// REST surface with a session cookie, caches list reads for a short TTL and
// derives the view buckets the frontends render.
package client

import (
	"strings"
	"time"
)

// Organizer is the display summary attached to every event.
type Organizer struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Recording is the recording reference on a finished event.
type Recording struct {
	URL             string  `json:"url"`
	Thumbnail       *string `json:"thumbnail,omitempty"`
	DurationSeconds *int    `json:"duration_seconds,omitempty"`
}

// Participant is one enriched participant row on a detail fetch.
type Participant struct {
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	JobTitle    *string    `json:"job_title,omitempty"`
	Status      string     `json:"status"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

// Event mirrors the server's enriched event shape.
type Event struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	Description      string        `json:"description,omitempty"`
	EventType        string        `json:"event_type"`
	StartTime        time.Time     `json:"start_time"`
	EndTime          time.Time     `json:"end_time"`
	Location         string        `json:"location,omitempty"`
	MeetingLink      string        `json:"meeting_link,omitempty"`
	Slug             string        `json:"slug"`
	IsMandatory      bool          `json:"is_mandatory"`
	MaxAttendees     *int          `json:"max_attendees,omitempty"`
	Recording        *Recording    `json:"recording,omitempty"`
	Organizer        Organizer     `json:"organizer"`
	ParticipantCount int           `json:"participant_count"`
	ViewerStatus     string        `json:"viewer_status,omitempty"`
	Participants     []Participant `json:"participants,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
}

// HasRecording reports whether a recording reference is attached.
func (e *Event) HasRecording() bool {
	return e.Recording != nil && e.Recording.URL != ""
}

// Filter narrows a list fetch. Zero values mean "no constraint".
type Filter struct {
	EventType string
	StartDate string
	EndDate   string
	UserID    string
}

// Key canonicalizes the filter set so equal filters share one cache slot.
func (f Filter) Key() string {
	return strings.Join([]string{
		"type=" + f.EventType,
		"start=" + f.StartDate,
		"end=" + f.EndDate,
		"user=" + f.UserID,
	}, "&")
}

// CreateEventInput is the payload for CreateEvent.
type CreateEventInput struct {
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	EventType      string    `json:"event_type"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Location       string    `json:"location,omitempty"`
	MeetingLink    string    `json:"meeting_link,omitempty"`
	IsMandatory    bool      `json:"is_mandatory"`
	MaxAttendees   *int      `json:"max_attendees,omitempty"`
	ParticipantIDs []string  `json:"participant_ids,omitempty"`
}

// UpdateEventInput is a partial update; nil fields are left unchanged.
type UpdateEventInput struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	EventType   *string    `json:"event_type,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Location    *string    `json:"location,omitempty"`
	MeetingLink *string    `json:"meeting_link,omitempty"`
	IsMandatory *bool      `json:"is_mandatory,omitempty"`
}

// DeleteOptions gates the irreversible delete behind an explicit
// confirmation, mirroring the UI confirm dialog.
type DeleteOptions struct {
	Confirm bool
}
