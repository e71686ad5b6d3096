package dto

import (
	"time"

	"github.com/Ecospace254/employee-sub000/modules/event/entity"
)

// ===================== Request DTOs =====================

// CreateEventRequest for creating a new event.
type CreateEventRequest struct {
	Title          string    `json:"title" validate:"required"`
	Description    string    `json:"description"`
	EventType      string    `json:"event_type" validate:"required"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time" validate:"required"`
	Location       string    `json:"location"`
	MeetingLink    string    `json:"meeting_link"`
	IsMandatory    bool      `json:"is_mandatory"`
	MaxAttendees   *int      `json:"max_attendees"`
	ParticipantIDs []string  `json:"participant_ids"`
}

// UpdateEventRequest applies a partial update; nil fields are left unchanged.
type UpdateEventRequest struct {
	Title              *string    `json:"title"`
	Description        *string    `json:"description"`
	EventType          *string    `json:"event_type"`
	StartTime          *time.Time `json:"start_time"`
	EndTime            *time.Time `json:"end_time"`
	Location           *string    `json:"location"`
	MeetingLink        *string    `json:"meeting_link"`
	IsMandatory        *bool      `json:"is_mandatory"`
	MaxAttendees       *int       `json:"max_attendees"`
	RecordingURL       *string    `json:"recording_url"`
	RecordingThumbnail *string    `json:"recording_thumbnail"`
	RecordingDuration  *int       `json:"recording_duration"`
}

// AddParticipantsRequest bulk-invites users to an event.
type AddParticipantsRequest struct {
	UserIDs []string `json:"user_ids" validate:"required"`
}

// SetRSVPRequest updates the caller's own participation status.
type SetRSVPRequest struct {
	Status string `json:"status" validate:"required"`
}

// EventListQuery carries the optional list filters as received on the wire.
// Dates are RFC3339 or YYYY-MM-DD; absent means no constraint.
type EventListQuery struct {
	EventType string `query:"eventType"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	UserID    string `query:"userId"`
}

// ===================== Response DTOs =====================

// OrganizerResponse is the organizer display summary on an event.
type OrganizerResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// RecordingResponse groups the recording reference fields.
type RecordingResponse struct {
	URL             string  `json:"url"`
	Thumbnail       *string `json:"thumbnail,omitempty"`
	DurationSeconds *int    `json:"duration_seconds,omitempty"`
}

// ParticipantResponse is one enriched participant row.
type ParticipantResponse struct {
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	JobTitle    *string    `json:"job_title,omitempty"`
	Status      string     `json:"status"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

// EventResponse is an enriched event. Participants is populated on detail
// fetches only.
type EventResponse struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	Description      string                `json:"description,omitempty"`
	EventType        string                `json:"event_type"`
	StartTime        time.Time             `json:"start_time"`
	EndTime          time.Time             `json:"end_time"`
	Location         string                `json:"location,omitempty"`
	MeetingLink      string                `json:"meeting_link,omitempty"`
	Slug             string                `json:"slug"`
	IsMandatory      bool                  `json:"is_mandatory"`
	MaxAttendees     *int                  `json:"max_attendees,omitempty"`
	Recording        *RecordingResponse    `json:"recording,omitempty"`
	Organizer        OrganizerResponse     `json:"organizer"`
	ParticipantCount int                   `json:"participant_count"`
	ViewerStatus     string                `json:"viewer_status,omitempty"`
	Participants     []ParticipantResponse `json:"participants,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

// ===================== Mapper functions =====================

// ToEventResponse maps an enriched row to its response shape. The organizer
// viewing their own event is reported as accepted even without a participant
// row.
func ToEventResponse(e *entity.EventWithMeta) *EventResponse {
	resp := &EventResponse{
		ID:               e.ID.String(),
		Title:            e.Title,
		EventType:        string(e.EventType),
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		Slug:             e.Slug,
		IsMandatory:      e.IsMandatory,
		MaxAttendees:     e.MaxAttendees,
		ParticipantCount: e.ParticipantCount,
		CreatedAt:        e.CreatedAt,
		Organizer: OrganizerResponse{
			ID:        e.OrganizerID.String(),
			Name:      e.OrganizerName,
			Email:     e.OrganizerEmail,
			AvatarURL: e.OrganizerAvatar,
		},
	}

	if e.Description != nil {
		resp.Description = *e.Description
	}
	if e.Location != nil {
		resp.Location = *e.Location
	}
	if e.MeetingLink != nil {
		resp.MeetingLink = *e.MeetingLink
	}
	if e.HasRecording() {
		resp.Recording = &RecordingResponse{
			URL:             *e.RecordingURL,
			Thumbnail:       e.RecordingThumbnail,
			DurationSeconds: e.RecordingDuration,
		}
	}
	if e.ViewerStatus != nil {
		resp.ViewerStatus = *e.ViewerStatus
	}

	return resp
}

// ToParticipantResponse maps one enriched participant row.
func ToParticipantResponse(p *entity.ParticipantWithUser) ParticipantResponse {
	return ParticipantResponse{
		UserID:      p.UserID.String(),
		Name:        p.UserName,
		Email:       p.UserEmail,
		AvatarURL:   p.UserAvatar,
		JobTitle:    p.UserTitle,
		Status:      string(p.Status),
		RespondedAt: p.RespondedAt,
	}
}
