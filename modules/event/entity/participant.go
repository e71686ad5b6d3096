package entity

import (
	"time"

	"github.com/google/uuid"
)

// RSVPStatus tracks a participant's response to an invitation.
//
// Transitions: pending -> {accepted, declined, maybe}; the three response
// states may change freely among themselves; nothing transitions back to
// pending.
type RSVPStatus string

const (
	RSVPStatusPending  RSVPStatus = "pending"
	RSVPStatusAccepted RSVPStatus = "accepted"
	RSVPStatusDeclined RSVPStatus = "declined"
	RSVPStatusMaybe    RSVPStatus = "maybe"
)

// Valid reports whether s is a known status.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPStatusPending, RSVPStatusAccepted, RSVPStatusDeclined, RSVPStatusMaybe:
		return true
	}
	return false
}

// ValidResponse reports whether s is settable via a client RSVP call.
// Pending is the insert-time default and can never be re-entered.
func (s RSVPStatus) ValidResponse() bool {
	switch s {
	case RSVPStatusAccepted, RSVPStatusDeclined, RSVPStatusMaybe:
		return true
	}
	return false
}

// Participant is an (event, user) participation row. The pair is unique;
// inserts are idempotent on conflict.
type Participant struct {
	EventID     uuid.UUID  `db:"event_id" json:"event_id"`
	UserID      uuid.UUID  `db:"user_id" json:"user_id"`
	Status      RSVPStatus `db:"status" json:"status"`
	RespondedAt *time.Time `db:"responded_at" json:"responded_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// ParticipantWithUser is a participant row enriched with the user's display
// summary.
type ParticipantWithUser struct {
	Participant
	UserName   string  `db:"user_name"`
	UserEmail  string  `db:"user_email"`
	UserAvatar *string `db:"user_avatar"`
	UserTitle  *string `db:"user_title"`
}
