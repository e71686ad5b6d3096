package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Ecospace254/employee-sub000/core/database"
	"github.com/Ecospace254/employee-sub000/core/logger"
	"github.com/Ecospace254/employee-sub000/modules/event/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// EventRepository handles event and participation database operations.
type EventRepository struct {
	DB database.Database
}

// EventRepositoryInterface defines the repository contract.
type EventRepositoryInterface interface {
	ListEvents(ctx context.Context, filter entity.EventFilter) ([]entity.EventWithMeta, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	GetEventWithMeta(ctx context.Context, id, viewerID uuid.UUID) (*entity.EventWithMeta, error)
	CreateEventWithParticipants(ctx context.Context, event *entity.Event, inviteeIDs []uuid.UUID) (*entity.Event, error)
	UpdateEvent(ctx context.Context, event *entity.Event) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	ListParticipants(ctx context.Context, eventID uuid.UUID) ([]entity.ParticipantWithUser, error)
	ListParticipantIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error)
	AddParticipants(ctx context.Context, eventID uuid.UUID, userIDs []uuid.UUID) error
	UpdateParticipantStatus(ctx context.Context, eventID, userID uuid.UUID, status entity.RSVPStatus, respondedAt time.Time) (bool, error)

	ListUpcomingForUser(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]entity.EventWithMeta, error)
}

func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{DB: db}
}

const eventColumns = `
	e.id, e.organizer_id, e.title, e.description, e.event_type,
	e.start_time, e.end_time, e.location, e.meeting_link, e.slug,
	e.is_mandatory, e.max_attendees,
	e.recording_url, e.recording_thumbnail, e.recording_duration,
	e.created_at, e.updated_at`

const enrichedColumns = eventColumns + `,
	u.name AS organizer_name, u.email AS organizer_email, u.avatar_url AS organizer_avatar,
	(SELECT COUNT(*) FROM event_participants pc WHERE pc.event_id = e.id) AS participant_count,
	vp.status AS viewer_status`

// ===================== Event queries =====================

// ListEvents returns enriched events matching the intersection of all
// supplied filters, ordered by start time ascending.
func (r *EventRepository) ListEvents(ctx context.Context, filter entity.EventFilter) ([]entity.EventWithMeta, error) {
	conds := []string{}
	args := []any{filter.ViewerID}

	if filter.EventType != nil {
		args = append(args, *filter.EventType)
		conds = append(conds, fmt.Sprintf("e.event_type = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conds = append(conds, fmt.Sprintf("e.start_time >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conds = append(conds, fmt.Sprintf("e.end_time <= $%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(e.organizer_id = $%d OR EXISTS (SELECT 1 FROM event_participants p WHERE p.event_id = e.id AND p.user_id = $%d))", n, n))
	}

	query := `
		SELECT ` + enrichedColumns + `
		FROM events e
		JOIN users u ON u.id = e.organizer_id
		LEFT JOIN event_participants vp ON vp.event_id = e.id AND vp.user_id = $1
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY e.start_time ASC"

	var events []entity.EventWithMeta
	err := r.DB.SelectContext(ctx, &events, query, args...)
	if err != nil {
		logger.Error("EventRepository:ListEvents", err)
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) GetEventByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events e WHERE e.id = $1
	`

	var event entity.Event
	err := r.DB.GetContext(ctx, &event, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventByID", err)
		return nil, err
	}

	return &event, nil
}

// GetEventWithMeta returns one enriched event. Returns nil, nil when the id
// does not resolve.
func (r *EventRepository) GetEventWithMeta(ctx context.Context, id, viewerID uuid.UUID) (*entity.EventWithMeta, error) {
	query := `
		SELECT ` + enrichedColumns + `
		FROM events e
		JOIN users u ON u.id = e.organizer_id
		LEFT JOIN event_participants vp ON vp.event_id = e.id AND vp.user_id = $1
		WHERE e.id = $2
	`

	var event entity.EventWithMeta
	err := r.DB.GetContext(ctx, &event, query, viewerID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("EventRepository:GetEventWithMeta", err)
		return nil, err
	}

	return &event, nil
}

// CreateEventWithParticipants inserts the event and its pending invitee rows
// in one transaction.
func (r *EventRepository) CreateEventWithParticipants(ctx context.Context, event *entity.Event, inviteeIDs []uuid.UUID) (*entity.Event, error) {
	insertEvent := `
		INSERT INTO events (organizer_id, title, description, event_type, start_time, end_time,
		                    location, meeting_link, slug, is_mandatory, max_attendees)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + strings.ReplaceAll(eventColumns, "e.", "")

	var created entity.Event
	err := r.DB.Transact(ctx, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &created, insertEvent,
			event.OrganizerID, event.Title, event.Description, event.EventType,
			event.StartTime, event.EndTime, event.Location, event.MeetingLink,
			event.Slug, event.IsMandatory, event.MaxAttendees); err != nil {
			return err
		}

		for _, userID := range inviteeIDs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO event_participants (event_id, user_id, status)
				VALUES ($1, $2, $3)
				ON CONFLICT (event_id, user_id) DO NOTHING
			`, created.ID, userID, entity.RSVPStatusPending); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("EventRepository:CreateEventWithParticipants", err)
		return nil, err
	}

	return &created, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET title = $2, description = $3, event_type = $4, start_time = $5, end_time = $6,
		    location = $7, meeting_link = $8, slug = $9, is_mandatory = $10, max_attendees = $11,
		    recording_url = $12, recording_thumbnail = $13, recording_duration = $14,
		    updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query,
		event.ID, event.Title, event.Description, event.EventType,
		event.StartTime, event.EndTime, event.Location, event.MeetingLink,
		event.Slug, event.IsMandatory, event.MaxAttendees,
		event.RecordingURL, event.RecordingThumbnail, event.RecordingDuration)
	if err != nil {
		logger.Error("EventRepository:UpdateEvent", err)
		return err
	}

	return nil
}

// DeleteEvent removes the event and its participant rows atomically. The
// schema also cascades, the explicit delete keeps the operation visible in
// one place.
func (r *EventRepository) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	err := r.DB.Transact(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM event_participants WHERE event_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
		return err
	})
	if err != nil {
		logger.Error("EventRepository:DeleteEvent", err)
		return err
	}
	return nil
}

// ===================== Participants =====================

func (r *EventRepository) ListParticipants(ctx context.Context, eventID uuid.UUID) ([]entity.ParticipantWithUser, error) {
	query := `
		SELECT p.event_id, p.user_id, p.status, p.responded_at, p.created_at,
		       u.name AS user_name, u.email AS user_email,
		       u.avatar_url AS user_avatar, u.job_title AS user_title
		FROM event_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.event_id = $1
		ORDER BY p.created_at
	`

	var participants []entity.ParticipantWithUser
	err := r.DB.SelectContext(ctx, &participants, query, eventID)
	if err != nil {
		logger.Error("EventRepository:ListParticipants", err)
		return nil, err
	}

	return participants, nil
}

func (r *EventRepository) ListParticipantIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.DB.SelectContext(ctx, &ids, `SELECT user_id FROM event_participants WHERE event_id = $1`, eventID)
	if err != nil {
		logger.Error("EventRepository:ListParticipantIDs", err)
		return nil, err
	}
	return ids, nil
}

// AddParticipants inserts pending rows, silently skipping pairs that already
// exist.
func (r *EventRepository) AddParticipants(ctx context.Context, eventID uuid.UUID, userIDs []uuid.UUID) error {
	query := `
		INSERT INTO event_participants (event_id, user_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`

	err := r.DB.Transact(ctx, func(tx *sqlx.Tx) error {
		for _, userID := range userIDs {
			if _, err := tx.ExecContext(ctx, query, eventID, userID, entity.RSVPStatusPending); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("EventRepository:AddParticipants", err)
		return err
	}

	return nil
}

// UpdateParticipantStatus updates the row's status and response timestamp.
// The bool result reports whether a row matched.
func (r *EventRepository) UpdateParticipantStatus(ctx context.Context, eventID, userID uuid.UUID, status entity.RSVPStatus, respondedAt time.Time) (bool, error) {
	query := `
		UPDATE event_participants
		SET status = $3, responded_at = $4
		WHERE event_id = $1 AND user_id = $2
	`

	result, err := r.DB.SQLx().ExecContext(ctx, query, eventID, userID, status, respondedAt)
	if err != nil {
		logger.Error("EventRepository:UpdateParticipantStatus", err)
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ===================== Upcoming =====================

// ListUpcomingForUser returns events starting at or after now where the user
// is the organizer or a participant.
func (r *EventRepository) ListUpcomingForUser(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]entity.EventWithMeta, error) {
	query := `
		SELECT ` + enrichedColumns + `
		FROM events e
		JOIN users u ON u.id = e.organizer_id
		LEFT JOIN event_participants vp ON vp.event_id = e.id AND vp.user_id = $1
		WHERE e.start_time >= $2
		  AND (e.organizer_id = $1 OR vp.user_id IS NOT NULL)
		ORDER BY e.start_time ASC
		LIMIT $3
	`

	var events []entity.EventWithMeta
	err := r.DB.SelectContext(ctx, &events, query, userID, now, limit)
	if err != nil {
		logger.Error("EventRepository:ListUpcomingForUser", err)
		return nil, err
	}

	return events, nil
}
