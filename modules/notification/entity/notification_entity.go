package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	coreEntity "github.com/Ecospace254/employee-sub000/core/entity"

	"github.com/google/uuid"
)

// Notification is an in-app notification row (invitations, RSVP changes,
// event reminders).
type Notification struct {
	ID      uuid.UUID `db:"id" json:"id"`
	UserID  uuid.UUID `db:"user_id" json:"user_id"`
	Title   string    `db:"title" json:"title"`
	Message string    `db:"message" json:"message"`
	Type    string    `db:"type" json:"type"`
	Data    JSONB     `db:"data" json:"data"`
	IsRead  bool      `db:"is_read" json:"is_read"`
	coreEntity.BaseEntity
}

// JSONB maps a jsonb column onto a Go map.
type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *JSONB) Scan(value any) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, a)
}

type PaginatedNotificationEntity = coreEntity.Pagination[Notification]
