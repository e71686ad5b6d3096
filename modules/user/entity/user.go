package entity

import (
	coreEntity "github.com/Ecospace254/employee-sub000/core/entity"

	"github.com/google/uuid"
)

// User is a portal user row. Full profile CRUD lives outside this service;
// the events core only reads these rows for authentication and display
// summaries.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	AvatarURL    *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	JobTitle     *string   `db:"job_title" json:"job_title,omitempty"`
	coreEntity.BaseEntity
}

// Summary is the display projection attached to organizers and participants.
type Summary struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	JobTitle  *string   `db:"job_title" json:"job_title,omitempty"`
}
