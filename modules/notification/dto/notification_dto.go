package dto

import (
	"github.com/google/uuid"
)

// MarkAsReadRequest selects notifications to mark read.
type MarkAsReadRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// CreateNotificationRequest is consumed by other modules (events, reminder
// worker); there is no public create endpoint.
type CreateNotificationRequest struct {
	UserID  uuid.UUID      `json:"user_id"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Type    string         `json:"type"`
	Data    map[string]any `json:"data"`
}
