package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Ecospace254/employee-sub000/core/constants"
	"github.com/Ecospace254/employee-sub000/core/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TypeEventReminder is the asynq task type for event-start reminders.
const TypeEventReminder = "event:reminder"

// EventInfo is the subset of an event a reminder needs.
type EventInfo struct {
	ID        uuid.UUID
	Title     string
	StartTime time.Time
}

// Payload is the serialized task body.
type Payload struct {
	EventID   uuid.UUID `json:"event_id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
}

func taskID(eventID, userID uuid.UUID) string {
	return fmt.Sprintf("reminder:%s:%s", eventID, userID)
}

// asynq can return its sentinels wrapped, so match with errors.Is.

func isTaskIDConflict(err error) bool {
	return errors.Is(err, asynq.ErrTaskIDConflict)
}

func isTaskNotFound(err error) bool {
	return errors.Is(err, asynq.ErrTaskNotFound)
}

// Scheduler enqueues and cancels reminder tasks. All operations are
// best-effort: callers log failures and proceed.
type Scheduler struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	lead      time.Duration
}

func NewScheduler(opt asynq.RedisClientOpt, lead time.Duration) *Scheduler {
	if lead <= 0 {
		lead = constants.DefaultReminderLead
	}
	return &Scheduler{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
		lead:      lead,
	}
}

// Schedule enqueues one reminder per user at start-lead. Users whose reminder
// time is already past are skipped. An existing task for the same
// (event, user) pair is replaced, which covers event time updates.
func (s *Scheduler) Schedule(ctx context.Context, ev EventInfo, userIDs []uuid.UUID) error {
	processAt := ev.StartTime.Add(-s.lead)
	if !processAt.After(time.Now()) {
		return nil
	}

	for _, userID := range userIDs {
		payload, err := json.Marshal(Payload{
			EventID:   ev.ID,
			UserID:    userID,
			Title:     ev.Title,
			StartTime: ev.StartTime,
		})
		if err != nil {
			return err
		}

		id := taskID(ev.ID, userID)
		task := asynq.NewTask(TypeEventReminder, payload)
		opts := []asynq.Option{asynq.TaskID(id), asynq.ProcessAt(processAt)}

		_, err = s.client.EnqueueContext(ctx, task, opts...)
		if isTaskIDConflict(err) {
			if delErr := s.inspector.DeleteTask("default", id); delErr != nil {
				logger.Warn("Reminder:Schedule:ReplaceDelete", "task_id", id, "error", delErr)
			}
			_, err = s.client.EnqueueContext(ctx, task, opts...)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Cancel removes pending reminders for the event.
func (s *Scheduler) Cancel(ctx context.Context, eventID uuid.UUID, userIDs []uuid.UUID) error {
	for _, userID := range userIDs {
		id := taskID(eventID, userID)
		if err := s.inspector.DeleteTask("default", id); err != nil && !isTaskNotFound(err) {
			logger.Warn("Reminder:Cancel:DeleteTask", "task_id", id, "error", err)
		}
	}
	return nil
}

func (s *Scheduler) Close() error {
	return s.client.Close()
}
