package reminder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ecospace254/employee-sub000/core/logger"
	notifdto "github.com/Ecospace254/employee-sub000/modules/notification/dto"

	"github.com/hibiken/asynq"
)

// NotificationSender is the slice of the notification service the worker
// needs.
type NotificationSender interface {
	Create(ctx context.Context, req *notifdto.CreateNotificationRequest) error
}

// Worker processes reminder tasks and turns them into notifications.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(opt asynq.RedisClientOpt, concurrency int, notif NotificationSender) *Worker {
	if concurrency <= 0 {
		concurrency = 5
	}

	server := asynq.NewServer(opt, asynq.Config{Concurrency: concurrency})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEventReminder, func(ctx context.Context, t *asynq.Task) error {
		return handleEventReminder(ctx, t, notif)
	})

	return &Worker{server: server, mux: mux}
}

func handleEventReminder(ctx context.Context, t *asynq.Task, notif NotificationSender) error {
	var p Payload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal reminder payload: %w", err)
	}

	req := &notifdto.CreateNotificationRequest{
		UserID:  p.UserID,
		Title:   "Upcoming event",
		Message: fmt.Sprintf("%q starts at %s", p.Title, p.StartTime.Local().Format("15:04, Jan 2")),
		Type:    "event_reminder",
		Data: map[string]any{
			"event_id":   p.EventID.String(),
			"start_time": p.StartTime,
		},
	}

	if err := notif.Create(ctx, req); err != nil {
		logger.Error("Reminder:Worker:Notify", "event_id", p.EventID, "user_id", p.UserID, "error", err)
		return err
	}
	return nil
}

// Start runs the worker loop in the background.
func (w *Worker) Start() error {
	return w.server.Start(w.mux)
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
