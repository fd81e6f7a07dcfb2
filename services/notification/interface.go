package notification

import (
	"context"
	"fmt"

	"roamly/models"
	"roamly/services/tasks"

	"github.com/hibiken/asynq"
)

// NotificationService dispatches events to the admin-processing side.
// Dispatch is fire-and-forget from the caller's perspective: a durable
// cancellation request must never be failed because its notification was not.
type NotificationService interface {
	NotifyCancellationRequested(ctx context.Context, notice models.CancellationNotice) error
}

// QueueNotificationService is the production implementation. It enqueues a
// task on the shared Redis queue; delivery happens in the worker.
type QueueNotificationService struct {
	client *asynq.Client
}

func NewQueueNotificationService(client *asynq.Client) (*QueueNotificationService, error) {
	if client == nil {
		return nil, fmt.Errorf("notification service initialization error: queue client is nil")
	}
	return &QueueNotificationService{client: client}, nil
}

// NotifyCancellationRequested enqueues a cancellation-requested task.
func (s *QueueNotificationService) NotifyCancellationRequested(ctx context.Context, notice models.CancellationNotice) error {
	task, err := tasks.NewCancellationRequestedTask(notice)
	if err != nil {
		return fmt.Errorf("NotifyCancellationRequested: failed to build task: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("NotifyCancellationRequested: failed to enqueue task: %w", err)
	}
	return nil
}
