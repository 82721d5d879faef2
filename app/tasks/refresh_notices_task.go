package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kunwoo0421/GovernmentSupportProject/app/sources"
)

// RefreshNoticesTask runs one full aggregation cycle and persists the
// result. Enqueued at startup and then on every scheduler tick.
type RefreshNoticesTask struct {
	Task
	service *sources.Service
}

func NewRefreshNoticesTask(service *sources.Service) *RefreshNoticesTask {
	return &RefreshNoticesTask{
		Task:    NewTask(TaskTypeRefreshNotices),
		service: service,
	}
}

func (t *RefreshNoticesTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result := t.service.RefreshNotices(ctx)
	if !result.Success {
		return fmt.Errorf("refresh cycle failed to persist %d notices", result.Count)
	}

	slog.Info("Task completed",
		"type", "RefreshNotices",
		"duration", t.GetDuration(),
		"count", result.Count)

	return nil
}
