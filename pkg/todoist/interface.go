package todoist

import "context"

// ITodoist defines the Todoist REST operations used by the relay.
// Implementations are safe for concurrent use.
type ITodoist interface {
	AddTask(ctx context.Context, name string, dueDate *string, priority *int) (Task, error)
	CompleteTask(ctx context.Context, taskID string) error
	UpdateTask(ctx context.Context, taskID string, input UpdateTaskInput) (Task, error)
}
