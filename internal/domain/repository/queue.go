package repository

import "context"

// PublishTask represents one request to turn a user's draft into a
// published recipe.
type PublishTask struct {
	UserID     string `json:"user_id"`
	RequestID  string `json:"request_id,omitempty"`
	RetryCount int    `json:"retry_count"`
}

// TaskQueue defines the interface for the publish task queue.
// Implementations should be provided by the infrastructure layer (e.g., RabbitMQ).
type TaskQueue interface {
	// PublishTask sends a publish task to the queue.
	// Used by the API server to trigger async recipe generation.
	PublishTask(ctx context.Context, task PublishTask) error

	// ConsumeTasks starts consuming publish tasks from the queue.
	// The handler function is called for each received task.
	// Used by the worker service; returns when ctx is cancelled.
	ConsumeTasks(ctx context.Context, handler func(task PublishTask) error) error

	// Close gracefully closes the connection to the message queue.
	Close() error
}
