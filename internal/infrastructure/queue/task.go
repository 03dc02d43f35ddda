package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrQueueFull = errors.New("queue is full")

type Task struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
	LastError   string          `json:"last_error,omitempty"`
	EnqueuedAt  time.Time       `json:"enqueued_at"`

	receipt string
}

func NewTask(taskType string, payload any, maxAttempts int) (Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Task{}, fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return Task{
		ID:          uuid.NewString(),
		Type:        taskType,
		Payload:     raw,
		MaxAttempts: maxAttempts,
		EnqueuedAt:  time.Now().UTC(),
	}, nil
}

func (t Task) Decode(dst any) error {
	return json.Unmarshal(t.Payload, dst)
}

type Queue interface {
	Enqueue(ctx context.Context, task Task) error
	// Dequeue returns a nil task when nothing arrived within timeout.
	Dequeue(ctx context.Context, timeout time.Duration) (*Task, error)
	DeadLetter(ctx context.Context, task Task, reason string) error
	// Ack drops a dequeued task from the in-flight set once it was handled, requeued or dead-lettered.
	Ack(ctx context.Context, task Task) error
}
