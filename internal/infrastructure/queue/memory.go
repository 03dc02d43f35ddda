package queue

import (
	"context"
	"sync"
	"time"
)

type Memory struct {
	tasks chan Task

	mu   sync.Mutex
	dead []Task
}

func NewMemory(size int) *Memory {
	if size <= 0 {
		size = 1024
	}
	return &Memory{tasks: make(chan Task, size)}
}

func (q *Memory) Enqueue(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case q.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *Memory) Dequeue(ctx context.Context, timeout time.Duration) (*Task, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case task := <-q.tasks:
		return &task, nil
	case <-timer.C:
		return nil, nil
	}
}

func (q *Memory) Ack(context.Context, Task) error { return nil }

func (q *Memory) DeadLetter(_ context.Context, task Task, reason string) error {
	task.LastError = reason

	q.mu.Lock()
	defer q.mu.Unlock()
	q.dead = append(q.dead, task)
	return nil
}

func (q *Memory) Dead() []Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Task, len(q.dead))
	copy(out, q.dead)
	return out
}

func (q *Memory) Len() int {
	return len(q.tasks)
}
