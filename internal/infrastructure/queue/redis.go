package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keeps pending tasks in a list, moves them to "<name>:processing" while a
// worker holds them (BLMOVE) and stores failed ones in "<name>:dead".
type Redis struct {
	rdb  *redis.Client
	name string
}

func NewRedis(rdb *redis.Client, name string) *Redis {
	if name == "" {
		name = "queue:tasks"
	}
	return &Redis{rdb: rdb, name: name}
}

func (q *Redis) processing() string { return q.name + ":processing" }

func (q *Redis) Enqueue(ctx context.Context, task Task) error {
	raw, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	if err := q.rdb.LPush(ctx, q.name, raw).Err(); err != nil {
		return fmt.Errorf("push task %s: %w", task.ID, err)
	}
	return nil
}

func (q *Redis) Dequeue(ctx context.Context, timeout time.Duration) (*Task, error) {
	raw, err := q.rdb.BLMove(ctx, q.name, q.processing(), "RIGHT", "LEFT", timeout).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("pop task: %w", err)
	}

	var task Task
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		if remErr := q.rdb.LRem(ctx, q.processing(), 1, raw).Err(); remErr != nil {
			return nil, fmt.Errorf("decode task: %v; drop failed: %w", err, remErr)
		}
		return nil, fmt.Errorf("decode task: %w", err)
	}
	task.receipt = raw
	return &task, nil
}

func (q *Redis) Ack(ctx context.Context, task Task) error {
	if task.receipt == "" {
		return nil
	}
	if err := q.rdb.LRem(ctx, q.processing(), 1, task.receipt).Err(); err != nil {
		return fmt.Errorf("ack task %s: %w", task.ID, err)
	}
	return nil
}

// RecoverInFlight moves tasks left in the processing list by a stopped worker back to the pending list.
func (q *Redis) RecoverInFlight(ctx context.Context) (int, error) {
	moved := 0
	for {
		err := q.rdb.LMove(ctx, q.processing(), q.name, "RIGHT", "RIGHT").Err()
		if errors.Is(err, redis.Nil) {
			return moved, nil
		}
		if err != nil {
			return moved, fmt.Errorf("recover in-flight tasks: %w", err)
		}
		moved++
	}
}

func (q *Redis) DeadLetter(ctx context.Context, task Task, reason string) error {
	task.LastError = reason
	raw, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}
	return q.rdb.LPush(ctx, q.name+":dead", raw).Err()
}
