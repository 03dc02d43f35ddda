package collaborator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/queue"
)

type TaskHandler func(ctx context.Context, task queue.Task) error

type workerQueue interface {
	Enqueue(ctx context.Context, task queue.Task) error
	Dequeue(ctx context.Context, timeout time.Duration) (*queue.Task, error)
	DeadLetter(ctx context.Context, task queue.Task, reason string) error
	Ack(ctx context.Context, task queue.Task) error
}

type inFlightRecoverer interface {
	RecoverInFlight(ctx context.Context) (int, error)
}

type WorkerConfig struct {
	Workers      int
	PollTimeout  time.Duration
	ErrorBackoff time.Duration
}

type Worker struct {
	queue    workerQueue
	handlers map[string]TaskHandler
	cfg      WorkerConfig
	logger   logrus.FieldLogger
	observer Observer

	once sync.Once
	wg   sync.WaitGroup
}

func NewWorker(q workerQueue, cfg WorkerConfig, logger logrus.FieldLogger, observer Observer) *Worker {
	if cfg.Workers <= 0 || cfg.Workers > 10 {
		cfg.Workers = 10
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 2 * time.Second
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = 500 * time.Millisecond
	}
	if observer == nil {
		observer = noopObserver{}
	}

	return &Worker{
		queue:    q,
		handlers: make(map[string]TaskHandler),
		cfg:      cfg,
		logger:   logger,
		observer: observer,
	}
}

// Handle must be called before Start.
func (w *Worker) Handle(taskType string, handler TaskHandler) {
	w.handlers[taskType] = handler
}

// Start first returns tasks a previous process left in flight to the queue.
func (w *Worker) Start(ctx context.Context) {
	w.once.Do(func() {
		if r, ok := w.queue.(inFlightRecoverer); ok {
			moved, err := r.RecoverInFlight(ctx)
			if err != nil {
				w.logger.WithError(err).Error("recover in-flight tasks failed")
			} else if moved > 0 {
				w.logger.WithField("tasks", moved).Warn("requeued in-flight tasks")
			}
		}
		for i := 0; i < w.cfg.Workers; i++ {
			w.wg.Add(1)
			go func() {
				defer w.wg.Done()
				w.workerLoop(ctx)
			}()
		}
	})
}

func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) workerLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		task, err := w.queue.Dequeue(ctx, w.cfg.PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.WithError(err).Error("dequeue task failed")
			if !sleepWithContext(ctx, w.cfg.ErrorBackoff) {
				return
			}
			continue
		}
		if task == nil {
			continue
		}

		if err := w.ProcessTask(ctx, *task); err != nil {
			w.logger.WithError(err).WithFields(logrus.Fields{
				"task_id": task.ID,
				"type":    task.Type,
			}).Error("process task failed")
		}
	}
}

// ProcessTask runs one task and requeues or dead-letters it on failure.
// Cancelling ctx does not interrupt a task that already started.
func (w *Worker) ProcessTask(ctx context.Context, task queue.Task) error {
	ctx = context.WithoutCancel(ctx)

	var err error
	if handler, ok := w.handlers[task.Type]; ok {
		task.Attempts++
		err = handler(ctx, task)
	} else {
		err = fmt.Errorf("%w: unknown task type %q", ErrMalformedTask, task.Type)
	}

	if err == nil {
		w.observer.ObserveTask(task.Type, "done")
		return w.ack(ctx, task)
	}

	if settleErr := w.settleFailure(ctx, task, err); settleErr != nil {
		return settleErr
	}
	if ackErr := w.ack(ctx, task); ackErr != nil {
		return fmt.Errorf("%v; %w", err, ackErr)
	}
	return err
}

// settleFailure returns nil once the task is back in the queue or dead-lettered.
func (w *Worker) settleFailure(ctx context.Context, task queue.Task, err error) error {
	reason := truncateReason(err.Error())
	task.LastError = reason

	if !IsPermanent(err) && task.Attempts < task.MaxAttempts {
		if requeueErr := w.queue.Enqueue(ctx, task); requeueErr != nil {
			return fmt.Errorf("%v; requeue failed: %w", err, requeueErr)
		}
		w.observer.ObserveTask(task.Type, "retried")
		return nil
	}

	if deadErr := w.queue.DeadLetter(ctx, task, reason); deadErr != nil {
		return fmt.Errorf("%v; dead letter failed: %w", err, deadErr)
	}
	w.observer.ObserveTask(task.Type, "dead")
	return nil
}

func (w *Worker) ack(ctx context.Context, task queue.Task) error {
	if err := w.queue.Ack(ctx, task); err != nil {
		return fmt.Errorf("ack task: %w", err)
	}
	return nil
}

func ImportCSVHandler(uc ImportCollaboratorsFromCSV) TaskHandler {
	return func(ctx context.Context, task queue.Task) error {
		var job domain.ImportJob
		if err := task.Decode(&job); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedTask, err)
		}
		if job.FilePath == "" || job.UserID == 0 {
			return fmt.Errorf("%w: incomplete import job", ErrMalformedTask)
		}
		_, err := uc.Execute(ctx, job)
		return err
	}
}

func ImportReportHandler(uc SendImportReport) TaskHandler {
	return func(ctx context.Context, task queue.Task) error {
		var report domain.ImportReport
		if err := task.Decode(&report); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedTask, err)
		}
		return uc.Execute(ctx, report)
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(reason[cut]) {
		cut--
	}
	return reason[:cut]
}
