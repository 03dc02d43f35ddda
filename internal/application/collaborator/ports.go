package collaborator

import (
	"context"
	"io"
	"time"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
	userdomain "github.com/mohammadpnp/collaborators-api/internal/domain/user"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/queue"
)

type ListCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type TaskQueue interface {
	Enqueue(ctx context.Context, task queue.Task) error
}

type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*userdomain.User, error)
}

type ImportSource interface {
	Open(ctx context.Context, sourcePath string) (io.ReadCloser, error)
}

type UploadStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
}

type ReportNotifier interface {
	NotifyImportFinished(ctx context.Context, report domain.ImportReport) error
}

type Observer interface {
	ObserveRow(result string)
	ObserveTask(taskType, result string)
	ObserveCache(hit bool)
}

type noopObserver struct{}

func (noopObserver) ObserveRow(string) {}

func (noopObserver) ObserveTask(string, string) {}

func (noopObserver) ObserveCache(bool) {}
