package collaborator

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/queue"
)

const ImportStartedMessage = "Processamento do arquivo CSV iniciado."

type StartCollaboratorImportInput struct {
	ActorID  uint
	FileName string
	Content  io.Reader
}

type StartCollaboratorImportOutput struct {
	Message string `json:"message"`
}

type StartCollaboratorImport interface {
	Execute(ctx context.Context, in StartCollaboratorImportInput) (StartCollaboratorImportOutput, error)
}

type startCollaboratorImport struct {
	store       UploadStore
	queue       TaskQueue
	maxAttempts int
}

func NewStartCollaboratorImport(store UploadStore, queue TaskQueue, maxAttempts int) StartCollaboratorImport {
	return &startCollaboratorImport{store: store, queue: queue, maxAttempts: maxAttempts}
}

func (uc *startCollaboratorImport) Execute(ctx context.Context, in StartCollaboratorImportInput) (StartCollaboratorImportOutput, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(in.FileName)))
	if in.Content == nil || (ext != ".csv" && ext != ".txt") {
		return StartCollaboratorImportOutput{}, ErrInvalidImportFile
	}

	path, err := uc.store.Save(ctx, in.FileName, in.Content)
	if err != nil {
		return StartCollaboratorImportOutput{}, fmt.Errorf("%w: %v", ErrStoreUpload, err)
	}

	task, err := queue.NewTask(TaskImportCSV, domain.ImportJob{FilePath: path, UserID: in.ActorID}, uc.maxAttempts)
	if err != nil {
		return StartCollaboratorImportOutput{}, fmt.Errorf("%w: %v", ErrEnqueueTask, err)
	}
	if err := uc.queue.Enqueue(ctx, task); err != nil {
		return StartCollaboratorImportOutput{}, fmt.Errorf("%w: %v", ErrEnqueueTask, err)
	}

	return StartCollaboratorImportOutput{Message: ImportStartedMessage}, nil
}
