package collaborator

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
	userdomain "github.com/mohammadpnp/collaborators-api/internal/domain/user"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/queue"
	"github.com/mohammadpnp/collaborators-api/internal/metrics"
)

var (
	utf8BOM       = []byte{0xEF, 0xBB, 0xBF}
	importColumns = []string{"name", "email", "cpf", "city", "state"}
)

type ImportCollaboratorsFromCSV interface {
	Execute(ctx context.Context, job domain.ImportJob) (domain.ImportResult, error)
}

type ImportConfig struct {
	ReportMaxAttempts int
}

type importCollaboratorsFromCSV struct {
	users    UserLookup
	source   ImportSource
	store    domain.ImportStore
	queue    TaskQueue
	cache    *ListingCache
	observer Observer
	logger   logrus.FieldLogger
	cfg      ImportConfig
}

func NewImportCollaboratorsFromCSV(
	users UserLookup,
	source ImportSource,
	store domain.ImportStore,
	queue TaskQueue,
	cache *ListingCache,
	observer Observer,
	logger logrus.FieldLogger,
	cfg ImportConfig,
) ImportCollaboratorsFromCSV {
	if observer == nil {
		observer = noopObserver{}
	}
	if cfg.ReportMaxAttempts <= 0 {
		cfg.ReportMaxAttempts = 3
	}
	return &importCollaboratorsFromCSV{
		users:    users,
		source:   source,
		store:    store,
		queue:    queue,
		cache:    cache,
		observer: observer,
		logger:   logger,
		cfg:      cfg,
	}
}

func (uc *importCollaboratorsFromCSV) Execute(ctx context.Context, job domain.ImportJob) (domain.ImportResult, error) {
	log := uc.logger.WithFields(logrus.Fields{"path": job.FilePath, "user_id": job.UserID})
	log.Info("processing csv file")

	owner, err := uc.users.GetByID(ctx, job.UserID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return domain.ImportResult{}, fmt.Errorf("%w: user %d", ErrOwnerNotFound, job.UserID)
		}
		return domain.ImportResult{}, fmt.Errorf("load import owner: %w", err)
	}

	file, err := uc.source.Open(ctx, job.FilePath)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("%w: %v", ErrReadImportFile, err)
	}
	defer file.Close()

	result := domain.ImportResult{Errors: make([]domain.RowError, 0)}

	reader, err := newCSVReader(file)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("%w: %v", ErrReadImportFile, err)
	}

	header, err := reader.Read()
	switch {
	case errors.Is(err, io.EOF):
		header = nil
	case err != nil:
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return domain.ImportResult{}, fmt.Errorf("%w: header: %v", ErrMalformedImportFile, err)
		}
		return domain.ImportResult{}, fmt.Errorf("%w: %v", ErrReadImportFile, err)
	}

	if header != nil {
		columns := indexHeader(header)
		line := 0
		for {
			record, readErr := reader.Read()
			if errors.Is(readErr, io.EOF) {
				break
			}
			line++
			result.Processed++

			if readErr != nil {
				var parseErr *csv.ParseError
				if !errors.As(readErr, &parseErr) {
					return result, fmt.Errorf("%w: line %d: %v", ErrReadImportFile, line, readErr)
				}
				uc.recordFailure(log, &result, line, fmt.Sprintf("Linha malformada: %v", parseErr.Err))
				continue
			}

			created, rowErr := uc.processRow(ctx, owner.ID, record, columns)
			switch {
			case rowErr != nil:
				uc.recordFailure(log, &result, line, rowErr.Error())
			case created:
				result.Created++
				uc.observer.ObserveRow(metrics.RowCreated)
			default:
				result.Skipped++
				uc.observer.ObserveRow(metrics.RowSkipped)
			}
		}
	}

	if result.Created > 0 {
		uc.cache.Invalidate(ctx, owner.ID)
	}

	task, err := queue.NewTask(TaskImportReport, domain.ImportReport{
		To:        owner.Email,
		Processed: result.Processed,
		Errors:    result.Errors,
	}, uc.cfg.ReportMaxAttempts)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrEnqueueTask, err)
	}
	if err := uc.queue.Enqueue(ctx, task); err != nil {
		return result, fmt.Errorf("%w: %v", ErrEnqueueTask, err)
	}

	log.WithFields(logrus.Fields{
		"processed": result.Processed,
		"created":   result.Created,
		"skipped":   result.Skipped,
		"failed":    len(result.Errors),
	}).Info("csv file processed")
	return result, nil
}

// processRow reports whether the row produced a new collaborator.
func (uc *importCollaboratorsFromCSV) processRow(ctx context.Context, ownerID uint, record []string, columns map[string]int) (bool, error) {
	values := make(map[string]string, len(importColumns))
	for _, name := range importColumns {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return false, fmt.Errorf("A coluna %s está ausente.", name)
		}
		values[name] = record[idx]
	}

	email := domain.NormalizeEmail(values["email"])
	cpf := domain.NormalizeCPF(values["cpf"])

	existing, err := uc.store.FindByEmailAndCPF(ctx, email, cpf)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	c, err := domain.New(ownerID, values["name"], values["email"], values["cpf"], values["city"], values["state"])
	if err != nil {
		return false, err
	}

	if _, err := uc.store.Create(ctx, c); err != nil {
		if verr, ok := domain.ConflictError(err); ok {
			return false, verr
		}
		return false, err
	}
	return true, nil
}

func (uc *importCollaboratorsFromCSV) recordFailure(log logrus.FieldLogger, result *domain.ImportResult, line int, message string) {
	result.Errors = append(result.Errors, domain.RowError{Line: line, Message: message})
	uc.observer.ObserveRow(metrics.RowFailed)
	log.WithField("line", line).Warn(message)
}

func newCSVReader(r io.Reader) (*csv.Reader, error) {
	buffered := bufio.NewReader(r)
	prefix, err := buffered.Peek(len(utf8BOM))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if bytes.Equal(prefix, utf8BOM) {
		if _, err := buffered.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	reader := csv.NewReader(buffered)
	reader.Comma = ','
	reader.FieldsPerRecord = -1
	return reader, nil
}

func indexHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	return columns
}
