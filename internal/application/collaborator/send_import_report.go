package collaborator

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
)

type SendImportReport interface {
	Execute(ctx context.Context, report domain.ImportReport) error
}

type sendImportReport struct {
	notifier ReportNotifier
}

func NewSendImportReport(notifier ReportNotifier) SendImportReport {
	return &sendImportReport{notifier: notifier}
}

func (uc *sendImportReport) Execute(ctx context.Context, report domain.ImportReport) error {
	if strings.TrimSpace(report.To) == "" {
		return fmt.Errorf("%w: report without recipient", ErrMalformedTask)
	}
	if err := uc.notifier.NotifyImportFinished(ctx, report); err != nil {
		return fmt.Errorf("%w: %v", ErrSendImportReport, err)
	}
	return nil
}
