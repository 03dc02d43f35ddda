package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
)

const (
	ImportReportSubject = "Importação Concluída"
	maxListedErrors     = 10
)

var importReportTemplate = template.Must(template.New("import_report").Parse(`<!doctype html>
<html>
<body>
<p>Processamento realizado com sucesso.</p>
<p>Registros processados: {{.Processed}}</p>
{{- if .Errors}}
<p>Algumas linhas apresentaram problemas (listagem resumida):</p>
<ul>
{{- range .Errors}}
<li>Linha {{.Line}}: {{.Message}}</li>
{{- end}}
</ul>
<p>Total de erros: {{.TotalErrors}}</p>
{{- end}}
</body>
</html>
`))

type reportView struct {
	Processed   int
	Errors      []domain.RowError
	TotalErrors int
}

func RenderImportReport(report domain.ImportReport) (Message, error) {
	view := reportView{
		Processed:   report.Processed,
		Errors:      report.Errors,
		TotalErrors: len(report.Errors),
	}
	if len(view.Errors) > maxListedErrors {
		view.Errors = view.Errors[:maxListedErrors]
	}

	var buf bytes.Buffer
	if err := importReportTemplate.Execute(&buf, view); err != nil {
		return Message{}, fmt.Errorf("render import report: %w", err)
	}
	return Message{To: report.To, Subject: ImportReportSubject, HTML: buf.String()}, nil
}

type ReportMailer struct {
	sender Sender
}

func NewReportMailer(sender Sender) *ReportMailer {
	return &ReportMailer{sender: sender}
}

func (m *ReportMailer) NotifyImportFinished(ctx context.Context, report domain.ImportReport) error {
	msg, err := RenderImportReport(report)
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, msg)
}
