package mail_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
	"github.com/mohammadpnp/collaborators-api/internal/infrastructure/mail"
	"github.com/mohammadpnp/collaborators-api/internal/logging"
)

type recordingSender struct {
	sent []mail.Message
}

func (r *recordingSender) Send(_ context.Context, msg mail.Message) error {
	r.sent = append(r.sent, msg)
	return nil
}

func TestRenderImportReportWithoutErrors(t *testing.T) {
	t.Parallel()

	msg, err := mail.RenderImportReport(domain.ImportReport{To: "manager1@convenia.com", Processed: 3})
	require.NoError(t, err)

	assert.Equal(t, "manager1@convenia.com", msg.To)
	assert.Equal(t, mail.ImportReportSubject, msg.Subject)
	assert.Contains(t, msg.HTML, "Registros processados: 3")
	assert.NotContains(t, msg.HTML, "Total de erros")
	assert.NotContains(t, msg.HTML, "Linha ")
}

func TestRenderImportReportListsFirstTenErrors(t *testing.T) {
	t.Parallel()

	errs := make([]domain.RowError, 0, 12)
	for i := 1; i <= 12; i++ {
		errs = append(errs, domain.RowError{Line: i, Message: fmt.Sprintf("falha %d", i)})
	}

	msg, err := mail.RenderImportReport(domain.ImportReport{To: "a@b.com", Processed: 12, Errors: errs})
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, "Linha 1: falha 1")
	assert.Contains(t, msg.HTML, "Linha 10: falha 10")
	assert.NotContains(t, msg.HTML, "Linha 11:")
	assert.Equal(t, 10, strings.Count(msg.HTML, "<li>"))
	assert.Contains(t, msg.HTML, "Total de erros: 12")
}

func TestRenderImportReportEscapesMessages(t *testing.T) {
	t.Parallel()

	msg, err := mail.RenderImportReport(domain.ImportReport{
		To:        "a@b.com",
		Processed: 1,
		Errors:    []domain.RowError{{Line: 1, Message: "<script>x</script>"}},
	})
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
}

func TestReportMailerSendsRenderedMessage(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	mailer := mail.NewReportMailer(sender)

	err := mailer.NotifyImportFinished(context.Background(), domain.ImportReport{To: "a@b.com", Processed: 2})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, mail.ImportReportSubject, sender.sent[0].Subject)
}

func TestLogSenderNeverFails(t *testing.T) {
	t.Parallel()

	sender := mail.NewLogSender(logging.Discard())
	require.NoError(t, sender.Send(context.Background(), mail.Message{To: "a@b.com", Subject: "s", HTML: "<p>x</p>"}))
}
