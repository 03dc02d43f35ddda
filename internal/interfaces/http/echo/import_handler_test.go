package echo_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/collaborators-api/internal/application/collaborator"
	httpecho "github.com/mohammadpnp/collaborators-api/internal/interfaces/http/echo"
)

const uploadCSV = "name,email,cpf,city,state\nJohn Doe,john@example.com,123.456.789-09,São Paulo,SP\nJane Doe,jane@example.com,987.654.321-00,Rio de Janeiro,RJ\n"

type fakeStartImport struct {
	in      app.StartCollaboratorImportInput
	content string
	err     error
}

func (f *fakeStartImport) Execute(ctx context.Context, in app.StartCollaboratorImportInput) (app.StartCollaboratorImportOutput, error) {
	f.in = in
	data, _ := io.ReadAll(in.Content)
	f.content = string(data)
	if f.err != nil {
		return app.StartCollaboratorImportOutput{}, f.err
	}
	return app.StartCollaboratorImportOutput{Message: app.ImportStartedMessage}, nil
}

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/collaborators/import-csv", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer token-1")
	return req
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestImportCSVHandlerAccepted(t *testing.T) {
	t.Parallel()

	uc := &fakeStartImport{}
	e := newTestServer(httpecho.Handlers{Import: httpecho.NewImportHandler(uc)})

	rec := serve(e, uploadRequest(t, "file", "colaboradores.csv", []byte(uploadCSV)))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decodeBody(t, rec); got["message"] != "Processamento do arquivo CSV iniciado." {
		t.Fatalf("unexpected message: %#v", got["message"])
	}
	if uc.in.ActorID != 1 || uc.in.FileName != "colaboradores.csv" {
		t.Fatalf("unexpected input: %#v", uc.in)
	}
	if uc.content != uploadCSV {
		t.Fatalf("expected full file to reach the use case, got %q", uc.content)
	}
}

func TestImportCSVHandlerMissingFile(t *testing.T) {
	t.Parallel()

	e := newTestServer(httpecho.Handlers{Import: httpecho.NewImportHandler(&fakeStartImport{})})

	errs := fieldErrors(t, serve(e, uploadRequest(t, "", "", nil)))
	if _, ok := errs["file"]; !ok {
		t.Fatalf("expected file error, got %#v", errs)
	}
}

func TestImportCSVHandlerRejectsNonCSV(t *testing.T) {
	t.Parallel()

	pngHeader := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52}

	cases := []struct {
		name     string
		filename string
		content  []byte
	}{
		{name: "extension", filename: "photo.png", content: pngHeader},
		{name: "content", filename: "disguised.csv", content: pngHeader},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			uc := &fakeStartImport{}
			e := newTestServer(httpecho.Handlers{Import: httpecho.NewImportHandler(uc)})

			errs := fieldErrors(t, serve(e, uploadRequest(t, "file", tc.filename, tc.content)))
			if _, ok := errs["file"]; !ok {
				t.Fatalf("expected file error, got %#v", errs)
			}
			if uc.in.FileName != "" {
				t.Fatal("use case should not run")
			}
		})
	}
}

func TestImportCSVHandlerUseCaseFailure(t *testing.T) {
	t.Parallel()

	e := newTestServer(httpecho.Handlers{Import: httpecho.NewImportHandler(&fakeStartImport{err: errors.New("queue unavailable")})})

	rec := serve(e, uploadRequest(t, "file", "colaboradores.csv", []byte(uploadCSV)))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := decodeBody(t, rec); got["message"] != "queue unavailable" {
		t.Fatalf("expected raw error message, got %#v", got["message"])
	}
}
