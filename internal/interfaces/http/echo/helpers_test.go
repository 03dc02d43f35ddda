package echo_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	httpecho "github.com/mohammadpnp/collaborators-api/internal/interfaces/http/echo"
)

type fakeParser struct{}

func (fakeParser) Parse(token string) (uint, error) {
	switch token {
	case "token-1":
		return 1, nil
	case "token-2":
		return 2, nil
	}
	return 0, errors.New("bad token")
}

func newTestServer(h httpecho.Handlers) *echo.Echo {
	e := echo.New()
	e.Validator = httpecho.NewRequestValidator()
	httpecho.RegisterRoutes(e, h, httpecho.BearerAuth(fakeParser{}), nil)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json %q: %v", rec.Body.String(), err)
	}
	return got
}

func fieldErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	errs, ok := decodeBody(t, rec)["errors"].(map[string]any)
	if !ok {
		t.Fatalf("expected errors object, got %s", rec.Body.String())
	}
	return errs
}
