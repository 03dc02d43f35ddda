package echo

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/collaborators-api/internal/application/collaborator"
)

const (
	uploadField       = "file"
	msgFileRequired   = "O campo file é obrigatório."
	msgFileNotCSV     = "O campo file deve ser um arquivo do tipo: csv, txt."
	msgFileUnreadable = "O campo file falhou ao ser enviado."
)

type ImportHandler struct {
	useCase app.StartCollaboratorImport
}

func NewImportHandler(useCase app.StartCollaboratorImport) *ImportHandler {
	return &ImportHandler{useCase: useCase}
}

func (h *ImportHandler) ImportCSV(c echo.Context) error {
	header, err := c.FormFile(uploadField)
	if err != nil {
		return fieldError(c, uploadField, msgFileRequired)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".csv" && ext != ".txt" {
		return fieldError(c, uploadField, msgFileNotCSV)
	}

	src, err := header.Open()
	if err != nil {
		return fieldError(c, uploadField, msgFileUnreadable)
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return fieldError(c, uploadField, msgFileUnreadable)
	}
	if !isCSVLike(detected) {
		return fieldError(c, uploadField, msgFileNotCSV)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return fieldError(c, uploadField, msgFileUnreadable)
	}

	out, err := h.useCase.Execute(c.Request().Context(), app.StartCollaboratorImportInput{
		ActorID:  actorID(c),
		FileName: header.Filename,
		Content:  src,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidImportFile) {
			return fieldError(c, uploadField, msgFileNotCSV)
		}
		c.Logger().Errorf("start import failed: %v", err)
		return c.JSON(http.StatusInternalServerError, messageBody{Message: err.Error()})
	}

	return c.JSON(http.StatusAccepted, out)
}

func isCSVLike(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/csv") || m.Is("text/plain") {
			return true
		}
	}
	return false
}
